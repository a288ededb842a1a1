package domain

// MenuItem representa um prato do cardápio.
type MenuItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Recipe   string  `json:"recipe"`
	Image    string  `json:"image"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
}

// Review é uma avaliação de cliente.
type Review struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Details string  `json:"details"`
	Rating  float64 `json:"rating"`
}
