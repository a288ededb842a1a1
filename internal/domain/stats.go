package domain

// AdminStats é o resumo exibido no painel administrativo.
// Revenue é texto com duas casas decimais (ex.: "35.50").
type AdminStats struct {
	Users    int64  `json:"users"`
	Products int64  `json:"products"`
	Orders   int64  `json:"orders"`
	Revenue  string `json:"revenue"`
}
