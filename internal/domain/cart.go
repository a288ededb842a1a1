package domain

// CartItem é uma linha do carrinho de um usuário, identificado pelo email.
type CartItem struct {
	ID         string  `json:"id"`
	MenuItemID string  `json:"menuItemId"`
	Email      string  `json:"email"`
	Name       string  `json:"name"`
	Image      string  `json:"image"`
	Price      float64 `json:"price"`
}
