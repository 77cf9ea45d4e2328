package cart

// Item representa um item do carrinho
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart representa o carrinho de um usuário
type Cart struct {
	UserID string `json:"user_id"`
	Items  []Item `json:"items"`
}
