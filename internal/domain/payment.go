package domain

import (
	"encoding/json"
	"time"
)

// Payment é o registro de um checkout concluído. Criado uma única vez e
// imutável depois disso.
type Payment struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	TransactionID string    `json:"transactionId"`
	Price         Price     `json:"price" swaggertype:"number"`
	Quantity      int       `json:"quantity"`
	CartItemIDs   []string  `json:"cartItemIds"`
	MenuItemIDs   []string  `json:"menuItems"`
	ItemNames     []string  `json:"itemNames"`
	Status        string    `json:"status"`
	Date          time.Time `json:"date"`
}

// UnmarshalJSON aceita também a chave antiga "cartItems" enviada pelo cliente web.
func (p *Payment) UnmarshalJSON(b []byte) error {
	type paymentAlias Payment
	aux := struct {
		*paymentAlias
		LegacyCartItems []string `json:"cartItems"`
	}{paymentAlias: (*paymentAlias)(p)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if len(p.CartItemIDs) == 0 {
		p.CartItemIDs = aux.LegacyCartItems
	}
	return nil
}

// PaymentIntentRequest é o payload de POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price Price `json:"price" swaggertype:"number"`
}

// PaymentIntent é a cobrança pendente criada no gateway.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
	Status       string
}

// PaymentIntentStatusSucceeded é o status de uma cobrança confirmada.
const PaymentIntentStatusSucceeded = "succeeded"

// ClientSecretResponse devolve ao cliente o segredo de confirmação.
type ClientSecretResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CommitResult é a resposta de POST /payments.
type CommitResult struct {
	InsertResult InsertResult `json:"insertResult"`
	DeleteResult DeleteResult `json:"deleteResult"`
}

// PaymentRecordedEvent é publicado após o commit do pagamento.
type PaymentRecordedEvent struct {
	Event       string    `json:"event"`
	Version     int       `json:"version"`
	OccurredAt  time.Time `json:"occurred_at"`
	PaymentID   string    `json:"payment_id"`
	Email       string    `json:"email"`
	Price       Price     `json:"price"`
	CartItemIDs []string  `json:"cart_item_ids"`
	Deleted     int64     `json:"deleted_cart_items"`
}
