package domain

import "time"

// User representa a entidade do usuário no sistema.
// O email é a chave única; Role é a única fonte de verdade para autorização.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	Role      UserRole  `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// IsAdmin informa se o usuário tem papel de administrador.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserRegistration representa o payload de entrada para o registro (POST /users).
type UserRegistration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

// TokenRequest é o payload de POST /jwt.
type TokenRequest struct {
	Email string `json:"email"`
}

// RegistrationResult é a resposta de POST /users: o resultado da inserção
// ou a mensagem de usuário já existente.
type RegistrationResult struct {
	Acknowledged bool   `json:"acknowledged,omitempty"`
	InsertedID   string `json:"insertedId,omitempty"`
	Message      string `json:"message,omitempty"`
}

// MsgUserExists é enviado quando o email já está cadastrado.
const MsgUserExists = "user already exists"

// AdminCheck é a resposta de GET /users/admin/{email}.
type AdminCheck struct {
	Admin bool `json:"admin"`
}
