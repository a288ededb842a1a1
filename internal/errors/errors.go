package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Mensagens fixas de autenticação/autorização expostas ao cliente.
// O corpo da resposta não revela qual verificação falhou.
const (
	MsgUnauthorized    = "unauthorized access"
	MsgForbiddenRole   = "forbidden message"
	MsgForbiddenAccess = "forbidden access"
)

// AppError é a interface central para todos os erros customizados do Bistro Boss.
// Ela permite que o código externo (Handler) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Message() string  // Mensagem pública enviada ao cliente
	Category() string // Categoria do erro (e.g., "VALIDATION", "NOT_FOUND", "INTERNAL")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// UnauthorizedError representa credencial ausente, inválida ou expirada.
// Msg é usado apenas em logs; o cliente sempre recebe MsgUnauthorized.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Message() string  { return MsgUnauthorized }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa um token válido sem permissão para o recurso.
// Public é a mensagem enviada ao cliente (MsgForbiddenRole ou MsgForbiddenAccess).
type ForbiddenError struct {
	Public string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso negado: %s", e.Public) }
func (e *ForbiddenError) Message() string  { return e.Public }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um erro 403 com a mensagem pública informada.
func NewForbiddenError(public string) AppError {
	return &ForbiddenError{Public: public}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// ConflictError representa um conflito na regra de negócio (e.g., recurso duplicado).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito de estado: %s", e.Msg) }
func (e *ConflictError) Message() string  { return e.Msg }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict } // 409
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Erro Interno: %s: %v", e.Msg, e.Err)
	}
	return fmt.Sprintf("Erro Interno: %s", e.Msg)
}
func (e *InternalError) Message() string  { return "Ocorreu um erro inesperado." }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(msg+" (DB)", err)
}

// GatewayError representa falha do gateway de pagamento (Stripe).
type GatewayError struct {
	Msg string
	Err error
}

func (e *GatewayError) Error() string    { return fmt.Sprintf("Erro no gateway de pagamento: %s: %v", e.Msg, e.Err) }
func (e *GatewayError) Message() string  { return "Falha ao comunicar com o gateway de pagamento." }
func (e *GatewayError) Category() string { return "GATEWAY_ERROR" }
func (e *GatewayError) HTTPStatus() int  { return http.StatusBadGateway } // 502
func (e *GatewayError) Unwrap() error    { return e.Err }

// NewGatewayError encapsula um erro retornado pelo provedor de pagamento.
func NewGatewayError(msg string, err error) AppError {
	return &GatewayError{Msg: msg, Err: err}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, a categoria e a
// mensagem pública. Erros encapsulados com %w são reconhecidos via errors.As.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Message()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Ocorreu um erro inesperado."
}
