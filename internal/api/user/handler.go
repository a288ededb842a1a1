package user

import (
	"context"
	"net/http"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
	"bistroboss/internal/pkg/middleware"
	"bistroboss/internal/pkg/respond"
)

// UserService define o contrato para as operações de identidade expostas na API.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.RegistrationResult, error)
	IsAdmin(ctx context.Context, authEmail, email string) (domain.AdminCheck, error)
	Promote(ctx context.Context, id string) (domain.UpdateResult, error)
	List(ctx context.Context) ([]domain.User, error)
	IssueToken(email string) (string, error)
}

// TokenResponse é a resposta de POST /jwt.
type TokenResponse struct {
	Token string `json:"token"`
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// IssueTokenHandler lida com a requisição POST /jwt.
// @Summary Emite um JWT para o email informado
// @Description Bootstrap do login: o cliente já autenticou o usuário no provedor de identidade.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body domain.TokenRequest true "Email do usuário"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} domain.ErrorResponse "Email ausente"
// @Router /jwt [post]
func (h *Handler) IssueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.TokenRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	tok, err := h.Service.IssueToken(req.Email)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	respond.JSON(w, r, h.Logger, http.StatusOK, TokenResponse{Token: tok})
}

// ListUsersHandler lida com a requisição GET /users.
// @Summary Lista todos os usuários
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.User
// @Failure 401 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /users [get]
func (h *Handler) ListUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.List(r.Context())
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, users)
}

// RegisterUserHandler lida com a requisição POST /users.
// @Summary Registra um novo usuário
// @Description Idempotente por email: se já existir, responde {message: "user already exists"}.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Dados do usuário"
// @Success 201 {object} domain.RegistrationResult "Usuário criado"
// @Success 200 {object} domain.RegistrationResult "Usuário já existia"
// @Failure 400 {object} domain.ErrorResponse
// @Router /users [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := respond.Decode(r, &reg); err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}

	status := http.StatusCreated
	if !result.Acknowledged {
		status = http.StatusOK
	}
	respond.JSON(w, r, h.Logger, status, result)
}

// CheckAdminHandler lida com a requisição GET /users/admin/{email}.
// @Summary Informa se o usuário autenticado é admin
// @Description Email diferente do token responde {admin: false}.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "Email consultado"
// @Success 200 {object} domain.AdminCheck
// @Failure 401 {object} domain.ErrorResponse
// @Router /users/admin/{email} [get]
func (h *Handler) CheckAdminHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, h.Logger, apperror.NewUnauthorizedError("claims ausentes"))
		return
	}

	check, err := h.Service.IsAdmin(r.Context(), claims.Email, r.PathValue("email"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, check)
}

// PromoteUserHandler lida com a requisição PATCH /users/admin/{id}.
// @Summary Promove um usuário a admin
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário (UUID)"
// @Success 200 {object} domain.UpdateResult
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Router /users/admin/{id} [patch]
func (h *Handler) PromoteUserHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Promote(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.Error(w, r, h.Logger, err)
		return
	}
	respond.JSON(w, r, h.Logger, http.StatusOK, result)
}
