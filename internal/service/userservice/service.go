package userservice

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// UserRepository define o contrato que este Serviço espera do Identity Store.
type UserRepository interface {
	Insert(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error)
}

// TokenIssuer é o contrato da camada de token (internal/pkg/token).
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// UserService concentra a lógica de identidade: cadastro, papel e emissão de token.
type UserService struct {
	repo     UserRepository
	tokenSvc TokenIssuer
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo UserRepository, tokenSvc TokenIssuer, logger logger.Logger) *UserService {
	return &UserService{
		repo:     repo,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

// Register cadastra o usuário se o email ainda não existir. Repetir o cadastro
// nunca cria um segundo registro: devolve {message: "user already exists"}.
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.RegistrationResult, error) {
	email := strings.TrimSpace(registration.Email)
	if email == "" {
		return domain.RegistrationResult{}, apperror.NewValidationError("O email é obrigatório.")
	}

	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		s.logger.Debug("Cadastro ignorado: email já existe.", map[string]interface{}{"email": email})
		return domain.RegistrationResult{Message: domain.MsgUserExists}, nil
	}
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		return domain.RegistrationResult{}, err
	}

	// Papel enviado pelo cliente é ignorado: todo cadastro nasce customer.
	user, err := s.repo.Insert(ctx, domain.User{
		Name:     registration.Name,
		Email:    email,
		PhotoURL: registration.PhotoURL,
		Role:     domain.RoleCustomer,
	})
	if err != nil {
		// Dois cadastros simultâneos do mesmo email: o segundo perde no índice único.
		var conflict *apperror.ConflictError
		if errors.As(err, &conflict) {
			return domain.RegistrationResult{Message: domain.MsgUserExists}, nil
		}
		return domain.RegistrationResult{}, err
	}

	s.logger.Info("Usuário cadastrado.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return domain.RegistrationResult{Acknowledged: true, InsertedID: user.ID}, nil
}

// IsAdmin responde se email é admin. Só o próprio usuário pode perguntar:
// email diferente do autenticado, ou inexistente, é simplesmente {admin:false}.
func (s *UserService) IsAdmin(ctx context.Context, authEmail, email string) (domain.AdminCheck, error) {
	if email != authEmail {
		s.logger.Warn("Consulta de admin para outro email.", map[string]interface{}{"auth_email": authEmail, "email": email})
		return domain.AdminCheck{Admin: false}, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.AdminCheck{Admin: false}, nil
		}
		return domain.AdminCheck{}, err
	}

	return domain.AdminCheck{Admin: user.IsAdmin()}, nil
}

// Promote torna admin o usuário com o ID informado.
func (s *UserService) Promote(ctx context.Context, id string) (domain.UpdateResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.UpdateResult{}, apperror.NewValidationError("ID de usuário inválido.")
	}
	return s.repo.PromoteToAdmin(ctx, id)
}

// PromoteByEmail é usado pela CLI de operação, que conhece o email e não o ID.
func (s *UserService) PromoteByEmail(ctx context.Context, email string) (domain.UpdateResult, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	return s.repo.PromoteToAdmin(ctx, user.ID)
}

// List devolve todos os usuários.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// IssueToken emite o JWT para o email informado. A rota é o bootstrap do
// login e não exige autenticação.
func (s *UserService) IssueToken(email string) (string, error) {
	return s.tokenSvc.Issue(strings.TrimSpace(email))
}
