package userrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/database"
	"bistroboss/internal/pkg/logger"
)

// UserRepository é o Identity Store: mapeia email -> usuário (com papel).
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

const userColumns = `id, name, email, photo_url, role, created_at`

func scanUser(row interface{ Scan(...interface{}) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PhotoURL, &u.Role, &u.CreatedAt)
	return u, err
}

// Insert grava um novo usuário. Email duplicado vira ConflictError.
func (r *UserRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Insert de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}

	const insertSQL = `INSERT INTO users (id, name, email, photo_url, role, created_at)
                       VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		user.ID,
		user.Name,
		user.Email,
		user.PhotoURL,
		user.Role,
		user.CreatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Info("Email já cadastrado (índice único).", map[string]interface{}{"email": user.Email})
			return domain.User{}, apperror.NewConflictError(fmt.Sprintf("O email '%s' já está em uso.", user.Email))
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	r.logger.Debug("Iniciando FindByEmail de usuário no repositório.", map[string]interface{}{"email": email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctxTimeout, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}

	return user, nil
}

// FindAll lista todos os usuários.
func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		r.logger.Error("Falha ao listar usuários no DB.", err)
		return nil, apperror.NewDBError("failed to list users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan user", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate users", err)
	}

	return users, nil
}

// PromoteToAdmin define role=admin para o usuário com o ID informado.
// matchedCount conta o usuário encontrado; modifiedCount só conta se ele ainda não era admin.
func (r *UserRepository) PromoteToAdmin(ctx context.Context, id string) (domain.UpdateResult, error) {
	r.logger.Debug("Promovendo usuário a admin.", map[string]interface{}{"user_id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const promoteSQL = `
        WITH target AS (
            SELECT id, role FROM users WHERE id = $1 FOR UPDATE
        ), updated AS (
            UPDATE users u SET role = 'admin'
            FROM target t
            WHERE u.id = t.id AND t.role <> 'admin'
            RETURNING u.id
        )
        SELECT (SELECT count(*) FROM target), (SELECT count(*) FROM updated)`

	var result domain.UpdateResult
	if err := r.DB.QueryRowContext(ctxTimeout, promoteSQL, id).Scan(&result.MatchedCount, &result.ModifiedCount); err != nil {
		r.logger.Error("Falha ao promover usuário no DB.", err)
		return domain.UpdateResult{}, apperror.NewDBError("failed to promote user", err)
	}
	result.Acknowledged = true

	r.logger.Info("Promoção de usuário concluída.", map[string]interface{}{
		"user_id":  id,
		"matched":  result.MatchedCount,
		"modified": result.ModifiedCount,
	})
	return result, nil
}
