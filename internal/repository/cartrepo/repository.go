package cartrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// CartRepository é o Cart Store: linhas de carrinho por email.
type CartRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewCartRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *CartRepository {
	return &CartRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// FindByEmail lista o carrinho de um usuário.
func (r *CartRepository) FindByEmail(ctx context.Context, email string) ([]domain.CartItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, menu_item_id, email, name, image, price FROM carts WHERE email = $1 ORDER BY created_at`, email)
	if err != nil {
		r.logger.Error("Falha ao buscar carrinho no DB.", err)
		return nil, apperror.NewDBError("failed to find cart items", err)
	}
	defer rows.Close()

	items := []domain.CartItem{}
	for rows.Next() {
		var c domain.CartItem
		if err := rows.Scan(&c.ID, &c.MenuItemID, &c.Email, &c.Name, &c.Image, &c.Price); err != nil {
			return nil, apperror.NewDBError("failed to scan cart item", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate cart items", err)
	}

	return items, nil
}

// Insert adiciona uma linha ao carrinho.
func (r *CartRepository) Insert(ctx context.Context, item domain.CartItem) (domain.InsertResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item.ID = uuid.NewString()

	const insertSQL = `INSERT INTO carts (id, menu_item_id, email, name, image, price)
                       VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		item.ID, item.MenuItemID, item.Email, item.Name, item.Image, item.Price,
	); err != nil {
		r.logger.Error("Falha ao inserir item no carrinho.", err)
		return domain.InsertResult{}, apperror.NewDBError("failed to insert cart item", err)
	}

	r.logger.Debug("Item adicionado ao carrinho.", map[string]interface{}{"id": item.ID, "email": item.Email})
	return domain.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

// Delete remove uma linha pelo ID (sem checar o dono).
func (r *CartRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM carts WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover item do carrinho.", err)
		return domain.DeleteResult{}, apperror.NewDBError("failed to delete cart item", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return domain.DeleteResult{}, apperror.NewDBError("failed to read affected rows", err)
	}

	return domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}
