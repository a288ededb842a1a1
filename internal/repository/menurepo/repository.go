package menurepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/cache"
	"bistroboss/internal/pkg/logger"
)

// menuCacheKey guarda o cardápio inteiro (a listagem não é paginada).
const menuCacheKey = "menu:all"

// MenuRepository acessa o cardápio com estratégia Cache-Aside no Redis.
type MenuRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewMenuRepository injeta as dependências de infraestrutura (DB e Cache).
func NewMenuRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *MenuRepository {
	return &MenuRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// FindAll retorna o cardápio, lendo do cache quando possível.
func (r *MenuRepository) FindAll(ctx context.Context) ([]domain.MenuItem, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	// --- Cache-Aside (READ) ---
	cached, err := r.Cache.Get(ctxTimeout, menuCacheKey)
	if err == nil {
		var items []domain.MenuItem
		if json.Unmarshal([]byte(cached), &items) == nil {
			r.logger.Debug("Cardápio servido do cache.", map[string]interface{}{"count": len(items)})
			return items, nil
		}
		r.logger.Warn("Cache do cardápio corrompido, lendo do DB.", nil)
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler cardápio do cache.", map[string]interface{}{"error": err.Error()})
	}

	rows, err := r.DB.QueryContext(ctxTimeout,
		`SELECT id, name, recipe, image, category, price FROM menu ORDER BY category, name`)
	if err != nil {
		r.logger.Error("Falha ao listar cardápio no DB.", err)
		return nil, apperror.NewDBError("failed to list menu", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		var m domain.MenuItem
		if err := rows.Scan(&m.ID, &m.Name, &m.Recipe, &m.Image, &m.Category, &m.Price); err != nil {
			return nil, apperror.NewDBError("failed to scan menu item", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate menu", err)
	}

	// --- Cache-Aside (WRITE) ---
	if b, err := json.Marshal(items); err == nil {
		if err := r.Cache.Set(ctxTimeout, menuCacheKey, b, r.CacheTTL); err != nil {
			r.logger.Warn("Falha ao gravar cardápio no cache.", map[string]interface{}{"error": err.Error()})
		}
	}

	return items, nil
}

// Insert grava um novo prato e invalida o cache do cardápio.
func (r *MenuRepository) Insert(ctx context.Context, item domain.MenuItem) (domain.InsertResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item.ID = uuid.NewString()

	const insertSQL = `INSERT INTO menu (id, name, recipe, image, category, price)
                       VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		item.ID, item.Name, item.Recipe, item.Image, item.Category, item.Price,
	); err != nil {
		r.logger.Error("Falha ao inserir prato no DB.", err)
		return domain.InsertResult{}, apperror.NewDBError("failed to insert menu item", err)
	}

	r.invalidate(ctxTimeout)
	r.logger.Info("Prato adicionado ao cardápio.", map[string]interface{}{"id": item.ID, "name": item.Name})
	return domain.InsertResult{Acknowledged: true, InsertedID: item.ID}, nil
}

// Delete remove um prato e invalida o cache do cardápio.
func (r *MenuRepository) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM menu WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover prato no DB.", err)
		return domain.DeleteResult{}, apperror.NewDBError("failed to delete menu item", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return domain.DeleteResult{}, apperror.NewDBError("failed to read affected rows", err)
	}

	r.invalidate(ctxTimeout)
	r.logger.Info("Prato removido do cardápio.", map[string]interface{}{"id": id, "deleted": deleted})
	return domain.DeleteResult{Acknowledged: true, DeletedCount: deleted}, nil
}

func (r *MenuRepository) invalidate(ctx context.Context) {
	if err := r.Cache.Delete(ctx, menuCacheKey); err != nil {
		r.logger.Warn("Falha ao invalidar cache do cardápio.", map[string]interface{}{"error": err.Error()})
	}
}
