package reviewrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/cache"
	"bistroboss/internal/pkg/logger"
)

const reviewsCacheKey = "reviews:all"

// ReviewRepository lê as avaliações (somente leitura pela API).
type ReviewRepository struct {
	DB        *sql.DB
	Cache     cache.Client
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

func NewReviewRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *ReviewRepository {
	return &ReviewRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// FindAll retorna todas as avaliações (Cache-Aside).
func (r *ReviewRepository) FindAll(ctx context.Context) ([]domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	if cached, err := r.Cache.Get(ctxTimeout, reviewsCacheKey); err == nil {
		var reviews []domain.Review
		if json.Unmarshal([]byte(cached), &reviews) == nil {
			return reviews, nil
		}
	} else if err != cache.ErrCacheMiss {
		r.logger.Warn("Falha ao ler avaliações do cache.", map[string]interface{}{"error": err.Error()})
	}

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT id, name, details, rating FROM reviews`)
	if err != nil {
		r.logger.Error("Falha ao listar avaliações no DB.", err)
		return nil, apperror.NewDBError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.Name, &rv.Details, &rv.Rating); err != nil {
			return nil, apperror.NewDBError("failed to scan review", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate reviews", err)
	}

	if b, err := json.Marshal(reviews); err == nil {
		_ = r.Cache.Set(ctxTimeout, reviewsCacheKey, b, r.CacheTTL)
	}
	return reviews, nil
}
