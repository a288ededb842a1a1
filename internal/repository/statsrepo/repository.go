package statsrepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// exactCountBelow: abaixo disso a estimativa do planner é pouco confiável
// (tabelas recém-criadas ficam com reltuples = -1 ou 0).
const exactCountBelow = 10000

// Tabelas contáveis. O nome vai para o SQL, então só entra o que está aqui.
var countable = map[string]bool{
	"users":    true,
	"menu":     true,
	"payments": true,
}

// StatsRepository expõe agregados baratos para o painel administrativo.
type StatsRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewStatsRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *StatsRepository {
	return &StatsRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// EstimatedCount devolve a contagem estimada (pg_class.reltuples) da tabela,
// com fallback para COUNT(*) em tabelas pequenas.
func (r *StatsRepository) EstimatedCount(ctx context.Context, table string) (int64, error) {
	if !countable[table] {
		return 0, apperror.NewInternalError(fmt.Sprintf("tabela não contável: %s", table), nil)
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var estimate float64
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT COALESCE(reltuples, -1) FROM pg_class WHERE oid = to_regclass($1)`, table).Scan(&estimate)
	if err != nil && err != sql.ErrNoRows {
		r.logger.Error("Falha ao ler estimativa de contagem.", err)
		return 0, apperror.NewDBError("failed to estimate count", err)
	}
	if estimate >= exactCountBelow {
		return int64(estimate), nil
	}

	var count int64
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		r.logger.Error("Falha ao contar registros.", err)
		return 0, apperror.NewDBError("failed to count rows", err)
	}
	return count, nil
}

// PaymentPrices devolve o campo price de todos os pagamentos, como gravado.
func (r *StatsRepository) PaymentPrices(ctx context.Context) ([]domain.Price, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctxTimeout, `SELECT price FROM payments`)
	if err != nil {
		r.logger.Error("Falha ao ler preços dos pagamentos.", err)
		return nil, apperror.NewDBError("failed to read payment prices", err)
	}
	defer rows.Close()

	prices := []domain.Price{}
	for rows.Next() {
		var p domain.Price
		if err := rows.Scan(&p); err != nil {
			return nil, apperror.NewDBError("failed to scan payment price", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate payment prices", err)
	}
	return prices, nil
}
