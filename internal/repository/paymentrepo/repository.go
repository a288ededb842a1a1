package paymentrepo

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// PaymentRepository grava pagamentos e limpa os carrinhos correspondentes.
type PaymentRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

func NewPaymentRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *PaymentRepository {
	return &PaymentRepository{DB: db, DBTimeout: dbTimeout, logger: logger}
}

// Commit insere o pagamento e remove as linhas de carrinho listadas em
// payment.CartItemIDs na mesma transação. IDs inexistentes são ignorados.
func (r *PaymentRepository) Commit(ctx context.Context, payment domain.Payment) (domain.CommitResult, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	tx, err := r.DB.BeginTx(ctxTimeout, nil)
	if err != nil {
		r.logger.Error("Falha ao abrir transação de pagamento.", err)
		return domain.CommitResult{}, apperror.NewDBError("failed to begin payment transaction", err)
	}
	// Rollback após Commit é no-op.
	defer tx.Rollback()

	const insertSQL = `INSERT INTO payments
        (id, email, transaction_id, price, quantity, cart_item_ids, menu_item_ids, item_names, status, date)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if _, err := tx.ExecContext(ctxTimeout, insertSQL,
		payment.ID,
		payment.Email,
		payment.TransactionID,
		payment.Price,
		payment.Quantity,
		pq.Array(payment.CartItemIDs),
		pq.Array(payment.MenuItemIDs),
		pq.Array(payment.ItemNames),
		payment.Status,
		payment.Date,
	); err != nil {
		r.logger.Error("Falha ao inserir pagamento no DB.", err)
		return domain.CommitResult{}, apperror.NewDBError("failed to insert payment", err)
	}

	var deleted int64
	if len(payment.CartItemIDs) > 0 {
		res, err := tx.ExecContext(ctxTimeout,
			`DELETE FROM carts WHERE id = ANY($1::uuid[])`, pq.Array(payment.CartItemIDs))
		if err != nil {
			r.logger.Error("Falha ao limpar carrinho do pagamento.", err)
			return domain.CommitResult{}, apperror.NewDBError("failed to delete cart items", err)
		}
		if deleted, err = res.RowsAffected(); err != nil {
			return domain.CommitResult{}, apperror.NewDBError("failed to read affected rows", err)
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Falha ao confirmar transação de pagamento.", err)
		return domain.CommitResult{}, apperror.NewDBError("failed to commit payment", err)
	}

	r.logger.Info("Pagamento registrado.", map[string]interface{}{
		"payment_id": payment.ID,
		"email":      payment.Email,
		"requested":  len(payment.CartItemIDs),
		"deleted":    deleted,
	})

	return domain.CommitResult{
		InsertResult: domain.InsertResult{Acknowledged: true, InsertedID: payment.ID},
		DeleteResult: domain.DeleteResult{Acknowledged: true, DeletedCount: deleted},
	}, nil
}
