package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo implementación de PaymentRepository (usable con pool o tx).
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

const paymentColumns = `id, order_id, payment_method_id, received_primary, received_secondary,
	exchange_rate, total_paid, created_by, created_at, deleted_at, COALESCE(delete_reason, '')`

// Create inserta un pago. Los pagos no se editan: se eliminan con motivo y se registran de nuevo.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (id, order_id, payment_method_id, received_primary, received_secondary,
		                      exchange_rate, total_paid, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrderID, p.PaymentMethodID, p.ReceivedPrimaryCurrency, p.ReceivedSecondaryCurrency,
		p.ExchangeRate, p.TotalPaid, p.CreatedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID obtiene un pago (vigente o eliminado). Devuelve (nil, nil) si no existe.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*entity.Payment, error) {
	p, err := scanPayment(r.q.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

// ListLive conjunto completo de pagos vigentes del documento.
func (r *PaymentRepo) ListLive(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	return r.ListByOrder(ctx, orderID, false)
}

// ListByOrder pagos del documento en orden de registro.
func (r *PaymentRepo) ListByOrder(ctx context.Context, orderID string, includeDeleted bool) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_id = $1`
	if !includeDeleted {
		query += ` AND deleted_at IS NULL`
	}
	query += ` ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoftDelete marca el pago como eliminado con su motivo. Un pago ya eliminado no se toca.
func (r *PaymentRepo) SoftDelete(ctx context.Context, id, reason string, at time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE payments SET deleted_at = $2, delete_reason = $3 WHERE id = $1 AND deleted_at IS NULL`,
		id, at, reason)
	if err != nil {
		return fmt.Errorf("soft delete payment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	err := row.Scan(&p.ID, &p.OrderID, &p.PaymentMethodID, &p.ReceivedPrimaryCurrency, &p.ReceivedSecondaryCurrency,
		&p.ExchangeRate, &p.TotalPaid, &p.CreatedBy, &p.CreatedAt, &p.DeletedAt, &p.DeleteReason)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
