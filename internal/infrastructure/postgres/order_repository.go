package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, kind, reference, status, shipping_amount, discount_amount, tax_rate_percent,
	grand_total, paid_amount, version, created_by, created_at, updated_at`

// Create persiste la cabecera y sus líneas.
func (r *OrderRepo) Create(ctx context.Context, doc *entity.OrderDocument) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_documents (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Kind, doc.Reference, doc.Status,
		doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent,
		doc.GrandTotal, doc.PaidAmount, doc.Version,
		doc.CreatedBy, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewValidationError("reference", "ya existe un documento de este tipo con esa referencia")
		}
		return fmt.Errorf("insert order: %w", err)
	}
	if len(doc.Lines) > 0 {
		return r.insertLines(ctx, doc.ID, doc.Lines)
	}
	return nil
}

// GetByID obtiene el documento con sus líneas. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.OrderDocument, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.OrderDocument, error) {
	return r.get(ctx, id, true)
}

func (r *OrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.OrderDocument, error) {
	query := `SELECT ` + orderColumns + ` FROM order_documents WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	doc, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	lines, err := r.listLines(ctx, id)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return doc, nil
}

// List lista documentos ordenados por fecha de creación descendente.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.OrderDocument, int, error) {
	var (
		conds []string
		args  []any
	)
	if f.Kind != "" {
		args = append(args, f.Kind)
		conds = append(conds, fmt.Sprintf("kind = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM order_documents`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM order_documents%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderDocument
	for rows.Next() {
		doc, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for _, doc := range list {
		if doc.Lines, err = r.listLines(ctx, doc.ID); err != nil {
			return nil, 0, err
		}
	}
	return list, total, nil
}

// SaveLines reemplaza todas las líneas del documento.
func (r *OrderRepo) SaveLines(ctx context.Context, orderID string, lines []entity.OrderLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	return r.insertLines(ctx, orderID, lines)
}

// UpdateHeader guarda cabecera y totales solo si la versión almacenada es expectedVersion.
func (r *OrderRepo) UpdateHeader(ctx context.Context, doc *entity.OrderDocument, expectedVersion int64) error {
	query := `
		UPDATE order_documents
		SET reference        = $3,
		    status           = $4,
		    shipping_amount  = $5,
		    discount_amount  = $6,
		    tax_rate_percent = $7,
		    grand_total      = $8,
		    paid_amount      = $9,
		    version          = $10,
		    updated_at       = $11
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		doc.ID, expectedVersion,
		doc.Reference, doc.Status,
		doc.ShippingAmount, doc.DiscountAmount, doc.TaxRatePercent,
		doc.GrandTotal, doc.PaidAmount, doc.Version, doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	var actual int64
	err = r.q.QueryRow(ctx, `SELECT version FROM order_documents WHERE id = $1`, doc.ID).Scan(&actual)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("read order version: %w", err)
	}
	return domain.NewStaleDataError("order", doc.ID, expectedVersion, actual)
}

func (r *OrderRepo) insertLines(ctx context.Context, orderID string, lines []entity.OrderLine) error {
	query := `
		INSERT INTO order_lines (id, order_id, source_id, position, unit_price, quantity,
		                         discount_method, discount_value, tax_method, tax_rate_percent, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	batch := &pgx.Batch{}
	for i := range lines {
		l := &lines[i]
		if l.ID == "" {
			l.ID = uuid.New().String()
		}
		l.OrderID = orderID
		batch.Queue(query, l.ID, orderID, l.SourceID, l.Position, l.UnitPrice, l.Quantity,
			l.DiscountMethod, l.DiscountValue, l.TaxMethod, l.TaxRatePercent, l.Total)
	}
	if batch.Len() == 0 {
		return nil
	}
	br := r.q.SendBatch(ctx, batch)
	for range lines {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return br.Close()
}

func (r *OrderRepo) listLines(ctx context.Context, orderID string) ([]entity.OrderLine, error) {
	query := `
		SELECT id, order_id, source_id, position, unit_price, quantity,
		       discount_method, discount_value, tax_method, tax_rate_percent, total
		FROM order_lines WHERE order_id = $1 ORDER BY position, id`
	rows, err := r.q.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []entity.OrderLine
	for rows.Next() {
		var l entity.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.SourceID, &l.Position, &l.UnitPrice, &l.Quantity,
			&l.DiscountMethod, &l.DiscountValue, &l.TaxMethod, &l.TaxRatePercent, &l.Total); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.OrderDocument, error) {
	var d entity.OrderDocument
	err := row.Scan(&d.ID, &d.Kind, &d.Reference, &d.Status,
		&d.ShippingAmount, &d.DiscountAmount, &d.TaxRatePercent,
		&d.GrandTotal, &d.PaidAmount, &d.Version,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
