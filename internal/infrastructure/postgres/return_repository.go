package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

// ReturnRepo implementación de ReturnRepository (usable con pool o tx).
type ReturnRepo struct {
	q Querier
}

// NewReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReturnRepository(q Querier) *ReturnRepo {
	return &ReturnRepo{q: q}
}

// Create persiste la devolución y sus ítems.
func (r *ReturnRepo) Create(ctx context.Context, ret *entity.ReturnDocument) error {
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO returns (id, order_id, grand_total, note, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		ret.ID, ret.OrderID, ret.GrandTotal, ret.Note, ret.CreatedBy, ret.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}
	for i := range ret.Items {
		it := &ret.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.ReturnID = ret.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO return_items (id, return_id, original_line_id, quantity, total)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, it.ReturnID, it.OriginalLineID, it.Quantity, it.Total)
		if err != nil {
			return fmt.Errorf("insert return item: %w", err)
		}
	}
	return nil
}

// ListByOrder historial completo de devoluciones del documento con sus ítems.
func (r *ReturnRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.ReturnDocument, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, grand_total, note, created_by, created_at
		FROM returns WHERE order_id = $1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReturnDocument
	byID := make(map[string]*entity.ReturnDocument)
	for rows.Next() {
		var ret entity.ReturnDocument
		if err := rows.Scan(&ret.ID, &ret.OrderID, &ret.GrandTotal, &ret.Note, &ret.CreatedBy, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan return: %w", err)
		}
		list = append(list, &ret)
		byID[ret.ID] = &ret
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return list, nil
	}

	itemRows, err := r.q.Query(ctx, `
		SELECT ri.id, ri.return_id, ri.original_line_id, ri.quantity, ri.total
		FROM return_items ri
		JOIN returns rt ON rt.id = ri.return_id
		WHERE rt.order_id = $1
		ORDER BY ri.return_id, ri.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list return items: %w", err)
	}
	defer itemRows.Close()
	for itemRows.Next() {
		var it entity.ReturnItem
		if err := itemRows.Scan(&it.ID, &it.ReturnID, &it.OriginalLineID, &it.Quantity, &it.Total); err != nil {
			return nil, fmt.Errorf("scan return item: %w", err)
		}
		if ret, ok := byID[it.ReturnID]; ok {
			ret.Items = append(ret.Items, it)
		}
	}
	return list, itemRows.Err()
}
