// Package apptest repositorios en memoria para probar los casos de uso sin PostgreSQL.
// Respetan el mismo contrato que el adaptador postgres: (nil, nil) si no existe,
// UpdateHeader condicional por versión y transacciones con rollback.
package apptest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/entity"
	"github.com/titya18/pos-react-front-office-sub001/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu       sync.Mutex
	orders   map[string]*entity.OrderDocument
	payments []*entity.Payment
	returns  []*entity.ReturnDocument
	rates    []*entity.ExchangeRate

	// FailCommit fuerza un error al final de la próxima transacción (prueba de rollback).
	FailCommit error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{orders: make(map[string]*entity.OrderDocument)}
}

// Orders repositorio de documentos fuera de transacción.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Payments repositorio de pagos fuera de transacción.
func (s *Store) Payments() *PaymentRepo { return &PaymentRepo{s: s} }

// Returns repositorio de devoluciones fuera de transacción.
func (s *Store) Returns() *ReturnRepo { return &ReturnRepo{s: s} }

// Rates repositorio de tasas.
func (s *Store) Rates() *RateRepo { return &RateRepo{s: s} }

// Put guarda un documento tal cual (preparación de pruebas).
func (s *Store) Put(doc *entity.OrderDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[doc.ID] = cloneOrder(doc)
}

// Order devuelve una copia del documento almacenado.
func (s *Store) Order(id string) *entity.OrderDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.orders[id]; ok {
		return cloneOrder(d)
	}
	return nil
}

// Run ejecuta fn con repositorios atados a una transacción exclusiva. Si fn falla se
// restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	returns repository.ReturnRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	err := fn(&OrderRepo{s: s, inTx: true}, &PaymentRepo{s: s, inTx: true}, &ReturnRepo{s: s, inTx: true})
	if err == nil && s.FailCommit != nil {
		err, s.FailCommit = s.FailCommit, nil
	}
	if err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	orders   map[string]*entity.OrderDocument
	payments []*entity.Payment
	returns  []*entity.ReturnDocument
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{orders: make(map[string]*entity.OrderDocument, len(s.orders))}
	for id, d := range s.orders {
		snap.orders[id] = cloneOrder(d)
	}
	for _, p := range s.payments {
		cp := *p
		snap.payments = append(snap.payments, &cp)
	}
	for _, r := range s.returns {
		snap.returns = append(snap.returns, cloneReturn(r))
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.orders = snap.orders
	s.payments = snap.payments
	s.returns = snap.returns
}

func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func cloneOrder(d *entity.OrderDocument) *entity.OrderDocument {
	cp := *d
	cp.Lines = append([]entity.OrderLine(nil), d.Lines...)
	return &cp
}

func cloneReturn(r *entity.ReturnDocument) *entity.ReturnDocument {
	cp := *r
	cp.Items = append([]entity.ReturnItem(nil), r.Items...)
	return &cp
}

// OrderRepo implementa repository.OrderRepository.
type OrderRepo struct {
	s    *Store
	inTx bool
}

var _ repository.OrderRepository = (*OrderRepo)(nil)

func (r *OrderRepo) Create(_ context.Context, doc *entity.OrderDocument) error {
	defer r.s.lock(r.inTx)()
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	r.s.orders[doc.ID] = cloneOrder(doc)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.OrderDocument, error) {
	defer r.s.lock(r.inTx)()
	if d, ok := r.s.orders[id]; ok {
		return cloneOrder(d), nil
	}
	return nil, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.OrderDocument, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.OrderDocument, int, error) {
	defer r.s.lock(r.inTx)()
	var all []*entity.OrderDocument
	for _, d := range r.s.orders {
		if f.Kind != "" && d.Kind != f.Kind {
			continue
		}
		if f.Status != "" && d.Status != f.Status {
			continue
		}
		all = append(all, cloneOrder(d))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := len(all)
	if f.Offset >= total {
		return nil, total, nil
	}
	end := total
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}

func (r *OrderRepo) SaveLines(_ context.Context, orderID string, lines []entity.OrderLine) error {
	defer r.s.lock(r.inTx)()
	d, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	d.Lines = append([]entity.OrderLine(nil), lines...)
	return nil
}

func (r *OrderRepo) UpdateHeader(_ context.Context, doc *entity.OrderDocument, expectedVersion int64) error {
	defer r.s.lock(r.inTx)()
	d, ok := r.s.orders[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if d.Version != expectedVersion {
		return domain.NewStaleDataError("order", doc.ID, expectedVersion, d.Version)
	}
	lines := d.Lines
	updated := cloneOrder(doc)
	updated.Lines = lines
	r.s.orders[doc.ID] = updated
	return nil
}

// PaymentRepo implementa repository.PaymentRepository.
type PaymentRepo struct {
	s    *Store
	inTx bool
}

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

func (r *PaymentRepo) Create(_ context.Context, p *entity.Payment) error {
	defer r.s.lock(r.inTx)()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	cp := *p
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

func (r *PaymentRepo) GetByID(_ context.Context, id string) (*entity.Payment, error) {
	defer r.s.lock(r.inTx)()
	for _, p := range r.s.payments {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *PaymentRepo) ListLive(ctx context.Context, orderID string) ([]*entity.Payment, error) {
	return r.ListByOrder(ctx, orderID, false)
}

func (r *PaymentRepo) ListByOrder(_ context.Context, orderID string, includeDeleted bool) ([]*entity.Payment, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Payment
	for _, p := range r.s.payments {
		if p.OrderID != orderID || (!includeDeleted && !p.IsLive()) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *PaymentRepo) SoftDelete(_ context.Context, id, reason string, at time.Time) error {
	defer r.s.lock(r.inTx)()
	for _, p := range r.s.payments {
		if p.ID == id && p.IsLive() {
			t := at
			p.DeletedAt = &t
			p.DeleteReason = reason
			return nil
		}
	}
	return domain.ErrNotFound
}

// ReturnRepo implementa repository.ReturnRepository.
type ReturnRepo struct {
	s    *Store
	inTx bool
}

var _ repository.ReturnRepository = (*ReturnRepo)(nil)

func (r *ReturnRepo) Create(_ context.Context, ret *entity.ReturnDocument) error {
	defer r.s.lock(r.inTx)()
	if ret.ID == "" {
		ret.ID = uuid.New().String()
	}
	for i := range ret.Items {
		if ret.Items[i].ID == "" {
			ret.Items[i].ID = uuid.New().String()
		}
		ret.Items[i].ReturnID = ret.ID
	}
	r.s.returns = append(r.s.returns, cloneReturn(ret))
	return nil
}

func (r *ReturnRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.ReturnDocument, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.ReturnDocument
	for _, ret := range r.s.returns {
		if ret.OrderID == orderID {
			out = append(out, cloneReturn(ret))
		}
	}
	return out, nil
}

// RateRepo implementa repository.ExchangeRateRepository.
type RateRepo struct {
	s *Store
}

var _ repository.ExchangeRateRepository = (*RateRepo)(nil)

func (r *RateRepo) Create(_ context.Context, rate *entity.ExchangeRate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rate.ID == "" {
		rate.ID = uuid.New().String()
	}
	cp := *rate
	r.s.rates = append(r.s.rates, &cp)
	return nil
}

func (r *RateRepo) Latest(_ context.Context) (*entity.ExchangeRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entity.ExchangeRate
	for _, rate := range r.s.rates {
		if latest == nil || !rate.EffectiveAt.Before(latest.EffectiveAt) {
			latest = rate
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}
