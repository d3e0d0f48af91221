package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/barberpro/barber-analytics-api/internal/application/ports"
	"github.com/barberpro/barber-analytics-api/internal/domain"
	"github.com/barberpro/barber-analytics-api/internal/domain/entity"
	"github.com/barberpro/barber-analytics-api/internal/domain/repository"
)

const testUnit = "unit-1"

var (
	adminActor  = Actor{UserID: "u-admin", UnitID: testUnit, Role: entity.RoleAdmin}
	barberActor = Actor{UserID: "u-barber", UnitID: testUnit, Role: entity.RoleBarbeiro}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeTx executa fn direto sobre os repositórios em memória.
type fakeTx struct {
	repos repository.Repos
	runs  int
}

func (f *fakeTx) Run(_ context.Context, fn func(repository.Repos) error) error {
	f.runs++
	return fn(f.repos)
}

// recorder guarda notificações e auditoria.
type recorder struct {
	mu     sync.Mutex
	notes  []ports.Notification
	audits []ports.AuditEntry
}

func (r *recorder) Notify(_ context.Context, n ports.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
	return nil
}

func (r *recorder) Record(_ context.Context, e ports.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.audits = append(r.audits, e)
	return nil
}

func (r *recorder) reporting() Reporting {
	return Reporting{Notifier: r, Audit: r, Log: zerolog.Nop()}
}

// Os fakes embutem a interface: método não implementado entra em pânico, o que
// denuncia acesso inesperado ao repositório.

type fakeOrders struct {
	repository.OrderRepository
	order       *entity.Order
	transitions []map[string]any
}

func (f *fakeOrders) FindByID(_ context.Context, unitID, id string) (*entity.Order, error) {
	if f.order == nil || f.order.ID != id || f.order.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	cp := *f.order
	return &cp, nil
}

func (f *fakeOrders) Transition(_ context.Context, unitID, id, from string, values map[string]any) (*entity.Order, error) {
	if f.order == nil || f.order.ID != id || f.order.Status != from {
		return nil, domain.ErrConflict
	}
	f.transitions = append(f.transitions, values)
	f.order.Status = values["status"].(string)
	if v, ok := values["total"].(decimal.Decimal); ok {
		f.order.Total = v
	}
	if v, ok := values["commission_value"].(decimal.Decimal); ok {
		f.order.CommissionValue = v
	}
	if v, ok := values["discount"].(decimal.Decimal); ok {
		f.order.Discount = v
	}
	cp := *f.order
	return &cp, nil
}

type fakeProfessionals struct {
	repository.ProfessionalRepository
	byID map[string]*entity.Professional
}

func (f *fakeProfessionals) FindByID(_ context.Context, unitID, id string) (*entity.Professional, error) {
	p, ok := f.byID[id]
	if !ok || p.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type fakeCash struct {
	repository.CashRegisterRepository
	register  *entity.CashRegister
	movements []*entity.CashMovement
	closed    map[string]any
	locks     int
}

func (f *fakeCash) FindOpenForUpdate(ctx context.Context, unitID string) (*entity.CashRegister, error) {
	f.locks++
	return f.FindOpen(ctx, unitID)
}

func (f *fakeCash) FindByIDForUpdate(ctx context.Context, unitID, id string) (*entity.CashRegister, error) {
	f.locks++
	return f.FindByID(ctx, unitID, id)
}

func (f *fakeCash) FindOpen(_ context.Context, unitID string) (*entity.CashRegister, error) {
	if f.register == nil || f.register.UnitID != unitID || f.register.Status != entity.CashOpen {
		return nil, domain.ErrNotFound
	}
	return f.register, nil
}

func (f *fakeCash) FindByID(_ context.Context, unitID, id string) (*entity.CashRegister, error) {
	if f.register == nil || f.register.ID != id || f.register.UnitID != unitID {
		return nil, domain.ErrNotFound
	}
	return f.register, nil
}

func (f *fakeCash) ListMovements(context.Context, string, string) ([]*entity.CashMovement, error) {
	return f.movements, nil
}

func (f *fakeCash) AddMovement(_ context.Context, values map[string]any) (*entity.CashMovement, error) {
	m := &entity.CashMovement{
		ID:             "mov-new",
		CashRegisterID: values["cash_register_id"].(string),
		UnitID:         values["unit_id"].(string),
		Type:           values["type"].(string),
		Amount:         values["amount"].(decimal.Decimal),
	}
	if d, ok := values["description"].(string); ok {
		m.Description = d
	}
	f.movements = append(f.movements, m)
	return m, nil
}

func (f *fakeCash) Close(_ context.Context, unitID, id string, values map[string]any) (*entity.CashRegister, error) {
	if f.register.Status != entity.CashOpen {
		return nil, domain.ErrNotFound
	}
	f.closed = values
	closing := values["closing_balance"].(decimal.Decimal)
	expected := values["expected_balance"].(decimal.Decimal)
	diff := values["difference"].(decimal.Decimal)
	f.register.Status = entity.CashClosed
	f.register.ClosingBalance, f.register.ExpectedBalance, f.register.Difference = &closing, &expected, &diff
	return f.register, nil
}

// memQueue lista da vez em memória, na ordem de posição.
type memQueue struct {
	repository.QueueRepository
	entries []*entity.QueueEntry
	locks   int
	listErr error
}

func (q *memQueue) LockPositions(context.Context, string) error {
	q.locks++
	return nil
}

func (q *memQueue) last() int {
	last := 0
	for _, e := range q.entries {
		if e.Position > last {
			last = e.Position
		}
	}
	return last
}

func (q *memQueue) Join(_ context.Context, unitID, professionalID string) (*entity.QueueEntry, error) {
	for _, e := range q.entries {
		if e.ProfessionalID == professionalID {
			return nil, domain.ErrDuplicate
		}
	}
	e := &entity.QueueEntry{UnitID: unitID, ProfessionalID: professionalID, Position: q.last() + 1, Status: entity.QueueDisponivel}
	q.entries = append(q.entries, e)
	return e, nil
}

func (q *memQueue) List(context.Context, string) ([]*entity.QueueEntry, error) {
	if q.listErr != nil {
		return nil, q.listErr
	}
	return q.sorted(), nil
}

func (q *memQueue) sorted() []*entity.QueueEntry {
	out := append([]*entity.QueueEntry(nil), q.entries...)
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (q *memQueue) LockNextAvailable(context.Context, string) (*entity.QueueEntry, error) {
	for _, e := range q.sorted() {
		if e.Status == entity.QueueDisponivel {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (q *memQueue) MoveToEnd(_ context.Context, _ string, professionalID string) (*entity.QueueEntry, error) {
	last := q.last()
	for _, e := range q.entries {
		if e.ProfessionalID == professionalID {
			e.Status = entity.QueueAtendendo
			e.Position = last + 1
			e.ServedCount++
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (q *memQueue) SetStatus(_ context.Context, _ string, professionalID, status string) (*entity.QueueEntry, error) {
	for _, e := range q.entries {
		if e.ProfessionalID == professionalID {
			e.Status = status
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}
