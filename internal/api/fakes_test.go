package api

import (
	"context"
	"sort"
	"time"

	"github.com/dulcecodigo/storefront/internal/domain/analytics"
	"github.com/dulcecodigo/storefront/internal/domain/auth"
	"github.com/dulcecodigo/storefront/internal/domain/loyalty"
	"github.com/dulcecodigo/storefront/internal/domain/order"
	"github.com/dulcecodigo/storefront/internal/domain/product"
	"github.com/dulcecodigo/storefront/internal/domain/review"
	"github.com/dulcecodigo/storefront/internal/domain/user"
	"github.com/dulcecodigo/storefront/internal/notify"
	"github.com/shopspring/decimal"
)

type memOrders struct {
	nextID int64
	byID   map[int64]*order.Order
}

func newMemOrders() *memOrders {
	return &memOrders{nextID: 1, byID: make(map[int64]*order.Order)}
}

func (m *memOrders) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	stored := *o
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.nextID++
	m.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memOrders) Get(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	out := *o
	return &out, nil
}

func (m *memOrders) List(_ context.Context) ([]order.Order, error) {
	out := make([]order.Order, 0, len(m.byID))
	for _, o := range m.byID {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) ListForUser(_ context.Context, userID int64) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.byID {
		if o.UserID != nil && *o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id int64, status order.Status) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now()
	out := *o
	return &out, nil
}

func (m *memOrders) MarkNotified(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	o.EmailSent = true
	out := *o
	return &out, nil
}

type memLedger struct {
	entries []loyalty.HistoryEntry
}

func (m *memLedger) CreditEarned(_ context.Context, userID, orderID, points int64, description string) error {
	oid := orderID
	m.entries = append(m.entries, loyalty.HistoryEntry{
		ID:          int64(len(m.entries) + 1),
		UserID:      userID,
		OrderID:     &oid,
		Points:      points,
		Type:        loyalty.EntryEarned,
		Description: description,
		CreatedAt:   time.Now(),
	})
	return nil
}

func (m *memLedger) ListForUser(_ context.Context, userID int64) ([]loyalty.HistoryEntry, error) {
	var out []loyalty.HistoryEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memUsers struct {
	nextID  int64
	byID    map[int64]*user.User
	byEmail map[string]*user.User
}

func newMemUsers() *memUsers {
	return &memUsers{
		nextID:  1,
		byID:    make(map[int64]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (m *memUsers) Create(_ context.Context, name, email string, passwordHash []byte) (*user.User, error) {
	if _, ok := m.byEmail[email]; ok {
		return nil, user.ErrEmailTaken
	}
	u := &user.User{
		ID:           m.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.nextID++
	m.byID[u.ID] = u
	m.byEmail[email] = u
	out := *u
	return &out, nil
}

func (m *memUsers) Get(_ context.Context, id int64) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	out := *u
	return &out, nil
}

type memProducts struct {
	nextID int64
	byID   map[int64]*product.Product
}

func newMemProducts() *memProducts {
	return &memProducts{nextID: 1, byID: make(map[int64]*product.Product)}
}

func (m *memProducts) List(_ context.Context) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.byID {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) ListByCategory(_ context.Context, category string) ([]product.Product, error) {
	var out []product.Product
	for _, p := range m.byID {
		if p.IsActive && p.Category == category {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) Get(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *memProducts) Create(_ context.Context, p *product.Product) (*product.Product, error) {
	stored := *p
	stored.ID = m.nextID
	m.nextID++
	m.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memProducts) Update(_ context.Context, p *product.Product) (*product.Product, error) {
	if _, ok := m.byID[p.ID]; !ok {
		return nil, product.ErrNotFound
	}
	stored := *p
	m.byID[p.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return product.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memReviews struct {
	nextID int64
	byID   map[int64]*review.Review
}

func newMemReviews() *memReviews {
	return &memReviews{nextID: 1, byID: make(map[int64]*review.Review)}
}

func (m *memReviews) List(_ context.Context) ([]review.Review, error) {
	var out []review.Review
	for _, r := range m.byID {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memReviews) ListApproved(_ context.Context) ([]review.Review, error) {
	var out []review.Review
	for _, r := range m.byID {
		if r.IsApproved {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memReviews) Create(_ context.Context, r *review.Review) (*review.Review, error) {
	stored := *r
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	m.nextID++
	m.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (m *memReviews) Approve(_ context.Context, id int64) (*review.Review, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, review.ErrNotFound
	}
	r.IsApproved = true
	out := *r
	return &out, nil
}

func (m *memReviews) Delete(_ context.Context, id int64) error {
	if _, ok := m.byID[id]; !ok {
		return review.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memAdmins struct {
	byUsername map[string]*auth.Admin
}

func (m *memAdmins) GetByUsername(_ context.Context, username string) (*auth.Admin, error) {
	a, ok := m.byUsername[username]
	if !ok {
		return nil, auth.ErrAdminNotFound
	}
	out := *a
	return &out, nil
}

type memEvents struct {
	events []analytics.Event
}

func (m *memEvents) RecordEvent(_ context.Context, e *analytics.Event) error {
	m.events = append(m.events, *e)
	return nil
}

func (m *memEvents) Summary(_ context.Context) (*analytics.Summary, error) {
	return &analytics.Summary{
		TotalOrders:  int64(len(m.events)),
		TotalRevenue: decimal.Zero,
	}, nil
}

type noopDispatcher struct{}

func (noopDispatcher) OrderCreated(context.Context, *order.Order) error  { return nil }
func (noopDispatcher) StatusChanged(context.Context, *order.Order) error { return nil }

var _ notify.Dispatcher = noopDispatcher{}
