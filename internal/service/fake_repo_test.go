package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/repository"
	"github.com/shoaib7080/dirtoff-backend/internal/stats"
)

// memRepo реализует Repository в памяти.
type memRepo struct {
	mu sync.Mutex

	counter     *int64
	seq         int
	entries     map[string]model.Entry
	products    map[string]model.Product
	customers   map[string]model.Customer
	staff       map[string]model.Staff
	stat        *model.EntryStat
	statSaves   int
	summaryErr  error
	createErr   error
	nowForStore func() time.Time
}

func newMemRepo() *memRepo {
	start := int64(1)
	return &memRepo{
		counter:     &start,
		entries:     make(map[string]model.Entry),
		products:    make(map[string]model.Product),
		customers:   make(map[string]model.Customer),
		staff:       make(map[string]model.Staff),
		nowForStore: time.Now,
	}
}

func (m *memRepo) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memRepo) Close() error                   { return nil }
func (m *memRepo) Ping(ctx context.Context) error { return nil }

func (m *memRepo) IncrementReceiptCounter(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counter == nil {
		return 0, repository.ErrCounterNotInitialized
	}
	n := *m.counter
	*m.counter++
	return n, nil
}

func cloneEntry(e model.Entry) model.Entry {
	if e.Products != nil {
		items := make([]model.LineItem, len(e.Products))
		for i, it := range e.Products {
			if it.Tax != nil {
				tax := *it.Tax
				it.Tax = &tax
			}
			items[i] = it
		}
		e.Products = items
	}
	if e.Charges.TaxAmount != nil {
		v := *e.Charges.TaxAmount
		e.Charges.TaxAmount = &v
	}
	return e
}

func (m *memRepo) CreateEntry(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return nil, m.createErr
	}

	stored := cloneEntry(*e)
	stored.ID = m.nextID("entry")
	// Смещение по seq гарантирует строгий порядок created_at.
	stored.CreatedAt = m.nowForStore().Add(time.Duration(m.seq) * time.Millisecond)
	stored.UpdatedAt = stored.CreatedAt
	m.entries[stored.ID] = stored

	out := cloneEntry(stored)
	return &out, nil
}

func (m *memRepo) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrEntryNotFound
	}
	out := cloneEntry(e)
	return &out, nil
}

func matches(e model.Entry, f model.EntryFilter) bool {
	if !f.ShowAll && !e.Visible {
		return false
	}
	if f.Status != "" && e.Status != f.Status {
		return false
	}
	exp := e.PickupAndDelivery.ExpectedDeliveryDate
	if f.ExpectedFrom != nil && exp.Before(*f.ExpectedFrom) {
		return false
	}
	if f.ExpectedTo != nil && !exp.Before(*f.ExpectedTo) {
		return false
	}
	if f.CreatedFrom != nil && e.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedTo != nil && !e.CreatedAt.Before(*f.CreatedTo) {
		return false
	}
	return true
}

func (m *memRepo) filtered(f model.EntryFilter, extra func(model.Entry) bool) []model.Entry {
	res := []model.Entry{}
	for _, e := range m.entries {
		if matches(e, f) && (extra == nil || extra(e)) {
			res = append(res, cloneEntry(e))
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res
}

func (m *memRepo) ListEntries(ctx context.Context, f model.EntryFilter) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.filtered(f, nil), nil
}

func (m *memRepo) PageEntries(ctx context.Context, f model.EntryFilter, limit, offset int) ([]model.Entry, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.filtered(f, nil)
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Entry{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memRepo) SearchEntries(ctx context.Context, query string, receiptNo *int64, f model.EntryFilter) ([]model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := strings.ToLower(query)
	return m.filtered(f, func(e model.Entry) bool {
		if strings.Contains(strings.ToLower(e.Customer), q) {
			return true
		}
		if receiptNo != nil {
			var n int64
			if _, err := fmt.Sscanf(e.ReceiptNo, "%d", &n); err == nil && n == *receiptNo {
				return true
			}
		}
		return false
	}), nil
}

func (m *memRepo) UpdateEntry(ctx context.Context, id string, fn func(e *model.Entry) error) (*model.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return nil, repository.ErrEntryNotFound
	}
	work := cloneEntry(e)
	if err := fn(&work); err != nil {
		return nil, err
	}
	work.ID, work.ReceiptNo, work.CreatedAt, work.CustomerID = e.ID, e.ReceiptNo, e.CreatedAt, e.CustomerID
	work.UpdatedAt = m.nowForStore()
	m.entries[id] = work
	out := cloneEntry(work)
	return &out, nil
}

func (m *memRepo) DeleteEntry(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[id]; !ok {
		return repository.ErrEntryNotFound
	}
	delete(m.entries, id)
	return nil
}

func (m *memRepo) SetEntryVisibility(ctx context.Context, id string, value *bool) (model.Visibility, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok {
		return model.Visibility{}, repository.ErrEntryNotFound
	}
	if value != nil {
		e.Visible = *value
	} else {
		e.Visible = !e.Visible
	}
	m.entries[id] = e
	return model.Visibility{ID: id, Visible: e.Visible}, nil
}

func (m *memRepo) ProductTaxes(ctx context.Context, names []string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make(map[string]float64)
	for _, n := range names {
		if p, ok := m.products[n]; ok {
			res[n] = p.Tax
		}
	}
	return res, nil
}

func (m *memRepo) UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.Name] = p
	return &p, nil
}

func (m *memRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []model.Product{}
	for _, p := range m.products {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (m *memRepo) DailySales(ctx context.Context, showAll bool) ([]model.DailySales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summaryErr != nil {
		return nil, m.summaryErr
	}

	byDay := make(map[string]*model.DailySales)
	for _, e := range m.entries {
		if !showAll && !e.Visible {
			continue
		}
		local := e.CreatedAt.In(stats.Location)
		key := local.Format("2006-01-02")
		d, ok := byDay[key]
		if !ok {
			d = &model.DailySales{Day: time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)}
			byDay[key] = d
		}
		d.TotalSales += e.Charges.TotalAmount
		d.OrderCount++
	}

	res := make([]model.DailySales, 0, len(byDay))
	for _, d := range byDay {
		res = append(res, *d)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Day.Before(res[j].Day) })
	return res, nil
}

func (m *memRepo) EntrySummary(ctx context.Context, showAll bool, todayFrom, todayTo time.Time) (model.EntryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.summaryErr != nil {
		return model.EntryStat{}, m.summaryErr
	}
	var s model.EntryStat
	for _, e := range m.entries {
		if !showAll && !e.Visible {
			continue
		}
		s.Total++
		switch e.Status {
		case model.EntryStatusPending:
			s.Pending++
		case model.EntryStatusCollected:
			s.Collected++
		case model.EntryStatusProcessedAndPacked:
			s.ProcessedAndPacked++
		case model.EntryStatusDelivered:
			s.Delivered++
		}
		exp := e.PickupAndDelivery.ExpectedDeliveryDate
		if !exp.Before(todayFrom) && exp.Before(todayTo) {
			s.TodayExpected++
		}
		if !e.CreatedAt.Before(todayFrom) && e.CreatedAt.Before(todayTo) {
			s.TodayReceived++
		}
	}
	return s, nil
}

func (m *memRepo) SaveEntryStat(ctx context.Context, s model.EntryStat) (model.EntryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = m.nowForStore()
	m.stat = &s
	m.statSaves++
	return s, nil
}

func (m *memRepo) GetEntryStat(ctx context.Context) (model.EntryStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stat == nil {
		return model.EntryStat{}, repository.ErrStatsNotMaterialized
	}
	return *m.stat, nil
}

func (m *memRepo) saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statSaves
}

func (m *memRepo) CreateCustomer(ctx context.Context, c model.Customer) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.nextID("customer")
	m.customers[c.ID] = c
	return &c, nil
}

func (m *memRepo) GetCustomer(ctx context.Context, id string) (*model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return nil, repository.ErrCustomerNotFound
	}
	return &c, nil
}

func (m *memRepo) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []model.Customer{}
	for _, c := range m.customers {
		res = append(res, c)
	}
	return res, nil
}

func (m *memRepo) CreateStaff(ctx context.Context, s model.Staff) (*model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.staff {
		if existing.Email == s.Email {
			return nil, repository.ErrStaffExists
		}
	}
	s.ID = m.nextID("staff")
	m.staff[s.ID] = s
	return &s, nil
}

func (m *memRepo) GetStaff(ctx context.Context, id string) (*model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.staff[id]
	if !ok {
		return nil, repository.ErrStaffNotFound
	}
	return &s, nil
}

func (m *memRepo) GetStaffByEmail(ctx context.Context, email string) (*model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.staff {
		if s.Email == email {
			return &s, nil
		}
	}
	return nil, repository.ErrStaffNotFound
}

func (m *memRepo) ListStaff(ctx context.Context) ([]model.Staff, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []model.Staff{}
	for _, s := range m.staff {
		res = append(res, s)
	}
	return res, nil
}

func (m *memRepo) DeleteStaff(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.staff[id]; !ok {
		return repository.ErrStaffNotFound
	}
	delete(m.staff, id)
	return nil
}
