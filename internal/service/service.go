// Package service реализует бизнес-логику сервиса химчистки.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
	"github.com/shoaib7080/dirtoff-backend/internal/receipt"
)

var (
	// ErrValidation возвращается при отсутствии или некорректности обязательных полей.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidArgument возвращается при некорректном параметре запроса.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidCredentials возвращается при неверном email или пароле.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrNoMatches возвращается, если поиск не нашёл ни одного заказа.
	ErrNoMatches = errors.New("no entries match the query")
)

// Repository описывает контракт доступа к данным, используемый сервисом.
type Repository interface {
	Close() error
	Ping(ctx context.Context) error

	IncrementReceiptCounter(ctx context.Context) (int64, error)

	CreateEntry(ctx context.Context, e *model.Entry) (*model.Entry, error)
	GetEntry(ctx context.Context, id string) (*model.Entry, error)
	ListEntries(ctx context.Context, f model.EntryFilter) ([]model.Entry, error)
	PageEntries(ctx context.Context, f model.EntryFilter, limit, offset int) ([]model.Entry, int64, error)
	SearchEntries(ctx context.Context, query string, receiptNo *int64, f model.EntryFilter) ([]model.Entry, error)
	UpdateEntry(ctx context.Context, id string, fn func(e *model.Entry) error) (*model.Entry, error)
	DeleteEntry(ctx context.Context, id string) error
	SetEntryVisibility(ctx context.Context, id string, value *bool) (model.Visibility, error)

	ProductTaxes(ctx context.Context, names []string) (map[string]float64, error)
	UpsertProduct(ctx context.Context, p model.Product) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)

	DailySales(ctx context.Context, showAll bool) ([]model.DailySales, error)
	EntrySummary(ctx context.Context, showAll bool, todayFrom, todayTo time.Time) (model.EntryStat, error)
	SaveEntryStat(ctx context.Context, s model.EntryStat) (model.EntryStat, error)
	GetEntryStat(ctx context.Context) (model.EntryStat, error)

	CreateCustomer(ctx context.Context, c model.Customer) (*model.Customer, error)
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)

	CreateStaff(ctx context.Context, s model.Staff) (*model.Staff, error)
	GetStaff(ctx context.Context, id string) (*model.Staff, error)
	GetStaffByEmail(ctx context.Context, email string) (*model.Staff, error)
	ListStaff(ctx context.Context) ([]model.Staff, error)
	DeleteStaff(ctx context.Context, id string) error
}

// CustomerDirectory описывает внешний справочник клиентов.
type CustomerDirectory interface {
	GetCustomer(ctx context.Context, id string) (*model.Customer, error)
}

// Service содержит бизнес-логику сервиса химчистки.
type Service struct {
	repo         Repository
	receipts     *receipt.Allocator
	customers    CustomerDirectory
	logger       *zap.Logger
	now          func() time.Time
	statsTimeout time.Duration
}

// Option настраивает Service.
type Option func(*Service)

// WithCustomerDirectory включает проверку клиентов через внешний справочник
// вместо локальной таблицы.
func WithCustomerDirectory(d CustomerDirectory) Option {
	return func(s *Service) {
		s.customers = d
	}
}

// WithClock подменяет источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithStatsTimeout ограничивает время пересчёта сводки после изменения заказа.
func WithStatsTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.statsTimeout = d
		}
	}
}

// NewService создаёт новый сервис с указанным репозиторием.
func NewService(repo Repository, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:         repo,
		receipts:     receipt.NewAllocator(repo),
		logger:       logger,
		now:          time.Now,
		statsTimeout: 5 * time.Second,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Close закрывает ресурсы сервиса.
func (s *Service) Close() error {
	if s.repo != nil {
		return s.repo.Close()
	}
	return nil
}

// Ping проверяет доступность хранилища.
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
