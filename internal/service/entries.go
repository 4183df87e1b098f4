package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	// MaxPageLimit ограничивает размер страницы сверху.
	MaxPageLimit = 100
)

func zero() *float64 {
	v := 0.0
	return &v
}

// normalizeLineItems проставляет нулевой налог позициям, где он не указан.
func normalizeLineItems(items []model.LineItem) []model.LineItem {
	for i := range items {
		if items[i].Tax == nil {
			items[i].Tax = zero()
		}
	}
	return items
}

// normalizeCharges проставляет нулевую сумму налога, если она не указана.
func normalizeCharges(c model.Charges) model.Charges {
	if c.TaxAmount == nil {
		c.TaxAmount = zero()
	}
	return c
}

// stampStatus отмечает время перехода в статус. Отметка перезаписывается при
// каждом переходе, в том числе повторном.
func stampStatus(e *model.Entry, now time.Time) {
	t := now
	switch e.Status {
	case model.EntryStatusCollected:
		e.PickupAndDelivery.PickupDate = &t
	case model.EntryStatusProcessedAndPacked:
		e.PickupAndDelivery.ProcessedAndPackedDate = &t
	case model.EntryStatusDelivered:
		e.PickupAndDelivery.DeliveryDate = &t
	}
}

func applyPatch(e *model.Entry, p model.EntryPatch, now time.Time) {
	if p.Customer != nil {
		e.Customer = strings.TrimSpace(*p.Customer)
	}
	if p.CustomerPhone != nil {
		e.CustomerPhone = *p.CustomerPhone
	}
	if p.Products != nil {
		e.Products = normalizeLineItems(p.Products)
	}
	if p.Charges != nil {
		e.Charges = normalizeCharges(*p.Charges)
	}
	if p.ExpectedDeliveryDate != nil {
		e.PickupAndDelivery.ExpectedDeliveryDate = *p.ExpectedDeliveryDate
	}
	if p.Discount != nil {
		e.Discount = *p.Discount
	}
	if p.Remarks != nil {
		e.Remarks = *p.Remarks
	}
	if p.Visible != nil {
		e.Visible = *p.Visible
	}
	if p.Status != nil {
		e.Status = *p.Status
		stampStatus(e, now)
	}
}

// CreateEntry создаёт заказ: проверяет клиента, выдаёт номер квитанции и
// обновляет сводку. Номер квитанции не возвращается в пул при ошибке записи.
func (s *Service) CreateEntry(ctx context.Context, in model.EntryInput) (*model.Entry, error) {
	in.Customer = strings.TrimSpace(in.Customer)
	in.CustomerID = strings.TrimSpace(in.CustomerID)

	if in.Customer == "" || in.CustomerID == "" || in.PickupAndDelivery.ExpectedDeliveryDate.IsZero() {
		return nil, fmt.Errorf("%w: customer, customerId and pickupAndDelivery.expectedDeliveryDate are required", ErrValidation)
	}

	if in.Status == "" {
		in.Status = model.EntryStatusPending
	}
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	}

	customer, err := s.lookupCustomer(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	receiptNo, err := s.receipts.Next(ctx)
	if err != nil {
		return nil, err
	}

	e := &model.Entry{
		ReceiptNo:         receiptNo,
		Customer:          in.Customer,
		CustomerID:        in.CustomerID,
		CustomerPhone:     in.CustomerPhone,
		Products:          normalizeLineItems(in.Products),
		Charges:           normalizeCharges(in.Charges),
		PickupAndDelivery: in.PickupAndDelivery,
		Status:            in.Status,
		Visible:           true,
		Discount:          in.Discount,
		Remarks:           in.Remarks,
	}
	if e.CustomerPhone == "" {
		e.CustomerPhone = customer.Phone
	}
	if e.Products == nil {
		e.Products = []model.LineItem{}
	}
	if e.Status != model.EntryStatusPending {
		stampStatus(e, s.now())
	}

	created, err := s.repo.CreateEntry(ctx, e)
	if err != nil {
		return nil, err
	}

	s.refreshStats(ctx)
	return created, nil
}

// GetEntry возвращает заказ с текущими ставками налога из каталога.
// Ставки подставляются только в ответ и не сохраняются.
func (s *Service) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	e, err := s.repo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.enrichTaxes(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) enrichTaxes(ctx context.Context, e *model.Entry) error {
	if len(e.Products) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(e.Products))
	names := make([]string, 0, len(e.Products))
	for _, item := range e.Products {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}
		names = append(names, item.Name)
	}

	taxes, err := s.repo.ProductTaxes(ctx, names)
	if err != nil {
		return fmt.Errorf("lookup product taxes: %w", err)
	}

	for i := range e.Products {
		tax := taxes[e.Products[i].Name]
		e.Products[i].Tax = &tax
	}
	return nil
}

// ListEntries возвращает заказы, новые первыми. Скрытые заказы попадают в
// выборку только при showAll.
func (s *Service) ListEntries(ctx context.Context, showAll bool) ([]model.Entry, error) {
	return s.repo.ListEntries(ctx, model.EntryFilter{ShowAll: showAll})
}

// PageEntries возвращает страницу заказов. Нумерация страниц с единицы.
func (s *Service) PageEntries(ctx context.Context, page, limit int, showAll bool) (*model.EntryPage, error) {
	return s.pageEntries(ctx, model.EntryFilter{ShowAll: showAll}, page, limit)
}

func (s *Service) pageEntries(ctx context.Context, f model.EntryFilter, page, limit int) (*model.EntryPage, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	// Смещение (page-1)*limit должно помещаться в int.
	if page-1 > math.MaxInt/limit {
		return nil, fmt.Errorf("%w: page %d is out of range", ErrInvalidArgument, page)
	}

	entries, total, err := s.repo.PageEntries(ctx, f, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	return &model.EntryPage{
		Page:         page,
		TotalPages:   int(math.Ceil(float64(total) / float64(limit))),
		TotalEntries: total,
		Data:         entries,
	}, nil
}

// SearchEntries ищет заказы по имени клиента (подстрока без учёта регистра)
// или по номеру квитанции, если запрос является числом.
func (s *Service) SearchEntries(ctx context.Context, query string, showAll bool) ([]model.Entry, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidArgument)
	}

	var receiptNo *int64
	if n, err := strconv.ParseInt(query, 10, 64); err == nil {
		receiptNo = &n
	}

	entries, err := s.repo.SearchEntries(ctx, query, receiptNo, model.EntryFilter{ShowAll: showAll})
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNoMatches
	}
	return entries, nil
}

// UpdateEntry частично обновляет заказ. Смена статуса проставляет время
// соответствующего этапа.
func (s *Service) UpdateEntry(ctx context.Context, id string, patch model.EntryPatch) (*model.Entry, error) {
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *patch.Status)
	}
	if patch.Customer != nil && strings.TrimSpace(*patch.Customer) == "" {
		return nil, fmt.Errorf("%w: customer must not be empty", ErrValidation)
	}
	if patch.ExpectedDeliveryDate != nil && patch.ExpectedDeliveryDate.IsZero() {
		return nil, fmt.Errorf("%w: expectedDeliveryDate must not be empty", ErrValidation)
	}

	updated, err := s.repo.UpdateEntry(ctx, id, func(e *model.Entry) error {
		applyPatch(e, patch, s.now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.refreshStats(ctx)
	return updated, nil
}

// DeleteEntry удаляет заказ.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}

	s.refreshStats(ctx)
	return nil
}

// SetVisibility устанавливает флаг видимости заказа, а при value == nil
// инвертирует его.
func (s *Service) SetVisibility(ctx context.Context, id string, value *bool) (model.Visibility, error) {
	v, err := s.repo.SetEntryVisibility(ctx, id, value)
	if err != nil {
		return model.Visibility{}, err
	}

	s.refreshStats(ctx)
	return v, nil
}
