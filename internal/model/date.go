package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ShopTimeZone задаёт пояс магазина.
const ShopTimeZone = "Asia/Kolkata"

// ShopLocation задаёт пояс магазина. IST не переходит на летнее время, поэтому
// фиксированного смещения достаточно и tzdata не нужна.
var ShopLocation = time.FixedZone(ShopTimeZone, 5*60*60+30*60)

// ErrInvalidDate возвращается при разборе даты не в формате RFC 3339 или YYYY-MM-DD.
var ErrInvalidDate = errors.New("invalid date")

// parseDate принимает RFC 3339 или дату без времени. Дата без времени
// означает полночь по времени магазина. Пустая строка даёт нулевое время.
func parseDate(field string, raw json.RawMessage) (time.Time, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a string", ErrInvalidDate, field)
	}
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, ShopLocation); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %s must be RFC 3339 or YYYY-MM-DD, got %q", ErrInvalidDate, field, s)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

// UnmarshalJSON разбирает плановую дату выдачи через parseDate.
func (p *PickupAndDelivery) UnmarshalJSON(data []byte) error {
	type plain PickupAndDelivery
	var aux struct {
		plain
		ExpectedDeliveryDate json.RawMessage `json:"expectedDeliveryDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = PickupAndDelivery(aux.plain)
	if isNull(aux.ExpectedDeliveryDate) {
		return nil
	}

	t, err := parseDate("expectedDeliveryDate", aux.ExpectedDeliveryDate)
	if err != nil {
		return err
	}
	p.ExpectedDeliveryDate = t
	return nil
}

// UnmarshalJSON разбирает плановую дату выдачи через parseDate. Отсутствующее
// поле и null оставляют дату без изменений.
func (p *EntryPatch) UnmarshalJSON(data []byte) error {
	type plain EntryPatch
	var aux struct {
		plain
		ExpectedDeliveryDate json.RawMessage `json:"expectedDeliveryDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = EntryPatch(aux.plain)
	if isNull(aux.ExpectedDeliveryDate) {
		return nil
	}

	t, err := parseDate("expectedDeliveryDate", aux.ExpectedDeliveryDate)
	if err != nil {
		return err
	}
	p.ExpectedDeliveryDate = &t
	return nil
}
