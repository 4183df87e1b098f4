package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shoaib7080/dirtoff-backend/internal/model"
)

const entryColumns = `id::text, receipt_no, customer, customer_id, customer_phone, products, charges,
	expected_delivery_date, pickup_date, processed_and_packed_date, delivery_date,
	status, visible, discount, remarks, created_at, updated_at`

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// Строка, не являющаяся UUID, не может быть идентификатором записи.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func scanEntry(row pgx.Row) (*model.Entry, error) {
	var (
		e        model.Entry
		products []byte
		charges  []byte
		status   string
	)

	err := row.Scan(
		&e.ID, &e.ReceiptNo, &e.Customer, &e.CustomerID, &e.CustomerPhone, &products, &charges,
		&e.PickupAndDelivery.ExpectedDeliveryDate, &e.PickupAndDelivery.PickupDate,
		&e.PickupAndDelivery.ProcessedAndPackedDate, &e.PickupAndDelivery.DeliveryDate,
		&status, &e.Visible, &e.Discount, &e.Remarks, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(products, &e.Products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	if err := json.Unmarshal(charges, &e.Charges); err != nil {
		return nil, fmt.Errorf("decode charges: %w", err)
	}
	e.Status = model.EntryStatus(status)

	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]model.Entry, error) {
	defer rows.Close()

	res := []model.Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		res = append(res, *e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return res, nil
}

func encodeEntryJSON(e *model.Entry) ([]byte, []byte, error) {
	items := e.Products
	if items == nil {
		items = []model.LineItem{}
	}
	products, err := json.Marshal(items)
	if err != nil {
		return nil, nil, fmt.Errorf("encode products: %w", err)
	}
	charges, err := json.Marshal(e.Charges)
	if err != nil {
		return nil, nil, fmt.Errorf("encode charges: %w", err)
	}
	return products, charges, nil
}

// whereBuilder собирает условие WHERE с позиционными параметрами.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

func (w *whereBuilder) raw(cond string) {
	w.conds = append(w.conds, cond)
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func entryWhere(f model.EntryFilter) *whereBuilder {
	w := &whereBuilder{}
	if !f.ShowAll {
		w.raw("visible")
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.ExpectedFrom != nil {
		w.add("expected_delivery_date >= ?", *f.ExpectedFrom)
	}
	if f.ExpectedTo != nil {
		w.add("expected_delivery_date < ?", *f.ExpectedTo)
	}
	if f.CreatedFrom != nil {
		w.add("created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		w.add("created_at < ?", *f.CreatedTo)
	}
	return w
}

// CreateEntry сохраняет новый заказ и возвращает его в том виде, в каком он записан.
func (r *PostgresRepository) CreateEntry(ctx context.Context, e *model.Entry) (*model.Entry, error) {
	products, charges, err := encodeEntryJSON(e)
	if err != nil {
		return nil, err
	}

	pd := e.PickupAndDelivery
	row := r.pool.QueryRow(ctx,
		`INSERT INTO entries (id, receipt_no, customer, customer_id, customer_phone, products, charges,
			expected_delivery_date, pickup_date, processed_and_packed_date, delivery_date,
			status, visible, discount, remarks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		 RETURNING `+entryColumns,
		uuid.NewString(), e.ReceiptNo, e.Customer, e.CustomerID, e.CustomerPhone, products, charges,
		pd.ExpectedDeliveryDate, pd.PickupDate, pd.ProcessedAndPackedDate, pd.DeliveryDate,
		string(e.Status), e.Visible, e.Discount, e.Remarks,
	)

	created, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("insert entry: %w", err)
	}
	return created, nil
}

// GetEntry возвращает заказ по идентификатору.
func (r *PostgresRepository) GetEntry(ctx context.Context, id string) (*model.Entry, error) {
	if !validID(id) {
		return nil, ErrEntryNotFound
	}

	var e *model.Entry
	err := r.withRetry(ctx, func() error {
		var err error
		e, err = scanEntry(r.pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1`, id))
		return err
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// ListEntries возвращает заказы по фильтру, новые первыми.
func (r *PostgresRepository) ListEntries(ctx context.Context, f model.EntryFilter) ([]model.Entry, error) {
	w := entryWhere(f)

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries`+w.sql()+` ORDER BY created_at DESC`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	return collectEntries(rows)
}

// PageEntries возвращает срез заказов и общее количество подходящих под фильтр.
func (r *PostgresRepository) PageEntries(ctx context.Context, f model.EntryFilter, limit, offset int) ([]model.Entry, int64, error) {
	w := entryWhere(f)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM entries`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	args := append(w.args, limit, offset)
	rows, err := r.pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM entries%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
			entryColumns, w.sql(), len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("select entries page: %w", err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchEntries ищет заказы по подстроке имени клиента без учёта регистра либо,
// если receiptNo задан, по точному числовому совпадению номера квитанции.
func (r *PostgresRepository) SearchEntries(ctx context.Context, query string, receiptNo *int64, f model.EntryFilter) ([]model.Entry, error) {
	w := entryWhere(f)

	w.args = append(w.args, "%"+likeEscaper.Replace(query)+"%")
	match := fmt.Sprintf(`customer ILIKE $%d`, len(w.args))
	if receiptNo != nil {
		w.args = append(w.args, *receiptNo)
		match += fmt.Sprintf(` OR receipt_no::bigint = $%d`, len(w.args))
	}
	w.raw("(" + match + ")")

	rows, err := r.pool.Query(ctx,
		`SELECT `+entryColumns+` FROM entries`+w.sql()+` ORDER BY created_at DESC`,
		w.args...,
	)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	return collectEntries(rows)
}

// UpdateEntry применяет fn к заказу под блокировкой строки и сохраняет результат.
// Номер квитанции и дата создания не меняются.
func (r *PostgresRepository) UpdateEntry(ctx context.Context, id string, fn func(e *model.Entry) error) (*model.Entry, error) {
	if !validID(id) {
		return nil, ErrEntryNotFound
	}

	var updated *model.Entry

	err := r.withRetry(ctx, func() error {
		tx, err := r.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer tx.Rollback(ctx)

		e, err := scanEntry(tx.QueryRow(ctx, `SELECT `+entryColumns+` FROM entries WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			return err
		}

		if err := fn(e); err != nil {
			return err
		}

		products, charges, err := encodeEntryJSON(e)
		if err != nil {
			return err
		}

		pd := e.PickupAndDelivery
		updated, err = scanEntry(tx.QueryRow(ctx,
			`UPDATE entries SET
				customer = $2, customer_phone = $3, products = $4, charges = $5,
				expected_delivery_date = $6, pickup_date = $7, processed_and_packed_date = $8, delivery_date = $9,
				status = $10, visible = $11, discount = $12, remarks = $13, updated_at = $14
			 WHERE id = $1
			 RETURNING `+entryColumns,
			id, e.Customer, e.CustomerPhone, products, charges,
			pd.ExpectedDeliveryDate, pd.PickupDate, pd.ProcessedAndPackedDate, pd.DeliveryDate,
			string(e.Status), e.Visible, e.Discount, e.Remarks, time.Now(),
		))
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
	if err != nil {
		if isNoRows(err) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	return updated, nil
}

// DeleteEntry удаляет заказ.
func (r *PostgresRepository) DeleteEntry(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrEntryNotFound
	}

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// SetEntryVisibility устанавливает флаг видимости. При value == nil флаг инвертируется.
func (r *PostgresRepository) SetEntryVisibility(ctx context.Context, id string, value *bool) (model.Visibility, error) {
	if !validID(id) {
		return model.Visibility{}, ErrEntryNotFound
	}

	var v model.Visibility
	err := r.pool.QueryRow(ctx,
		`UPDATE entries SET visible = COALESCE($2, NOT visible), updated_at = now()
		 WHERE id = $1
		 RETURNING id::text, visible`,
		id, value,
	).Scan(&v.ID, &v.Visible)
	if err != nil {
		if isNoRows(err) {
			return model.Visibility{}, ErrEntryNotFound
		}
		return model.Visibility{}, fmt.Errorf("set entry visibility: %w", err)
	}
	return v, nil
}
