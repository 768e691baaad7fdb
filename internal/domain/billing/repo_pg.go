package billing

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type pgRepo struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

// Line items are stored as a JSONB column; the item set is always read and
// written with its invoice, never queried independently.
const invoiceCols = `id, patient_name, patient_id, date, due_date, items, tax_rate, paid, mark,
	payment_method, created_at, updated_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var items []byte
	err := row.Scan(&inv.ID, &inv.PatientName, &inv.PatientID, &inv.Date, &inv.DueDate, &items,
		&inv.TaxRate, &inv.Paid, &inv.Mark, &inv.PaymentMethod, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &inv.Items); err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgRepo) Create(ctx context.Context, inv *Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO invoices (id, patient_name, patient_id, date, due_date, items, tax_rate, paid,
			mark, payment_method)
		VALUES ($1,$2,$3,COALESCE($4, NOW()),$5,$6,$7,$8,$9,$10)`,
		inv.ID, inv.PatientName, inv.PatientID, nullTime(inv.Date), inv.DueDate, items,
		inv.TaxRate, inv.Paid, inv.Mark, inv.PaymentMethod)
	return err
}

func nullTime(t interface{ IsZero() bool }) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.pool.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, inv *Invoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		UPDATE invoices SET patient_name=$2, patient_id=$3, due_date=$4, items=$5, tax_rate=$6,
			paid=$7, mark=$8, payment_method=$9, updated_at=NOW()
		WHERE id = $1`,
		inv.ID, inv.PatientName, inv.PatientID, inv.DueDate, items, inv.TaxRate,
		inv.Paid, inv.Mark, inv.PaymentMethod)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Invoice, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var invoiceFilters = map[string]db.FilterConfig{
	"q":          {Kind: db.FilterAny, Columns: []string{"patient_name", "id::text"}},
	"patient_id": {Kind: db.FilterExact, Column: "patient_id::text"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error) {
	qb := db.NewSearchQuery("invoices", invoiceCols)
	qb.ApplyParams(params, invoiceFilters)
	qb.OrderBy("date DESC")

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
