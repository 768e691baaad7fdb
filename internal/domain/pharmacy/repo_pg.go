package pharmacy

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
)

type pgRepo struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const medicineCols = `id, name, generic_name, category, manufacturer, batch_number, expiry_date,
	quantity, reorder_level, unit_price, created_at, updated_at`

func scanMedicine(row pgx.Row) (*Medicine, error) {
	var m Medicine
	err := row.Scan(&m.ID, &m.Name, &m.GenericName, &m.Category, &m.Manufacturer, &m.BatchNumber,
		&m.ExpiryDate, &m.Quantity, &m.ReorderLevel, &m.UnitPrice, &m.CreatedAt, &m.UpdatedAt)
	return &m, err
}

func (r *pgRepo) Create(ctx context.Context, m *Medicine) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO medicines (id, name, generic_name, category, manufacturer, batch_number,
			expiry_date, quantity, reorder_level, unit_price)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		m.ID, m.Name, m.GenericName, m.Category, m.Manufacturer, m.BatchNumber,
		m.ExpiryDate, m.Quantity, m.ReorderLevel, m.UnitPrice)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error) {
	return scanMedicine(r.pool.QueryRow(ctx, `SELECT `+medicineCols+` FROM medicines WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, m *Medicine) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE medicines SET name=$2, generic_name=$3, category=$4, manufacturer=$5, batch_number=$6,
			expiry_date=$7, quantity=$8, reorder_level=$9, unit_price=$10, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.GenericName, m.Category, m.Manufacturer, m.BatchNumber,
		m.ExpiryDate, m.Quantity, m.ReorderLevel, m.UnitPrice)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM medicines WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Medicine, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var medicineFilters = map[string]db.FilterConfig{
	"q":        {Kind: db.FilterAny, Columns: []string{"name", "generic_name"}},
	"category": {Kind: db.FilterExact, Column: "category"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error) {
	qb := db.NewSearchQuery("medicines", medicineCols)
	qb.ApplyParams(params, medicineFilters)
	qb.OrderBy("name ASC")

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
