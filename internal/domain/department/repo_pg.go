package department

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

const departmentCols = `id, name, head, floor, phone, total_beds, occupied_beds, staff_count,
	created_at, updated_at`

func scanDepartment(row pgx.Row) (*Department, error) {
	var d Department
	err := row.Scan(&d.ID, &d.Name, &d.Head, &d.Floor, &d.Phone, &d.TotalBeds, &d.OccupiedBeds,
		&d.StaffCount, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *pgRepo) Create(ctx context.Context, d *Department) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO departments (id, name, head, floor, phone, total_beds, occupied_beds, staff_count)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		d.ID, d.Name, d.Head, d.Floor, d.Phone, d.TotalBeds, d.OccupiedBeds, d.StaffCount)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx, `SELECT `+departmentCols+` FROM departments WHERE id = $1`, id))
}

func (r *pgRepo) GetByName(ctx context.Context, name string) (*Department, error) {
	return scanDepartment(r.pool.QueryRow(ctx,
		`SELECT `+departmentCols+` FROM departments WHERE LOWER(name) = LOWER($1)`, name))
}

func (r *pgRepo) Update(ctx context.Context, d *Department) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE departments SET name=$2, head=$3, floor=$4, phone=$5, total_beds=$6,
			occupied_beds=$7, staff_count=$8, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Head, d.Floor, d.Phone, d.TotalBeds, d.OccupiedBeds, d.StaffCount)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Department, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var departmentFilters = map[string]db.FilterConfig{
	"q": {Kind: db.FilterAny, Columns: []string{"name", "head"}},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Department, int, error) {
	qb := db.NewSearchQuery("departments", departmentCols)
	qb.ApplyParams(params, departmentFilters)
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
	var items []*Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
