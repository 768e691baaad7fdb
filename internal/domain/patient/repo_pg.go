package patient

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

const patientCols = `id, name, age, gender, phone, email, blood_type, department, status,
	last_visit, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.Phone, &p.Email, &p.BloodType,
		&p.Department, &p.Status, &p.LastVisit, &p.CreatedAt, &p.UpdatedAt)
	return &p, err
}

func (r *pgRepo) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, name, age, gender, phone, email, blood_type, department, status, last_visit)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Email, p.BloodType, p.Department, p.Status, p.LastVisit)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(r.pool.QueryRow(ctx, `SELECT `+patientCols+` FROM patients WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE patients SET name=$2, age=$3, gender=$4, phone=$5, email=$6, blood_type=$7,
			department=$8, status=$9, last_visit=$10, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Name, p.Age, p.Gender, p.Phone, p.Email, p.BloodType, p.Department, p.Status, p.LastVisit)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var patientFilters = map[string]db.FilterConfig{
	"q":          {Kind: db.FilterAny, Columns: []string{"name", "id::text"}},
	"status":     {Kind: db.FilterExact, Column: "status"},
	"department": {Kind: db.FilterExact, Column: "department"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	qb := db.NewSearchQuery("patients", patientCols)
	qb.ApplyParams(params, patientFilters)
	qb.OrderBy("created_at DESC")

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
