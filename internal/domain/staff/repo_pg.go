package staff

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

const doctorCols = `id, name, specialization, department, experience, education, rating,
	patient_count, availability, phone, email, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.Name, &d.Specialization, &d.Department, &d.Experience, &d.Education,
		&d.Rating, &d.PatientCount, &d.Availability, &d.Phone, &d.Email, &d.CreatedAt, &d.UpdatedAt)
	return &d, err
}

func (r *pgRepo) Create(ctx context.Context, d *Doctor) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctors (id, name, specialization, department, experience, education, rating,
			patient_count, availability, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		d.ID, d.Name, d.Specialization, d.Department, d.Experience, d.Education, d.Rating,
		d.PatientCount, d.Availability, d.Phone, d.Email)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctors WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctors SET name=$2, specialization=$3, department=$4, experience=$5, education=$6,
			rating=$7, patient_count=$8, availability=$9, phone=$10, email=$11, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Name, d.Specialization, d.Department, d.Experience, d.Education,
		d.Rating, d.PatientCount, d.Availability, d.Phone, d.Email)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctors WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var doctorFilters = map[string]db.FilterConfig{
	"q":            {Kind: db.FilterAny, Columns: []string{"name", "specialization"}},
	"department":   {Kind: db.FilterExact, Column: "department"},
	"availability": {Kind: db.FilterExact, Column: "availability"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	qb := db.NewSearchQuery("doctors", doctorCols)
	qb.ApplyParams(params, doctorFilters)
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
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
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
