package scheduling

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

const appointmentCols = `id, patient_name, doctor, type, date, time, duration, is_online, status,
	notes, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.PatientName, &a.Doctor, &a.Type, &a.Date, &a.Time, &a.Duration,
		&a.IsOnline, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	return &a, err
}

func (r *pgRepo) Create(ctx context.Context, a *Appointment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (id, patient_name, doctor, type, date, time, duration, is_online, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.PatientName, a.Doctor, a.Type, a.Date, a.Time, a.Duration, a.IsOnline, a.Status, a.Notes)
	return err
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `SELECT `+appointmentCols+` FROM appointments WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointments SET patient_name=$2, doctor=$3, type=$4, date=$5, time=$6, duration=$7,
			is_online=$8, status=$9, notes=$10, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.PatientName, a.Doctor, a.Type, a.Date, a.Time, a.Duration, a.IsOnline, a.Status, a.Notes)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var appointmentFilters = map[string]db.FilterConfig{
	"q":      {Kind: db.FilterAny, Columns: []string{"patient_name", "doctor"}},
	"status": {Kind: db.FilterExact, Column: "status"},
	"doctor": {Kind: db.FilterExact, Column: "doctor"},
	"date":   {Kind: db.FilterExact, Column: "date"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	qb := db.NewSearchQuery("appointments", appointmentCols)
	qb.ApplyParams(params, appointmentFilters)
	qb.OrderBy("date ASC, time ASC")

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
