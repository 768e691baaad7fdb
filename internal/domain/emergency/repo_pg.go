package emergency

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

const caseCols = `id, name, age, gender, condition, symptoms, triage, bp, hr, spo2,
	assigned_to, status, arrived_at, created_at, updated_at`

// triageOrder ranks rows for queue ordering in SQL, mirroring TriageRank.
const triageOrder = `CASE triage
	WHEN 'Red' THEN 0 WHEN 'Orange' THEN 1 WHEN 'Yellow' THEN 2 WHEN 'Green' THEN 3
	ELSE 4 END, arrived_at ASC`

func scanCase(row pgx.Row) (*Case, error) {
	var e Case
	err := row.Scan(&e.ID, &e.Name, &e.Age, &e.Gender, &e.Condition, &e.Symptoms, &e.Triage,
		&e.Vitals.BP, &e.Vitals.HR, &e.Vitals.SpO2,
		&e.AssignedTo, &e.Status, &e.ArrivedAt, &e.CreatedAt, &e.UpdatedAt)
	return &e, err
}

func (r *pgRepo) Create(ctx context.Context, e *Case) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO emergency_cases (id, name, age, gender, condition, symptoms, triage, bp, hr, spo2,
			assigned_to, status, arrived_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,COALESCE($13, NOW()))`,
		e.ID, e.Name, e.Age, e.Gender, e.Condition, e.Symptoms, e.Triage,
		e.Vitals.BP, e.Vitals.HR, e.Vitals.SpO2, e.AssignedTo, e.Status, nullTime(e.ArrivedAt))
	return err
}

func nullTime(t interface{ IsZero() bool }) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Case, error) {
	return scanCase(r.pool.QueryRow(ctx, `SELECT `+caseCols+` FROM emergency_cases WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, e *Case) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE emergency_cases SET name=$2, age=$3, gender=$4, condition=$5, symptoms=$6, triage=$7,
			bp=$8, hr=$9, spo2=$10, assigned_to=$11, status=$12, updated_at=NOW()
		WHERE id = $1`,
		e.ID, e.Name, e.Age, e.Gender, e.Condition, e.Symptoms, e.Triage,
		e.Vitals.BP, e.Vitals.HR, e.Vitals.SpO2, e.AssignedTo, e.Status)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM emergency_cases WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Case, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var caseFilters = map[string]db.FilterConfig{
	"q":      {Kind: db.FilterAny, Columns: []string{"name", "condition"}},
	"triage": {Kind: db.FilterExact, Column: "triage"},
	"status": {Kind: db.FilterExact, Column: "status"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error) {
	qb := db.NewSearchQuery("emergency_cases", caseCols)
	qb.ApplyParams(params, caseFilters)
	qb.OrderBy(triageOrder)

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Case
	for rows.Next() {
		e, err := scanCase(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
