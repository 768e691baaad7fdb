package laboratory

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

const testCols = `id, patient_name, test_type, category, requested_by, request_date, priority,
	sample_collected, status, result, completed_at, created_at, updated_at`

// priorityOrder ranks rows for worklist ordering in SQL, mirroring the
// in-memory repository.
const priorityOrder = `CASE priority
	WHEN 'stat' THEN 0 WHEN 'urgent' THEN 1 WHEN 'routine' THEN 2
	ELSE 3 END, request_date ASC`

func scanTest(row pgx.Row) (*Test, error) {
	var t Test
	err := row.Scan(&t.ID, &t.PatientName, &t.TestType, &t.Category, &t.RequestedBy, &t.RequestDate,
		&t.Priority, &t.SampleCollected, &t.Status, &t.Result, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt)
	return &t, err
}

func (r *pgRepo) Create(ctx context.Context, t *Test) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_tests (id, patient_name, test_type, category, requested_by, request_date,
			priority, sample_collected, status, result)
		VALUES ($1,$2,$3,$4,$5,COALESCE($6, NOW()),$7,$8,$9,$10)`,
		t.ID, t.PatientName, t.TestType, t.Category, t.RequestedBy, nullTime(t.RequestDate),
		t.Priority, t.SampleCollected, t.Status, t.Result)
	return err
}

func nullTime(t interface{ IsZero() bool }) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

func (r *pgRepo) GetByID(ctx context.Context, id uuid.UUID) (*Test, error) {
	return scanTest(r.pool.QueryRow(ctx, `SELECT `+testCols+` FROM lab_tests WHERE id = $1`, id))
}

func (r *pgRepo) Update(ctx context.Context, t *Test) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE lab_tests SET patient_name=$2, test_type=$3, category=$4, requested_by=$5,
			priority=$6, sample_collected=$7, status=$8, result=$9, completed_at=$10, updated_at=NOW()
		WHERE id = $1`,
		t.ID, t.PatientName, t.TestType, t.Category, t.RequestedBy,
		t.Priority, t.SampleCollected, t.Status, t.Result, t.CompletedAt)
	return err
}

func (r *pgRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lab_tests WHERE id = $1`, id)
	return err
}

func (r *pgRepo) List(ctx context.Context, limit, offset int) ([]*Test, int, error) {
	return r.Search(ctx, nil, limit, offset)
}

var testFilters = map[string]db.FilterConfig{
	"q":        {Kind: db.FilterAny, Columns: []string{"patient_name", "test_type"}},
	"status":   {Kind: db.FilterExact, Column: "status"},
	"category": {Kind: db.FilterExact, Column: "category"},
	"priority": {Kind: db.FilterExact, Column: "priority"},
}

func (r *pgRepo) Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Test, int, error) {
	qb := db.NewSearchQuery("lab_tests", testCols)
	qb.ApplyParams(params, testFilters)
	qb.OrderBy(priorityOrder)

	var total int
	if err := r.pool.QueryRow(ctx, qb.CountSQL(), qb.CountArgs()...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, qb.DataSQL(limit, offset), qb.DataArgs(limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Test
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
