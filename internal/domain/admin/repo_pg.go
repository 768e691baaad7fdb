package admin

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgRepo struct{ pool *pgxpool.Pool }

func NewPGRepo(pool *pgxpool.Pool) Repository {
	return &pgRepo{pool: pool}
}

const settingsCols = `hospital_name, address, phone, email, timezone, currency,
	appointment_duration, email_notifications, sms_notifications, maintenance_mode, updated_at`

func (r *pgRepo) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.pool.QueryRow(ctx, `SELECT `+settingsCols+` FROM hospital_settings WHERE id = 1`).Scan(
		&s.HospitalName, &s.Address, &s.Phone, &s.Email, &s.Timezone, &s.Currency,
		&s.AppointmentDuration, &s.EmailNotifications, &s.SMSNotifications,
		&s.MaintenanceMode, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *pgRepo) Save(ctx context.Context, s *Settings) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO hospital_settings (id, hospital_name, address, phone, email, timezone, currency,
			appointment_duration, email_notifications, sms_notifications, maintenance_mode)
		VALUES (1,$1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			hospital_name=EXCLUDED.hospital_name, address=EXCLUDED.address,
			phone=EXCLUDED.phone, email=EXCLUDED.email, timezone=EXCLUDED.timezone,
			currency=EXCLUDED.currency, appointment_duration=EXCLUDED.appointment_duration,
			email_notifications=EXCLUDED.email_notifications,
			sms_notifications=EXCLUDED.sms_notifications,
			maintenance_mode=EXCLUDED.maintenance_mode, updated_at=NOW()`,
		s.HospitalName, s.Address, s.Phone, s.Email, s.Timezone, s.Currency,
		s.AppointmentDuration, s.EmailNotifications, s.SMSNotifications, s.MaintenanceMode)
	return err
}
