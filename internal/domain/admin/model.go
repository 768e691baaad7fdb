// Package admin holds the hospital-wide settings record. Settings are a
// singleton: there is exactly one record, created with defaults on first
// read and replaced wholesale on update.
package admin

import (
	"fmt"
	"strings"
	"time"
)

// Settings is the hospital configuration the administration screens edit.
type Settings struct {
	HospitalName        string    `db:"hospital_name" json:"hospital_name"`
	Address             string    `db:"address" json:"address"`
	Phone               string    `db:"phone" json:"phone"`
	Email               string    `db:"email" json:"email"`
	Timezone            string    `db:"timezone" json:"timezone"`
	Currency            string    `db:"currency" json:"currency"`
	AppointmentDuration int       `db:"appointment_duration" json:"appointment_duration"`
	EmailNotifications  bool      `db:"email_notifications" json:"email_notifications"`
	SMSNotifications    bool      `db:"sms_notifications" json:"sms_notifications"`
	MaintenanceMode     bool      `db:"maintenance_mode" json:"maintenance_mode"`
	UpdatedAt           time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings is the record served before anything has been saved.
func DefaultSettings() *Settings {
	return &Settings{
		HospitalName:        "General Hospital",
		Timezone:            "UTC",
		Currency:            "USD",
		AppointmentDuration: 30,
		EmailNotifications:  true,
	}
}

func (s *Settings) validate() error {
	if strings.TrimSpace(s.HospitalName) == "" {
		return fmt.Errorf("hospital name is required")
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return fmt.Errorf("invalid email address %q", s.Email)
	}
	if s.AppointmentDuration <= 0 {
		return fmt.Errorf("appointment duration must be positive")
	}
	return nil
}
