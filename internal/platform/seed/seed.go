// Package seed loads the demo dataset into the repositories. The memory
// storage mode starts from this dataset on every boot, so the API serves
// realistic data out of the box and nothing survives a restart.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/department"
	"github.com/hms/hms/internal/domain/emergency"
	"github.com/hms/hms/internal/domain/laboratory"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/pharmacy"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/domain/staff"
)

// Stores collects the repositories the demo dataset populates.
type Stores struct {
	Patients     patient.Repository
	Doctors      staff.Repository
	Departments  department.Repository
	Appointments scheduling.Repository
	Emergency    emergency.Repository
	Medicines    pharmacy.Repository
	LabTests     laboratory.Repository
	Invoices     billing.Repository
}

// Summary reports how many records each dataset received.
type Summary struct {
	Patients     int `json:"patients"`
	Doctors      int `json:"doctors"`
	Departments  int `json:"departments"`
	Appointments int `json:"appointments"`
	Emergency    int `json:"emergency_cases"`
	Medicines    int `json:"medicines"`
	LabTests     int `json:"lab_tests"`
	Invoices     int `json:"invoices"`
}

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func money(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// Demo writes the demo dataset through the given stores.
func Demo(ctx context.Context, s Stores) (*Summary, error) {
	sum := &Summary{}

	lastVisit := date("2026-08-20")
	patients := []*patient.Patient{
		{Name: "Sarah Johnson", Age: 34, Gender: "Female", Phone: "555-0134", Email: "sarah.johnson@example.com", BloodType: "A+", Department: "Cardiology", Status: patient.StatusStable, LastVisit: &lastVisit},
		{Name: "Mike Peterson", Age: 51, Gender: "Male", Phone: "555-0188", Email: "mike.peterson@example.com", BloodType: "O-", Department: "Neurology", Status: patient.StatusInTreatment},
		{Name: "Elena Vasquez", Age: 27, Gender: "Female", Phone: "555-0121", BloodType: "B+", Department: "Orthopedics", Status: patient.StatusStable},
		{Name: "Robert Chen", Age: 68, Gender: "Male", Phone: "555-0177", BloodType: "AB+", Department: "Cardiology", Status: patient.StatusCritical},
		{Name: "Amara Okafor", Age: 42, Gender: "Female", Phone: "555-0156", BloodType: "O+", Department: "General Medicine", Status: patient.StatusDischarged},
	}
	for _, p := range patients {
		if err := s.Patients.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("seed patients: %w", err)
		}
		sum.Patients++
	}

	doctors := []*staff.Doctor{
		{Name: "Dr. Lisa Adams", Specialization: "Cardiology", Department: "Cardiology", Experience: 15, Education: "MD, Johns Hopkins", Rating: 4.8, PatientCount: 120, Availability: staff.AvailabilityAvailable, Phone: "555-0201", Email: "l.adams@example.com"},
		{Name: "Dr. James Okoye", Specialization: "Neurology", Department: "Neurology", Experience: 11, Education: "MD, Stanford", Rating: 4.6, PatientCount: 95, Availability: staff.AvailabilityInSurgery, Phone: "555-0202"},
		{Name: "Dr. Maria Santos", Specialization: "Orthopedic Surgery", Department: "Orthopedics", Experience: 9, Education: "MD, UCLA", Rating: 4.7, PatientCount: 80, Availability: staff.AvailabilityConsultation, Phone: "555-0203"},
		{Name: "Dr. Paul Bennett", Specialization: "Internal Medicine", Department: "General Medicine", Experience: 22, Education: "MD, Harvard", Rating: 4.9, PatientCount: 150, Availability: staff.AvailabilityOnLeave, Phone: "555-0204"},
	}
	for _, d := range doctors {
		if err := s.Doctors.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seed doctors: %w", err)
		}
		sum.Doctors++
	}

	departments := []*department.Department{
		{Name: "Cardiology", Head: "Dr. Lisa Adams", Floor: "3F", Phone: "555-0301", TotalBeds: 40, OccupiedBeds: 32, StaffCount: 25},
		{Name: "Neurology", Head: "Dr. James Okoye", Floor: "4F", Phone: "555-0302", TotalBeds: 30, OccupiedBeds: 18, StaffCount: 19},
		{Name: "Orthopedics", Head: "Dr. Maria Santos", Floor: "2F", Phone: "555-0303", TotalBeds: 25, OccupiedBeds: 25, StaffCount: 16},
		{Name: "General Medicine", Head: "Dr. Paul Bennett", Floor: "1F", Phone: "555-0304", TotalBeds: 60, OccupiedBeds: 41, StaffCount: 34},
	}
	for _, d := range departments {
		if err := s.Departments.Create(ctx, d); err != nil {
			return nil, fmt.Errorf("seed departments: %w", err)
		}
		sum.Departments++
	}

	appointments := []*scheduling.Appointment{
		{PatientName: "Sarah Johnson", Doctor: "Dr. Lisa Adams", Type: scheduling.TypeConsultation, Date: "2026-09-02", Time: "09:30", Duration: 30, Status: scheduling.StatusConfirmed},
		{PatientName: "Mike Peterson", Doctor: "Dr. James Okoye", Type: scheduling.TypeFollowUp, Date: "2026-09-02", Time: "11:00", Duration: 20, IsOnline: true, Status: scheduling.StatusPending},
		{PatientName: "Elena Vasquez", Doctor: "Dr. Maria Santos", Type: scheduling.TypeCheckup, Date: "2026-09-03", Time: "14:15", Duration: 45, Status: scheduling.StatusPending},
		{PatientName: "Robert Chen", Doctor: "Dr. Lisa Adams", Type: scheduling.TypeEmergency, Date: "2026-09-01", Time: "16:00", Duration: 60, Status: scheduling.StatusConfirmed, Notes: "Post-op review"},
	}
	for _, a := range appointments {
		if err := s.Appointments.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("seed appointments: %w", err)
		}
		sum.Appointments++
	}

	cases := []*emergency.Case{
		{Name: "David Kim", Age: 45, Gender: "Male", Condition: "Chest pain", Symptoms: []string{"chest pain", "shortness of breath"}, Triage: emergency.TriageRed, Vitals: emergency.Vitals{BP: "150/95", HR: 110, SpO2: 92}, Status: emergency.StatusInTreatment, AssignedTo: "Dr. Lisa Adams"},
		{Name: "Anna Kowalski", Age: 29, Gender: "Female", Condition: "Fractured wrist", Symptoms: []string{"wrist pain", "swelling"}, Triage: emergency.TriageYellow, Vitals: emergency.Vitals{BP: "120/80", HR: 82, SpO2: 99}, Status: emergency.StatusWaiting},
		{Name: "Tom Reilly", Age: 61, Gender: "Male", Condition: "Severe dehydration", Symptoms: []string{"dizziness", "fatigue"}, Triage: emergency.TriageOrange, Vitals: emergency.Vitals{BP: "100/65", HR: 98, SpO2: 95}, Status: emergency.StatusWaiting},
		{Name: "Lucy Tran", Age: 8, Gender: "Female", Condition: "Minor laceration", Symptoms: []string{"cut on forearm"}, Triage: emergency.TriageGreen, Vitals: emergency.Vitals{BP: "105/70", HR: 90, SpO2: 100}, Status: emergency.StatusStabilized},
	}
	for _, c := range cases {
		c.ArrivedAt = time.Now().Add(-time.Duration(30+sum.Emergency*20) * time.Minute)
		if err := s.Emergency.Create(ctx, c); err != nil {
			return nil, fmt.Errorf("seed emergency cases: %w", err)
		}
		sum.Emergency++
	}

	medicines := []*pharmacy.Medicine{
		{Name: "Amoxicillin 500mg", GenericName: "Amoxicillin", Category: "Antibiotics", Manufacturer: "PharmaCorp", BatchNumber: "AMX-2406", ExpiryDate: date("2027-06-30"), Quantity: 480, ReorderLevel: 100, UnitPrice: money("2.50")},
		{Name: "Lisinopril 10mg", GenericName: "Lisinopril", Category: "Cardiovascular", Manufacturer: "MediLabs", BatchNumber: "LIS-2501", ExpiryDate: date("2027-01-31"), Quantity: 60, ReorderLevel: 80, UnitPrice: money("1.20")},
		{Name: "Ibuprofen 200mg", GenericName: "Ibuprofen", Category: "Analgesics", Manufacturer: "PharmaCorp", BatchNumber: "IBU-2409", ExpiryDate: date("2028-03-31"), Quantity: 0, ReorderLevel: 150, UnitPrice: money("0.35")},
		{Name: "Metformin 850mg", GenericName: "Metformin", Category: "Antidiabetics", Manufacturer: "HealthGen", BatchNumber: "MET-2311", ExpiryDate: date("2026-02-28"), Quantity: 200, ReorderLevel: 50, UnitPrice: money("0.90")},
	}
	for _, m := range medicines {
		if err := s.Medicines.Create(ctx, m); err != nil {
			return nil, fmt.Errorf("seed medicines: %w", err)
		}
		sum.Medicines++
	}

	tests := []*laboratory.Test{
		{PatientName: "Sarah Johnson", TestType: "Complete Blood Count", Category: "Hematology", RequestedBy: "Dr. Lisa Adams", RequestDate: date("2026-08-30"), Priority: laboratory.PriorityRoutine, Status: laboratory.StatusPending},
		{PatientName: "Robert Chen", TestType: "Lipid Panel", Category: "Biochemistry", RequestedBy: "Dr. Lisa Adams", RequestDate: date("2026-08-29"), Priority: laboratory.PriorityStat, SampleCollected: true, Status: laboratory.StatusProcessing},
		{PatientName: "Mike Peterson", TestType: "MRI Brain", Category: "Radiology", RequestedBy: "Dr. James Okoye", RequestDate: date("2026-08-28"), Priority: laboratory.PriorityUrgent, SampleCollected: true, Status: laboratory.StatusSampleCollected},
	}
	completed := date("2026-08-27")
	done := &laboratory.Test{PatientName: "Amara Okafor", TestType: "Urinalysis", Category: "Microbiology", RequestedBy: "Dr. Paul Bennett", RequestDate: date("2026-08-26"), Priority: laboratory.PriorityRoutine, SampleCollected: true, Status: laboratory.StatusCompleted, Result: "Within normal limits", CompletedAt: &completed}
	tests = append(tests, done)
	for _, t := range tests {
		if err := s.LabTests.Create(ctx, t); err != nil {
			return nil, fmt.Errorf("seed lab tests: %w", err)
		}
		sum.LabTests++
	}

	taxRate := decimal.NewFromFloat(0.10)
	invoices := []*billing.Invoice{
		{PatientName: "Sarah Johnson", Date: date("2026-08-21"), DueDate: date("2026-09-20"), TaxRate: taxRate, Items: []billing.LineItem{
			{Description: "Cardiology consultation", Quantity: 1, UnitPrice: money("150.00")},
			{Description: "ECG", Quantity: 1, UnitPrice: money("85.00")},
		}, Paid: money("258.50"), PaymentMethod: "card"},
		{PatientName: "Mike Peterson", Date: date("2026-08-25"), DueDate: date("2026-09-24"), TaxRate: taxRate, Items: []billing.LineItem{
			{Description: "Neurology consultation", Quantity: 1, UnitPrice: money("180.00")},
			{Description: "MRI Brain", Quantity: 1, UnitPrice: money("650.00")},
		}, Paid: money("300.00"), PaymentMethod: "cash"},
		{PatientName: "Elena Vasquez", Date: date("2026-08-28"), DueDate: date("2026-09-27"), TaxRate: taxRate, Items: []billing.LineItem{
			{Description: "Orthopedic check-up", Quantity: 1, UnitPrice: money("120.00")},
		}},
	}
	for _, inv := range invoices {
		if err := s.Invoices.Create(ctx, inv); err != nil {
			return nil, fmt.Errorf("seed invoices: %w", err)
		}
		sum.Invoices++
	}

	return sum, nil
}
