package ports

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
)

// AuthAPI exposes the two login endpoints.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)
	DoctorLogin(ctx context.Context, email, password string) (*domain.LoginResult, error)
}

// DoctorAPI manages the doctor roster.
type DoctorAPI interface {
	List(ctx context.Context) ([]domain.Doctor, error)
	Get(ctx context.Context, id string) (*domain.Doctor, error)
	Create(ctx context.Context, in domain.DoctorInput) (*domain.Doctor, error)
	Update(ctx context.Context, id string, in domain.DoctorInput) (*domain.Doctor, error)
	Delete(ctx context.Context, id string) (*domain.Ack, error)
	ListByHospital(ctx context.Context, hospitalName string) ([]domain.Doctor, error)
}

// MedicineAPI manages the medicine catalog.
type MedicineAPI interface {
	List(ctx context.Context) ([]domain.Medicine, error)
	Get(ctx context.Context, id string) (*domain.Medicine, error)
	Create(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error)
	Update(ctx context.Context, id string, in domain.MedicineInput) (*domain.Medicine, error)
	Delete(ctx context.Context, id string) (*domain.Ack, error)
}

// PatientAPI covers intake, queues and prescriptions.
type PatientAPI interface {
	ListAll(ctx context.Context) ([]domain.Patient, error)
	ListToday(ctx context.Context) ([]domain.Patient, error)
	Get(ctx context.Context, id string) (*domain.Patient, error)
	Register(ctx context.Context, in domain.PatientInput) (*domain.Patient, error)
	IssuePrescription(ctx context.Context, id string, items []domain.PrescriptionItem) (*domain.Patient, error)
}
