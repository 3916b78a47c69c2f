package backend

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

const pathPatients = "patients"

type PatientAPI struct {
	client *httpclient.Client
}

func NewPatientAPI(client *httpclient.Client) *PatientAPI {
	return &PatientAPI{client: client}
}

func (p *PatientAPI) ListAll(ctx context.Context) ([]domain.Patient, error) {
	return p.list(ctx, pathPatients)
}

// ListToday is the doctor's queue for the current day.
func (p *PatientAPI) ListToday(ctx context.Context) ([]domain.Patient, error) {
	return p.list(ctx, pathPatients, "today")
}

func (p *PatientAPI) list(ctx context.Context, segments ...string) ([]domain.Patient, error) {
	var out []domain.Patient
	if err := p.client.Get(ctx, &out, segments...); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PatientAPI) Get(ctx context.Context, id string) (*domain.Patient, error) {
	var out domain.Patient
	if err := p.client.Get(ctx, &out, pathPatients, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *PatientAPI) Register(ctx context.Context, in domain.PatientInput) (*domain.Patient, error) {
	var out domain.Patient
	if err := p.client.Post(ctx, in, &out, pathPatients); err != nil {
		return nil, err
	}
	return &out, nil
}

// IssuePrescription replaces the patient's prescription with items.
func (p *PatientAPI) IssuePrescription(ctx context.Context, id string, items []domain.PrescriptionItem) (*domain.Patient, error) {
	body := domain.Prescription{Items: items}
	var out domain.Patient
	if err := p.client.Put(ctx, body, &out, pathPatients, id, "prescription"); err != nil {
		return nil, err
	}
	return &out, nil
}
