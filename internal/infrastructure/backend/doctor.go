package backend

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

const pathDoctors = "doctors"

type DoctorAPI struct {
	client *httpclient.Client
}

func NewDoctorAPI(client *httpclient.Client) *DoctorAPI {
	return &DoctorAPI{client: client}
}

func (d *DoctorAPI) List(ctx context.Context) ([]domain.Doctor, error) {
	var out []domain.Doctor
	if err := d.client.Get(ctx, &out, pathDoctors); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *DoctorAPI) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	var out domain.Doctor
	if err := d.client.Get(ctx, &out, pathDoctors, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DoctorAPI) Create(ctx context.Context, in domain.DoctorInput) (*domain.Doctor, error) {
	var out domain.Doctor
	if err := d.client.Post(ctx, in, &out, pathDoctors); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DoctorAPI) Update(ctx context.Context, id string, in domain.DoctorInput) (*domain.Doctor, error) {
	var out domain.Doctor
	if err := d.client.Put(ctx, in, &out, pathDoctors, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (d *DoctorAPI) Delete(ctx context.Context, id string) (*domain.Ack, error) {
	var out domain.Ack
	if err := d.client.Delete(ctx, &out, pathDoctors, id); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByHospital returns the doctors attached to one hospital. The name is
// sent as a single escaped path segment.
func (d *DoctorAPI) ListByHospital(ctx context.Context, hospitalName string) ([]domain.Doctor, error) {
	var out []domain.Doctor
	if err := d.client.Get(ctx, &out, pathDoctors, "hospital", hospitalName); err != nil {
		return nil, err
	}
	return out, nil
}
