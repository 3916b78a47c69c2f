package backend

import (
	"context"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/infrastructure/httpclient"
)

const pathMedicines = "medicines"

type MedicineAPI struct {
	client *httpclient.Client
}

func NewMedicineAPI(client *httpclient.Client) *MedicineAPI {
	return &MedicineAPI{client: client}
}

func (m *MedicineAPI) List(ctx context.Context) ([]domain.Medicine, error) {
	var out []domain.Medicine
	if err := m.client.Get(ctx, &out, pathMedicines); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MedicineAPI) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	var out domain.Medicine
	if err := m.client.Get(ctx, &out, pathMedicines, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MedicineAPI) Create(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error) {
	var out domain.Medicine
	if err := m.client.Post(ctx, in, &out, pathMedicines); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MedicineAPI) Update(ctx context.Context, id string, in domain.MedicineInput) (*domain.Medicine, error) {
	var out domain.Medicine
	if err := m.client.Put(ctx, in, &out, pathMedicines, id); err != nil {
		return nil, err
	}
	return &out, nil
}

func (m *MedicineAPI) Delete(ctx context.Context, id string) (*domain.Ack, error) {
	var out domain.Ack
	if err := m.client.Delete(ctx, &out, pathMedicines, id); err != nil {
		return nil, err
	}
	return &out, nil
}
