package domain

import (
	"bytes"
	"encoding/json"
)

// MedicineType is the dosage form of a medicine.
type MedicineType string

const (
	MedicineTablet    MedicineType = "Tablet"
	MedicineSyrup     MedicineType = "Syrup"
	MedicineInjection MedicineType = "Injection"
)

// Medicine is a catalog entry.
type Medicine struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	GenericName string       `json:"genericName"`
	Strength    string       `json:"strength"`
	Type        MedicineType `json:"type"`
	Company     string       `json:"company"`
}

// MedicineInput is the create/update payload for a medicine.
type MedicineInput struct {
	Name        string       `json:"name"        validate:"required"`
	GenericName string       `json:"genericName" validate:"required"`
	Strength    string       `json:"strength"    validate:"required"`
	Type        MedicineType `json:"type"        validate:"required,oneof=Tablet Syrup Injection"`
	Company     string       `json:"company"     validate:"required"`
}

// MedicineRef is a prescription line's medicine: an id or a populated document.
type MedicineRef struct {
	ID       string
	Medicine *Medicine
}

func (r MedicineRef) MarshalJSON() ([]byte, error) {
	if r.Medicine != nil {
		return json.Marshal(r.Medicine)
	}
	return json.Marshal(r.ID)
}

func (r *MedicineRef) UnmarshalJSON(data []byte) error {
	*r = MedicineRef{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var m Medicine
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	r.ID = m.ID
	r.Medicine = &m
	return nil
}
