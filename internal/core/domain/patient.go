package domain

import (
	"strings"
	"time"
)

// Patient is an OPD registration.
type Patient struct {
	ID               string        `json:"_id"`
	Name             string        `json:"name"`
	Age              int           `json:"age"`
	Gender           string        `json:"gender"`
	Phone            string        `json:"phone,omitempty"`
	Address          string        `json:"address,omitempty"`
	HospitalName     string        `json:"hospitalName,omitempty"`
	Doctor           DoctorRef     `json:"doctor"`
	Complaint        string        `json:"complaint,omitempty"`
	RegistrationDate time.Time     `json:"registrationDate"`
	Prescription     *Prescription `json:"prescription,omitempty"`
}

// Prescribed reports whether the patient already has prescription items.
func (p *Patient) Prescribed() bool {
	return p.Prescription != nil && len(p.Prescription.Items) > 0
}

// PatientInput is the registration payload.
type PatientInput struct {
	Name         string `json:"name"         validate:"required"`
	Age          int    `json:"age"          validate:"gte=0"`
	Gender       string `json:"gender"       validate:"required,oneof=Male Female Other"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	HospitalName string `json:"hospitalName" validate:"required"`
	Doctor       string `json:"doctor"       validate:"required"`
	Complaint    string `json:"complaint"`
}

// Prescription is the ordered list of medicines issued to a patient.
type Prescription struct {
	Items []PrescriptionItem `json:"items"`
}

// PrescriptionItem is one line of a prescription.
type PrescriptionItem struct {
	Medicine MedicineRef `json:"medicine"`
	Dosage   string      `json:"dosage"`
	Duration string      `json:"duration"`
	Notes    string      `json:"notes"`
}

// Complete reports whether medicine, dosage and duration are all filled in.
func (i PrescriptionItem) Complete() bool {
	return i.Medicine.ID != "" && strings.TrimSpace(i.Dosage) != "" && strings.TrimSpace(i.Duration) != ""
}

// CompleteItems drops lines missing medicine, dosage or duration. It returns
// ErrEmptyPrescription when nothing is left.
func CompleteItems(items []PrescriptionItem) ([]PrescriptionItem, error) {
	out := make([]PrescriptionItem, 0, len(items))
	for _, it := range items {
		if it.Complete() {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		return nil, ErrEmptyPrescription
	}
	return out, nil
}

// Ack is the generic acknowledgement payload (e.g. after a delete).
type Ack struct {
	Message string `json:"message"`
}
