package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/medisys/opd-console/internal/core/domain"
)

func TestPrescriptionHandler_Form_NewPatientGetsOneEmptyLine(t *testing.T) {
	h := NewPrescriptionHandler(
		&stubPatientAPI{getFn: func(_ context.Context, id string) (*domain.Patient, error) {
			return &domain.Patient{ID: id, Name: "Asha"}, nil
		}},
		&stubMedicineAPI{listFn: func(context.Context) ([]domain.Medicine, error) {
			return []domain.Medicine{{ID: "m1"}}, nil
		}},
	)

	c, rec := newContext(http.MethodGet, "/doctor/prescription/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Form(c); err != nil {
		t.Fatalf("Form: %v", err)
	}

	var view struct {
		Patient   domain.Patient            `json:"patient"`
		Medicines []domain.Medicine         `json:"medicines"`
		Items     []domain.PrescriptionItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.Patient.ID != "p1" || len(view.Medicines) != 1 || len(view.Items) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestPrescriptionHandler_Form_PrefillsExistingItems(t *testing.T) {
	existing := []domain.PrescriptionItem{
		{Medicine: domain.MedicineRef{ID: "m1"}, Dosage: "1-0-1", Duration: "5 days"},
		{Medicine: domain.MedicineRef{ID: "m2"}, Dosage: "0-0-1", Duration: "3 days"},
	}
	h := NewPrescriptionHandler(
		&stubPatientAPI{getFn: func(_ context.Context, id string) (*domain.Patient, error) {
			return &domain.Patient{ID: id, Prescription: &domain.Prescription{Items: existing}}, nil
		}},
		&stubMedicineAPI{listFn: func(context.Context) ([]domain.Medicine, error) { return nil, nil }},
	)

	c, rec := newContext(http.MethodGet, "/doctor/prescription/p1", "")
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Form(c); err != nil {
		t.Fatalf("Form: %v", err)
	}

	var view struct {
		Items []domain.PrescriptionItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(view.Items) != 2 || view.Items[1].Medicine.ID != "m2" {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
}

func TestPrescriptionHandler_Submit_DropsIncompleteLines(t *testing.T) {
	var sent []domain.PrescriptionItem
	h := NewPrescriptionHandler(&stubPatientAPI{
		prescribeFn: func(_ context.Context, id string, items []domain.PrescriptionItem) (*domain.Patient, error) {
			if id != "p1" {
				t.Fatalf("unexpected id %q", id)
			}
			sent = items
			return &domain.Patient{ID: id, Prescription: &domain.Prescription{Items: items}}, nil
		},
	}, nil)

	body := `{"items":[
		{"medicine":"m1","dosage":"1-0-1","duration":"5 days","notes":"after food"},
		{"medicine":"","dosage":"1-0-0","duration":"2 days"},
		{"medicine":"m2","dosage":"  ","duration":"2 days"},
		{"medicine":"m3","dosage":"0-0-1","duration":""}
	]}`
	c, rec := newContext(http.MethodPost, "/doctor/prescription/p1", body)
	c.SetParamNames("id")
	c.SetParamValues("p1")
	if err := h.Submit(c); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if len(sent) != 1 || sent[0].Medicine.ID != "m1" || sent[0].Notes != "after food" {
		t.Fatalf("expected only the complete line, got %+v", sent)
	}

	var resp struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Redirect != "/doctor/dashboard" {
		t.Fatalf("unexpected redirect %q", resp.Redirect)
	}
}

func TestPrescriptionHandler_Submit_RejectsEmpty(t *testing.T) {
	h := NewPrescriptionHandler(&stubPatientAPI{
		prescribeFn: func(context.Context, string, []domain.PrescriptionItem) (*domain.Patient, error) {
			t.Fatalf("backend must not be called")
			return nil, nil
		},
	}, nil)

	for _, body := range []string{`{"items":[]}`, `{"items":[{"medicine":"m1"}]}`} {
		c, _ := newContext(http.MethodPost, "/doctor/prescription/p1", body)
		c.SetParamNames("id")
		c.SetParamValues("p1")
		if err := h.Submit(c); !errors.Is(err, domain.ErrEmptyPrescription) {
			t.Fatalf("%s: expected ErrEmptyPrescription, got %v", body, err)
		}
	}
}
