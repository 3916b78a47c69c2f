package domain

import (
	"bytes"
	"encoding/json"
)

// Doctor is a roster entry as returned by the backend.
type Doctor struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
	HospitalName   string `json:"hospitalName"`
	Role           string `json:"role"`
}

// DoctorInput is the create/update payload for a doctor.
type DoctorInput struct {
	Name           string `json:"name"                validate:"required"`
	Email          string `json:"email"               validate:"required,email"`
	Specialization string `json:"specialization"      validate:"required"`
	Phone          string `json:"phone"`
	HospitalName   string `json:"hospitalName"        validate:"required"`
	Password       string `json:"password,omitempty"`
	Role           string `json:"role,omitempty"`
}

// DoctorRef is a patient's doctor: either a bare id or a populated document.
type DoctorRef struct {
	ID     string
	Doctor *Doctor
}

func (r DoctorRef) MarshalJSON() ([]byte, error) {
	if r.Doctor != nil {
		return json.Marshal(r.Doctor)
	}
	return json.Marshal(r.ID)
}

func (r *DoctorRef) UnmarshalJSON(data []byte) error {
	*r = DoctorRef{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &r.ID)
	}
	var d Doctor
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	r.ID = d.ID
	r.Doctor = &d
	return nil
}

// Name returns the populated doctor's name, if any.
func (r DoctorRef) Name() string {
	if r.Doctor == nil {
		return ""
	}
	return r.Doctor.Name
}
