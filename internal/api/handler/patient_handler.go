package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

const notAvailable = "N/A"

// PatientHandler serves patient intake and the full patient list.
type PatientHandler struct {
	patients ports.PatientAPI
	doctors  ports.DoctorAPI
}

func NewPatientHandler(patients ports.PatientAPI, doctors ports.DoctorAPI) *PatientHandler {
	return &PatientHandler{patients: patients, doctors: doctors}
}

type registrationView struct {
	Hospitals []string        `json:"hospitals"`
	Hospital  string          `json:"hospital,omitempty"`
	Doctors   []domain.Doctor `json:"doctors"`
	Genders   []string        `json:"genders"`
}

type patientRow struct {
	domain.Patient
	DoctorName   string `json:"doctorName"`
	HospitalName string `json:"hospitalName"`
	Prescribed   bool   `json:"prescribed"`
	ItemCount    int    `json:"itemCount"`
}

// RegistrationForm handles GET /admin/patients. The hospital list is built
// from the roster; with ?hospital= the doctor list is narrowed to that
// hospital.
//
// @Summary      Patient registration form
// @Tags         admin
// @Produce      json
// @Param        hospital  query     string  false  "Hospital name"
// @Success      200       {object}  registrationView
// @Failure      302
// @Failure      502       {object}  map[string]string
// @Router       /admin/patients [get]
func (h *PatientHandler) RegistrationForm(c echo.Context) error {
	hospital := strings.TrimSpace(c.QueryParam("hospital"))

	var all, filtered []domain.Doctor
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		all, err = h.doctors.List(ctx)
		return err
	})
	if hospital != "" {
		g.Go(func() (err error) {
			filtered, err = h.doctors.ListByHospital(ctx, hospital)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	view := registrationView{
		Hospitals: hospitalsOf(all),
		Hospital:  hospital,
		Doctors:   filtered,
		Genders:   []string{"Male", "Female", "Other"},
	}
	if view.Doctors == nil {
		view.Doctors = []domain.Doctor{}
	}
	return c.JSON(http.StatusOK, view)
}

// Register handles POST /admin/patients.
//
// @Summary      Register a patient
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.PatientInput  true  "Patient details"
// @Success      201   {object}  domain.Patient
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/patients [post]
func (h *PatientHandler) Register(c echo.Context) error {
	var in domain.PatientInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	p, err := h.patients.Register(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// All handles GET /admin/all-patients.
//
// @Summary      All patients
// @Tags         admin
// @Produce      json
// @Success      200  {array}   patientRow
// @Failure      302
// @Failure      502  {object}  map[string]string
// @Router       /admin/all-patients [get]
func (h *PatientHandler) All(c echo.Context) error {
	patients, err := h.patients.ListAll(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]patientRow, 0, len(patients))
	for _, p := range patients {
		row := patientRow{
			Patient:      p,
			DoctorName:   notAvailable,
			HospitalName: notAvailable,
			Prescribed:   p.Prescribed(),
		}
		if d := p.Doctor.Doctor; d != nil {
			if d.Name != "" {
				row.DoctorName = d.Name
			}
			if d.HospitalName != "" {
				row.HospitalName = d.HospitalName
			}
		}
		if p.Prescription != nil {
			row.ItemCount = len(p.Prescription.Items)
		}
		rows = append(rows, row)
	}
	return c.JSON(http.StatusOK, rows)
}

func hospitalsOf(doctors []domain.Doctor) []string {
	seen := make(map[string]struct{}, len(doctors))
	out := make([]string, 0, len(doctors))
	for _, d := range doctors {
		if d.HospitalName == "" {
			continue
		}
		if _, ok := seen[d.HospitalName]; ok {
			continue
		}
		seen[d.HospitalName] = struct{}{}
		out = append(out, d.HospitalName)
	}
	sort.Strings(out)
	return out
}
