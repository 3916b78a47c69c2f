package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

const doctorDashboardPath = "/doctor/dashboard"

// PrescriptionHandler serves the prescription form for one patient.
type PrescriptionHandler struct {
	patients  ports.PatientAPI
	medicines ports.MedicineAPI
}

func NewPrescriptionHandler(patients ports.PatientAPI, medicines ports.MedicineAPI) *PrescriptionHandler {
	return &PrescriptionHandler{patients: patients, medicines: medicines}
}

type prescriptionItemRequest struct {
	Medicine string `json:"medicine"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
	Notes    string `json:"notes"`
}

type prescriptionRequest struct {
	Items []prescriptionItemRequest `json:"items"`
}

type prescriptionView struct {
	Patient   *domain.Patient           `json:"patient"`
	Medicines []domain.Medicine         `json:"medicines"`
	Items     []domain.PrescriptionItem `json:"items"`
}

type prescriptionSaved struct {
	Message  string          `json:"message"`
	Redirect string          `json:"redirect"`
	Patient  *domain.Patient `json:"patient"`
}

// Form handles GET /doctor/prescription/:id. Existing items are pre-filled;
// a fresh form starts with one empty line.
//
// @Summary      Prescription form
// @Tags         doctor
// @Produce      json
// @Param        id   path      string  true  "Patient id"
// @Success      200  {object}  prescriptionView
// @Failure      302
// @Failure      404  {object}  map[string]string
// @Router       /doctor/prescription/{id} [get]
func (h *PrescriptionHandler) Form(c echo.Context) error {
	id := c.Param("id")
	var (
		patient   *domain.Patient
		medicines []domain.Medicine
	)
	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		patient, err = h.patients.Get(ctx, id)
		return err
	})
	g.Go(func() (err error) {
		medicines, err = h.medicines.List(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	items := []domain.PrescriptionItem{{}}
	if patient.Prescribed() {
		items = patient.Prescription.Items
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	return c.JSON(http.StatusOK, prescriptionView{Patient: patient, Medicines: medicines, Items: items})
}

// Submit handles POST /doctor/prescription/:id. Lines missing medicine,
// dosage or duration are dropped; at least one must remain.
//
// @Summary      Issue a prescription
// @Tags         doctor
// @Accept       json
// @Produce      json
// @Param        id    path      string               true  "Patient id"
// @Param        body  body      prescriptionRequest  true  "Prescription lines"
// @Success      200   {object}  prescriptionSaved
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /doctor/prescription/{id} [post]
func (h *PrescriptionHandler) Submit(c echo.Context) error {
	var req prescriptionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	lines := make([]domain.PrescriptionItem, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, domain.PrescriptionItem{
			Medicine: domain.MedicineRef{ID: it.Medicine},
			Dosage:   it.Dosage,
			Duration: it.Duration,
			Notes:    it.Notes,
		})
	}
	items, err := domain.CompleteItems(lines)
	if err != nil {
		return err
	}

	p, err := h.patients.IssuePrescription(c.Request().Context(), c.Param("id"), items)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, prescriptionSaved{
		Message:  "Prescription saved successfully",
		Redirect: doctorDashboardPath,
		Patient:  p,
	})
}
