package handler

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

const recentPatients = 5

type DashboardHandler struct {
	doctors   ports.DoctorAPI
	medicines ports.MedicineAPI
	patients  ports.PatientAPI
}

func NewDashboardHandler(doctors ports.DoctorAPI, medicines ports.MedicineAPI, patients ports.PatientAPI) *DashboardHandler {
	return &DashboardHandler{doctors: doctors, medicines: medicines, patients: patients}
}

type dashboardStats struct {
	Doctors   int `json:"doctors"`
	Medicines int `json:"medicines"`
	Patients  int `json:"patients"`
}

type adminDashboardView struct {
	Stats          dashboardStats   `json:"stats"`
	RecentPatients []domain.Patient `json:"recentPatients"`
}

type queueEntry struct {
	domain.Patient
	Prescribed bool `json:"prescribed"`
}

type doctorDashboardView struct {
	Doctor string       `json:"doctor"`
	Queue  []queueEntry `json:"queue"`
}

// Admin returns the system counts. The three lists are fetched concurrently
// and the first failure wins.
//
// @Summary      Admin dashboard
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminDashboardView
// @Failure      302
// @Failure      502  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	var (
		doctors   []domain.Doctor
		medicines []domain.Medicine
		patients  []domain.Patient
	)

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() (err error) {
		doctors, err = h.doctors.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		medicines, err = h.medicines.List(ctx)
		return err
	})
	g.Go(func() (err error) {
		patients, err = h.patients.ListAll(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	recent := make([]domain.Patient, len(patients))
	copy(recent, patients)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].RegistrationDate.After(recent[j].RegistrationDate)
	})
	if len(recent) > recentPatients {
		recent = recent[:recentPatients]
	}

	return c.JSON(http.StatusOK, adminDashboardView{
		Stats: dashboardStats{
			Doctors:   len(doctors),
			Medicines: len(medicines),
			Patients:  len(patients),
		},
		RecentPatients: recent,
	})
}

// Doctor returns today's queue with a prescribed flag per patient.
//
// @Summary      Doctor dashboard
// @Tags         doctor
// @Produce      json
// @Success      200  {object}  doctorDashboardView
// @Failure      302
// @Failure      502  {object}  map[string]string
// @Router       /doctor/dashboard [get]
func (h *DashboardHandler) Doctor(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	patients, err := h.patients.ListToday(c.Request().Context())
	if err != nil {
		return err
	}

	queue := make([]queueEntry, 0, len(patients))
	for _, p := range patients {
		queue = append(queue, queueEntry{Patient: p, Prescribed: p.Prescribed()})
	}
	return c.JSON(http.StatusOK, doctorDashboardView{Doctor: user.Name, Queue: queue})
}
