package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/api/middleware"
	"github.com/medisys/opd-console/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Context helpers
// ---------------------------------------------------------------------------

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.UserKey, u)
	return c
}

// ---------------------------------------------------------------------------
// Service stubs
// ---------------------------------------------------------------------------

type stubLoginService struct {
	loginFn   func(ctx context.Context, role, email, password string) (string, *domain.User, error)
	logoutFn  func(ctx context.Context) error
	landingFn func(ctx context.Context) string
}

func (s *stubLoginService) Login(ctx context.Context, role, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, role, email, password)
}

func (s *stubLoginService) Logout(ctx context.Context) error {
	return s.logoutFn(ctx)
}

func (s *stubLoginService) LandingPath(ctx context.Context) string {
	return s.landingFn(ctx)
}

type stubSessionStore struct {
	token  string
	lookup domain.UserLookup
}

func (s *stubSessionStore) GetToken(context.Context) (string, bool) { return s.token, s.token != "" }
func (s *stubSessionStore) GetUser(context.Context) domain.UserLookup {
	return s.lookup
}
func (s *stubSessionStore) ClearSession(context.Context) error { return nil }
func (s *stubSessionStore) SetToken(_ context.Context, t string) error {
	s.token = t
	return nil
}
func (s *stubSessionStore) SetUser(_ context.Context, u domain.User) error {
	s.lookup = domain.UserLookup{Status: domain.LookupFound, User: &u}
	return nil
}
func (s *stubSessionStore) Save(ctx context.Context, t string, u domain.User) error {
	_ = s.SetToken(ctx, t)
	return s.SetUser(ctx, u)
}

// ---------------------------------------------------------------------------
// Backend stubs
// ---------------------------------------------------------------------------

type stubDoctorAPI struct {
	listFn       func(ctx context.Context) ([]domain.Doctor, error)
	getFn        func(ctx context.Context, id string) (*domain.Doctor, error)
	createFn     func(ctx context.Context, in domain.DoctorInput) (*domain.Doctor, error)
	updateFn     func(ctx context.Context, id string, in domain.DoctorInput) (*domain.Doctor, error)
	deleteFn     func(ctx context.Context, id string) (*domain.Ack, error)
	byHospitalFn func(ctx context.Context, name string) ([]domain.Doctor, error)
}

func (s *stubDoctorAPI) List(ctx context.Context) ([]domain.Doctor, error) { return s.listFn(ctx) }
func (s *stubDoctorAPI) Get(ctx context.Context, id string) (*domain.Doctor, error) {
	return s.getFn(ctx, id)
}
func (s *stubDoctorAPI) Create(ctx context.Context, in domain.DoctorInput) (*domain.Doctor, error) {
	return s.createFn(ctx, in)
}
func (s *stubDoctorAPI) Update(ctx context.Context, id string, in domain.DoctorInput) (*domain.Doctor, error) {
	return s.updateFn(ctx, id, in)
}
func (s *stubDoctorAPI) Delete(ctx context.Context, id string) (*domain.Ack, error) {
	return s.deleteFn(ctx, id)
}
func (s *stubDoctorAPI) ListByHospital(ctx context.Context, name string) ([]domain.Doctor, error) {
	return s.byHospitalFn(ctx, name)
}

type stubMedicineAPI struct {
	listFn   func(ctx context.Context) ([]domain.Medicine, error)
	getFn    func(ctx context.Context, id string) (*domain.Medicine, error)
	createFn func(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error)
	updateFn func(ctx context.Context, id string, in domain.MedicineInput) (*domain.Medicine, error)
	deleteFn func(ctx context.Context, id string) (*domain.Ack, error)
}

func (s *stubMedicineAPI) List(ctx context.Context) ([]domain.Medicine, error) { return s.listFn(ctx) }
func (s *stubMedicineAPI) Get(ctx context.Context, id string) (*domain.Medicine, error) {
	return s.getFn(ctx, id)
}
func (s *stubMedicineAPI) Create(ctx context.Context, in domain.MedicineInput) (*domain.Medicine, error) {
	return s.createFn(ctx, in)
}
func (s *stubMedicineAPI) Update(ctx context.Context, id string, in domain.MedicineInput) (*domain.Medicine, error) {
	return s.updateFn(ctx, id, in)
}
func (s *stubMedicineAPI) Delete(ctx context.Context, id string) (*domain.Ack, error) {
	return s.deleteFn(ctx, id)
}

type stubPatientAPI struct {
	listAllFn   func(ctx context.Context) ([]domain.Patient, error)
	listTodayFn func(ctx context.Context) ([]domain.Patient, error)
	getFn       func(ctx context.Context, id string) (*domain.Patient, error)
	registerFn  func(ctx context.Context, in domain.PatientInput) (*domain.Patient, error)
	prescribeFn func(ctx context.Context, id string, items []domain.PrescriptionItem) (*domain.Patient, error)
}

func (s *stubPatientAPI) ListAll(ctx context.Context) ([]domain.Patient, error) {
	return s.listAllFn(ctx)
}
func (s *stubPatientAPI) ListToday(ctx context.Context) ([]domain.Patient, error) {
	return s.listTodayFn(ctx)
}
func (s *stubPatientAPI) Get(ctx context.Context, id string) (*domain.Patient, error) {
	return s.getFn(ctx, id)
}
func (s *stubPatientAPI) Register(ctx context.Context, in domain.PatientInput) (*domain.Patient, error) {
	return s.registerFn(ctx, in)
}
func (s *stubPatientAPI) IssuePrescription(ctx context.Context, id string, items []domain.PrescriptionItem) (*domain.Patient, error) {
	return s.prescribeFn(ctx, id, items)
}
