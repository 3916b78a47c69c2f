package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// DoctorHandler serves the doctor roster views.
type DoctorHandler struct {
	doctors ports.DoctorAPI
}

func NewDoctorHandler(doctors ports.DoctorAPI) *DoctorHandler {
	return &DoctorHandler{doctors: doctors}
}

// List handles GET /admin/doctors.
//
// @Summary      List doctors
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Doctor
// @Failure      302
// @Failure      502  {object}  map[string]string
// @Router       /admin/doctors [get]
func (h *DoctorHandler) List(c echo.Context) error {
	doctors, err := h.doctors.List(c.Request().Context())
	if err != nil {
		return err
	}
	if doctors == nil {
		doctors = []domain.Doctor{}
	}
	return c.JSON(http.StatusOK, doctors)
}

// Create handles POST /admin/doctors.
//
// @Summary      Add a doctor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.DoctorInput  true  "Doctor details"
// @Success      201   {object}  domain.Doctor
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/doctors [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var in domain.DoctorInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	d, err := h.doctors.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, d)
}

// Update handles PUT /admin/doctors/:id.
//
// @Summary      Edit a doctor
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Doctor id"
// @Param        body  body      domain.DoctorInput  true  "Doctor details"
// @Success      200   {object}  domain.Doctor
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/doctors/{id} [put]
func (h *DoctorHandler) Update(c echo.Context) error {
	var in domain.DoctorInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	d, err := h.doctors.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /admin/doctors/:id.
//
// @Summary      Remove a doctor
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Doctor id"
// @Success      200  {object}  domain.Ack
// @Failure      404  {object}  map[string]string
// @Router       /admin/doctors/{id} [delete]
func (h *DoctorHandler) Delete(c echo.Context) error {
	ack, err := h.doctors.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack)
}
