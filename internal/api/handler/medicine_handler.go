package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medisys/opd-console/internal/core/domain"
	"github.com/medisys/opd-console/internal/core/ports"
)

// MedicineHandler serves the medicine catalog views.
type MedicineHandler struct {
	medicines ports.MedicineAPI
}

func NewMedicineHandler(medicines ports.MedicineAPI) *MedicineHandler {
	return &MedicineHandler{medicines: medicines}
}

// List handles GET /admin/medicines.
//
// @Summary      List medicines
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Medicine
// @Failure      302
// @Failure      502  {object}  map[string]string
// @Router       /admin/medicines [get]
func (h *MedicineHandler) List(c echo.Context) error {
	medicines, err := h.medicines.List(c.Request().Context())
	if err != nil {
		return err
	}
	if medicines == nil {
		medicines = []domain.Medicine{}
	}
	return c.JSON(http.StatusOK, medicines)
}

// Create handles POST /admin/medicines.
//
// @Summary      Add a medicine
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      domain.MedicineInput  true  "Medicine details"
// @Success      201   {object}  domain.Medicine
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/medicines [post]
func (h *MedicineHandler) Create(c echo.Context) error {
	var in domain.MedicineInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	m, err := h.medicines.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, m)
}

// Update handles PUT /admin/medicines/:id.
//
// @Summary      Edit a medicine
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Medicine id"
// @Param        body  body      domain.MedicineInput  true  "Medicine details"
// @Success      200   {object}  domain.Medicine
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /admin/medicines/{id} [put]
func (h *MedicineHandler) Update(c echo.Context) error {
	var in domain.MedicineInput
	if err := bindValid(c, &in); err != nil {
		return err
	}
	m, err := h.medicines.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, m)
}

// Delete handles DELETE /admin/medicines/:id.
//
// @Summary      Remove a medicine
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Medicine id"
// @Success      200  {object}  domain.Ack
// @Failure      404  {object}  map[string]string
// @Router       /admin/medicines/{id} [delete]
func (h *MedicineHandler) Delete(c echo.Context) error {
	ack, err := h.medicines.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ack)
}
