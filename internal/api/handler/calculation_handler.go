package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/calckit/calculator-service/internal/api/metrics"
	"github.com/calckit/calculator-service/internal/core/ports"
)

// CalculationHandler handles HTTP requests for calculation operations.
// Every route below runs behind the Auth middleware; the owner is always the
// authenticated principal, never a request field.
type CalculationHandler struct {
	service ports.CalculationService
}

func NewCalculationHandler(service ports.CalculationService) *CalculationHandler {
	return &CalculationHandler{service: service}
}

type calculationRequest struct {
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Operation string  `json:"operation" validate:"required,oneof=add subtract multiply divide"`
}

// normalize lowercases the operation before validation so "Add" and "ADD"
// pass the oneof check the same way "add" does.
func (r *calculationRequest) normalize() {
	r.Operation = strings.ToLower(r.Operation)
}

// validate applies the cross-field check the validator tags cannot express:
// a divide request must not carry a zero divisor.
func (r *calculationRequest) validate() error {
	if r.Operation == "divide" && r.B == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "division by zero is not allowed")
	}
	return nil
}

func (h *CalculationHandler) bindRequest(c echo.Context) (*calculationRequest, error) {
	var req calculationRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.normalize()
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Create handles POST /v1/calculations.
//
// @Summary      Create a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      calculationRequest  true  "Operands and operation"
// @Success      201   {object}  domain.Calculation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /v1/calculations [post]
func (h *CalculationHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	calc, err := h.service.Create(c.Request().Context(), user.ID, ports.CalculationInput{
		A:         req.A,
		B:         req.B,
		Operation: req.Operation,
	})
	if err != nil {
		return err
	}

	metrics.CalculationsTotal.WithLabelValues(string(calc.Operation)).Inc()

	return c.JSON(http.StatusCreated, calc)
}

// List handles GET /v1/calculations.
//
// @Summary      List the caller's calculations
// @Tags         calculations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Calculation
// @Failure      401  {object}  map[string]string
// @Router       /v1/calculations [get]
func (h *CalculationHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	calcs, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, calcs)
}

// Get handles GET /v1/calculations/:id.
//
// @Summary      Get one calculation
// @Tags         calculations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Calculation id"
// @Success      200  {object}  domain.Calculation
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/calculations/{id} [get]
func (h *CalculationHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	calc, err := h.service.Get(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, calc)
}

// Update handles PUT /v1/calculations/:id. Operands and operation are
// replaced wholesale and the result is recomputed.
//
// @Summary      Update a calculation
// @Tags         calculations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Calculation id"
// @Param        body  body      calculationRequest  true  "Replacement operands and operation"
// @Success      200   {object}  domain.Calculation
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/calculations/{id} [put]
func (h *CalculationHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	req, err := h.bindRequest(c)
	if err != nil {
		return err
	}

	calc, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), ports.CalculationInput{
		A:         req.A,
		B:         req.B,
		Operation: req.Operation,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, calc)
}

// Delete handles DELETE /v1/calculations/:id.
//
// @Summary      Delete a calculation
// @Tags         calculations
// @Security     BearerAuth
// @Param        id  path  string  true  "Calculation id"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/calculations/{id} [delete]
func (h *CalculationHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
