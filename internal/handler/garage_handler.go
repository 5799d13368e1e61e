package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ガレージ（所有車両）のHTTP。
type GarageHandler struct {
	uc *usecase.GarageUsecase
}

// DI
func NewGarageHandler(uc *usecase.GarageUsecase) *GarageHandler {
	return &GarageHandler{uc: uc}
}

type AddVehicleRequest struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  *int64 `json:"year"`
	VIN   string `json:"vin"`
}

func (h *GarageHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/account/garage")
	g.Use(middleware.AuthJWT(cfg))

	g.GET("", h.list)
	g.POST("", h.add)
	g.DELETE("/:id", h.delete)
}

func (h *GarageHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListVehicles(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *GarageHandler) add(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddVehicleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddVehicle(c.Request().Context(), userID, usecase.AddVehicleInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
		VIN:   req.VIN,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *GarageHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	vehicleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteVehicle(c.Request().Context(), userID, vehicleID); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
