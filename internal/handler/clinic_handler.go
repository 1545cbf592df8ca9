package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/schedule"
)

type createClinicRequest struct {
	Name         string `json:"name"`
	Address      string `json:"address"`
	City         string `json:"city"`
	Province     string `json:"province"`
	Zipcode      string `json:"zipcode"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	OpeningHours string `json:"opening_hours"`
}

func (h *Handler) CreateClinic(c echo.Context) error {
	var req createClinicRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}
	if req.Name == "" || req.OpeningHours == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and opening_hours required")
	}

	open, close, err := schedule.ParseOpeningHours(req.OpeningHours)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if open >= close {
		return echo.NewHTTPError(http.StatusBadRequest, "opening hour must come before closing hour")
	}

	clinic := &model.Clinic{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Address:      req.Address,
		City:         req.City,
		Province:     req.Province,
		Zipcode:      req.Zipcode,
		Phone:        req.Phone,
		Email:        req.Email,
		OpeningHours: req.OpeningHours,
	}
	if err := h.store.CreateClinic(c.Request().Context(), clinic); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusCreated, clinic)
}

func (h *Handler) GetClinic(c echo.Context) error {
	clinic, err := h.store.ClinicByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.JSON(http.StatusOK, clinic)
}

func (h *Handler) ListClinics(c echo.Context) error {
	clinics, err := h.store.ListClinics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if clinics == nil {
		clinics = []model.Clinic{}
	}
	return c.JSON(http.StatusOK, clinics)
}
