package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/schedule"
)

func (h *Handler) ListDoctors(c echo.Context) error {
	docs, err := h.sched.ListDoctors(c.Request().Context(), c.QueryParam("specialization"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if docs == nil {
		docs = []model.Doctor{}
	}
	return c.JSON(http.StatusOK, docs)
}

// ListAvailableSlots returns the still-open slot starts for one doctor at one
// clinic on one day. An empty list is a valid answer, not an error.
func (h *Handler) ListAvailableSlots(c echo.Context) error {
	ctx := c.Request().Context()

	clinic, err := h.store.ClinicByID(ctx, c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "clinic not found")
	}
	if _, err := h.store.DoctorByID(ctx, c.Param("doctorID")); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}

	day, err := schedule.ParseDay(c.QueryParam("date"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	slots, err := h.sched.ListAvailableSlots(ctx, clinic, c.Param("doctorID"), day)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidHoursFormat) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if slots == nil {
		slots = []time.Time{}
	}
	return c.JSON(http.StatusOK, slots)
}

type bookRequest struct {
	DoctorID  string    `json:"doctor_id"`
	ClinicID  string    `json:"clinic_id"`
	Slot      time.Time `json:"slot"`
	Treatment string    `json:"treatment"`
}

// BookAppointment commits one slot for the calling patient. Availability
// shown earlier is advisory; the atomic insert here decides the race, so a
// 409 means the caller should re-query slots and pick again.
func (h *Handler) BookAppointment(c echo.Context) error {
	var req bookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}
	if req.DoctorID == "" || req.ClinicID == "" || req.Slot.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "doctor_id, clinic_id and slot required")
	}

	ctx := c.Request().Context()
	clinic, err := h.store.ClinicByID(ctx, req.ClinicID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "clinic not found")
	}
	if _, err := h.store.DoctorByID(ctx, req.DoctorID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "doctor not found")
	}

	rec, err := h.sched.BookAppointment(ctx, uid(c), req.DoctorID, clinic, req.Slot, req.Treatment)
	switch {
	case err == nil:
		return c.JSON(http.StatusCreated, rec)
	case errors.Is(err, schedule.ErrSlotConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, schedule.ErrInvalidSlot), errors.Is(err, schedule.ErrInvalidHoursFormat):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}

// ListAppointments returns the caller's records: their visits for a patient,
// their booked schedule for a doctor.
func (h *Handler) ListAppointments(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		recs []model.Record
		err  error
	)
	if role(c) == model.RoleDoctor {
		recs, err = h.store.RecordsByDoctor(ctx, uid(c))
	} else {
		recs, err = h.store.RecordsByPatient(ctx, uid(c))
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if recs == nil {
		recs = []model.Record{}
	}
	return c.JSON(http.StatusOK, recs)
}

type amendTreatmentRequest struct {
	Treatment string `json:"treatment"`
}

// AmendTreatment lets the owning doctor update a record's treatment text, the
// only field a committed record allows to change.
func (h *Handler) AmendTreatment(c echo.Context) error {
	var req amendTreatmentRequest
	if err := c.Bind(&req); err != nil || req.Treatment == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "treatment required")
	}

	if err := h.store.UpdateTreatment(c.Request().Context(), c.Param("id"), uid(c), req.Treatment); err != nil {
		// missing record and foreign record are indistinguishable on purpose
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	return c.NoContent(http.StatusNoContent)
}
