package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
	"clinic-booking-api/internal/schedule"
	"clinic-booking-api/internal/store"
)

// Store is the persistence surface the handlers use; *store.Store implements
// it. The scheduling engine has its own narrower view (schedule.DoctorDirectory,
// schedule.RecordRepository).
type Store interface {
	CreatePatient(ctx context.Context, p *model.Patient) error
	PatientByEmail(ctx context.Context, email string) (*model.Patient, error)

	CreateDoctor(ctx context.Context, d *model.Doctor) error
	DoctorByEmail(ctx context.Context, email string) (*model.Doctor, error)
	DoctorByID(ctx context.Context, id string) (*model.Doctor, error)

	CreateClinic(ctx context.Context, c *model.Clinic) error
	ClinicByID(ctx context.Context, id string) (*model.Clinic, error)
	ListClinics(ctx context.Context) ([]model.Clinic, error)

	RecordsByPatient(ctx context.Context, patientID string) ([]model.Record, error)
	RecordsByDoctor(ctx context.Context, doctorID string) ([]model.Record, error)
	UpdateTreatment(ctx context.Context, recordID, doctorID, treatment string) error

	CreateRefreshToken(ctx context.Context, userID, role, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, role, newHash string, newExpiry time.Time) error
}

type Handler struct {
	store  Store
	sched  *schedule.Scheduler
	secret string
}

func New(st Store, sched *schedule.Scheduler, secret string) *Handler {
	return &Handler{store: st, sched: sched, secret: secret}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, rl *middleware.RateLimiter) {
	authGroup := e.Group("/auth", middleware.RateLimit(rl))
	authGroup.POST("/patients", h.RegisterPatient)
	authGroup.POST("/doctors", h.RegisterDoctor)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/refresh", h.Refresh)

	api := e.Group("", middleware.Auth(h.secret))
	api.GET("/doctors", h.ListDoctors)
	api.GET("/clinics", h.ListClinics)
	api.GET("/clinics/:id", h.GetClinic)
	api.POST("/clinics", h.CreateClinic)
	api.GET("/clinics/:id/doctors/:doctorID/slots", h.ListAvailableSlots)
	api.GET("/appointments", h.ListAppointments)
	api.POST("/appointments", h.BookAppointment, middleware.RequireRole(model.RolePatient))
	api.PATCH("/appointments/:id/treatment", h.AmendTreatment, middleware.RequireRole(model.RoleDoctor))
}

func uid(c echo.Context) string {
	v, _ := c.Get(middleware.UserIDKey).(string)
	return v
}

func role(c echo.Context) string {
	v, _ := c.Get(middleware.RoleKey).(string)
	return v
}
