package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"clinic-booking-api/internal/auth"
	"clinic-booking-api/internal/model"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type identityRequest struct {
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	DateOfBirth string `json:"date_of_birth"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

func (r *identityRequest) validate() (time.Time, error) {
	if r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "firstname, lastname, email and password required")
	}
	if len(r.Password) < 8 {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "password too short")
	}
	dob, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, "date_of_birth must be YYYY-MM-DD")
	}
	return dob, nil
}

type registerPatientRequest struct {
	identityRequest
	Symptoms              string `json:"symptoms"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
	BloodType             string `json:"blood_type"`
	Allergies             string `json:"allergies"`
}

type authResponse struct {
	UserID       string `json:"user_id"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

func (h *Handler) RegisterPatient(c echo.Context) error {
	var req registerPatientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}
	dob, err := req.validate()
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	p := &model.Patient{
		Person: model.Person{
			ID:          uuid.New().String(),
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: dob,
			Phone:       req.Phone,
			Email:       req.Email,
		},
		Symptoms:              req.Symptoms,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		BloodType:             req.BloodType,
		Allergies:             req.Allergies,
		PasswordHash:          hash,
	}
	if err := h.store.CreatePatient(c.Request().Context(), p); err != nil {
		// unique violation = dup email, but don't reveal that
		return echo.NewHTTPError(http.StatusConflict, "registration failed")
	}

	return h.issueTokens(c, http.StatusCreated, p.ID, p.Role())
}

type registerDoctorRequest struct {
	identityRequest
	Specialization    string `json:"specialization"`
	LicenceNumber     string `json:"licence_number"`
	YearsOfExperience int    `json:"years_of_experience"`
}

func (h *Handler) RegisterDoctor(c echo.Context) error {
	var req registerDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}
	dob, err := req.validate()
	if err != nil {
		return err
	}
	if req.Specialization == "" || req.LicenceNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "specialization and licence_number required")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	d := &model.Doctor{
		Person: model.Person{
			ID:          uuid.New().String(),
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			DateOfBirth: dob,
			Phone:       req.Phone,
			Email:       req.Email,
		},
		Specialization:    req.Specialization,
		LicenceNumber:     req.LicenceNumber,
		YearsOfExperience: req.YearsOfExperience,
		PasswordHash:      hash,
	}
	if err := h.store.CreateDoctor(c.Request().Context(), d); err != nil {
		return echo.NewHTTPError(http.StatusConflict, "registration failed")
	}

	return h.issueTokens(c, http.StatusCreated, d.ID, d.Role())
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *Handler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bad request")
	}
	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email and password required")
	}

	var id, hash string
	switch req.Role {
	case model.RoleDoctor:
		d, err := h.store.DoctorByEmail(c.Request().Context(), req.Email)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		id, hash = d.ID, d.PasswordHash
	case model.RolePatient, "":
		req.Role = model.RolePatient
		p, err := h.store.PatientByEmail(c.Request().Context(), req.Email)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		id, hash = p.ID, p.PasswordHash
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "unknown role")
	}

	if !auth.CheckPassword(hash, req.Password) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return h.issueTokens(c, http.StatusOK, id, req.Role)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "refresh_token required")
	}

	ctx := c.Request().Context()
	rt, err := h.store.RefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	}

	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(ctx, rt.ID, newID, rt.UserID, rt.Role, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	tok, err := auth.MakeToken(rt.UserID, rt.Role, h.secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, authResponse{
		UserID: rt.UserID, Role: rt.Role, Token: tok, RefreshToken: raw,
	})
}

func (h *Handler) issueTokens(c echo.Context, code int, userID, role string) error {
	tok, err := auth.MakeToken(userID, role, h.secret)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	raw, hash, err := auth.GenerateRefreshToken()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	if _, err := h.store.CreateRefreshToken(c.Request().Context(), userID, role, hash, time.Now().Add(refreshTokenTTL)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(code, authResponse{UserID: userID, Role: role, Token: tok, RefreshToken: raw})
}
