package auth

import (
	"errors"
	"net/http"

	"github.com/agroboost/AgroBoost-RentalService/internal/api/handlers"
	"github.com/agroboost/AgroBoost-RentalService/internal/api/middleware"
	"github.com/agroboost/AgroBoost-RentalService/internal/service/users"
)

const (
	msgInvalidInput       = "Les informations saisies sont invalides."
	msgEmailTaken         = "Un compte existe déjà avec cette adresse e-mail."
	msgInvalidCredentials = "E-mail ou mot de passe incorrect."
	msgNotVerified        = "Votre compte n'est pas encore vérifié. Un code vous a été envoyé."
	msgInactive           = "Votre compte a été désactivé. Contactez l'administrateur."
	msgInvalidOTP         = "Code invalide ou expiré."
	msgTooManyAttempts    = "Trop de tentatives. Demandez un nouveau code."
	msgOTPCooldown        = "Veuillez patienter avant de demander un nouveau code."
	msgUserNotFound       = "Utilisateur introuvable."
	msgRegistered         = "Compte créé. Saisissez le code reçu pour l'activer."
	msgCodeSent           = "Si un compte correspond à cette adresse, un code a été envoyé."
	msgPasswordReset      = "Mot de passe réinitialisé. Vous pouvez vous connecter."
	msgPasswordChanged    = "Mot de passe modifié."
	msgLoggedOut          = "Vous êtes déconnecté."
)

// Handler serves the /auth routes
type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	user, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "POST /auth/register", err)
		return
	}

	h.logger.Info("POST /auth/register - User registered: user_id=%d, role=%s", user.ID, user.Role)
	handlers.RespondData(w, http.StatusCreated, map[string]interface{}{
		"message": msgRegistered,
		"user":    user,
	})
}

// Login POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "POST /auth/login", err)
		return
	}

	h.logger.Info("POST /auth/login - User logged in: user_id=%d", result.User.ID)
	handlers.RespondData(w, http.StatusOK, result)
}

// VerifyOTP POST /api/v1/auth/verify-otp
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verify-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyOTP(r.Context(), req.Email, req.Code)
	if err != nil {
		h.respondError(w, "POST /auth/verify-otp", err)
		return
	}

	h.logger.Info("POST /auth/verify-otp - Account verified: user_id=%d", result.User.ID)
	handlers.RespondData(w, http.StatusOK, result)
}

// ResendOTP POST /api/v1/auth/resend-otp
func (h *Handler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/resend-otp - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := h.service.ResendOTP(r.Context(), req.Email); err != nil {
		h.respondError(w, "POST /auth/resend-otp", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgCodeSent)
}

// ForgotPassword POST /api/v1/auth/forgot-password
func (h *Handler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req EmailRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/forgot-password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		// unknown addresses get the same answer
		if errors.Is(err, users.ErrUserNotFound) {
			handlers.RespondMessage(w, http.StatusOK, msgCodeSent)
			return
		}
		h.respondError(w, "POST /auth/forgot-password", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgCodeSent)
}

// ResetPassword POST /api/v1/auth/reset-password
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/reset-password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := h.service.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		h.respondError(w, "POST /auth/reset-password", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgPasswordReset)
}

// Logout POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	tokenID := middleware.GetTokenID(r.Context())
	if tokenID == "" {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	if err := h.service.Logout(r.Context(), tokenID); err != nil {
		h.respondError(w, "POST /auth/logout", err)
		return
	}

	handlers.RespondMessage(w, http.StatusOK, msgLoggedOut)
}

// GetProfile GET /api/v1/auth/profile
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	user, err := h.service.GetProfile(r.Context(), actor)
	if err != nil {
		h.respondError(w, "GET /auth/profile", err)
		return
	}

	handlers.RespondData(w, http.StatusOK, user)
}

// UpdateProfile PUT /api/v1/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /auth/profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		h.respondError(w, "PUT /auth/profile", err)
		return
	}

	h.logger.Info("PUT /auth/profile - Profile updated: user_id=%d", actor.UserID)
	handlers.RespondData(w, http.StatusOK, user)
}

// ChangePassword PUT /api/v1/auth/password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)
		return
	}

	var req ChangePasswordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /auth/password - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.MsgInvalidRequestBody)
		return
	}

	if err := h.service.ChangePassword(r.Context(), actor, req.CurrentPassword, req.NewPassword); err != nil {
		h.respondError(w, "PUT /auth/password", err)
		return
	}

	h.logger.Info("PUT /auth/password - Password changed: user_id=%d", actor.UserID)
	handlers.RespondMessage(w, http.StatusOK, msgPasswordChanged)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, users.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, users.ErrEmailTaken):
		h.logger.Warn("%s - Email taken", route)
		handlers.RespondConflict(w, msgEmailTaken)

	case errors.Is(err, users.ErrInvalidCredentials):
		h.logger.Warn("%s - Invalid credentials", route)
		handlers.RespondUnauthorized(w, msgInvalidCredentials)

	case errors.Is(err, users.ErrNotVerified):
		h.logger.Warn("%s - Account not verified", route)
		handlers.RespondForbidden(w, msgNotVerified)

	case errors.Is(err, users.ErrInactive):
		h.logger.Warn("%s - Account disabled", route)
		handlers.RespondForbidden(w, msgInactive)

	case errors.Is(err, users.ErrInvalidOTP):
		h.logger.Warn("%s - Invalid OTP", route)
		handlers.RespondBadRequest(w, msgInvalidOTP)

	case errors.Is(err, users.ErrTooManyAttempts):
		h.logger.Warn("%s - Too many OTP attempts", route)
		handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyAttempts)

	case errors.Is(err, users.ErrOTPCooldown):
		h.logger.Warn("%s - OTP cooldown", route)
		handlers.RespondError(w, http.StatusTooManyRequests, msgOTPCooldown)

	case errors.Is(err, users.ErrUserNotFound):
		h.logger.Warn("%s - User not found", route)
		handlers.RespondNotFound(w, msgUserNotFound)

	case errors.Is(err, users.ErrUnauthorized):
		handlers.RespondUnauthorized(w, handlers.MsgUnauthorized)

	default:
		h.logger.Error("%s - Internal error: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
