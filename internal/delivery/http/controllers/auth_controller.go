package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	h "eventhub/internal/delivery/http/helpers"
	"eventhub/internal/domain"
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

// SignUpRequest is the request body for POST /auth/signup.
type SignUpRequest struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// Validate implements Validator.
func (s SignUpRequest) Validate() h.FieldErrors {
	errs := h.FieldErrors{}
	email := strings.TrimSpace(strings.ToLower(s.Email))
	if email == "" {
		errs["email"] = "email is required"
	} else if !emailRegexp.MatchString(email) {
		errs["email"] = "invalid email format"
	}
	if s.Phone != "" && !phoneRegexp.MatchString(s.Phone) {
		errs["phone"] = "invalid phone format"
	}
	if msg := validatePassword(s.Password); msg != "" {
		errs["password"] = msg
	}
	if strings.TrimSpace(s.Username) == "" {
		errs["username"] = "username is required"
	}
	return errs
}

// LoginRequest is the request body for POST /auth/login. The credential is a
// union: exactly one of email or phone must be set.
type LoginRequest struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Validate implements Validator. The credential union is reported under the
// field that was (or should have been) provided.
func (l LoginRequest) Validate() h.FieldErrors {
	errs := h.FieldErrors{}
	email := strings.TrimSpace(l.Email)
	phone := strings.TrimSpace(l.Phone)
	switch {
	case email == "" && phone == "":
		errs["email"] = "email or phone is required"
	case email != "" && phone != "":
		errs["email"] = "provide either email or phone, not both"
	case email != "" && !emailRegexp.MatchString(strings.ToLower(email)):
		errs["email"] = "invalid email format"
	case phone != "" && !phoneRegexp.MatchString(phone):
		errs["phone"] = "invalid phone format"
	}
	if msg := validatePassword(l.Password); msg != "" {
		errs["password"] = msg
	}
	return errs
}

func validatePassword(password string) string {
	switch {
	case password == "":
		return "password is required"
	case len(password) < 8:
		return "password must be at least 8 characters"
	case len(password) > 20:
		return "password must be at most 20 characters"
	}
	return ""
}

// LoginResponse is the response body for POST /auth/login. The verification
// key is exchanged together with the emailed OTP at /auth/verify.
type LoginResponse struct {
	VerificationKey string `json:"verification_key"`
}

// VerifyLoginRequest is the request body for POST /auth/verify.
type VerifyLoginRequest struct {
	VerificationKey string `json:"verification_key"`
	OTP             string `json:"otp"`
}

// Validate implements Validator.
func (v VerifyLoginRequest) Validate() h.FieldErrors {
	errs := h.FieldErrors{}
	if strings.TrimSpace(v.VerificationKey) == "" {
		errs["verification_key"] = "verification_key is required"
	}
	if strings.TrimSpace(v.OTP) == "" {
		errs["otp"] = "otp is required"
	}
	return errs
}

// VerifyLoginResponse is the response body for POST /auth/verify.
type VerifyLoginResponse struct {
	Token     string                  `json:"token"`
	TokenType string                  `json:"token_type"`
	User      *domain.UserWithProfile `json:"user"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// SignUp godoc
// @Summary Sign up a new user
// @Description Create a new user with email, password, and profile. Phone is optional. Password is stored hashed.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Sign-up data"
// @Success 201 {object} helpers.APIResponse "data contains the created user and profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (email taken)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	profile := &domain.Profile{
		Username:  strings.TrimSpace(req.Username),
		Firstname: strings.TrimSpace(req.Firstname),
		Lastname:  strings.TrimSpace(req.Lastname),
	}
	user, err := c.Service.SignUp(r.Context(), email, strings.TrimSpace(req.Phone), req.Password, profile)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			h.WriteJSONError(w, http.StatusConflict, h.ErrCodeConflict, "email already registered")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusCreated, user)
}

// Login godoc
// @Summary Log in (step one)
// @Description Authenticate with email or phone plus password. Returns a verification key; a one-time code is sent by email. Exchange both at /auth/verify.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials (email or phone, not both)"
// @Success 200 {object} helpers.APIResponse "data contains verification_key"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	key, err := c.Service.Login(r.Context(), email, strings.TrimSpace(req.Phone), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "credentials not match")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, LoginResponse{VerificationKey: key})
}

// VerifyLogin godoc
// @Summary Log in (step two)
// @Description Exchange the verification key and one-time code for a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body VerifyLoginRequest true "Verification key and OTP"
// @Success 200 {object} helpers.APIResponse "data contains token, token_type, and user"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (bad or expired code)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/verify [post]
func (c *AuthController) VerifyLogin(w http.ResponseWriter, r *http.Request) {
	var req VerifyLoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.VerifyLogin(r.Context(), strings.TrimSpace(req.VerificationKey), strings.TrimSpace(req.OTP))
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired otp")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, err.Error())
		return
	}
	h.WriteJSONSuccess(w, http.StatusOK, VerifyLoginResponse{Token: token, TokenType: "Bearer", User: user})
}
