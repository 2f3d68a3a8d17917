package handlers

import (
	"errors"
	"log"

	"conduit/internal/services"
	"conduit/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration, login and the current-user endpoint.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
	tr          *translator.Translator
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tr *translator.Translator) *AuthHandler {
	validate := validator.New()
	if err := tr.RegisterValidationMessages(validate); err != nil {
		log.Printf("Warning: could not register validation messages: %v", err)
	}
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		tr:          tr,
	}
}

// RegisterRoutes registers the auth endpoints on the router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/profile", auth, h.HandleProfile)
}

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister creates the account and returns it together with a fresh
// token.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}

	user, token, err := h.authService.Register(req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			return messageResponse(c, h.tr, fiber.StatusConflict, "auth.errors.user_already_exists")
		}
		log.Printf("Error registering user: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": h.tr.T("auth.success.registration_success"),
		"user":    NewUserResponse(user, token),
	})
}

// HandleLogin verifies credentials and returns the user with a fresh token.
// Wrong email and wrong password are indistinguishable in the response.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return messageResponse(c, h.tr, fiber.StatusUnauthorized, "auth.errors.invalid_credentials")
		}
		log.Printf("Error logging in user: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": h.tr.T("auth.success.login_success"),
		"user":    NewUserResponse(user, token),
	})
}

// HandleProfile returns the authenticated user's own account.
func (h *AuthHandler) HandleProfile(c *fiber.Ctx) error {
	user, err := h.authService.GetProfile(currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return messageResponse(c, h.tr, fiber.StatusNotFound, "users.user_not_found")
		}
		log.Printf("Error fetching profile: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": NewUserResponse(user, ""),
	})
}
