package handlers

import (
	"errors"
	"log"

	"conduit/internal/services"
	"conduit/pkg/translator"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles profile updates, public profiles and follows.
type UserHandler struct {
	userService *services.UserService
	validate    *validator.Validate
	tr          *translator.Translator
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, tr *translator.Translator) *UserHandler {
	validate := validator.New()
	if err := tr.RegisterValidationMessages(validate); err != nil {
		log.Printf("Warning: could not register validation messages: %v", err)
	}
	return &UserHandler{
		userService: userService,
		validate:    validate,
		tr:          tr,
	}
}

// RegisterRoutes registers the user endpoints on the router.
func (h *UserHandler) RegisterRoutes(router fiber.Router, auth, optionalAuth fiber.Handler) {
	userRoutes := router.Group("/users")
	userRoutes.Put("/profile", auth, h.HandleUpdateProfile)
	userRoutes.Get("/:username", optionalAuth, h.HandleGetProfile)
	userRoutes.Post("/:username/follow", auth, h.HandleFollow)
	userRoutes.Delete("/:username/follow", auth, h.HandleUnfollow)
}

// UpdateProfileRequest carries the optional profile fields; absent fields
// stay unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=50"`
	Bio      *string `json:"bio" validate:"omitempty,max=1000"`
	Image    *string `json:"image" validate:"omitempty,max=255"`
}

// HandleUpdateProfile patches the authenticated user's own profile.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, h.tr, err)
	}

	input := services.UpdateProfileInput{
		Username: req.Username,
		Bio:      req.Bio,
		Image:    req.Image,
	}
	user, err := h.userService.UpdateProfile(currentUserID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return messageResponse(c, h.tr, fiber.StatusNotFound, "users.user_not_found")
		case errors.Is(err, services.ErrUsernameTaken):
			return messageResponse(c, h.tr, fiber.StatusConflict, "users.username_taken", *req.Username)
		}
		log.Printf("Error updating profile: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user": NewUserResponse(user, ""),
	})
}

// HandleGetProfile returns a public profile. The "following" flag is relative
// to the viewer when a valid token accompanies the request.
func (h *UserHandler) HandleGetProfile(c *fiber.Ctx) error {
	user, following, err := h.userService.GetProfile(c.Params("username"), currentUserID(c))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return messageResponse(c, h.tr, fiber.StatusNotFound, "users.user_not_found")
		}
		log.Printf("Error fetching profile: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"profile": NewProfileResponse(user, following),
	})
}

// HandleFollow makes the authenticated user follow the target. Following an
// already-followed user succeeds unchanged.
func (h *UserHandler) HandleFollow(c *fiber.Ctx) error {
	target, err := h.userService.Follow(currentUserID(c), c.Params("username"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return messageResponse(c, h.tr, fiber.StatusNotFound, "users.user_not_found")
		case errors.Is(err, services.ErrSelfFollow):
			return messageResponse(c, h.tr, fiber.StatusUnprocessableEntity, "users.cannot_follow_self")
		}
		log.Printf("Error following user: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"profile": NewProfileResponse(target, true),
	})
}

// HandleUnfollow removes the follow edge; unfollowing a user you never
// followed succeeds unchanged.
func (h *UserHandler) HandleUnfollow(c *fiber.Ctx) error {
	target, err := h.userService.Unfollow(currentUserID(c), c.Params("username"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return messageResponse(c, h.tr, fiber.StatusNotFound, "users.user_not_found")
		}
		log.Printf("Error unfollowing user: %v", err)
		return messageResponse(c, h.tr, fiber.StatusInternalServerError, "common.internal_error")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"profile": NewProfileResponse(target, false),
	})
}
