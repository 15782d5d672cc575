package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/middleware"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{
		userSvc: userSvc,
	}
}

// @Summary Create user
// @Description Create or update the authenticated user with their twitter account and wallets
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateUserRequest true "User"
// @Success 200 {object} shared.Response{data=model.User}
// @Failure 400 {object} shared.Response{data=[]dto.ValidationError}
// @Failure 403 {object} shared.Response
// @Failure 409 {object} shared.Response
// @Router /api/v1/users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	user, err := h.userSvc.CreateUser(c.UserContext(), middleware.UserIDFrom(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}

// @Summary Sync user
// @Description Refresh the authenticated user's linked accounts from the identity provider
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=model.User}
// @Failure 404 {object} shared.Response
// @Router /api/v1/users/sync [post]
func (h *UserHandler) SyncUser(c *fiber.Ctx) error {
	user, err := h.userSvc.SyncUser(c.UserContext(), middleware.UserIDFrom(c))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}

// @Summary List users
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=[]model.User}
// @Router /api/v1/users [get]
func (h *UserHandler) GetUsers(c *fiber.Ctx) error {
	users, err := h.userSvc.GetUsers(c.UserContext())
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", users)
}

// @Summary Get user
// @Tags user
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} shared.Response{data=model.User}
// @Failure 404 {object} shared.Response
// @Router /api/v1/users/{userId} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userSvc.GetUser(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", user)
}
