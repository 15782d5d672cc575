package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/middleware"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type TwitterHandler struct {
	twitterSvc TwitterServiceInterface
}

func NewTwitterHandler(twitterSvc TwitterServiceInterface) *TwitterHandler {
	return &TwitterHandler{
		twitterSvc: twitterSvc,
	}
}

// @Summary Refresh twitter metrics
// @Description Fetch the caller's public twitter metrics with their twitter access token
// @Tags twitter
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param followersRequest body dto.TwitterFollowersRequest true "Twitter credentials"
// @Success 200 {object} shared.Response{data=dto.TwitterFollowersResponse}
// @Failure 404 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/twitter/followers [post]
func (h *TwitterHandler) GetFollowers(c *fiber.Ctx) error {
	var req dto.TwitterFollowersRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	metrics, err := h.twitterSvc.GetFollowers(c.UserContext(), middleware.UserIDFrom(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", metrics)
}
