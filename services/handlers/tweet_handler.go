package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/middleware"
	"github.com/prophesy-fun/prophesy_api/pagination"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type TweetHandler struct {
	tweetSvc TweetServiceInterface
}

func NewTweetHandler(tweetSvc TweetServiceInterface) *TweetHandler {
	return &TweetHandler{
		tweetSvc: tweetSvc,
	}
}

// @Summary Get tweets
// @Description Public feed, newest first. Pass next_cursor back as cursor to get the next page.
// @Tags tweets
// @Accept json
// @Produce json
// @Param limit query int false "Page size (1-100, default 20)"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} shared.Response{data=pagination.PageResult[model.Tweet]}
// @Failure 400 {object} shared.Response
// @Router /api/v1/tweets [get]
func (h *TweetHandler) GetTweets(c *fiber.Ctx) error {
	req, err := parsePageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.tweetSvc.GetTweets(c.UserContext(), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", page)
}

// @Summary Get user tweets
// @Description A single author's tweets, newest first
// @Tags tweets
// @Accept json
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Page size (1-100, default 20)"
// @Param cursor query string false "Cursor from the previous page"
// @Success 200 {object} shared.Response{data=pagination.PageResult[model.Tweet]}
// @Failure 400 {object} shared.Response
// @Router /api/v1/users/{userId}/tweets [get]
func (h *TweetHandler) GetUserTweets(c *fiber.Ctx) error {
	req, err := parsePageRequest(c)
	if err != nil {
		return err
	}

	page, err := h.tweetSvc.GetUserTweets(c.UserContext(), c.Params("userId"), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", page)
}

// @Summary Create tweet
// @Description Post a tweet as the authenticated user
// @Tags tweets
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateTweetRequest true "Tweet"
// @Success 201 {object} shared.Response{data=model.Tweet}
// @Failure 400 {object} shared.Response{data=[]dto.ValidationError}
// @Failure 403 {object} shared.Response
// @Failure 429 {object} shared.Response
// @Router /api/v1/tweets [post]
func (h *TweetHandler) CreateTweet(c *fiber.Ctx) error {
	var req dto.CreateTweetRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	tweet, err := h.tweetSvc.CreateTweet(c.UserContext(), middleware.UserIDFrom(c), req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", tweet)
}

func parsePageRequest(c *fiber.Ctx) (pagination.PageRequest, error) {
	var req pagination.PageRequest
	if err := c.QueryParser(&req); err != nil {
		return req, shared.NewBadRequestError(err, "Invalid pagination parameters")
	}
	// Only a missing limit takes the default.
	if req.Limit == 0 && c.Query("limit") != "" {
		return req, pagination.LimitOutOfRange(0)
	}
	return req, nil
}
