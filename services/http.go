package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/prophesy-fun/prophesy_api/docs"
	"github.com/prophesy-fun/prophesy_api/middleware"
	"github.com/prophesy-fun/prophesy_api/services/handlers"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type HttpService struct {
	context.DefaultService

	port int
	app  *fiber.App
}

const HTTP_SVC = "http_svc"

// AppConfig carries everything the router needs. Monitoring is optional.
type AppConfig struct {
	Admission  []fiber.Handler
	Monitoring *MonitoringService

	Tweets  handlers.TweetServiceInterface
	Users   handlers.UserServiceInterface
	Twitter handlers.TwitterServiceInterface
}

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	cfg := AppConfig{
		Admission: svc.Service(ADMISSION_SVC).(*AdmissionService).Handlers(),
		Tweets:    svc.Service(TWEET_SVC).(*TweetService),
		Users:     svc.Service(USER_SVC).(*UserService),
		Twitter:   svc.Service(TWITTER_SVC).(*TwitterService),
	}
	if monitoringSvc, ok := svc.Service(MONITORING_SVC).(*MonitoringService); ok {
		cfg.Monitoring = monitoringSvc
	}

	svc.app = NewApp(cfg)

	log.Info().Int("port", svc.port).Msg("HTTP server starting")
	return svc.app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.app != nil {
		_ = svc.app.Shutdown()
	}
}

// NewApp builds the router. /ping and /swagger are served before the
// admission pipeline; every /api route passes through it.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      SERVICE_NAME,
		JSONEncoder:  shared.JSONAPI.Marshal,
		JSONDecoder:  shared.JSONAPI.Unmarshal,
		ErrorHandler: shared.ErrorHandler,
	})

	app.Use(recover.New())
	if cfg.Monitoring != nil {
		app.Use(MonitoringMiddleware(cfg.Monitoring))
	}

	docs.SwaggerInfo.BasePath = ""
	app.Get("/ping", ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	for _, h := range cfg.Admission {
		app.Use(h)
	}

	tweetHandler := handlers.NewTweetHandler(cfg.Tweets)
	userHandler := handlers.NewUserHandler(cfg.Users)
	twitterHandler := handlers.NewTwitterHandler(cfg.Twitter)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", ping)

	v1.Get("/tweets", tweetHandler.GetTweets)
	v1.Post("/tweets", middleware.RequiredAuth(), tweetHandler.CreateTweet)

	users := v1.Group("/users")
	users.Get("/", middleware.RequiredAuth(), userHandler.GetUsers)
	users.Post("/", middleware.RequiredAuth(), userHandler.CreateUser)
	users.Post("/sync", middleware.RequiredAuth(), userHandler.SyncUser)
	users.Get("/:userId", userHandler.GetUser)
	users.Get("/:userId/tweets", tweetHandler.GetUserTweets)

	v1.Post("/twitter/followers", middleware.RequiredAuth(), twitterHandler.GetFollowers)

	app.Use(func(c *fiber.Ctx) error {
		return shared.NewNotFoundError(nil, "Not Found")
	})

	return app
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept  json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}
