package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"rihla/cmd/fx/analytics_fx"
	"rihla/cmd/fx/controllers_fx"
	"rihla/cmd/fx/conversation_fx"
	"rihla/cmd/fx/db_fx"
	"rihla/cmd/fx/generator_fx"
	"rihla/cmd/fx/memcache_fx"
	"rihla/cmd/fx/planner_fx"
	"rihla/internal/api/controllers"
	"rihla/pkg/middleware"
	"rihla/pkg/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	app := fx.New(
		db_fx.Module,
		memcache_fx.Module,
		generator_fx.Module,
		analytics_fx.Module,
		conversation_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	server := &http.Server{
		Addr:              ":" + utils.GetEnvWithDefault("PORT", "8080"),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Printf("Starting HTTP server at %s", server.Addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	chatController *controllers.ChatController,
	conversationController *controllers.ConversationController,
	itineraryController *controllers.ItineraryController,
	feedbackController *controllers.FeedbackController) *gin.Engine {

	r := gin.New()
	// ClientIP feeds the per-IP limiter; forwarded headers count only from these
	if err := r.SetTrustedProxies(utils.GetEnvList("TRUSTED_PROXIES")); err != nil {
		log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
	}
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware(os.Getenv("CORS_ALLOWED_ORIGINS")))

	validator := utils.NewTokenValidator(os.Getenv("JWT_SECRET"))
	if !validator.Enabled() {
		log.Println("JWT_SECRET not set, only guest sessions are accepted")
	}
	limiter := middleware.NewRateLimiter(utils.GetEnvInt("CHAT_RATE_LIMIT", 20))

	RegisterRoutes(r, middleware.AuthMiddleware(validator), limiter,
		chatController, conversationController, itineraryController, feedbackController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	auth gin.HandlerFunc,
	limiter *middleware.RateLimiter,
	chatController *controllers.ChatController,
	conversationController *controllers.ConversationController,
	itineraryController *controllers.ItineraryController,
	feedbackController *controllers.FeedbackController) {

	r.GET("/healthz", func(c *gin.Context) {
		utils.RespondSuccess(c, nil, "ok")
	})

	r.POST("/interpret", chatController.Interpret)

	api := r.Group("/", auth)
	api.POST("/chat", limiter.Limit(), chatController.SendMessage)

	conversations := api.Group("/conversations")
	conversations.GET("", conversationController.List)
	conversations.POST("", conversationController.Create)
	conversations.PATCH("/:id", conversationController.Rename)
	conversations.DELETE("/:id", conversationController.Delete)
	conversations.GET("/:id/messages", conversationController.Messages)
	conversations.GET("/:id/itinerary", itineraryController.Get)
	conversations.PUT("/:id/itinerary", itineraryController.Save)
	conversations.GET("/:id/suggestions", itineraryController.Suggestions)

	api.POST("/messages/:id/feedback", feedbackController.AddFeedback)
	api.GET("/analytics/summary", feedbackController.Summary)
}
