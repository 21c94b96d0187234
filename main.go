package main

import (
	"companion-matcher/internal/config"
	"companion-matcher/internal/handlers"
	"companion-matcher/internal/matching"
	"companion-matcher/internal/middleware"
	"companion-matcher/internal/redis"
	"companion-matcher/internal/store"
	"companion-matcher/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	// Load configuration
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// Build stores: directory first, then the stores that validate against it
	directory := store.NewDirectory()
	conversations := store.NewConversationStore(directory)
	messages := store.NewMessageStore(directory, conversations, cfg.MaxMessageLength)
	engine := matching.NewEngine(directory)

	// Shortlists live in memory unless a Redis URL is configured
	var shortlist store.ShortlistRegistry = store.NewMemoryShortlist()
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer redisClient.Close()
		shortlist = redis.NewShortlist(redisClient)
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize handlers
	handlers.RegisterValidators()
	userHandler := handlers.NewUserHandler(directory, shortlist, cfg)
	matchHandler := handlers.NewMatchHandler(engine)
	messageHandler := handlers.NewMessageHandler(messages, conversations, directory, cfg, hub)

	// Setup routes
	router := setupRoutes(userHandler, matchHandler, messageHandler, hub, cfg)

	logrus.WithField("port", cfg.Port).Info("Server starting")
	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func setupRoutes(userHandler *handlers.UserHandler, matchHandler *handlers.MatchHandler,
	messageHandler *handlers.MessageHandler, hub *websocket.Hub, cfg *config.Config) *gin.Engine {

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	api := router.Group("/api")
	{
		api.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// Profiles, matching and shortlists
		api.POST("/users", userHandler.CreateUser)
		api.GET("/matches/:username", matchHandler.GetMatches)
		api.POST("/shortlist", userHandler.AddToShortlist)
		api.GET("/shortlist/:username", userHandler.GetShortlist)

		// Messaging
		api.POST("/messages/:username", messageHandler.SendMessage)
		api.GET("/conversations/:username", messageHandler.GetConversations)
		api.GET("/messages/:username/:conversationId", messageHandler.GetMessages)
		api.PUT("/messages/:username/:conversationId/read", messageHandler.MarkAsRead)

		// WebSocket endpoint
		api.GET("/ws", func(c *gin.Context) {
			websocket.HandleWebSocket(hub, c)
		})
	}

	return router
}
