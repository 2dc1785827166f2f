package main

import (
	"log"
	"strconv"
	"time"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/config"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/database"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/handlers"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/metrics"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/middleware"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"
	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/ws"

	_ "github.com/selimdilsadercan/ne-yapsak-sub000/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Ne Yapsak API
// @version         1.0
// @description     Group activity planner: lists, live swipe sessions, vote aggregation
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "ne-yapsak-backend")
	metrics.Init()

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()
	if bridge := ws.NewBridge(hub, cfg.RedisAddr, cfg.RedisPassword); bridge != nil {
		bridge.Start()
		defer bridge.Stop()
	}

	ttlHours, _ := strconv.Atoi(cfg.SessionTTLHours)
	if ttlHours <= 0 {
		ttlHours = 24
	}

	authService := services.NewAuthService(db, cfg.JWTSecret)
	listService := services.NewListService(db)
	scoringService := services.NewScoringService()
	sessionService := services.NewSessionService(db, scoringService, time.Duration(ttlHours)*time.Hour)
	membershipService := services.NewMembershipService(db)
	voteService := services.NewVoteService(db, scoringService)
	adhocService := services.NewAdhocService(db)

	authHandler := handlers.NewAuthHandler(authService)
	listHandler := handlers.NewListHandler(listService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	memberHandler := handlers.NewMemberHandler(membershipService, sessionService, hub)
	voteHandler := handlers.NewVoteHandler(voteService, sessionService, hub)
	adhocHandler := handlers.NewAdhocHandler(adhocService, sessionService, hub)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()

	r.Use(middleware.RequestLogger())
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/metrics", metrics.Handler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:id", wsHandler.HandleWebSocket)

	sweepMin, _ := strconv.Atoi(cfg.SweepIntervalMin)
	if sweepMin > 0 {
		sweeper := services.NewExpirySweeper(db, hub, time.Duration(sweepMin)*time.Minute)
		sweeper.Start()
		defer sweeper.Stop()
	} else {
		log.Println("SWEEP_INTERVAL_MIN not set, expiry sweeper disabled")
	}

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		lists := api.Group("/lists")
		lists.Use(middleware.JWTAuth(authService))
		{
			lists.GET("", listHandler.GetMyLists)
			lists.POST("", listHandler.CreateList)
			lists.GET("/:id", listHandler.GetList)
			lists.POST("/:id/items", listHandler.AddItem)
		}

		sessions := api.Group("/sessions")
		sessions.Use(middleware.JWTAuth(authService))
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.GET("/:id/leaderboard", sessionHandler.GetLeaderboard)

			sessions.POST("/:id/join", memberHandler.Join)
			sessions.PUT("/:id/ready", memberHandler.SetReady)
			sessions.POST("/:id/heartbeat", memberHandler.Heartbeat)
			sessions.POST("/:id/leave", memberHandler.Leave)

			sessions.POST("/:id/votes", voteHandler.CastVote)
			sessions.GET("/:id/votes", voteHandler.GetVotes)

			sessions.POST("/:id/items", adhocHandler.AddItem)
			sessions.GET("/:id/items", adhocHandler.ListItems)
		}
	}

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
