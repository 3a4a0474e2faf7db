package main

import (
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, reading env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	db.Init(cfg.DatabaseURL)

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("inkwell_session", store))

	// Middleware
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(middleware.LoadUser())

	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	commentHandler := handlers.NewCommentHandler()

	api := r.Group("/api")

	// Public Routes
	api.POST("/auth/signin", authHandler.SignIn)
	api.POST("/user/signup", authHandler.SignUp)

	// Protected Routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/auth/signout", authHandler.SignOut)
		authorized.GET("/auth/getUserNames", authHandler.GetUserNames)

		authorized.POST("/posts", postHandler.Create)
		authorized.GET("/posts", postHandler.List)
		authorized.GET("/posts/search", postHandler.Search)
		authorized.GET("/posts/category/:category", postHandler.ListByCategory)
		authorized.GET("/posts/user/:userId", postHandler.ListByUser)
		authorized.GET("/posts/:id", postHandler.Get)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.POST("/posts/:id/unlike", postHandler.Unlike)
		authorized.GET("/posts/:id/likes/count", postHandler.LikeCount)

		authorized.POST("/comments", commentHandler.Create)
		authorized.GET("/comments/post/:postId", commentHandler.ListByPost)
		authorized.GET("/comments/post/:postId/paged", commentHandler.PageByPost)
		authorized.GET("/comments/user/:userId", commentHandler.ListByUser)
		authorized.PUT("/comments/:id", commentHandler.Update)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
	}

	log.Info().Str("port", cfg.Port).Msg("inkwell server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
