package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"linkup/backend/internal/auth"
	"linkup/backend/internal/config"
	"linkup/backend/internal/database"
	"linkup/backend/internal/handler"
	"linkup/backend/internal/middleware"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Linkup API
// @version         1.0
// @description     This is the API for the Linkup service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// 10 auth attempts per minute per IP, small burst allowance.
	authLimiter := middleware.NewIPRateLimiter(10, time.Minute, 5)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(middleware.RateLimit(authLimiter))
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/:id", handler.GetUserByID)
		}

		// Follow routes (protected)
		followRoutes := apiV1.Group("/")
		followRoutes.Use(auth.AuthMiddleware())
		{
			followRoutes.POST("/follow/:id", handler.ToggleFollow)
			followRoutes.GET("/followers", handler.GetFollowers)
			followRoutes.GET("/following", handler.GetFollowing)
		}

		// Friendship routes (protected)
		friendRoutes := apiV1.Group("/friends")
		friendRoutes.Use(auth.AuthMiddleware())
		{
			friendRoutes.GET("", handler.ListFriends)
			friendRoutes.POST("/send", handler.SendFriendRequest)
			friendRoutes.POST("/accept", handler.AcceptFriendRequest)
			friendRoutes.POST("/unfriend", handler.Unfriend)
			friendRoutes.POST("/block", handler.BlockUser)
			friendRoutes.POST("/restrict", handler.RestrictUser)
			friendRoutes.GET("/requests", handler.FriendRequests)
			friendRoutes.GET("/pending", handler.PendingRequests)
		}

		// Post routes: reads are public, writes require auth
		postRoutes := apiV1.Group("/posts")
		{
			postRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetPosts)
			postRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetPostByID)
			postRoutes.POST("", auth.AuthMiddleware(), handler.CreatePost)
			postRoutes.PUT("/:id", auth.AuthMiddleware(), handler.UpdatePost)
			postRoutes.DELETE("/:id", auth.AuthMiddleware(), handler.DeletePost)
			postRoutes.POST("/:id/like", auth.AuthMiddleware(), handler.ToggleLike)
		}

		// Comment routes (protected)
		commentRoutes := apiV1.Group("/comments")
		commentRoutes.Use(auth.AuthMiddleware())
		{
			commentRoutes.POST("", handler.CreateComment)
			commentRoutes.PUT("/:id", handler.UpdateComment)
			commentRoutes.DELETE("/:id", handler.DeleteComment)
		}

		// Message routes (protected)
		messageRoutes := apiV1.Group("/messages")
		messageRoutes.Use(auth.AuthMiddleware())
		{
			messageRoutes.GET("", handler.GetMessages)
			messageRoutes.POST("", handler.SendMessage)
			messageRoutes.PUT("/:id", handler.UpdateMessage)
			messageRoutes.DELETE("/:id", handler.DeleteMessage)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.GET("/stream", handler.StreamNotifications)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
			notificationRoutes.DELETE("/:id", handler.DeleteNotification)
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Println("Server is running on " + addr)
	fmt.Println("Swagger UI is available at http://localhost" + addr + "/swagger/index.html")
	log.Fatal(router.Run(addr))
}
