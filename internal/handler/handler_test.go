package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"linkup/backend/internal/auth"
	"linkup/backend/internal/config"
	"linkup/backend/internal/database"
	"linkup/backend/internal/handler"
	"linkup/backend/internal/models"
	"linkup/backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupRouter wires the API routes against a fresh in-memory database, the
// same way main does.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	router := gin.New()
	apiV1 := router.Group("/api/v1")

	authRoutes := apiV1.Group("/auth")
	{
		authRoutes.POST("/register", handler.RegisterUser)
		authRoutes.POST("/login", handler.LoginUser)
	}

	userRoutes := apiV1.Group("/users")
	userRoutes.Use(auth.AuthMiddleware())
	{
		userRoutes.GET("", handler.SearchUsers)
		userRoutes.GET("/me", handler.GetMe)
		userRoutes.GET("/:id", handler.GetUserByID)
	}

	followRoutes := apiV1.Group("/")
	followRoutes.Use(auth.AuthMiddleware())
	{
		followRoutes.POST("/follow/:id", handler.ToggleFollow)
		followRoutes.GET("/followers", handler.GetFollowers)
		followRoutes.GET("/following", handler.GetFollowing)
	}

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

	postRoutes := apiV1.Group("/posts")
	{
		postRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetPosts)
		postRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetPostByID)
		postRoutes.POST("", auth.AuthMiddleware(), handler.CreatePost)
		postRoutes.PUT("/:id", auth.AuthMiddleware(), handler.UpdatePost)
		postRoutes.DELETE("/:id", auth.AuthMiddleware(), handler.DeletePost)
		postRoutes.POST("/:id/like", auth.AuthMiddleware(), handler.ToggleLike)
	}

	commentRoutes := apiV1.Group("/comments")
	commentRoutes.Use(auth.AuthMiddleware())
	{
		commentRoutes.POST("", handler.CreateComment)
		commentRoutes.PUT("/:id", handler.UpdateComment)
		commentRoutes.DELETE("/:id", handler.DeleteComment)
	}

	messageRoutes := apiV1.Group("/messages")
	messageRoutes.Use(auth.AuthMiddleware())
	{
		messageRoutes.GET("", handler.GetMessages)
		messageRoutes.POST("", handler.SendMessage)
		messageRoutes.PUT("/:id", handler.UpdateMessage)
		messageRoutes.DELETE("/:id", handler.DeleteMessage)
	}

	notificationRoutes := apiV1.Group("/notifications")
	notificationRoutes.Use(auth.AuthMiddleware())
	{
		notificationRoutes.GET("", handler.GetNotifications)
		notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
		notificationRoutes.DELETE("/:id", handler.DeleteNotification)
	}

	return router
}

// createAccount inserts a user directly and returns it with a valid token.
func createAccount(t *testing.T, name string) (models.User, string) {
	t.Helper()

	user := models.User{Name: name, Email: name + "@example.com", PasswordHash: "x"}
	require.NoError(t, database.DB.Create(&user).Error)

	token, err := jwt.GenerateToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}
