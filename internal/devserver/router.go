package devserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/studybuddy/internal/middleware"
)

// NewRouter собирает gin-роутер контрактного сервера со всеми маршрутами
// клиентского API. limiter может быть nil — тогда генерация уроков не лимитируется.
func NewRouter(h *Handler, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.Default()

	// Devserver слушает только локально, доверяем loopback
	if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
		log.Printf("Warning: failed to set trusted proxies: %v", err)
	}

	// Настройка CORS: мобильное приложение в dev-режиме ходит с других портов
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:8081", "http://localhost:19006", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		questions := api.Group("/questions")
		{
			questions.GET("/book/:bookId", middleware.ExtractUintParam("bookId", "bookID"), h.GetQuestionsByBook)
			questions.POST("/book/:bookId", middleware.ExtractUintParam("bookId", "bookID"), h.CreateQuestion)
			questions.PUT("/:questionId", middleware.ExtractUintParam("questionId", "questionID"), h.UpdateQuestion)
			questions.DELETE("/:questionId", middleware.ExtractUintParam("questionId", "questionID"), h.DeleteQuestion)
		}

		books := api.Group("/books")
		{
			books.GET("", h.ListBooks)
			books.POST("", h.CreateBook)
			books.PATCH("/:id", middleware.ExtractUintParam("id", "bookID"), h.UpdateBook)
			books.DELETE("/:id", middleware.ExtractUintParam("id", "bookID"), h.DeleteBook)
			books.PATCH("/:id/study", middleware.ExtractUintParam("id", "bookID"), h.MarkBookStudied)
		}

		buddies := api.Group("/tomadachi")
		{
			buddies.POST("", h.CreateBuddy)
			buddies.GET("/:userId/:buddyId",
				middleware.ExtractUintParam("userId", "userID"),
				middleware.ExtractUintParam("buddyId", "buddyID"),
				h.GetBuddy)
			buddies.PATCH("/:userId/:buddyId",
				middleware.ExtractUintParam("userId", "userID"),
				middleware.ExtractUintParam("buddyId", "buddyID"),
				h.UpdateBuddy)
			buddies.DELETE("/:userId/:buddyId",
				middleware.ExtractUintParam("userId", "userID"),
				middleware.ExtractUintParam("buddyId", "buddyID"),
				h.DeleteBuddy)
		}

		// Генерация уроков — дорогая операция, при наличии Redis лимитируем
		if limiter != nil {
			api.POST("/generate-lesson/", limiter.Limit(middleware.DefaultLessonRateLimitConfig()), h.GenerateLesson)
		} else {
			api.POST("/generate-lesson/", h.GenerateLesson)
		}
	}

	return router
}
