package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Handler        *Handler
	Logger         *zap.Logger
	AllowedOrigins []string
	SecureCookies  bool
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(cfg.Logger))
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(CORS(cfg.AllowedOrigins))
	}

	// Health
	r.GET("/healthcheck", cfg.Handler.HealthCheck)

	api := r.Group("/api")
	api.Use(Session(cfg.SecureCookies))
	{
		// Lesson
		api.GET("/lesson", cfg.Handler.GetLesson)

		// Quiz
		api.GET("/quiz", cfg.Handler.GetQuiz)
		api.POST("/quiz/answer", cfg.Handler.AnswerQuiz)
		api.POST("/quiz/restart", cfg.Handler.RestartQuiz)

		// Audio
		api.GET("/audio/vocabulary/:index", cfg.Handler.VocabularyAudio)
		api.GET("/audio/sentences/:index", cfg.Handler.SentenceAudio)
		api.GET("/audio/quiz/:step", cfg.Handler.QuizAudio)
	}

	return r
}
