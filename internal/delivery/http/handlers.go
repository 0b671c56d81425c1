package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aliskhannn/amis-classroom-bot/internal/domain/entities"
	"github.com/aliskhannn/amis-classroom-bot/internal/service"
)

const audioStatusHeader = "X-Audio-Status"

type LessonService interface {
	Lesson(ctx context.Context) entities.Lesson
	Playback(ctx context.Context, ref service.AudioRef) (*service.Playback, error)
}

type QuizService interface {
	State(ctx context.Context, sessionID string) entities.QuizState
	Question(step int) (entities.Question, bool)
	Answer(ctx context.Context, sessionID string, step int, choice string) *service.AnswerResult
	Restart(ctx context.Context, sessionID string) entities.QuizState
}

type AssetOpener interface {
	Open(path string) (io.ReadCloser, int64, error)
}

type Handler struct {
	lesson LessonService
	quiz   QuizService
	assets AssetOpener
	logger *zap.Logger
}

func NewHandler(lesson LessonService, quiz QuizService, assets AssetOpener, logger *zap.Logger) *Handler {
	return &Handler{lesson: lesson, quiz: quiz, assets: assets, logger: logger}
}

type questionView struct {
	Step     int      `json:"step"`
	Kind     string   `json:"kind"`
	Title    string   `json:"title"`
	Prompt   string   `json:"prompt,omitempty"`
	Hint     string   `json:"hint,omitempty"`
	Options  []string `json:"options"`
	AudioURL string   `json:"audio_url,omitempty"`
}

type quizView struct {
	Step      int           `json:"step"`
	Total     int           `json:"total"`
	Score     int           `json:"score"`
	Progress  float64       `json:"progress"`
	Completed bool          `json:"completed"`
	Question  *questionView `json:"question,omitempty"`
}

type answerRequest struct {
	Step   *int   `json:"step" binding:"required"`
	Choice string `json:"choice" binding:"required"`
}

type answerResponse struct {
	Outcome     entities.Outcome `json:"outcome"`
	Correct     bool             `json:"correct"`
	Feedback    string           `json:"feedback,omitempty"`
	Celebration string           `json:"celebration,omitempty"`
	State       quizView         `json:"state"`
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/lesson
func (h *Handler) GetLesson(c *gin.Context) {
	RespondOK(c, gin.H{"lesson": h.lesson.Lesson(c.Request.Context())})
}

// GET /api/quiz
func (h *Handler) GetQuiz(c *gin.Context) {
	state := h.quiz.State(c.Request.Context(), sessionID(c))
	RespondOK(c, h.view(state))
}

// POST /api/quiz/answer
func (h *Handler) AnswerQuiz(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	res := h.quiz.Answer(c.Request.Context(), sessionID(c), *req.Step, req.Choice)

	resp := answerResponse{
		Outcome:  res.Outcome,
		Correct:  res.Correct(),
		Feedback: res.Feedback,
		State:    h.view(res.State),
	}
	if res.Correct() {
		resp.Celebration = res.Question.Celebration
	}

	RespondOK(c, resp)
}

// POST /api/quiz/restart
func (h *Handler) RestartQuiz(c *gin.Context) {
	state := h.quiz.Restart(c.Request.Context(), sessionID(c))
	RespondOK(c, h.view(state))
}

// GET /api/audio/vocabulary/:index
func (h *Handler) VocabularyAudio(c *gin.Context) {
	h.serveIndexedAudio(c, service.RefVocabulary, "index")
}

// GET /api/audio/sentences/:index
func (h *Handler) SentenceAudio(c *gin.Context) {
	h.serveIndexedAudio(c, service.RefSentence, "index")
}

// GET /api/audio/quiz/:step
func (h *Handler) QuizAudio(c *gin.Context) {
	h.serveIndexedAudio(c, service.RefQuestion, "step")
}

func (h *Handler) serveIndexedAudio(c *gin.Context, kind service.AudioRefKind, param string) {
	idx, err := strconv.Atoi(c.Param(param))
	if err != nil || idx < 0 {
		RespondError(c, http.StatusBadRequest, "invalid_index", fmt.Errorf("invalid %s %q", param, c.Param(param)))
		return
	}

	h.serveAudio(c, service.AudioRef{Kind: kind, Index: idx})
}

// serveAudio streams the recording or synthesized speech behind ref.
func (h *Handler) serveAudio(c *gin.Context, ref service.AudioRef) {
	pb, err := h.lesson.Playback(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, service.ErrUnknownAudioRef) {
			RespondError(c, http.StatusNotFound, "unknown_audio_ref", err)
			return
		}
		h.logger.Error("audio playback failed", zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "internal_error", err)
		return
	}

	if pb.Muted {
		c.Header(audioStatusHeader, "degraded")
		c.Status(http.StatusNoContent)
		return
	}

	if pb.Source == nil {
		if pb.Missing != nil {
			RespondError(c, http.StatusNotFound, "missing_audio_asset", pb.Missing)
			return
		}
		c.Header(audioStatusHeader, "degraded")
		c.Status(http.StatusNoContent)
		return
	}

	src := pb.Source
	if pb.Missing != nil {
		c.Header(audioStatusHeader, "fallback")
	}

	switch src.Kind {
	case entities.SourceAsset:
		rc, size, err := h.assets.Open(src.Path)
		if err != nil {
			h.logger.Error("open audio asset", zap.String("path", src.Path), zap.Error(err))
			RespondError(c, http.StatusInternalServerError, "internal_error", err)
			return
		}
		defer rc.Close()

		c.DataFromReader(http.StatusOK, size, src.MIMEType(), rc, nil)

	case entities.SourceSynthesized:
		c.Data(http.StatusOK, src.MIMEType(), src.Data)

	default:
		RespondError(c, http.StatusInternalServerError, "internal_error", fmt.Errorf("unsupported audio source %q", src.Kind))
	}
}

func (h *Handler) view(state entities.QuizState) quizView {
	v := quizView{
		Step:      state.Step,
		Total:     entities.TotalSteps,
		Score:     state.Score,
		Progress:  state.Progress(),
		Completed: state.Completed(),
	}
	if v.Completed {
		return v
	}

	q, ok := h.quiz.Question(state.Step)
	if !ok {
		return v
	}

	v.Question = &questionView{
		Step:    q.Step,
		Kind:    string(q.Kind),
		Title:   q.Title,
		Prompt:  q.Prompt,
		Hint:    q.Hint,
		Options: q.Options,
	}
	if q.HasAudio() {
		v.Question.AudioURL = fmt.Sprintf("/api/audio/quiz/%d", q.Step)
	}

	return v
}
