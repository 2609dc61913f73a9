package router

import (
	"context"
	"errors"
	"net/http"

	"github.com/DjordjeVuckovic/news-mann/internal/apperr"
	"github.com/DjordjeVuckovic/news-mann/internal/domain"
	"github.com/DjordjeVuckovic/news-mann/internal/pipeline"
	"github.com/labstack/echo/v4"
)

type DigestRunner interface {
	Run(ctx context.Context, topic string) (*pipeline.Result, error)
}

type ReflectionRunner interface {
	Run(ctx context.Context, topic string) (*pipeline.ReflectionResult, error)
}

type NewsRouter struct {
	e          *echo.Echo
	digest     DigestRunner
	reflection ReflectionRunner
	fetcher    pipeline.Fetcher
}

func NewNewsRouter(e *echo.Echo, digest DigestRunner, reflection ReflectionRunner, fetcher pipeline.Fetcher) *NewsRouter {
	return &NewsRouter{
		e:          e,
		digest:     digest,
		reflection: reflection,
		fetcher:    fetcher,
	}
}

func (r *NewsRouter) Bind() {
	g := r.e.Group("/news")
	g.GET("/process/:topic", r.processHandler)
	g.GET("/fetch/:topic", r.fetchHandler)
	g.GET("/reflect/:topic", r.reflectHandler)
}

type SkippedResponse struct {
	Status  pipeline.Status  `json:"status"`
	Message string           `json:"message"`
	Metrics pipeline.Metrics `json:"metrics"`
}

type FailedResponse struct {
	Status  pipeline.Status  `json:"status"`
	Error   string           `json:"error"`
	Metrics pipeline.Metrics `json:"metrics"`
}

type FetchResponse struct {
	Status          pipeline.Status      `json:"status"`
	FetchedArticles int                  `json:"fetched_articles"`
	Data            []domain.RawDocument `json:"data"`
}

// processHandler godoc
// @Summary Fetch, summarize, validate and store news for a topic
// @Description Runs one digest. A topic processed within the freshness window is skipped with 429.
// @Tags news
// @Produce json
// @Param topic path string true "News topic, e.g. technology"
// @Success 200 {object} pipeline.Result
// @Failure 400 {object} map[string]string
// @Failure 429 {object} SkippedResponse
// @Failure 500 {object} FailedResponse
// @Router /news/process/{topic} [get]
func (r *NewsRouter) processHandler(c echo.Context) error {
	res, err := r.digest.Run(c.Request().Context(), c.Param("topic"))
	if err == nil {
		return c.JSON(http.StatusOK, res)
	}

	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return err
	}

	var metrics pipeline.Metrics
	if res != nil {
		metrics = res.Metrics
	}

	var gs *apperr.GateSkip
	if errors.As(err, &gs) {
		return c.JSON(http.StatusTooManyRequests, SkippedResponse{
			Status:  pipeline.StatusSkipped,
			Message: gs.Message,
			Metrics: metrics,
		})
	}

	return c.JSON(http.StatusInternalServerError, FailedResponse{
		Status:  pipeline.StatusError,
		Error:   err.Error(),
		Metrics: metrics,
	})
}

// fetchHandler godoc
// @Summary Preview raw search results for a topic
// @Tags news
// @Produce json
// @Param topic path string true "News topic"
// @Success 200 {object} FetchResponse
// @Failure 500 {object} map[string]string
// @Router /news/fetch/{topic} [get]
func (r *NewsRouter) fetchHandler(c echo.Context) error {
	topic := c.Param("topic")
	if topic == "" {
		return apperr.NewValidation("topic must not be empty")
	}

	docs, err := r.fetcher.Fetch(c.Request().Context(), topic, 0)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, FetchResponse{
		Status:          pipeline.StatusSuccess,
		FetchedArticles: len(docs),
		Data:            docs,
	})
}

// reflectHandler godoc
// @Summary Summarize, critique and refine news for a topic without storing it
// @Tags news
// @Produce json
// @Param topic path string true "News topic"
// @Success 200 {object} pipeline.ReflectionResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /news/reflect/{topic} [get]
func (r *NewsRouter) reflectHandler(c echo.Context) error {
	res, err := r.reflection.Run(c.Request().Context(), c.Param("topic"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
