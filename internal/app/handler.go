package app

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/garyellow/syllabus-assistant-go/internal/ctxutil"
	domerrors "github.com/garyellow/syllabus-assistant-go/internal/errors"
	"github.com/garyellow/syllabus-assistant-go/internal/sentry"
	"github.com/garyellow/syllabus-assistant-go/internal/stringutil"
)

const contentTypeText = "text/plain; charset=utf-8"

// askRequest is the /api/ask body. Query is untyped so that a non-string
// value is reported as a missing query rather than malformed JSON.
type askRequest struct {
	Query any `json:"query"`
}

// query returns the query string, or "" when it is absent or not a string.
func (r askRequest) query() string {
	s, ok := r.Query.(string)
	if !ok {
		return ""
	}
	return s
}

func (a *Application) handleAsk(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()
	log := a.logger.WithModule("http")

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).DebugContext(ctx, "Rejected malformed body")
		a.metrics.RecordRequest("none", "invalid", time.Since(start).Seconds())
		c.Data(http.StatusBadRequest, contentTypeText, []byte(domerrors.GetUserMessage(domerrors.ErrInvalidJSON)))
		return
	}

	query := req.query()
	if stringutil.IsBlank(query) {
		a.metrics.RecordRequest("none", "invalid", time.Since(start).Seconds())
		c.Data(http.StatusBadRequest, contentTypeText, []byte(domerrors.GetUserMessage(domerrors.ErrMissingQuery)))
		return
	}

	answer, err := a.answerer.Answer(ctx, query)
	if err != nil {
		switch {
		case domerrors.IsInvalidInput(err):
			a.metrics.RecordRequest("none", "invalid", time.Since(start).Seconds())
			c.Data(http.StatusBadRequest, contentTypeText, []byte(domerrors.GetUserMessage(err)))
		case domerrors.IsMissingCredential(err):
			log.WithError(err).WarnContext(ctx, "Generative answer requested without credential")
			a.metrics.RecordRequest("none", "error", time.Since(start).Seconds())
			c.Data(http.StatusInternalServerError, contentTypeText, []byte(domerrors.GetUserMessage(err)))
		default:
			log.WithError(err).ErrorContext(ctx, "Answer failed")
			sentry.CaptureException(ctx, err, map[string]string{"component": "http"})
			a.metrics.RecordRequest("none", "error", time.Since(start).Seconds())
			c.Data(http.StatusInternalServerError, contentTypeText, []byte("Internal server error"))
		}
		return
	}

	c.Request = c.Request.WithContext(ctxutil.WithRoute(ctx, answer.RoutedTo))
	a.metrics.RecordRequest(answer.RoutedTo, "success", time.Since(start).Seconds())
	c.Data(http.StatusOK, contentTypeText, []byte(answer.Text))
}

func preflight(c *gin.Context) {
	c.AbortWithStatus(http.StatusNoContent)
}

func methodNotAllowed(c *gin.Context) {
	c.Data(http.StatusMethodNotAllowed, contentTypeText, []byte("Method not allowed"))
}

func metricsHandler(registry *prometheus.Registry) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
