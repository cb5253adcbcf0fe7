package http

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/GriffinCanCode/relnotes/internal/api/middleware"
	"github.com/GriffinCanCode/relnotes/internal/domain/notes"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/relnotes/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/relnotes/internal/pipeline"
	"github.com/GriffinCanCode/relnotes/internal/providers/fetch"
	"github.com/GriffinCanCode/relnotes/internal/providers/scraper"
	"github.com/GriffinCanCode/relnotes/internal/providers/translate"
	"github.com/GriffinCanCode/relnotes/internal/shared/validate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RunIDHeader names the response header holding the run id
const RunIDHeader = "X-Run-ID"

// maxBody leaves room for JSON escaping around a maximum-size page
const maxBody = 2 * scraper.MaxHTMLSize

// BreakerReporter exposes circuit breaker states for health checks
type BreakerReporter interface {
	BreakerStates() map[string]resilience.State
}

// ParseRequest is the body of POST /v1/parse. Either HTML or URL is
// required; with only a URL the page is fetched.
type ParseRequest struct {
	HTML      string `json:"html"`
	URL       string `json:"url"`
	Origin    string `json:"origin"`
	Translate bool   `json:"translate"`
}

// Handlers contains all HTTP handlers
type Handlers struct {
	parser     *pipeline.Pipeline
	translator *pipeline.Pipeline
	notes      *translate.NotesTranslator
	breakers   []BreakerReporter
	metrics    *monitoring.Metrics
	version    string
	logger     *zap.Logger
}

// Deps groups the handler dependencies. Translating and Translator are
// nil when translation is disabled.
type Deps struct {
	Pipeline    *pipeline.Pipeline
	Translating *pipeline.Pipeline
	Translator  *translate.NotesTranslator
	Breakers    []BreakerReporter
	Metrics     *monitoring.Metrics
	Version     string
	Logger      *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(d Deps) *Handlers {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		parser:     d.Pipeline,
		translator: d.Translating,
		notes:      d.Translator,
		breakers:   d.Breakers,
		metrics:    d.Metrics,
		version:    d.Version,
		logger:     logger,
	}
}

func abort(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{
		"error":      err.Error(),
		"request_id": middleware.GetRequestID(c),
	})
}

func writeDocument(c *gin.Context, status int, v interface{}) {
	data, err := notes.Marshal(v)
	if err != nil {
		abort(c, http.StatusInternalServerError, err)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}

// Health reports service status, running totals and breaker states
func (h *Handlers) Health(c *gin.Context) {
	breakers := make(map[string]string)
	status := "healthy"
	for _, r := range h.breakers {
		for name, state := range r.BreakerStates() {
			breakers[name] = state.String()
			if state == resilience.StateOpen {
				status = "degraded"
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      status,
		"service":     "relnotes",
		"version":     h.version,
		"translation": h.notes != nil,
		"metrics":     h.metrics.Snapshot(),
		"breakers":    breakers,
	})
}

// Parse extracts release notes from inline HTML or a fetched URL
func (h *Handlers) Parse(c *gin.Context) {
	var req ParseRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.HTML == "" && req.URL == "" {
		abort(c, http.StatusBadRequest, errors.New("html or url required"))
		return
	}
	if err := validateParse(req); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	p := h.parser
	if req.Translate {
		if h.translator == nil {
			abort(c, http.StatusServiceUnavailable, errors.New("translation is disabled"))
			return
		}
		p = h.translator
	}

	var (
		run *pipeline.Run
		err error
	)
	if req.HTML != "" {
		run, err = p.Parse(c.Request.Context(), scraper.Input{HTML: req.HTML, URL: req.URL, Origin: req.Origin})
	} else {
		run, err = p.Process(c.Request.Context(), req.URL)
	}
	if run != nil {
		c.Header(RunIDHeader, run.ID.String())
	}
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}

	writeDocument(c, http.StatusOK, run.Document())
}

// Translate translates a posted release-notes document
func (h *Handlers) Translate(c *gin.Context) {
	if h.notes == nil {
		abort(c, http.StatusServiceUnavailable, errors.New("translation is disabled"))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBody))
	if err != nil {
		abort(c, http.StatusRequestEntityTooLarge, err)
		return
	}
	rn, err := notes.Unmarshal(body)
	if err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	if err := validate.Notes(rn); err != nil {
		abort(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.notes.Translate(c.Request.Context(), rn)
	if err != nil {
		abort(c, statusFor(err), err)
		return
	}
	if len(res.Errors) > 0 {
		h.logger.Warn("translation degraded",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int("failed", len(res.Errors)),
		)
	}
	writeDocument(c, http.StatusOK, res.Notes)
}

func validateParse(req ParseRequest) error {
	if req.HTML == "" {
		// fetched, so it must be a remote page
		if err := validate.URL(req.URL, "url", true); err != nil {
			return err
		}
	} else if err := validate.String(req.URL, "url", 0, validate.MaxURLLength, false); err != nil {
		return err
	}
	return validate.Origin(req.Origin, "origin")
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, scraper.ErrInvalidHTML):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case fetch.IsFetchError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
