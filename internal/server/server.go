// Package server exposes the projection engine over a small JSON API.
package server

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/ruralsim/property-calculator/internal/calculation"
	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/internal/output"
)

const (
	routeProject = "/api/v1/project"
	routeStress  = "/api/v1/stress"
	routeHealth  = "/healthz"
)

// Server routes API requests to the projection engine. One engine instance
// serves all requests; projections are stateless so this is safe.
type Server struct {
	engine *calculation.Engine
	logger *zap.Logger
}

// New builds a server around an engine. A nil logger disables request logs.
func New(engine *calculation.Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{engine: engine, logger: logger}
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("api server listening", zap.String("addr", addr))
	if err := fasthttp.ListenAndServe(addr, s.Handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Handler is the fasthttp entry point for all routes.
func (s *Server) Handler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	switch path {
	case routeHealth:
		s.handleHealth(ctx)
	case routeProject:
		s.requirePost(ctx, func(input *domain.ScenarioInput) (*output.Report, error) {
			result, err := s.engine.Project(input)
			if err != nil {
				return nil, err
			}
			return output.NewReport(input, result, nil), nil
		})
	case routeStress:
		s.requirePost(ctx, func(input *domain.ScenarioInput) (*output.Report, error) {
			result, stress, err := s.engine.EvaluateScenarios(input)
			if err != nil {
				return nil, err
			}
			return output.NewReport(input, result, stress), nil
		})
	default:
		s.writeError(ctx, fasthttp.StatusNotFound, fmt.Sprintf("unknown route %s", path))
	}
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(`{"status":"ok"}`)
}

// requirePost decodes the scenario body, runs the projection, and writes the
// report. All pipeline warnings travel inside the report body; only a
// malformed request or a nil input is an HTTP error.
func (s *Server) requirePost(ctx *fasthttp.RequestCtx, run func(*domain.ScenarioInput) (*output.Report, error)) {
	if !ctx.IsPost() {
		s.writeError(ctx, fasthttp.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var input domain.ScenarioInput
	if err := json.Unmarshal(ctx.PostBody(), &input); err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := run(&input)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	s.logger.Info("projection served",
		zap.String("run_id", report.RunID),
		zap.String("path", string(ctx.Path())),
		zap.Int("years", len(report.Result.Rows)))

	data, err := json.Marshal(report)
	if err != nil {
		s.writeError(ctx, fasthttp.StatusInternalServerError, "failed to encode response")
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

type errorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (s *Server) writeError(ctx *fasthttp.RequestCtx, status int, message string) {
	s.logger.Warn("request failed", zap.Int("status", status), zap.String("message", message))
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	data, _ := json.Marshal(errorResponse{Status: status, Message: message})
	ctx.SetBody(data)
}
