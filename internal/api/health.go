// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

// HealthDependencies names the probes consulted by the readiness endpoint.
type HealthDependencies struct {
	// CheckDatabase pings the catalog store.
	CheckDatabase func() error

	// CheckSessions pings the session store behind the visit counter.
	CheckSessions func() error
}

type healthHandler struct {
	checks []namedCheck
	logger *slog.Logger
}

type namedCheck struct {
	name  string
	probe func() error
}

type checkResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the liveness and readiness handlers. Nil probes are skipped.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	handler := &healthHandler{logger: logger}
	if deps.CheckDatabase != nil {
		handler.checks = append(handler.checks, namedCheck{name: "postgres", probe: deps.CheckDatabase})
	}
	if deps.CheckSessions != nil {
		handler.checks = append(handler.checks, namedCheck{name: "redis", probe: deps.CheckSessions})
	}
	return handler.liveness, handler.readiness
}

// liveness handles GET /health.
func (handler *healthHandler) liveness(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{"status": "ok"})
}

// readiness handles GET /ready. Any failing probe turns the answer into 503.
func (handler *healthHandler) readiness(writer http.ResponseWriter, request *http.Request) {
	results := make([]checkResult, 0, len(handler.checks))
	status, code := "ready", http.StatusOK

	for _, check := range handler.checks {
		result := checkResult{Name: check.name, IsOK: true}
		if err := check.probe(); err != nil {
			result.IsOK = false
			result.Error = err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			handler.logger.Error("readiness_check_failed", slog.String("dependency", check.name), slog.Any("error", err))
		}
		results = append(results, result)
	}

	respond.JSON(writer, code, respond.SuccessEnvelope{Data: map[string]any{
		"status": status,
		"checks": results,
	}})
}
