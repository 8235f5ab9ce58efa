// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package api

import (
	"log/slog"
	"net/http"

	"github.com/treadstock/treadstock/internal/platform/respond"
)

// HealthDependencies carries the pingers the readiness probe runs. A nil
// pinger skips its check (the sheets mirror, for instance, has none).
type HealthDependencies struct {
	CheckDatabase func() error
	CheckCache    func() error
}

type probeResult struct {
	Name  string `json:"name"`
	IsOK  bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers builds the /health liveness and /ready readiness
// handlers. Liveness only proves the process answers; readiness pings each
// dependency and reports 503 "degraded" if any fails.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	probes := []struct {
		name string
		ping func() error
	}{
		{"postgres", deps.CheckDatabase},
		{"redis", deps.CheckCache},
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := make([]probeResult, 0, len(probes))
		ready := true

		for _, probe := range probes {
			if probe.ping == nil {
				continue
			}
			result := probeResult{Name: probe.name, IsOK: true}
			if err := probe.ping(); err != nil {
				result.IsOK = false
				result.Error = err.Error()
				ready = false
				logger.Error("readiness_check_failed",
					slog.String("dependency", probe.name),
					slog.Any("error", err),
				)
			}
			results = append(results, result)
		}

		status, httpStatus := "ready", http.StatusOK
		if !ready {
			status, httpStatus = "degraded", http.StatusServiceUnavailable
		}

		respond.JSON(writer, httpStatus, map[string]any{
			"status": status,
			"checks": results,
		})
	}

	return liveness, readiness
}
