package riskapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mfrandev/risk-assessment-engine/internal/greeks"
	"github.com/mfrandev/risk-assessment-engine/internal/hvar"
	"github.com/mfrandev/risk-assessment-engine/internal/instrument"
	"github.com/mfrandev/risk-assessment-engine/internal/mcvar"
)

// HVaRRequest is the body for POST /v1/hvar.
type HVaRRequest struct {
	Portfolio  []instrument.Instrument `json:"portfolio"`
	ShocksFlat []float64               `json:"shocks_flat"`
	T          int                     `json:"t"`
	U          int                     `json:"u"`
	Alpha      float64                 `json:"alpha"`
}

// HVaRResponse is the body returned from POST /v1/hvar.
type HVaRResponse struct {
	RunID string  `json:"run_id"`
	VaR   float64 `json:"var"`
	ES    float64 `json:"es"`
}

func (s *Server) handleHVaR(w http.ResponseWriter, r *http.Request) {
	var req HVaRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	book := instrument.ToSoA(req.Portfolio)

	start := time.Now()
	runsInFlight.Inc()
	res, err := hvar.Compute(book, req.ShocksFlat, req.T, req.U, req.Alpha, hvar.Options{})
	runsInFlight.Dec()
	runsTotal.WithLabelValues("hvar").Inc()
	runLatency.WithLabelValues("hvar").Observe(time.Since(start).Seconds())

	if err != nil {
		s.hub.Publish(RunEvent{RunID: runID, Status: "failed", Err: err.Error()})
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := HVaRResponse{RunID: runID, VaR: res.VaR, ES: res.ES}
	s.cacheResult(r.Context(), runID, resp)
	s.hub.Publish(RunEvent{RunID: runID, Status: "completed", VaR: res.VaR, ES: res.ES})
	writeJSON(w, http.StatusOK, resp)
}

// MCVaRRequest is the body for POST /v1/mcvar.
type MCVaRRequest struct {
	Portfolio []instrument.Instrument `json:"portfolio"`
	Mu        []float64               `json:"mu"`
	Sigma     []float64               `json:"sigma"`
	Horizon   float64                 `json:"horizon"`
	Alpha     float64                 `json:"alpha"`
	Paths     int                     `json:"paths"`
	Seed      int64                   `json:"seed"`
	Threads   int                     `json:"threads"`
}

// MCVaRResponse is the body returned from POST /v1/mcvar.
type MCVaRResponse struct {
	RunID string  `json:"run_id"`
	VaR   float64 `json:"var"`
	ES    float64 `json:"es"`
}

func (s *Server) handleMCVaR(w http.ResponseWriter, r *http.Request) {
	var req MCVaRRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	book := instrument.ToSoA(req.Portfolio)
	s.hub.Publish(RunEvent{RunID: runID, Status: "started"})

	start := time.Now()
	runsInFlight.Inc()
	res, err := mcvar.Compute(book, mcvar.Params{
		Mu: req.Mu, Sigma: req.Sigma, Horizon: req.Horizon,
		Alpha: req.Alpha, Paths: req.Paths, Seed: req.Seed, Threads: req.Threads,
	})
	runsInFlight.Dec()
	runsTotal.WithLabelValues("mcvar").Inc()
	runLatency.WithLabelValues("mcvar").Observe(time.Since(start).Seconds())
	pathsComputed.Add(float64(req.Paths))

	if err != nil {
		s.hub.Publish(RunEvent{RunID: runID, Status: "failed", Err: err.Error()})
		writeError(w, http.StatusBadRequest, err)
		return
	}

	resp := MCVaRResponse{RunID: runID, VaR: res.VaR, ES: res.ES}
	s.cacheResult(r.Context(), runID, resp)
	s.hub.Publish(RunEvent{RunID: runID, Status: "completed", VaR: res.VaR, ES: res.ES})
	writeJSON(w, http.StatusOK, resp)
}

// GreeksRequest is the body for POST /v1/greeks.
type GreeksRequest struct {
	Portfolio    []instrument.Instrument `json:"portfolio"`
	SpotOverride *float64                `json:"spot_override,omitempty"`
}

// GreeksResponse is the body returned from POST /v1/greeks.
type GreeksResponse struct {
	RunID       string      `json:"run_id"`
	PerContract interface{} `json:"per_contract"`
	PerPosition interface{} `json:"per_position"`
	Totals      interface{} `json:"totals"`
}

func (s *Server) handleGreeks(w http.ResponseWriter, r *http.Request) {
	var req GreeksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	runID := uuid.NewString()
	book := instrument.ToSoA(req.Portfolio)

	start := time.Now()
	res := greeks.Compute(book, req.SpotOverride)
	runsTotal.WithLabelValues("greeks").Inc()
	runLatency.WithLabelValues("greeks").Observe(time.Since(start).Seconds())

	resp := GreeksResponse{
		RunID:       runID,
		PerContract: res.PerContract,
		PerPosition: res.PerPosition,
		Totals:      res.Totals,
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetRun returns a cached result by run ID, or 404 on a miss.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request, runID string) {
	var raw json.RawMessage
	hit, err := s.cache.Get(r.Context(), runID, &raw)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !hit {
		writeError(w, http.StatusNotFound, errRunNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(raw)
}

func (s *Server) cacheResult(ctx context.Context, runID string, v any) {
	// Best-effort: a cache failure never fails the request.
	if err := s.cache.Set(ctx, runID, v); err != nil {
		slog.Warn("riskapi: failed to cache run result", "run_id", runID, "err", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
