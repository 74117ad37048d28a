// Package server exposes the calculator registry over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/property-calculators/internal/batch"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/internal/storage"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"go.uber.org/zap"
)

// Options configures a handler. Zero values fall back to defaults.
type Options struct {
	MaxUploadSize    int64
	RequestTimeout   time.Duration
	BatchConcurrency int
	Version          string
	Sink             storage.Sink
}

type handler struct {
	logger        *zap.Logger
	registry      *calculator.Registry
	batch         *batch.Runner
	sink          storage.Sink
	maxUploadSize int64
	timeout       time.Duration
	version       string
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(logger *zap.Logger, registry *calculator.Registry, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = constants.DefaultMaxUploadSizeBytes
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = constants.DefaultRequestTimeout
	}
	if opts.Sink == nil {
		opts.Sink = storage.NopSink{}
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:        logger,
		registry:      registry,
		batch:         batch.NewRunner(registry, opts.BatchConcurrency, opts.Sink, logger),
		sink:          opts.Sink,
		maxUploadSize: opts.MaxUploadSize,
		timeout:       opts.RequestTimeout,
		version:       version,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/calculators", h.handleList)
	mux.HandleFunc("GET /api/calculators/{name}/defaults", h.handleDefaults)
	mux.HandleFunc("POST /api/calculators/{name}/calculate", h.handleCalculate)
	mux.HandleFunc("POST /api/calculators/{name}/validate", h.handleValidate)
	mux.HandleFunc("POST /api/calculators/{name}/validate-field", h.handleValidateField)
	mux.HandleFunc("POST /api/calculators/{name}/report", h.handleReport)
	mux.HandleFunc("POST /api/batch", h.handleBatch)
	mux.HandleFunc("GET /api/version", h.handleVersion)

	return h.middleware(mux)
}

// statusRecorder captures the response status for the access log.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (h *handler) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := strings.TrimSpace(r.Header.Get(constants.RequestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(constants.RequestIDHeader, requestID)

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))

		h.logger.Info("request handled",
			zap.String("op", "server.middleware"),
			zap.String("requestId", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleList(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"calculators": h.registry.List()})
}

func (h *handler) handleVersion(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	runner, ok := h.runner(w, r, "server.handleDefaults")
	if !ok {
		return
	}
	h.writeJSON(w, http.StatusOK, runner.Defaults())
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCalculate"
	runner, ok := h.runner(w, r, op)
	if !ok {
		return
	}
	payload, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	result, err := runner.Calculate(r.Context(), payload, calculator.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		h.respondErr(w, err, op)
		return
	}

	record, err := storage.NewRecord(result, time.Now())
	if err == nil {
		err = h.sink.Save(r.Context(), record)
	}
	if err != nil {
		h.logger.Warn("failed to archive calculation",
			zap.String("op", op),
			zap.String("calculator", result.Calculator),
			zap.Error(err),
		)
	} else {
		w.Header().Set("X-Record-ID", record.ID.String())
	}

	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidate"
	runner, ok := h.runner(w, r, op)
	if !ok {
		return
	}
	payload, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	res, err := runner.Validate(payload, calculator.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		h.respondErr(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

type validateFieldRequest struct {
	Field  string          `json:"field"`
	Value  any             `json:"value"`
	Inputs json.RawMessage `json:"inputs"`
}

func (h *handler) handleValidateField(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleValidateField"
	runner, ok := h.runner(w, r, op)
	if !ok {
		return
	}
	payload, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	var req validateFieldRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if strings.TrimSpace(req.Field) == "" {
		h.respondError(w, http.StatusBadRequest, "field is required", op)
		return
	}

	res, err := runner.ValidateField(req.Field, req.Value, req.Inputs, calculator.FormatJSON)
	if err != nil {
		h.respondErr(w, err, op)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleReport"
	runner, ok := h.runner(w, r, op)
	if !ok {
		return
	}
	payload, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	report, err := runner.Report(payload, calculator.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		h.respondErr(w, err, op)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, report); err != nil {
		h.logger.Error("failed to write report", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	payload, ok := h.readBody(w, r, op)
	if !ok {
		return
	}

	jobs, err := batch.ParseJobs(payload, calculator.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		h.respondErr(w, err, op)
		return
	}

	outcomes, err := h.batch.Run(r.Context(), jobs)
	if err != nil {
		h.respondError(w, http.StatusServiceUnavailable, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{"outcomes": outcomes})
}

func (h *handler) runner(w http.ResponseWriter, r *http.Request, op string) (calculator.Runner, bool) {
	runner, err := h.registry.Get(r.PathValue("name"))
	if err != nil {
		h.respondErr(w, err, op)
		return nil, false
	}
	return runner, true
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request, op string) ([]byte, bool) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxUploadSize), op)
			return nil, false
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return nil, false
	}
	return payload, true
}

// respondErr maps a calculator error to its HTTP status.
func (h *handler) respondErr(w http.ResponseWriter, err error, op string) {
	var verr *engine.ValidationError
	switch {
	case errors.As(err, &verr):
		h.logger.Info("validation failed",
			zap.String("op", op),
			zap.Int("errors", len(verr.Result.Errors)),
		)
		h.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    engine.ErrInvalidInput.Error(),
			"errors":   verr.Result.Errors,
			"warnings": verr.Result.Warnings,
		})
	case errors.Is(err, calculator.ErrDecode):
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	case errors.Is(err, calculator.ErrUnknownCalculator):
		h.respondError(w, http.StatusNotFound, err.Error(), op)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		h.respondError(w, http.StatusServiceUnavailable, err.Error(), op)
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.String("op", "server.writeJSON"), zap.Error(err))
	}
}
