// Package batch runs many calculations concurrently.
package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/internal/storage"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Job is one calculation request. Payload is a JSON document of inputs.
type Job struct {
	ID         string          `json:"id"`
	Calculator string          `json:"calculator"`
	Payload    json.RawMessage `json:"inputs,omitempty"`
}

// Outcome is the result of one job. Exactly one of Result and Error is set.
type Outcome struct {
	ID         string             `json:"id"`
	Calculator string             `json:"calculator"`
	Result     *calculator.Result `json:"result,omitempty"`
	Error      string             `json:"error,omitempty"`
	// Errors holds the field messages of a validation failure.
	Errors map[string]string `json:"errors,omitempty"`
}

// Request is the document read from a jobs file or the batch API.
type Request struct {
	Jobs []Job `json:"jobs"`
}

type yamlJob struct {
	ID         string `yaml:"id"`
	Calculator string `yaml:"calculator"`
	Inputs     any    `yaml:"inputs"`
}

// ParseJobs decodes a {jobs: [...]} document.
func ParseJobs(data []byte, format calculator.Format) ([]Job, error) {
	if format != calculator.FormatYAML {
		var req Request
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: jobs: %w", calculator.ErrDecode, err)
		}
		return req.Jobs, nil
	}

	var doc struct {
		Jobs []yamlJob `yaml:"jobs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: jobs: %w", calculator.ErrDecode, err)
	}
	jobs := make([]Job, 0, len(doc.Jobs))
	for i, j := range doc.Jobs {
		job := Job{ID: j.ID, Calculator: j.Calculator}
		if j.Inputs != nil {
			payload, err := json.Marshal(j.Inputs)
			if err != nil {
				return nil, fmt.Errorf("%w: job %d inputs: %w", calculator.ErrDecode, i, err)
			}
			job.Payload = payload
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// Runner executes jobs against a registry.
type Runner struct {
	registry    *calculator.Registry
	concurrency int
	sink        storage.Sink
	logger      *zap.Logger
}

// NewRunner creates a Runner. A nil sink discards results.
func NewRunner(registry *calculator.Registry, concurrency int, sink storage.Sink, logger *zap.Logger) *Runner {
	if concurrency <= 0 {
		concurrency = constants.DefaultBatchConcurrency
	}
	if sink == nil {
		sink = storage.NopSink{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registry: registry, concurrency: concurrency, sink: sink, logger: logger}
}

// Run executes every job and returns the outcomes in job order. A failing job is
// reported in its outcome; Run itself only fails when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, job := range jobs {
		if job.ID == "" {
			job.ID = uuid.NewString()
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i] = Outcome{ID: job.ID, Calculator: job.Calculator, Error: err.Error()}
				return err
			}
			outcomes[i] = r.run(gctx, job)
			return nil
		})
	}
	err := g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Error != "" {
			failed++
		}
	}
	r.logger.Info("batch complete",
		zap.String("op", "batch.Runner.Run"),
		zap.Int("jobs", len(jobs)),
		zap.Int("failed", failed),
	)
	if err != nil {
		return outcomes, fmt.Errorf("batch cancelled: %w", err)
	}
	return outcomes, nil
}

func (r *Runner) run(ctx context.Context, job Job) Outcome {
	out := Outcome{ID: job.ID, Calculator: job.Calculator}

	runner, err := r.registry.Get(job.Calculator)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	result, err := runner.Calculate(ctx, job.Payload, calculator.FormatJSON)
	if err != nil {
		out.Error = err.Error()
		var verr *engine.ValidationError
		if errors.As(err, &verr) {
			out.Errors = verr.Result.Errors
		}
		r.logger.Debug("job failed",
			zap.String("op", "batch.Runner.run"),
			zap.String("id", job.ID),
			zap.String("calculator", job.Calculator),
			zap.Error(err),
		)
		return out
	}
	out.Result = result

	rec, err := storage.NewRecord(result, time.Now())
	if err == nil {
		err = r.sink.Save(ctx, rec)
	}
	if err != nil {
		r.logger.Warn("failed to archive job result",
			zap.String("op", "batch.Runner.run"),
			zap.String("id", job.ID),
			zap.Error(err),
		)
	}
	return out
}
