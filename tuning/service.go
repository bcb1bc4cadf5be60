// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package tuning

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"cloud.google.com/go/auth/credentials"
	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/go-a2a/gemma-lora/types"
)

// DefaultPollInterval is the interval between job state checks in [Service.Wait].
const DefaultPollInterval = 30 * time.Second

// Tuner is the subset of the Gen AI tunings API used by [Service].
//
// It is implemented by [genai.Tunings].
type Tuner interface {
	Tune(ctx context.Context, baseModel string, trainingDataset *genai.TuningDataset, config *genai.CreateTuningJobConfig) (*genai.TuningJob, error)
	Get(ctx context.Context, name string, config *genai.GetTuningJobConfig) (*genai.TuningJob, error)
}

var _ Tuner = (*genai.Tunings)(nil)

// JobError reports a tuning job that ended in a state other than succeeded.
type JobError struct {
	Name    string
	State   genai.JobState
	Message string
}

// Error returns a string representation of the [JobError].
func (e *JobError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tuning job %s ended in state %s", e.Name, e.State)
	}
	return fmt.Sprintf("tuning job %s ended in state %s: %s", e.Name, e.State, e.Message)
}

// Service submits tuning jobs to the Gen AI tunings API and tracks them.
type Service struct {
	tuner  Tuner
	vertex bool
	logger *slog.Logger
}

// ServiceOption is a functional option for configuring the tuning service.
type ServiceOption func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a new tuning service backed by a Gen AI client.
//
// With a projectID the client targets Vertex AI in location using Application Default
// Credentials. Otherwise the backend is chosen from the GOOGLE_GENAI_* environment.
func NewService(ctx context.Context, projectID, location string, opts ...ServiceOption) (*Service, error) {
	cc := &genai.ClientConfig{}
	if projectID != "" {
		if location == "" {
			return nil, fmt.Errorf("location is required with project %s", projectID)
		}
		creds, err := credentials.DetectDefault(&credentials.DetectOptions{
			Scopes: []string{
				"https://www.googleapis.com/auth/cloud-platform",
			},
		})
		if err != nil {
			return nil, fmt.Errorf("detect credentials: %w", err)
		}
		cc.Backend = genai.BackendVertexAI
		cc.Project = projectID
		cc.Location = location
		cc.Credentials = creds
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	s := NewServiceWithTuner(client.Tunings, client.ClientConfig().Backend, opts...)
	s.logger.InfoContext(ctx, "tuning service initialized",
		slog.String("backend", client.ClientConfig().Backend.String()),
		slog.String("project_id", client.ClientConfig().Project),
		slog.String("location", client.ClientConfig().Location),
	)

	return s, nil
}

// NewServiceWithTuner creates a tuning service over an existing [Tuner].
func NewServiceWithTuner(tuner Tuner, backend genai.Backend, opts ...ServiceOption) *Service {
	s := &Service{
		tuner:  tuner,
		vertex: backend == genai.BackendVertexAI,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultDisplayName returns a unique display name for a tuned model derived from sourceModel.
func DefaultDisplayName(sourceModel string) string {
	return path.Base(sourceModel) + "-lora-" + uuid.NewString()
}

// Submit validates cfg and creates a tuning job for it.
//
// cfg is not modified. A missing display name is generated with [DefaultDisplayName].
func (s *Service) Submit(ctx context.Context, cfg *Config) (*genai.TuningJob, error) {
	cfg, err := cfg.Clone()
	if err != nil {
		return nil, err
	}
	if cfg.DisplayName == "" {
		cfg.DisplayName = DefaultDisplayName(cfg.SourceModel)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Method == MethodQLoRA {
		return nil, types.NotImplementedError("qlora is not offered by the managed tuning service")
	}
	if s.vertex && !isGCS(cfg.Dataset.Training.URI) {
		return nil, fmt.Errorf("%w: Vertex AI requires gs:// training data, got %q", ErrInvalidConfig, cfg.Dataset.Training.URI)
	}

	ds, err := cfg.TrainingDataset()
	if err != nil {
		return nil, err
	}

	job, err := s.tuner.Tune(ctx, cfg.SourceModel, ds, cfg.CreateJobConfig())
	if err != nil {
		return nil, fmt.Errorf("create tuning job: %w", err)
	}

	s.logger.InfoContext(ctx, "tuning job created",
		slog.String("name", job.Name),
		slog.String("source_model", cfg.SourceModel),
		slog.String("display_name", cfg.DisplayName),
		slog.String("state", string(job.State)),
	)

	return job, nil
}

// Get retrieves the current state of a tuning job.
func (s *Service) Get(ctx context.Context, name string) (*genai.TuningJob, error) {
	job, err := s.tuner.Get(ctx, name, nil)
	if err != nil {
		return nil, fmt.Errorf("get tuning job %s: %w", name, err)
	}
	return job, nil
}

// Wait polls the tuning job every interval until it reaches a terminal state or ctx is done.
//
// A job that does not succeed is returned together with a [*JobError].
func (s *Service) Wait(ctx context.Context, name string, interval time.Duration) (*genai.TuningJob, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		job, err := s.Get(ctx, name)
		if err != nil {
			return nil, err
		}

		s.logger.DebugContext(ctx, "tuning job state",
			slog.String("name", name),
			slog.String("state", string(job.State)),
		)

		if terminal(job.State) {
			if job.State == genai.JobStateSucceeded {
				return job, nil
			}
			jerr := &JobError{Name: name, State: job.State}
			if job.Error != nil {
				jerr.Message = job.Error.Message
			}
			return job, jerr
		}

		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-ticker.C:
		}
	}
}

func terminal(state genai.JobState) bool {
	switch state {
	case genai.JobStateSucceeded,
		genai.JobStateFailed,
		genai.JobStateCancelled,
		genai.JobStateExpired,
		genai.JobStatePartiallySucceeded:
		return true
	default:
		return false
	}
}
