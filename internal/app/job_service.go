package app

import (
	"context"
	"log/slog"

	"jobly/internal/common"
	"jobly/internal/domain/job"
	"jobly/internal/validation"
)

type JobService struct {
	repo   job.Repository
	logger *slog.Logger
}

func NewJobService(repo job.Repository, logger *slog.Logger) *JobService {
	if logger == nil {
		logger = slog.Default()
	}
	return &JobService{repo: repo, logger: logger}
}

func (s *JobService) Create(ctx context.Context, n job.New) (*job.Job, error) {
	if err := validation.Struct(n); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, n.Job())
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "job created", slog.Int("id", created.ID), slog.String("company", created.CompanyHandle))
	return created, nil
}

func (s *JobService) Get(ctx context.Context, id int) (*job.Job, error) {
	return s.repo.Get(ctx, id)
}

func (s *JobService) List(ctx context.Context) ([]job.Job, error) {
	return s.repo.List(ctx)
}

func (s *JobService) ListByCompany(ctx context.Context, handle string) ([]job.Job, error) {
	return s.repo.ListByCompany(ctx, handle)
}

// Filter rejects filters that would not narrow the result, such as a lone
// hasEquity=false.
func (s *JobService) Filter(ctx context.Context, f job.Filter) ([]job.Job, error) {
	if !f.Constrains() {
		return nil, common.NewValidationError("invalid filter", map[string]string{
			job.FilterHasEquity: "hasEquity only filters when true; supply another criterion or list all jobs",
		})
	}
	return s.repo.Filter(ctx, f)
}

func (s *JobService) Update(ctx context.Context, id int, u job.Update) (*job.Job, error) {
	if u.Empty() {
		return nil, common.NewError(common.CodeValidation, "no data", nil)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, u)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "job updated", slog.Int("id", id))
	return updated, nil
}

func (s *JobService) Remove(ctx context.Context, id int) error {
	if err := s.repo.Remove(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "job removed", slog.Int("id", id))
	return nil
}
