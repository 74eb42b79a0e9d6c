package app

import (
	"context"
	"log/slog"

	"jobly/internal/common"
	"jobly/internal/domain/company"
	"jobly/internal/domain/job"
	"jobly/internal/validation"
)

type CompanyService struct {
	repo   company.Repository
	jobs   job.Repository
	logger *slog.Logger
}

func NewCompanyService(repo company.Repository, jobs job.Repository, logger *slog.Logger) *CompanyService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyService{repo: repo, jobs: jobs, logger: logger}
}

// CompanyWithJobs is a company together with the jobs it has posted.
type CompanyWithJobs struct {
	company.Company
	Jobs []job.Job `json:"jobs"`
}

func (s *CompanyService) Create(ctx context.Context, n company.New) (*company.Company, error) {
	if err := validation.Struct(n); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, n.Company())
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "company created", slog.String("handle", created.Handle))
	return created, nil
}

func (s *CompanyService) Get(ctx context.Context, handle string) (*company.Company, error) {
	return s.repo.Get(ctx, handle)
}

// GetWithJobs loads a company and its jobs. A company without jobs gets an
// empty list.
func (s *CompanyService) GetWithJobs(ctx context.Context, handle string) (*CompanyWithJobs, error) {
	c, err := s.Get(ctx, handle)
	if err != nil {
		return nil, err
	}
	jobs, err := s.jobs.ListByCompany(ctx, handle)
	if err != nil {
		if !common.Is(err, common.CodeNotFound) {
			return nil, err
		}
		jobs = []job.Job{}
	}
	return &CompanyWithJobs{Company: *c, Jobs: jobs}, nil
}

func (s *CompanyService) List(ctx context.Context) ([]company.Company, error) {
	return s.repo.List(ctx)
}

// Filter checks the employee bounds before any query runs.
func (s *CompanyService) Filter(ctx context.Context, f company.Filter) ([]company.Company, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Filter(ctx, f)
}

func (s *CompanyService) Update(ctx context.Context, handle string, u company.Update) (*company.Company, error) {
	if u.Empty() {
		return nil, common.NewError(common.CodeValidation, "no data", nil)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, handle, u)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "company updated", slog.String("handle", handle))
	return updated, nil
}

func (s *CompanyService) Remove(ctx context.Context, handle string) error {
	if err := s.repo.Remove(ctx, handle); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "company removed", slog.String("handle", handle))
	return nil
}
