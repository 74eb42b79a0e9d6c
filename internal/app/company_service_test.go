package app

import (
	"context"
	"reflect"
	"testing"

	"jobly/internal/common"
	"jobly/internal/domain/company"
	"jobly/internal/domain/job"
)

func newCompanyService() (*CompanyService, *fakeCompanyRepo, *fakeJobRepo) {
	companies := newFakeCompanyRepo()
	jobs := newFakeJobRepo()
	return NewCompanyService(companies, jobs, nil), companies, jobs
}

func TestCompanyCreateThenGet(t *testing.T) {
	svc, _, _ := newCompanyService()
	ctx := context.Background()

	created, err := svc.Create(ctx, company.New{
		Handle:       "new",
		Name:         "New",
		Description:  "New Description",
		NumEmployees: intPtr(1),
		LogoURL:      strPtr("http://new.img"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	got, err := svc.Get(ctx, "new")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(created, got) {
		t.Fatalf("get returned %+v, created %+v", got, created)
	}
}

func TestCompanyCreateDuplicateLeavesStoreUnchanged(t *testing.T) {
	svc, repo, _ := newCompanyService()
	ctx := context.Background()
	first := company.New{Handle: "c1", Name: "C1", Description: "Desc1"}
	if _, err := svc.Create(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, company.New{Handle: "c1", Name: "Other", Description: "Other"})
	if !common.Is(err, common.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := repo.byHandle["c1"]; got.Name != "C1" || len(repo.byHandle) != 1 {
		t.Fatalf("store changed by failed create: %+v", repo.byHandle)
	}
}

func TestCompanyCreateValidatesShape(t *testing.T) {
	svc, repo, _ := newCompanyService()
	_, err := svc.Create(context.Background(), company.New{Handle: "c1", Name: "C1", Description: "d", NumEmployees: intPtr(-1)})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(repo.byHandle) != 0 {
		t.Fatalf("invalid company reached the store")
	}
}

func TestCompanyFilterRejectsInvertedBoundsBeforeQuery(t *testing.T) {
	svc, repo, _ := newCompanyService()
	_, err := svc.Filter(context.Background(), company.Filter{MinEmployees: intPtr(10), MaxEmployees: intPtr(5)})
	if !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if repo.filterHit != 0 {
		t.Fatalf("filter reached the repository")
	}
}

func TestCompanyFilterNoMatchIsNotFound(t *testing.T) {
	svc, _, _ := newCompanyService()
	_, err := svc.Filter(context.Background(), company.Filter{NameLike: strPtr("nope")})
	if !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompanyGetWithJobs(t *testing.T) {
	svc, _, jobs := newCompanyService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, company.New{Handle: "c1", Name: "C1", Description: "Desc1"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	detail, err := svc.GetWithJobs(ctx, "c1")
	if err != nil {
		t.Fatalf("get with no jobs: %v", err)
	}
	if detail.Jobs == nil || len(detail.Jobs) != 0 {
		t.Fatalf("expected empty job list, got %+v", detail.Jobs)
	}

	if _, err := jobs.Create(ctx, job.Job{Title: "J1", CompanyHandle: "c1"}); err != nil {
		t.Fatalf("create job: %v", err)
	}
	detail, err = svc.GetWithJobs(ctx, "c1")
	if err != nil {
		t.Fatalf("get with jobs: %v", err)
	}
	if len(detail.Jobs) != 1 || detail.Jobs[0].Title != "J1" {
		t.Fatalf("unexpected jobs: %+v", detail.Jobs)
	}
}

func TestCompanyGetWithJobsUnknownCompany(t *testing.T) {
	svc, _, _ := newCompanyService()
	if _, err := svc.GetWithJobs(context.Background(), "nope"); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCompanyUpdateAndRemoveMissing(t *testing.T) {
	svc, _, _ := newCompanyService()
	ctx := context.Background()
	if _, err := svc.Update(ctx, "nope", company.Update{Name: strPtr("x")}); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
	if err := svc.Remove(ctx, "nope"); !common.Is(err, common.CodeNotFound) {
		t.Fatalf("expected not found on remove, got %v", err)
	}
}

func TestCompanyUpdateClearsNullable(t *testing.T) {
	svc, _, _ := newCompanyService()
	ctx := context.Background()
	if _, err := svc.Create(ctx, company.New{Handle: "c1", Name: "C1", Description: "Desc1", NumEmployees: intPtr(3)}); err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(ctx, "c1", company.Update{NumEmployees: common.Null[int]()})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NumEmployees != nil || updated.Name != "C1" {
		t.Fatalf("unexpected company: %+v", updated)
	}
}

func TestCompanyUpdateRejectsEmpty(t *testing.T) {
	svc, _, _ := newCompanyService()
	if _, err := svc.Update(context.Background(), "c1", company.Update{}); !common.Is(err, common.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
