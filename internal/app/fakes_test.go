package app

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"jobly/internal/common"
	"jobly/internal/domain/company"
	"jobly/internal/domain/job"
)

type fakeCompanyRepo struct {
	mu        sync.Mutex
	byHandle  map[string]company.Company
	filterHit int
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{byHandle: make(map[string]company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHandle[c.Handle]; ok {
		return nil, common.NewError(common.CodeConflict, "duplicate company: "+c.Handle, nil)
	}
	r.byHandle[c.Handle] = c
	return &c, nil
}

func (r *fakeCompanyRepo) Get(ctx context.Context, handle string) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byHandle[handle]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "no company: "+handle, nil)
	}
	return &c, nil
}

func (r *fakeCompanyRepo) List(ctx context.Context) ([]company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]company.Company, 0, len(r.byHandle))
	for _, c := range r.byHandle {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func (r *fakeCompanyRepo) Update(ctx context.Context, handle string, u company.Update) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.Empty() {
		return nil, common.NewError(common.CodeValidation, "no data", nil)
	}
	c, ok := r.byHandle[handle]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "no company: "+handle, nil)
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Description != nil {
		c.Description = *u.Description
	}
	if u.NumEmployees.Set {
		c.NumEmployees = u.NumEmployees.Value
	}
	if u.LogoURL.Set {
		c.LogoURL = u.LogoURL.Value
	}
	r.byHandle[handle] = c
	return &c, nil
}

func (r *fakeCompanyRepo) Remove(ctx context.Context, handle string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byHandle[handle]; !ok {
		return common.NewError(common.CodeNotFound, "no company: "+handle, nil)
	}
	delete(r.byHandle, handle)
	return nil
}

func (r *fakeCompanyRepo) Filter(ctx context.Context, f company.Filter) ([]company.Company, error) {
	r.mu.Lock()
	r.filterHit++
	r.mu.Unlock()
	all, _ := r.List(ctx)
	var items []company.Company
	for _, c := range all {
		if f.NameLike != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*f.NameLike)) {
			continue
		}
		if f.MinEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees < *f.MinEmployees) {
			continue
		}
		if f.MaxEmployees != nil && (c.NumEmployees == nil || *c.NumEmployees > *f.MaxEmployees) {
			continue
		}
		items = append(items, c)
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no companies match the filter", nil)
	}
	return items, nil
}

type fakeJobRepo struct {
	mu        sync.Mutex
	nextID    int
	byID      map[int]job.Job
	filterHit int
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{nextID: 1, byID: make(map[int]job.Job)}
}

func (r *fakeJobRepo) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.CompanyHandle == j.CompanyHandle && existing.Title == j.Title {
			return nil, common.NewError(common.CodeConflict, "duplicate job", nil)
		}
	}
	j.ID = r.nextID
	r.nextID++
	r.byID[j.ID] = j
	return &j, nil
}

func (r *fakeJobRepo) Get(ctx context.Context, id int) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), nil)
	}
	return &j, nil
}

func (r *fakeJobRepo) List(ctx context.Context) ([]job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]job.Job, 0, len(r.byID))
	for _, j := range r.byID {
		items = append(items, j)
	}
	sort.Slice(items, func(i, k int) bool { return items[i].Title < items[k].Title })
	return items, nil
}

func (r *fakeJobRepo) Update(ctx context.Context, id int, u job.Update) (*job.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.Empty() {
		return nil, common.NewError(common.CodeValidation, "no data", nil)
	}
	j, ok := r.byID[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), nil)
	}
	if u.Title != nil {
		j.Title = *u.Title
	}
	if u.Salary.Set {
		j.Salary = u.Salary.Value
	}
	if u.Equity.Set {
		j.Equity = u.Equity.Value
	}
	r.byID[id] = j
	return &j, nil
}

func (r *fakeJobRepo) Remove(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), nil)
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeJobRepo) Filter(ctx context.Context, f job.Filter) ([]job.Job, error) {
	r.mu.Lock()
	r.filterHit++
	r.mu.Unlock()
	all, _ := r.List(ctx)
	var items []job.Job
	for _, j := range all {
		if f.Title != nil && !strings.Contains(strings.ToLower(j.Title), strings.ToLower(*f.Title)) {
			continue
		}
		if f.MinSalary != nil && (j.Salary == nil || *j.Salary < *f.MinSalary) {
			continue
		}
		if f.Equity == job.EquityRequired && (j.Equity == nil || *j.Equity <= 0) {
			continue
		}
		items = append(items, j)
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no jobs match the filter", nil)
	}
	return items, nil
}

func (r *fakeJobRepo) ListByCompany(ctx context.Context, handle string) ([]job.Job, error) {
	all, _ := r.List(ctx)
	var items []job.Job
	for _, j := range all {
		if j.CompanyHandle == handle {
			items = append(items, j)
		}
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no jobs for company: "+handle, nil)
	}
	return items, nil
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }
