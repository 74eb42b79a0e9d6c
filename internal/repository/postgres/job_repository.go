package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"jobly/internal/common"
	"jobly/internal/domain/job"
)

const jobColumns = `id, title, salary, equity, company_handle`

const jobWithCompanyColumns = `j.id, j.title, j.salary, j.equity, j.company_handle, c.name`

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, j job.Job) (*job.Job, error) {
	var existing int
	err := r.db.QueryRowContext(ctx, `SELECT id FROM jobs WHERE company_handle = $1 AND title = $2`, j.CompanyHandle, j.Title).Scan(&existing)
	if err == nil {
		return nil, common.NewError(common.CodeConflict, "duplicate job: "+j.Title+" at "+j.CompanyHandle, nil)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeError("failed to check job", err)
	}
	row := r.db.QueryRowContext(ctx, `INSERT INTO jobs (title, salary, equity, company_handle)
		VALUES ($1, $2, $3, $4)
		RETURNING `+jobColumns,
		j.Title, j.Salary, j.Equity, j.CompanyHandle)
	created, err := scanJob(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "duplicate job: "+j.Title+" at "+j.CompanyHandle, err)
		}
		return nil, storeError("failed to create job", err)
	}
	return created, nil
}

func (r *JobRepository) Get(ctx context.Context, id int) (*job.Job, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), err)
		}
		return nil, storeError("failed to load job", err)
	}
	return j, nil
}

func (r *JobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobWithCompanyColumns+`
		FROM jobs j
		JOIN companies c ON c.handle = j.company_handle
		ORDER BY j.title`)
	if err != nil {
		return nil, storeError("failed to list jobs", err)
	}
	return collectJobs(rows, scanJobWithCompany)
}

// ListByCompany returns the jobs posted by handle ordered by title. A company
// without jobs and an unknown company are both reported as not found.
func (r *JobRepository) ListByCompany(ctx context.Context, handle string) ([]job.Job, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE company_handle = $1 ORDER BY title`, handle)
	if err != nil {
		return nil, storeError("failed to list company jobs", err)
	}
	items, err := collectJobs(rows, scanJob)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no jobs for company: "+handle, nil)
	}
	return items, nil
}

func (r *JobRepository) Update(ctx context.Context, id int, u job.Update) (*job.Job, error) {
	// updatable job fields share their column names
	set, err := BuildPartialUpdate(jobAssignments(u), nil)
	if err != nil {
		return nil, err
	}
	query := `UPDATE jobs SET ` + set.SetClause() +
		` WHERE id = $` + strconv.Itoa(set.NextPlaceholder()) +
		` RETURNING ` + jobColumns
	row := r.db.QueryRowContext(ctx, query, append(set.Values, id)...)
	updated, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), err)
		}
		return nil, storeError("failed to update job", err)
	}
	return updated, nil
}

func (r *JobRepository) Remove(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return storeError("failed to delete job", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to delete job", err)
	}
	if rows == 0 {
		return common.NewError(common.CodeNotFound, "no job: "+strconv.Itoa(id), sql.ErrNoRows)
	}
	return nil
}

// Filter returns matching jobs with their company name, ordered by company
// name. No match is reported as not found.
func (r *JobRepository) Filter(ctx context.Context, f job.Filter) ([]job.Job, error) {
	where, values, err := buildJobFilter(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+jobWithCompanyColumns+`
		FROM jobs j
		JOIN companies c ON c.handle = j.company_handle
		WHERE `+where+`
		ORDER BY c.name, j.title`, values...)
	if err != nil {
		return nil, storeError("failed to filter jobs", err)
	}
	items, err := collectJobs(rows, scanJobWithCompany)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no jobs match the filter", nil)
	}
	return items, nil
}

// buildJobFilter renders the WHERE predicate for f. Only EquityRequired adds
// an equity predicate.
func buildJobFilter(f job.Filter) (string, []any, error) {
	var where whereClause
	if f.Title != nil {
		where.add("j.title ILIKE %s", "%"+*f.Title+"%")
	}
	if f.MinSalary != nil {
		where.add("j.salary >= %s", *f.MinSalary)
	}
	if f.Equity == job.EquityRequired {
		where.add("j.equity > %s", 0)
	}
	if where.empty() {
		return "", nil, common.NewError(common.CodeValidation, "filter requires at least one criterion", nil)
	}
	return where.String(), where.values, nil
}

func jobAssignments(u job.Update) []Assignment {
	var fields []Assignment
	if u.Title != nil {
		fields = append(fields, Assignment{Field: job.FieldTitle, Value: *u.Title})
	}
	if u.Salary.Set {
		fields = append(fields, Assignment{Field: job.FieldSalary, Value: u.Salary.Arg()})
	}
	if u.Equity.Set {
		fields = append(fields, Assignment{Field: job.FieldEquity, Value: u.Equity.Arg()})
	}
	return fields
}

func scanJob(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle); err != nil {
		return nil, err
	}
	return &j, nil
}

func scanJobWithCompany(row rowScanner) (*job.Job, error) {
	var j job.Job
	if err := row.Scan(&j.ID, &j.Title, &j.Salary, &j.Equity, &j.CompanyHandle, &j.CompanyName); err != nil {
		return nil, err
	}
	return &j, nil
}

func collectJobs(rows *sql.Rows, scan func(rowScanner) (*job.Job, error)) ([]job.Job, error) {
	defer rows.Close()
	items := make([]job.Job, 0)
	for rows.Next() {
		j, err := scan(rows)
		if err != nil {
			return nil, storeError("failed to scan job", err)
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to read jobs", err)
	}
	return items, nil
}
