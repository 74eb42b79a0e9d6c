package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"jobly/internal/common"
	"jobly/internal/domain/company"
)

const companyColumns = `handle, name, description, num_employees, logo_url`

var companyColumnNames = map[string]string{
	company.FieldNumEmployees: "num_employees",
	company.FieldLogoURL:      "logo_url",
}

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c company.Company) (*company.Company, error) {
	var existing string
	err := r.db.QueryRowContext(ctx, `SELECT handle FROM companies WHERE handle = $1`, c.Handle).Scan(&existing)
	if err == nil {
		return nil, common.NewError(common.CodeConflict, "duplicate company: "+c.Handle, nil)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, storeError("failed to check company", err)
	}
	row := r.db.QueryRowContext(ctx, `INSERT INTO companies (handle, name, description, num_employees, logo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+companyColumns,
		c.Handle, c.Name, c.Description, c.NumEmployees, c.LogoURL)
	created, err := scanCompany(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "duplicate company: "+c.Handle, err)
		}
		return nil, storeError("failed to create company", err)
	}
	return created, nil
}

func (r *CompanyRepository) Get(ctx context.Context, handle string) (*company.Company, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE handle = $1`, handle)
	c, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "no company: "+handle, err)
		}
		return nil, storeError("failed to load company", err)
	}
	return c, nil
}

func (r *CompanyRepository) List(ctx context.Context) ([]company.Company, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies ORDER BY name`)
	if err != nil {
		return nil, storeError("failed to list companies", err)
	}
	return collectCompanies(rows)
}

func (r *CompanyRepository) Update(ctx context.Context, handle string, u company.Update) (*company.Company, error) {
	set, err := BuildPartialUpdate(companyAssignments(u), companyColumnNames)
	if err != nil {
		return nil, err
	}
	query := `UPDATE companies SET ` + set.SetClause() +
		` WHERE handle = $` + strconv.Itoa(set.NextPlaceholder()) +
		` RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, query, append(set.Values, handle)...)
	updated, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "no company: "+handle, err)
		}
		return nil, storeError("failed to update company", err)
	}
	return updated, nil
}

func (r *CompanyRepository) Remove(ctx context.Context, handle string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE handle = $1`, handle)
	if err != nil {
		return storeError("failed to delete company", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return storeError("failed to delete company", err)
	}
	if rows == 0 {
		return common.NewError(common.CodeNotFound, "no company: "+handle, sql.ErrNoRows)
	}
	return nil
}

// Filter returns matching companies ordered by name. No match is reported as
// not found.
func (r *CompanyRepository) Filter(ctx context.Context, f company.Filter) ([]company.Company, error) {
	where, values, err := buildCompanyFilter(f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+companyColumns+` FROM companies WHERE `+where+` ORDER BY name`, values...)
	if err != nil {
		return nil, storeError("failed to filter companies", err)
	}
	items, err := collectCompanies(rows)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, common.NewError(common.CodeNotFound, "no companies match the filter", nil)
	}
	return items, nil
}

// buildCompanyFilter renders the WHERE predicate for f.
func buildCompanyFilter(f company.Filter) (string, []any, error) {
	var where whereClause
	if f.NameLike != nil {
		where.add("name ILIKE %s", "%"+*f.NameLike+"%")
	}
	if f.MaxEmployees != nil {
		where.add("num_employees <= %s", *f.MaxEmployees)
	}
	if f.MinEmployees != nil {
		where.add("num_employees >= %s", *f.MinEmployees)
	}
	if where.empty() {
		return "", nil, common.NewError(common.CodeValidation, "filter requires at least one criterion", nil)
	}
	return where.String(), where.values, nil
}

func companyAssignments(u company.Update) []Assignment {
	var fields []Assignment
	if u.Name != nil {
		fields = append(fields, Assignment{Field: company.FieldName, Value: *u.Name})
	}
	if u.Description != nil {
		fields = append(fields, Assignment{Field: company.FieldDescription, Value: *u.Description})
	}
	if u.NumEmployees.Set {
		fields = append(fields, Assignment{Field: company.FieldNumEmployees, Value: u.NumEmployees.Arg()})
	}
	if u.LogoURL.Set {
		fields = append(fields, Assignment{Field: company.FieldLogoURL, Value: u.LogoURL.Arg()})
	}
	return fields
}

func scanCompany(row rowScanner) (*company.Company, error) {
	var c company.Company
	if err := row.Scan(&c.Handle, &c.Name, &c.Description, &c.NumEmployees, &c.LogoURL); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCompanies(rows *sql.Rows) ([]company.Company, error) {
	defer rows.Close()
	items := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, storeError("failed to scan company", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("failed to read companies", err)
	}
	return items, nil
}
