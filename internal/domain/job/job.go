package job

import (
	"net/url"

	"jobly/internal/common"
	"jobly/internal/validation"
)

type Job struct {
	ID            int      `json:"id"`
	Title         string   `json:"title"`
	Salary        *int     `json:"salary"`
	Equity        *float64 `json:"equity"`
	CompanyHandle string   `json:"companyHandle"`
	CompanyName   string   `json:"companyName,omitempty"`
}

// New is the create payload. A zero Equity is a real value, nil means unspecified.
type New struct {
	Title         string   `json:"title" validate:"required,min=1"`
	Salary        *int     `json:"salary" validate:"omitempty,gte=0,lte=2147483647"`
	Equity        *float64 `json:"equity" validate:"omitempty,gte=0,lte=1"`
	CompanyHandle string   `json:"companyHandle" validate:"required,min=1,max=25"`
}

func (n New) Job() Job {
	return Job{
		Title:         n.Title,
		Salary:        n.Salary,
		Equity:        n.Equity,
		CompanyHandle: n.CompanyHandle,
	}
}

type Update struct {
	Title  *string
	Salary common.Nullable[int]
	Equity common.Nullable[float64]
}

func (u Update) Empty() bool {
	return u.Title == nil && !u.Salary.Set && !u.Equity.Set
}

const (
	FieldID            = "id"
	FieldCompanyHandle = "companyHandle"
	FieldTitle         = "title"
	FieldSalary        = "salary"
	FieldEquity        = "equity"
)

// DecodeUpdate turns a PATCH body into an Update. Neither id nor
// companyHandle may be changed.
func DecodeUpdate(data []byte) (Update, error) {
	var u Update
	patch, err := common.DecodePatch(data)
	if err != nil {
		return u, err
	}
	if err := patch.Immutable(FieldID, FieldCompanyHandle); err != nil {
		return u, err
	}
	if err := patch.Allow(FieldTitle, FieldSalary, FieldEquity); err != nil {
		return u, err
	}
	if err := common.Field(patch, FieldTitle, &u.Title); err != nil {
		return u, err
	}
	if err := common.NullableField(patch, FieldSalary, &u.Salary); err != nil {
		return u, err
	}
	if err := common.NullableField(patch, FieldEquity, &u.Equity); err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (u Update) Validate() error {
	if u.Title != nil {
		if err := validation.Var(FieldTitle, *u.Title, "min=1"); err != nil {
			return err
		}
	}
	if u.Salary.Value != nil {
		if err := validation.Var(FieldSalary, *u.Salary.Value, "gte=0,lte=2147483647"); err != nil {
			return err
		}
	}
	if u.Equity.Value != nil {
		if err := validation.Var(FieldEquity, *u.Equity.Value, "gte=0,lte=1"); err != nil {
			return err
		}
	}
	return nil
}

// EquityFilter is decided once when the filter is decoded.
type EquityFilter int

const (
	// EquityUnset means hasEquity was not supplied.
	EquityUnset EquityFilter = iota
	// EquityRequired keeps only jobs with equity above zero.
	EquityRequired
	// EquityUnconstrained means hasEquity was supplied with anything but "true".
	// There is no "jobs without equity" filter.
	EquityUnconstrained
)

// Filter is a job search. Predicates are always applied in the order
// Title, MinSalary, Equity.
type Filter struct {
	Title     *string
	MinSalary *int
	Equity    EquityFilter
}

const (
	FilterTitle     = "title"
	FilterMinSalary = "minSalary"
	FilterHasEquity = "hasEquity"
)

func ParseFilter(values url.Values) (Filter, error) {
	var f Filter
	if err := common.CheckFilterKeys(values, FilterTitle, FilterMinSalary, FilterHasEquity); err != nil {
		return f, err
	}
	f.Title = common.StringParam(values, FilterTitle)
	var err error
	if f.MinSalary, err = common.IntParam(values, FilterMinSalary); err != nil {
		return f, err
	}
	if raw := common.StringParam(values, FilterHasEquity); raw != nil {
		if *raw == "true" {
			f.Equity = EquityRequired
		} else {
			f.Equity = EquityUnconstrained
		}
	}
	return f, nil
}

// Constrains reports whether the filter would narrow the result at all.
func (f Filter) Constrains() bool {
	return f.Title != nil || f.MinSalary != nil || f.Equity == EquityRequired
}
