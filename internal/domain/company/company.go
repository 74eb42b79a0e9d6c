package company

import (
	"net/url"

	"jobly/internal/common"
	"jobly/internal/validation"
)

type Company struct {
	Handle       string  `json:"handle"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	NumEmployees *int    `json:"numEmployees"`
	LogoURL      *string `json:"logoUrl"`
}

// New is the create payload. Handle is the identity and never changes.
type New struct {
	Handle       string  `json:"handle" validate:"required,min=1,max=25"`
	Name         string  `json:"name" validate:"required,min=1"`
	Description  string  `json:"description" validate:"required"`
	NumEmployees *int    `json:"numEmployees" validate:"omitempty,gte=0,lte=2147483647"`
	LogoURL      *string `json:"logoUrl" validate:"omitempty,url"`
}

func (n New) Company() Company {
	return Company{
		Handle:       n.Handle,
		Name:         n.Name,
		Description:  n.Description,
		NumEmployees: n.NumEmployees,
		LogoURL:      n.LogoURL,
	}
}

// Update is a sparse set of changes; nil or unset fields are left alone.
type Update struct {
	Name         *string
	Description  *string
	NumEmployees common.Nullable[int]
	LogoURL      common.Nullable[string]
}

func (u Update) Empty() bool {
	return u.Name == nil && u.Description == nil && !u.NumEmployees.Set && !u.LogoURL.Set
}

const (
	FieldHandle       = "handle"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldNumEmployees = "numEmployees"
	FieldLogoURL      = "logoUrl"
)

// DecodeUpdate turns a PATCH body into an Update, rejecting identity and
// unknown fields.
func DecodeUpdate(data []byte) (Update, error) {
	var u Update
	patch, err := common.DecodePatch(data)
	if err != nil {
		return u, err
	}
	if err := patch.Immutable(FieldHandle); err != nil {
		return u, err
	}
	if err := patch.Allow(FieldName, FieldDescription, FieldNumEmployees, FieldLogoURL); err != nil {
		return u, err
	}
	if err := common.Field(patch, FieldName, &u.Name); err != nil {
		return u, err
	}
	if err := common.Field(patch, FieldDescription, &u.Description); err != nil {
		return u, err
	}
	if err := common.NullableField(patch, FieldNumEmployees, &u.NumEmployees); err != nil {
		return u, err
	}
	if err := common.NullableField(patch, FieldLogoURL, &u.LogoURL); err != nil {
		return u, err
	}
	return u, u.Validate()
}

func (u Update) Validate() error {
	if u.Name != nil {
		if err := validation.Var(FieldName, *u.Name, "min=1"); err != nil {
			return err
		}
	}
	if u.NumEmployees.Value != nil {
		if err := validation.Var(FieldNumEmployees, *u.NumEmployees.Value, "gte=0,lte=2147483647"); err != nil {
			return err
		}
	}
	if u.LogoURL.Value != nil {
		if err := validation.Var(FieldLogoURL, *u.LogoURL.Value, "url"); err != nil {
			return err
		}
	}
	return nil
}

// Filter is a company search. Predicates are always applied in the order
// NameLike, MaxEmployees, MinEmployees.
type Filter struct {
	NameLike     *string
	MaxEmployees *int
	MinEmployees *int
}

const (
	FilterNameLike     = "nameLike"
	FilterMinEmployees = "minEmployees"
	FilterMaxEmployees = "maxEmployees"
)

// ParseFilter decodes a query string into a Filter.
func ParseFilter(values url.Values) (Filter, error) {
	var f Filter
	if err := common.CheckFilterKeys(values, FilterNameLike, FilterMinEmployees, FilterMaxEmployees); err != nil {
		return f, err
	}
	f.NameLike = common.StringParam(values, FilterNameLike)
	var err error
	if f.MinEmployees, err = common.IntParam(values, FilterMinEmployees); err != nil {
		return f, err
	}
	if f.MaxEmployees, err = common.IntParam(values, FilterMaxEmployees); err != nil {
		return f, err
	}
	return f, nil
}

// Validate checks constraints spanning more than one criterion.
func (f Filter) Validate() error {
	if f.MinEmployees != nil && f.MaxEmployees != nil && *f.MaxEmployees < *f.MinEmployees {
		return common.NewValidationError("invalid filter", map[string]string{
			FilterMaxEmployees: "maxEmployees must be greater than or equal to minEmployees",
		})
	}
	return nil
}
