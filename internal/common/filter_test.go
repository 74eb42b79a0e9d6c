package common

import (
	"net/url"
	"testing"
)

func TestIntParam(t *testing.T) {
	got, err := IntParam(url.Values{"minSalary": {" 42 "}}, "minSalary")
	if err != nil || got == nil || *got != 42 {
		t.Fatalf("expected 42, got %v (%v)", got, err)
	}
	if got, err := IntParam(url.Values{}, "minSalary"); got != nil || err != nil {
		t.Fatalf("absent key must yield nil, got %v (%v)", got, err)
	}
	for _, raw := range []string{"abc", "1.5", "2147483648", "-2147483649", "99999999999"} {
		if _, err := IntParam(url.Values{"minSalary": {raw}}, "minSalary"); !Is(err, CodeValidation) {
			t.Fatalf("%q: expected validation error, got %v", raw, err)
		}
	}
}

func TestCheckFilterKeysNamesUnknown(t *testing.T) {
	err := CheckFilterKeys(url.Values{"title": {"x"}, "color": {"red"}}, "title")
	appErr, ok := err.(*Error)
	if !ok || appErr.Fields["color"] == "" {
		t.Fatalf("expected color to be named, got %v", err)
	}
	if err := CheckFilterKeys(url.Values{}, "title"); !Is(err, CodeValidation) {
		t.Fatalf("expected validation error for empty filter, got %v", err)
	}
}
