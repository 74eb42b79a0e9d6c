package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"jobly/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return common.NewError(common.CodeValidation, "request body is required", err)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return common.NewError(common.CodeValidation, "request body too large", err)
		}
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, common.NewError(common.CodeValidation, "request body too large", err)
		}
		return nil, common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return data, nil
}

func pathSegments(r *http.Request) []string {
	trimmed := strings.Trim(r.URL.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func segmentFromPath(r *http.Request, index int) (string, error) {
	parts := pathSegments(r)
	if index >= len(parts) || parts[index] == "" {
		return "", common.NewError(common.CodeNotFound, "resource not found", nil)
	}
	return parts[index], nil
}

func idFromPath(r *http.Request, index int) (int, error) {
	raw, err := segmentFromPath(r, index)
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, common.NewValidationError("invalid id", map[string]string{"id": "must be a positive integer"})
	}
	return id, nil
}
