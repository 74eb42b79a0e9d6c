package handlers

import (
	"net/http"

	"jobly/internal/app"
	"jobly/internal/domain/company"
	"jobly/internal/http/response"
)

type CompanyHandler struct {
	companies *app.CompanyService
	jobs      *app.JobService
}

func NewCompanyHandler(companies *app.CompanyService, jobs *app.JobService) *CompanyHandler {
	return &CompanyHandler{companies: companies, jobs: jobs}
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req company.New
	if err := decodeJSON(r, &req); err != nil {
		response.Error(w, err)
		return
	}
	created, err := h.companies.Create(r.Context(), req)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]any{"company": created})
}

// List returns every company, or the filtered set when a query string is present.
func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if len(query) == 0 {
		companies, err := h.companies.List(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}
		response.JSON(w, http.StatusOK, map[string]any{"companies": companies})
		return
	}
	filter, err := company.ParseFilter(query)
	if err != nil {
		response.Error(w, err)
		return
	}
	companies, err := h.companies.Filter(r.Context(), filter)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	handle, err := segmentFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	found, err := h.companies.GetWithJobs(r.Context(), handle)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"company": found})
}

func (h *CompanyHandler) Jobs(w http.ResponseWriter, r *http.Request) {
	handle, err := segmentFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	jobs, err := h.jobs.ListByCompany(r.Context(), handle)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	handle, err := segmentFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	body, err := readBody(r)
	if err != nil {
		response.Error(w, err)
		return
	}
	update, err := company.DecodeUpdate(body)
	if err != nil {
		response.Error(w, err)
		return
	}
	updated, err := h.companies.Update(r.Context(), handle, update)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"company": updated})
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	handle, err := segmentFromPath(r, 1)
	if err != nil {
		response.Error(w, err)
		return
	}
	if err := h.companies.Remove(r.Context(), handle); err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"deleted": handle})
}
