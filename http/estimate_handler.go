package http

import (
	"errors"
	"net/http"

	"salary-compass/domain"
	"salary-compass/service"
)

type EstimateResponse struct {
	Profile    domain.UserProfile    `json:"profile"`
	Result     domain.EstimateResult `json:"result"`
	Comparison domain.Comparison     `json:"comparison"`
	ShareURL   string                `json:"shareUrl,omitempty"`
}

type OptionsResponse struct {
	ExperienceLevels []domain.Option `json:"experienceLevels"`
	EmploymentTypes  []domain.Option `json:"employmentTypes"`
	Industries       []domain.Option `json:"industries"`
	JobTitles        []domain.Option `json:"jobTitles"`
	Skills           []domain.Option `json:"skills"`
	Locations        []domain.Option `json:"locations"`
	Genders          []domain.Option `json:"genders"`
	Ethnicities      []domain.Option `json:"ethnicities"`
}

type EstimateHandler struct {
	estimator *service.SalaryEstimator
	share     *service.ShareService
}

func NewEstimateHandler(estimator *service.SalaryEstimator, share *service.ShareService) *EstimateHandler {
	return &EstimateHandler{estimator: estimator, share: share}
}

// Estimate runs the estimator on a complete profile.
func (h *EstimateHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if err := domain.ValidateProfile(profile); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}

	resp := h.respond(profile)
	if link, err := h.share.Link(profile); err == nil {
		resp.ShareURL = link
	}
	writeJSON(w, http.StatusOK, resp)
}

// Shared re-runs the estimator on a profile decoded from share link
// parameters. The {id} path segment is not interpreted.
func (h *EstimateHandler) Shared(w http.ResponseWriter, r *http.Request) {
	profile, err := service.DecodeProfile(r.URL.Query())
	if errors.Is(err, domain.ErrInvalidShareURL) {
		httpError(w, http.StatusNotFound, "not_found_error", "%v", err)
		return
	}
	if err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}
	writeJSON(w, http.StatusOK, h.respond(profile))
}

func (h *EstimateHandler) respond(profile domain.UserProfile) EstimateResponse {
	result := h.estimator.Estimate(profile)
	return EstimateResponse{
		Profile:    profile,
		Result:     result,
		Comparison: h.estimator.Compare(profile, result),
	}
}

// Options lists every selectable form value with its label.
func (h *EstimateHandler) Options(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, OptionsResponse{
		ExperienceLevels: domain.ExperienceLevels,
		EmploymentTypes:  domain.EmploymentTypes,
		Industries:       domain.Industries,
		JobTitles:        domain.JobTitles,
		Skills:           domain.Skills,
		Locations:        domain.Locations,
		Genders:          domain.Genders,
		Ethnicities:      domain.Ethnicities,
	})
}
