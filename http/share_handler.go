package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"salary-compass/domain"
	"salary-compass/report"
	"salary-compass/service"
)

type ShareHandler struct {
	estimator *service.SalaryEstimator
	share     *service.ShareService
	now       func() time.Time
}

func NewShareHandler(estimator *service.SalaryEstimator, share *service.ShareService) *ShareHandler {
	return &ShareHandler{estimator: estimator, share: share, now: time.Now}
}

// CreateLink returns a share URL and social links for a profile.
func (h *ShareHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if err := domain.ValidateProfile(profile); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}

	result := h.estimator.Estimate(profile)
	links, err := h.share.Links(profile, result.Estimate)
	if err != nil {
		slog.Error("building share links", "error", err)
		httpError(w, http.StatusInternalServerError, "api_error", "could not build share link")
		return
	}
	writeJSON(w, http.StatusOK, links)
}

// Report renders the PDF report for a profile.
func (h *ShareHandler) Report(w http.ResponseWriter, r *http.Request) {
	var profile domain.UserProfile
	if !decodeJSON(w, r, &profile) {
		return
	}
	if err := domain.ValidateProfile(profile); err != nil {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
		return
	}

	result := h.estimator.Estimate(profile)
	var buf bytes.Buffer
	err := report.Generate(&buf, report.Input{
		Profile:     profile,
		Result:      result,
		Comparison:  h.estimator.Compare(profile, result),
		GeneratedAt: h.now(),
	})
	if err != nil {
		slog.Error("generating pdf report", "error", err)
		httpError(w, http.StatusInternalServerError, "api_error", "could not generate report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename+`"`)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Warn("writing pdf report", "error", err)
	}
}
