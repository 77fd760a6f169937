package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"salary-compass/domain"
	"salary-compass/service"
)

type GenerationHandler struct {
	service *service.GenerationService
}

func NewGenerationHandler(service *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

type generationErrorResponse struct {
	Error    string          `json:"error"`
	Fallback json.RawMessage `json:"fallback,omitempty"`
	Source   domain.Source   `json:"source,omitempty"`
}

// Generate answers {type, data} with {result, source}. Provider failures
// answer 500 with the static fallback in the body.
func (h *GenerationHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.Generate(r.Context(), req.Type, req.Data)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, domain.ErrMissingPayload):
		writeJSON(w, http.StatusBadRequest, generationErrorResponse{Error: domain.ErrMissingPayload.Error()})
	case errors.Is(err, domain.ErrInvalidRequestKind):
		writeJSON(w, http.StatusBadRequest, generationErrorResponse{Error: domain.ErrInvalidRequestKind.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, generationErrorResponse{
			Error:    domain.ErrGenerationFailed.Error(),
			Fallback: result.Result,
			Source:   domain.SourceFallback,
		})
	}
}

// Invalidate evicts the cached answer for {type, data} so the next
// Generate call regenerates it.
func (h *GenerationHandler) Invalidate(w http.ResponseWriter, r *http.Request) {
	var req domain.GenerationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.service.Invalidate(r.Context(), req.Type, req.Data)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, domain.ErrMissingPayload), errors.Is(err, domain.ErrInvalidRequestKind):
		httpError(w, http.StatusBadRequest, "invalid_request_error", "%v", err)
	default:
		httpError(w, http.StatusInternalServerError, "api_error", "%v", err)
	}
}

type normalizeTitleRequest struct {
	Title string `json:"title"`
}

type normalizeTitleResponse struct {
	Title  string        `json:"title"`
	Label  string        `json:"label"`
	Value  string        `json:"value"`
	Source domain.Source `json:"source"`
}

// NormalizeTitle maps a free-form job title onto one of the standard
// titles. It always answers with a usable value.
func (h *GenerationHandler) NormalizeTitle(w http.ResponseWriter, r *http.Request) {
	var req normalizeTitleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		httpError(w, http.StatusBadRequest, "invalid_request_error", "title is required")
		return
	}

	payload, err := json.Marshal(domain.NormalizeTitlePayload{Title: req.Title})
	if err != nil {
		httpError(w, http.StatusInternalServerError, "api_error", "encoding payload: %v", err)
		return
	}

	// Failures still carry the fallback title.
	result, _ := h.service.Generate(r.Context(), string(domain.KindNormalizeTitle), payload)

	var label string
	if err := json.Unmarshal(result.Result, &label); err != nil {
		label = domain.Label(domain.JobTitles, string(service.DefaultJobTitle))
		result.Source = domain.SourceFallback
	}
	value := service.NormalizedTitleValue(label)

	writeJSON(w, http.StatusOK, normalizeTitleResponse{
		Title:  req.Title,
		Label:  domain.Label(domain.JobTitles, string(value)),
		Value:  string(value),
		Source: result.Source,
	})
}
