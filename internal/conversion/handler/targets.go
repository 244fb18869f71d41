package handler

import (
	"encoding/json"
	"fxconvert/internal/domain"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type AddTargetRequest struct {
	Code string `json:"code" example:"CAD"`
}

// AddTarget godoc
// @Summary Add a target currency
// @Description Adds a currency to the selected targets; adding an already selected one changes nothing
// @Tags Conversion
// @Accept json
// @Produce json
// @Param request body AddTargetRequest true "Currency to add"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /targets [post]
func (h *Handler) AddTarget(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 256)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req AddTargetRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	code := domain.NormalizeCode(req.Code)
	if err := h.validator.ValidateCode(code); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.service.AddTargetCurrency(r.Context(), code)
	writeJSON(w, http.StatusOK, toStateResponse(h.service.Snapshot()))
}

// RemoveTarget godoc
// @Summary Remove a target currency
// @Description Removes a currency from the selected targets; removing an absent one changes nothing
// @Tags Conversion
// @Produce json
// @Param code path string true "Currency code"
// @Success 200 {object} StateResponse
// @Failure 400 {object} errorResponse
// @Router /targets/{code} [delete]
func (h *Handler) RemoveTarget(w http.ResponseWriter, r *http.Request) {
	code := domain.NormalizeCode(chi.URLParam(r, "code"))
	if code == "" {
		writeError(w, http.StatusBadRequest, domain.ErrCurrencyRequired.Error())
		return
	}

	h.service.RemoveTargetCurrency(r.Context(), code)
	writeJSON(w, http.StatusOK, toStateResponse(h.service.Snapshot()))
}
