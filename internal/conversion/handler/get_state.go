package handler

import "net/http"

// GetState godoc
// @Summary Get conversion state
// @Description Selected currencies, latest rates, loading flag, last error and update time
// @Tags Conversion
// @Produce json
// @Success 200 {object} StateResponse
// @Router /state [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	h.syncTargets(r)
	writeJSON(w, http.StatusOK, toStateResponse(h.service.Snapshot()))
}
