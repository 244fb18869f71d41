package handler

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
)

// Refresh godoc
// @Summary Refresh rates now
// @Description Fetches the latest rates. A failed fetch keeps the previous rates and is reported in the error field.
// @Tags Conversion
// @Produce json
// @Success 200 {object} StateResponse
// @Router /refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	// a refresh is not cancelled by the caller going away
	if err := h.service.Refresh(context.WithoutCancel(r.Context())); err != nil {
		logrus.WithError(err).WithField("handler", "Refresh").Warn("manual refresh failed")
	}
	writeJSON(w, http.StatusOK, toStateResponse(h.service.Snapshot()))
}
