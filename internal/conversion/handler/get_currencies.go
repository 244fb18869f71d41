package handler

import "net/http"

type GetCurrenciesResponse struct {
	Codes []string `json:"codes" example:"USD,EUR,JPY"`
}

// GetCurrencies godoc
// @Summary List available currencies
// @Description Currencies that can be used as source or target
// @Tags Conversion
// @Produce json
// @Success 200 {object} GetCurrenciesResponse
// @Router /currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, GetCurrenciesResponse{Codes: h.validator.Codes()})
}
