package handler

import (
	"fxconvert/internal/domain"
	"math"
	"net/http"
	"strconv"
	"strings"
)

type ConversionRowResponse struct {
	Target string  `json:"target" example:"EUR"`
	Rate   float64 `json:"rate" example:"0.85"`
	Amount float64 `json:"amount" example:"85"`
}

type ConvertResponse struct {
	From   string                  `json:"from" example:"USD"`
	Amount float64                 `json:"amount" example:"100"`
	Rows   []ConversionRowResponse `json:"rows"`
}

// Convert godoc
// @Summary Convert an amount into every target currency
// @Description Unknown rates convert to 0. An empty amount is treated as 0.
// @Tags Conversion
// @Produce json
// @Param amount query number false "Amount in the source currency"
// @Param from query string false "Source currency" default(USD)
// @Success 200 {object} ConvertResponse
// @Failure 400 {object} errorResponse
// @Router /convert [get]
func (h *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount := 0.0
	if raw := strings.TrimSpace(query.Get("amount")); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			writeError(w, http.StatusBadRequest, "invalid amount")
			return
		}
		amount = parsed
	}

	from := domain.BaseCurrency
	if raw := query.Get("from"); strings.TrimSpace(raw) != "" {
		from = domain.NormalizeCode(raw)
	}
	if err := h.validator.ValidateCode(from); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.syncTargets(r)
	rows := h.service.Conversions(amount, from)
	res := ConvertResponse{From: from, Amount: amount, Rows: make([]ConversionRowResponse, 0, len(rows))}
	for _, row := range rows {
		res.Rows = append(res.Rows, ConversionRowResponse{Target: row.Target, Rate: row.Rate, Amount: row.Amount})
	}
	writeJSON(w, http.StatusOK, res)
}
