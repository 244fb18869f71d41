package handler

import (
	"context"
	"encoding/json"
	"fxconvert/internal/conversion"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

type Validator interface {
	ValidateCode(code string) error
	Codes() []string
}

type Service interface {
	Snapshot() conversion.Snapshot
	AddTargetCurrency(ctx context.Context, code string) bool
	RemoveTargetCurrency(ctx context.Context, code string) bool
	Refresh(ctx context.Context) error
	Conversions(amount float64, from string) []conversion.ConversionRow
	SyncTargets(ctx context.Context) (bool, error)
}

type Handler struct {
	validator Validator
	service   Service
}

func NewHandler(validator Validator, service Service) *Handler {
	return &Handler{validator: validator, service: service}
}

type errorResponse struct {
	Error string `json:"error"`
}

type FetchErrorResponse struct {
	Kind       string `json:"kind" example:"remote_error"`
	Message    string `json:"message" example:"API error: Status code: 429"`
	StatusCode int    `json:"status_code,omitempty" example:"429"`
}

type StateResponse struct {
	AvailableCurrencies []string            `json:"available_currencies" example:"USD,EUR,GBP"`
	TargetCurrencies    []string            `json:"target_currencies" example:"EUR,GBP"`
	Rates               map[string]float64  `json:"rates"`
	IsLoading           bool                `json:"is_loading"`
	Error               *FetchErrorResponse `json:"error,omitempty"`
	LastUpdated         *time.Time          `json:"last_updated,omitempty" example:"2025-01-02T15:04:05Z"`
	TimeSinceUpdate     string              `json:"time_since_update" example:"5 minutes ago"`
}

func toStateResponse(snap conversion.Snapshot) StateResponse {
	res := StateResponse{
		AvailableCurrencies: snap.AvailableCurrencies,
		TargetCurrencies:    snap.TargetCurrencies,
		Rates:               snap.Rates,
		IsLoading:           snap.IsLoading,
		LastUpdated:         snap.LastUpdated,
		TimeSinceUpdate:     snap.TimeSinceUpdate,
	}
	if res.Rates == nil {
		res.Rates = map[string]float64{}
	}
	if snap.Error != nil {
		res.Error = &FetchErrorResponse{
			Kind:       string(snap.Error.Kind),
			Message:    snap.Error.Message,
			StatusCode: snap.Error.StatusCode,
		}
	}
	return res
}

// syncTargets picks up target changes made by other instances; on failure the local list is served.
func (h *Handler) syncTargets(r *http.Request) {
	if _, err := h.service.SyncTargets(r.Context()); err != nil {
		logrus.WithError(err).Warn("failed to sync target currencies")
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{
		Error: errorMsg,
	})
}
