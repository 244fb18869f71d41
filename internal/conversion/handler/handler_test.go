package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fxconvert/internal/conversion"
	"fxconvert/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCode(code string) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockValidator) Codes() []string {
	args := m.Called()
	codes, _ := args.Get(0).([]string)
	return codes
}

type MockService struct{ mock.Mock }

func (m *MockService) Snapshot() conversion.Snapshot {
	args := m.Called()
	snap, _ := args.Get(0).(conversion.Snapshot)
	return snap
}

func (m *MockService) AddTargetCurrency(ctx context.Context, code string) bool {
	return m.Called(ctx, code).Bool(0)
}

func (m *MockService) RemoveTargetCurrency(ctx context.Context, code string) bool {
	return m.Called(ctx, code).Bool(0)
}

func (m *MockService) Refresh(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockService) Conversions(amount float64, from string) []conversion.ConversionRow {
	args := m.Called(amount, from)
	rows, _ := args.Get(0).([]conversion.ConversionRow)
	return rows
}

func (m *MockService) SyncTargets(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

func sampleSnapshot() conversion.Snapshot {
	updated := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	return conversion.Snapshot{
		AvailableCurrencies: []string{"USD", "EUR", "GBP"},
		TargetCurrencies:    []string{"EUR", "GBP"},
		Rates:               domain.RateTable{"EUR": 0.85, "GBP": 0.73},
		LastUpdated:         &updated,
		TimeSinceUpdate:     "5 minutes ago",
	}
}

// --- GetState ---

func TestHandler_GetState(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	snap := sampleSnapshot()
	snap.Error = &conversion.ErrorView{Kind: domain.KindRemoteError, Message: "API error: Status code: 429", StatusCode: 429}
	mockService.On("SyncTargets", mock.Anything).Return(false, nil).Once()
	mockService.On("Snapshot").Return(snap).Once()

	req := httptest.NewRequest(http.MethodGet, "/state", nil)
	rr := httptest.NewRecorder()

	h.GetState(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var res StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "GBP"}, res.TargetCurrencies)
	require.Equal(t, []string{"USD", "EUR", "GBP"}, res.AvailableCurrencies)
	require.InDelta(t, 0.85, res.Rates["EUR"], 1e-9)
	require.False(t, res.IsLoading)
	require.NotNil(t, res.Error)
	require.Equal(t, "remote_error", res.Error.Kind)
	require.Equal(t, 429, res.Error.StatusCode)
	require.True(t, res.LastUpdated.Equal(*snap.LastUpdated))
	require.Equal(t, "5 minutes ago", res.TimeSinceUpdate)
	mockService.AssertExpectations(t)
}

func TestHandler_GetState_EmptyRatesEncodeAsObject(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)
	mockService.On("SyncTargets", mock.Anything).Return(false, nil).Once()
	mockService.On("Snapshot").Return(conversion.Snapshot{TargetCurrencies: []string{}, TimeSinceUpdate: "never"}).Once()

	rr := httptest.NewRecorder()
	h.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"rates":{}`)
	require.NotContains(t, rr.Body.String(), `"error"`)
	require.NotContains(t, rr.Body.String(), `"last_updated"`)
}

func TestHandler_GetState_SyncFailureServesLocalState(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)
	mockService.On("SyncTargets", mock.Anything).Return(false, errors.New("connection refused")).Once()
	mockService.On("Snapshot").Return(sampleSnapshot()).Once()

	rr := httptest.NewRecorder()
	h.GetState(rr, httptest.NewRequest(http.MethodGet, "/state", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "GBP"}, res.TargetCurrencies)
	mockService.AssertExpectations(t)
}

// --- GetCurrencies ---

func TestHandler_GetCurrencies(t *testing.T) {
	mockValidator := new(MockValidator)
	h := NewHandler(mockValidator, new(MockService))

	mockValidator.On("Codes").Return([]string{"USD", "EUR"}).Once()

	rr := httptest.NewRecorder()
	h.GetCurrencies(rr, httptest.NewRequest(http.MethodGet, "/currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetCurrenciesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"USD", "EUR"}, res.Codes)
	mockValidator.AssertExpectations(t)
}

// --- AddTarget ---

func TestHandler_AddTarget_InvalidJSON(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodPost, "/targets", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()

	h.AddTarget(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, "invalid request body", ej.Error)
	mockValidator.AssertNotCalled(t, "ValidateCode", mock.Anything)
	mockService.AssertNotCalled(t, "AddTargetCurrency", mock.Anything, mock.Anything)
}

func TestHandler_AddTarget_UnknownField(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	req := httptest.NewRequest(http.MethodPost, "/targets", bytes.NewBufferString(`{"code":"CAD","extra":1}`))
	rr := httptest.NewRecorder()

	h.AddTarget(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "AddTargetCurrency", mock.Anything, mock.Anything)
}

func TestHandler_AddTarget_BodyTooLarge(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	body := `{"code":"` + strings.Repeat("A", 270) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/targets", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()

	h.AddTarget(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "AddTargetCurrency", mock.Anything, mock.Anything)
}

func TestHandler_AddTarget_ValidationErrors(t *testing.T) {
	cases := []struct {
		name         string
		validatorErr error
	}{
		{name: "code required", validatorErr: domain.ErrCurrencyRequired},
		{name: "code unsupported", validatorErr: domain.ErrCurrencyUnsupported},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockValidator := new(MockValidator)
			mockService := new(MockService)
			h := NewHandler(mockValidator, mockService)

			req := httptest.NewRequest(http.MethodPost, "/targets", bytes.NewBufferString(`{"code":" xyz "}`))
			rr := httptest.NewRecorder()

			mockValidator.On("ValidateCode", "XYZ").Return(tc.validatorErr).Once()

			h.AddTarget(rr, req)

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, tc.validatorErr.Error(), ej.Error)
			mockService.AssertNotCalled(t, "AddTargetCurrency", mock.Anything, mock.Anything)
			mockValidator.AssertExpectations(t)
		})
	}
}

func TestHandler_AddTarget_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewHandler(mockValidator, mockService)

	req := httptest.NewRequest(http.MethodPost, "/targets", bytes.NewBufferString(`{"code":" cad"}`))
	rr := httptest.NewRecorder()

	snap := sampleSnapshot()
	snap.TargetCurrencies = append(snap.TargetCurrencies, "CAD")
	mockValidator.On("ValidateCode", "CAD").Return(nil).Once()
	mockService.On("AddTargetCurrency", mock.Anything, "CAD").Return(true).Once()
	mockService.On("Snapshot").Return(snap).Once()

	h.AddTarget(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "GBP", "CAD"}, res.TargetCurrencies)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

// --- RemoveTarget ---

func TestHandler_RemoveTarget(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	req := httptest.NewRequest(http.MethodDelete, "/targets/gbp", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", "gbp")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()

	snap := sampleSnapshot()
	snap.TargetCurrencies = []string{"EUR"}
	mockService.On("RemoveTargetCurrency", mock.Anything, "GBP").Return(true).Once()
	mockService.On("Snapshot").Return(snap).Once()

	h.RemoveTarget(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var res StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR"}, res.TargetCurrencies)
	mockService.AssertExpectations(t)
}

func TestHandler_RemoveTarget_EmptyCode(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	req := httptest.NewRequest(http.MethodDelete, "/targets/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("code", " ")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()

	h.RemoveTarget(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	mockService.AssertNotCalled(t, "RemoveTargetCurrency", mock.Anything, mock.Anything)
}

// --- Refresh ---

func TestHandler_Refresh_FailureStillReturnsState(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	snap := sampleSnapshot()
	snap.Error = &conversion.ErrorView{Kind: domain.KindTransportError, Message: "Network error: timeout"}
	mockService.On("Refresh", mock.Anything).Return(errors.New("failed to refresh rates")).Once()
	mockService.On("Snapshot").Return(snap).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res StateResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.NotNil(t, res.Error)
	require.Equal(t, "transport_error", res.Error.Kind)
	require.InDelta(t, 0.73, res.Rates["GBP"], 1e-9)
	mockService.AssertExpectations(t)
}

func TestHandler_Refresh_NotCancelledWithRequest(t *testing.T) {
	mockService := new(MockService)
	h := NewHandler(new(MockValidator), mockService)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mockService.On("Refresh", mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })).Return(nil).Once()
	mockService.On("Snapshot").Return(sampleSnapshot()).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/refresh", nil).WithContext(ctx))

	require.Equal(t, http.StatusOK, rr.Code)
	mockService.AssertExpectations(t)
}

// --- Convert ---

func TestHandler_Convert_Success(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewHandler(mockValidator, mockService)

	rows := []conversion.ConversionRow{
		{Target: "EUR", Rate: 1, Amount: 100},
		{Target: "GBP", Rate: 0.73 / 0.85, Amount: (100 / 0.85) * 0.73},
	}
	mockValidator.On("ValidateCode", "EUR").Return(nil).Once()
	mockService.On("SyncTargets", mock.Anything).Return(true, nil).Once()
	mockService.On("Conversions", 100.0, "EUR").Return(rows).Once()

	rr := httptest.NewRecorder()
	h.Convert(rr, httptest.NewRequest(http.MethodGet, "/convert?amount=100&from=eur", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res ConvertResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, "EUR", res.From)
	require.InDelta(t, 100, res.Amount, 1e-9)
	require.Len(t, res.Rows, 2)
	require.Equal(t, "GBP", res.Rows[1].Target)
	require.InDelta(t, 85.88, res.Rows[1].Amount, 0.01)
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_Convert_DefaultsToUSDAndZero(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewHandler(mockValidator, mockService)

	mockValidator.On("ValidateCode", "USD").Return(nil).Once()
	mockService.On("SyncTargets", mock.Anything).Return(false, nil).Once()
	mockService.On("Conversions", 0.0, "USD").Return([]conversion.ConversionRow{}).Once()

	rr := httptest.NewRecorder()
	h.Convert(rr, httptest.NewRequest(http.MethodGet, "/convert", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"rows":[]`)
	mockService.AssertExpectations(t)
}

func TestHandler_Convert_InvalidAmount(t *testing.T) {
	for _, amount := range []string{"abc", "NaN", "Inf"} {
		t.Run(amount, func(t *testing.T) {
			mockService := new(MockService)
			h := NewHandler(new(MockValidator), mockService)

			rr := httptest.NewRecorder()
			h.Convert(rr, httptest.NewRequest(http.MethodGet, "/convert?amount="+amount, nil))

			require.Equal(t, http.StatusBadRequest, rr.Code)
			var ej errorJSON
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
			require.Equal(t, "invalid amount", ej.Error)
			mockService.AssertNotCalled(t, "Conversions", mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_Convert_UnsupportedSource(t *testing.T) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewHandler(mockValidator, mockService)

	mockValidator.On("ValidateCode", "XYZ").Return(domain.ErrCurrencyUnsupported).Once()

	rr := httptest.NewRecorder()
	h.Convert(rr, httptest.NewRequest(http.MethodGet, "/convert?amount=1&from=xyz", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	require.Equal(t, domain.ErrCurrencyUnsupported.Error(), ej.Error)
	mockService.AssertNotCalled(t, "Conversions", mock.Anything, mock.Anything)
}
