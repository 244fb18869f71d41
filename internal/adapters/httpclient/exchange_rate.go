package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"fxconvert/internal/domain"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

type ExchangeRateClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

type apiResponse struct {
	Result          string             `json:"result"`
	BaseCode        string             `json:"base_code"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// GetExchangeRates issues GET {baseURL}/{apiKey}/latest/{base}. Every failure is a *domain.FetchError.
func (c *ExchangeRateClient) GetExchangeRates(ctx context.Context, base string) (domain.RateTable, error) {
	if c.apiKey == "" {
		return nil, domain.NewInvalidRequestError(errors.New("exchange rate api key is empty"))
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, domain.NewInvalidRequestError(fmt.Errorf("failed to parse base URL: %w", err))
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, domain.NewInvalidRequestError(fmt.Errorf("base URL %q is not absolute", c.baseURL))
	}

	u = u.JoinPath(c.apiKey, "latest", base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, domain.NewInvalidRequestError(fmt.Errorf("failed to create request for currency %q: %w", base, err))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domain.NewTransportError(fmt.Errorf("failed to execute request for currency %q: %w", base, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewRemoteError(resp.StatusCode)
	}

	var body apiResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, domain.NewUnexpectedResponseError(fmt.Errorf("failed to decode response for currency %q: %w", base, err))
	}
	if body.ConversionRates == nil {
		return nil, domain.NewUnexpectedResponseError(fmt.Errorf("response for currency %q has no conversion_rates (result %q)", base, body.Result))
	}

	rates := make(domain.RateTable, len(body.ConversionRates))
	for code, v := range body.ConversionRates {
		if v <= 0 {
			logrus.WithFields(logrus.Fields{"base": base, "code": code, "value": v}).Warn("Dropping non-positive rate")
			continue
		}
		rates[code] = v
	}
	return rates, nil
}

func NewExchangeRateClient(httpClient *http.Client, baseURL string, apiKey string) *ExchangeRateClient {
	return &ExchangeRateClient{http: httpClient, baseURL: baseURL, apiKey: apiKey}
}
