// Package weather derives the dashboard's weather snapshot from the settings
// record, either live from the provider or as clearly-labeled mock data.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skylight/internal/apperr"
	"skylight/internal/settings"
)

const (
	defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"
	defaultTimeout = 30 * time.Second
)

// Snapshot is the display-ready weather state. It is recomputed as a whole on
// every refresh and never merged with a previous snapshot. Temperature is a
// string so the error placeholder can be shown in its place.
type Snapshot struct {
	Temperature string  `json:"temperature"`
	Condition   string  `json:"condition"`
	Location    string  `json:"location"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	Wind        float64 `json:"wind"`
}

// Query describes one provider lookup.
type Query struct {
	APIKey   string
	City     string
	Lat, Lon float64
	ByCoords bool
	Unit     string
}

// Client performs single-shot lookups against the weather endpoint. There is
// no retry; a failed lookup surfaces as an error snapshot upstream.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config describes how the weather client should be initialised.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// NewClient builds a Client, filling in defaults for anything unset.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// providerUnits maps the C/F toggle onto the provider's unit vocabulary.
func providerUnits(unit string) string {
	if unit == settings.UnitCelsius {
		return "metric"
	}
	return "imperial"
}

// Current fetches the current conditions for q.
func (c *Client) Current(ctx context.Context, q Query) (Snapshot, error) {
	params := url.Values{}
	if q.ByCoords {
		params.Set("lat", fmt.Sprintf("%.4f", q.Lat))
		params.Set("lon", fmt.Sprintf("%.4f", q.Lon))
	} else {
		params.Set("q", q.City)
	}
	params.Set("appid", q.APIKey)
	params.Set("units", providerUnits(q.Unit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Snapshot{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Snapshot{}, &apperr.Error{Code: apperr.CodeAPIFailure, Message: "weather request could not be sent", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return Snapshot{}, apperr.AuthenticationFailure()
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Snapshot{}, apperr.APIFailure(resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Snapshot{}, apperr.MalformedResponse(err)
	}

	var envelope struct {
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Snapshot{}, apperr.MalformedResponse(err)
	}

	snapshot := Snapshot{
		Temperature: fmt.Sprintf("%d", int(math.Round(envelope.Main.Temp))),
		Location:    envelope.Name,
		Humidity:    envelope.Main.Humidity,
		Wind:        envelope.Wind.Speed,
	}
	if len(envelope.Weather) > 0 {
		snapshot.Condition = envelope.Weather[0].Description
		snapshot.Icon = envelope.Weather[0].Icon
	}
	return snapshot, nil
}

// MockSnapshot is the clearly-labeled stand-in used when no API key is
// configured. No network call is ever made for it.
func MockSnapshot(unit, location string) Snapshot {
	temperature := "72"
	if unit == settings.UnitCelsius {
		temperature = "22"
	}
	label := strings.TrimSpace(location)
	if label == "" {
		label = settings.Defaults().Location
	}
	return Snapshot{
		Temperature: temperature,
		Condition:   "Sunny",
		Location:    label + " (Mock)",
		Icon:        "01d",
		Humidity:    40,
		Wind:        5,
	}
}

// ErrorSnapshot is the degraded-but-valid state shown after a failed refresh.
func ErrorSnapshot() Snapshot {
	return Snapshot{
		Temperature: "--",
		Condition:   "API Error",
		Location:    "Check Key",
		Icon:        "50d",
		Humidity:    0,
		Wind:        0,
	}
}
