// Package caixa is the HTTP client for the public Caixa lottery
// endpoints: the spreadsheet download used for full rebuilds and the
// per-lottery JSON endpoint used for incremental latest updates.
package caixa

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Caixa lottery results API.
const DefaultBaseURL = "https://servicebus2.caixa.gov.br/portaldeloterias/api"

// The endpoint rejects requests that do not look like a browser.
const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	acceptLanguage = "pt-BR,pt;q=0.9,en;q=0.8"
	referer        = "https://loterias.caixa.gov.br/"
)

// Slugs maps lottery identifiers to the modalidade parameter the download
// endpoint expects.
var Slugs = map[string]string{
	"federal":        "Federal",
	"megasena":       "Mega-Sena",
	"lotofacil":      "Lotofácil",
	"quina":          "Quina",
	"lotomania":      "Lotomania",
	"timemania":      "Timemania",
	"duplasena":      "Dupla Sena",
	"loteca":         "Loteca",
	"diadesorte":     "Dia de Sorte",
	"supersete":      "Super Sete",
	"maismilionaria": "+Milionária",
}

// ModalidadeFor resolves the download slug for a lottery identifier.
func ModalidadeFor(lottery string) (string, bool) {
	slug, ok := Slugs[strings.ToLower(strings.TrimSpace(lottery))]
	return slug, ok
}

// StatusError reports a non-success response from a Caixa endpoint.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("caixa: %s returned status %d", e.URL, e.Code)
}

// Client talks to the Caixa lottery endpoints.
type Client struct {
	BaseURL string
	client  *http.Client
}

// NewClient creates a new Caixa API client. An empty baseURL selects the
// public endpoint; a non-positive timeout falls back to 30 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchSpreadsheet downloads the full results spreadsheet for a
// modalidade and returns its raw bytes.
func (c *Client) FetchSpreadsheet(ctx context.Context, modalidade string) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/resultados/download?modalidade=%s", c.BaseURL, url.QueryEscape(modalidade))
	resp, err := c.get(ctx, reqURL, "application/xlsx,*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caixa: read download body: %w", err)
	}
	return data, nil
}

// DrawResult is the shape of the per-lottery latest-draw JSON endpoint.
type DrawResult struct {
	Numero                       int            `json:"numero"`
	DataApuracao                 string         `json:"dataApuracao"`
	DezenasSorteadasOrdemSorteio []string       `json:"dezenasSorteadasOrdemSorteio"`
	ListaRateioPremio            []RateioPremio `json:"listaRateioPremio"`
}

// RateioPremio is one prize tier within a DrawResult.
type RateioPremio struct {
	ValorPremio float64 `json:"valorPremio"`
}

// LatestResult fetches the most recent draw for a lottery.
func (c *Client) LatestResult(ctx context.Context, lottery string) (*DrawResult, error) {
	reqURL := fmt.Sprintf("%s/%s/", c.BaseURL, url.PathEscape(strings.ToLower(lottery)))
	resp, err := c.get(ctx, reqURL, "application/json,*/*")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DrawResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("caixa: decode latest result: %w", err)
	}
	return &result, nil
}

func (c *Client) get(ctx context.Context, reqURL, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("caixa: build request %s: %w", reqURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", acceptLanguage)
	req.Header.Set("Referer", referer)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("caixa: request %s: %w", reqURL, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, &StatusError{URL: reqURL, Code: resp.StatusCode}
	}
	return resp, nil
}
