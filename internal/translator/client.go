// Package translator calls the remote translation endpoint.
package translator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/at-ishikawa/photolingo/internal/language"
)

const translatePath = "/api/v1/{source}/{target}/{text}"

type Client struct {
	httpClient *resty.Client
}

// NewClient creates a client for the endpoint at baseURL.
// A zero timeout leaves requests bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient: client,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type translateResponse struct {
	Translation    *string `json:"translation"`
	TranslatedText *string `json:"translatedText"`
}

// Translate translates text from source to target. It never returns an error:
// every failure is reported through Result.Failure.
func (client *Client) Translate(ctx context.Context, source, target, text string) Result {
	logger := slog.Default().With(
		"source", source,
		"target", target,
		"text", text,
	)

	if !language.SupportedSource(source) {
		logger.Warn("unsupported source language")
		return failure(FailureUnsupportedLanguage, fmt.Sprintf("unsupported source language: %s", source))
	}
	if !language.Supported(target) {
		logger.Warn("unsupported target language")
		return failure(FailureUnsupportedLanguage, fmt.Sprintf("unsupported target language: %s", target))
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"source": source,
			"target": target,
			"text":   text,
		}).
		Get(translatePath)
	if err != nil {
		logger.Error("translation request failed", "error", err)
		return failure(FailureTransport, fmt.Sprintf("httpClient.Get > %v", err))
	}

	result := parseResponse(response.StatusCode(), response.Header().Get("Content-Type"), response.String())
	if !result.OK() {
		logger.Error("translation unavailable",
			"status", response.StatusCode(),
			"failure", result.Failure.String(),
			"detail", result.Detail,
		)
		return result
	}
	logger.Debug("translation response", "translation", result.Text)
	return result
}

func parseResponse(statusCode int, contentType string, body string) Result {
	switch {
	case statusCode == http.StatusBadRequest,
		statusCode == http.StatusNotFound,
		statusCode == http.StatusUnprocessableEntity:
		return failure(FailureUnsupportedLanguage, fmt.Sprintf("response error %d: %s", statusCode, body))
	case statusCode < 200 || statusCode > 299:
		return failure(FailureTransport, fmt.Sprintf("response error %d: %s", statusCode, body))
	}

	if !strings.Contains(contentType, "application/json") {
		return failure(FailureMalformedResponse, fmt.Sprintf("expected JSON but got %q: %s", contentType, body))
	}

	var decoded translateResponse
	if err := json.Unmarshal([]byte(body), &decoded); err != nil {
		return failure(FailureMalformedResponse, fmt.Sprintf("json.Unmarshal(%s) > %v", body, err))
	}

	for _, field := range []*string{decoded.Translation, decoded.TranslatedText} {
		if field != nil && *field != "" {
			return success(*field)
		}
	}
	return failure(FailureMalformedResponse, fmt.Sprintf("no translation field in response: %s", body))
}
