// Package ai extracts structured transaction data from receipt images
// through the backend's chat completion endpoint.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/xeipuuv/gojsonschema"

	"github.com/smart-wallet/core/internal/backend"
	"github.com/smart-wallet/core/internal/config"
	"github.com/smart-wallet/core/internal/models"
	"github.com/smart-wallet/core/internal/types"
)

// The prompt asks for bare JSON. Models still wrap the answer in markdown
// fences often enough that parsing strips them.
const (
	systemPrompt = `You are a financial receipt parsing assistant.`
	userPrompt   = `Extract the total amount, the purchase date, the merchant name and a one-word spending category from this receipt image. Respond with a single JSON object of the form {"amount": 12.34, "date": "2026-01-31", "merchant": "...", "category": "..."} and nothing else. Use null for anything you cannot read.`
)

// receiptSchema accepts partial extractions. Every field is optional, a
// receipt photographed badly still yields whatever the model could read;
// wrong types fail validation and fall back to the raw answer.
const receiptSchema = `{
	"type": "object",
	"properties": {
		"amount": {"type": ["number", "null"]},
		"date": {"type": ["string", "null"]},
		"merchant": {"type": ["string", "null"]},
		"category": {"type": ["string", "null"]}
	}
}`

// Receipt is the extraction result. When the model's answer does not
// validate, only Raw is set and the caller decides what to do with the
// free-form text.
type Receipt struct {
	Amount   decimal.Decimal `json:"amount"`
	Date     types.Date      `json:"date,omitempty"`
	Merchant string          `json:"merchant,omitempty"`
	Category string          `json:"category,omitempty"`
	Raw      string          `json:"raw"`
}

// Structured reports whether the extraction produced usable fields.
func (r Receipt) Structured() bool {
	return !r.Amount.IsZero() || r.Merchant != ""
}

// Parser calls the backend's chat completion endpoint with the service
// role key. It never sees the anonymous key; receipt parsing is a
// privileged, server-side operation.
type Parser struct {
	base   *url.URL
	key    string
	model  string
	schema *gojsonschema.Schema
	http   *http.Client
	log    zerolog.Logger
}

// NewParser creates a Parser. It fails when no service role key is
// configured, the completion endpoint rejects anonymous callers.
func NewParser(b *backend.Client, cfg config.Config) (*Parser, error) {
	if b.ServiceRoleKey() == "" {
		return nil, config.ErrServiceKeyMissing
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(receiptSchema))
	if err != nil {
		return nil, fmt.Errorf("ai: compiling receipt schema: %w", err)
	}

	return &Parser{
		base:   b.BaseURL(),
		key:    b.ServiceRoleKey(),
		model:  cfg.AIModel,
		schema: schema,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		log:    log.With().Str("component", "ai").Logger(),
	}, nil
}

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

type message struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageRef `json:"image_url,omitempty"`
}

type imageRef struct {
	URL string `json:"url"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Parse extracts a receipt from the image at the given URL. A model answer
// that is not valid JSON, or does not match the expected shape, is not an
// error: the raw text is returned for manual entry.
func (p *Parser) Parse(ctx context.Context, imageURL string) (Receipt, error) {
	if imageURL == "" {
		return Receipt{}, fmt.Errorf("ai: image url is required: %w", models.ErrValidation)
	}

	content, err := p.complete(ctx, imageURL)
	if err != nil {
		return Receipt{}, err
	}

	return p.extract(content), nil
}

// complete performs one chat completion round trip.
func (p *Parser) complete(ctx context.Context, imageURL string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model: p.model,
		Messages: []message{
			{
				Role:    "system",
				Content: []contentPart{{Type: "text", Text: systemPrompt}},
			},
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: userPrompt},
					{Type: "image_url", ImageURL: &imageRef{URL: imageURL}},
				},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai: encoding completion request: %w", err)
	}

	target := p.base.JoinPath("/ai/v1/chat/completions")
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Authorization", "Bearer "+p.key)

	response, err := p.http.Do(request)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), models.ErrNetwork)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden:
		return "", fmt.Errorf("completion rejected: %w", models.ErrAuth)
	case response.StatusCode != http.StatusOK:
		return "", fmt.Errorf("completion failed (%s): %w", response.Status, models.ErrBackend)
	}

	var completion completionResponse
	if err := json.NewDecoder(response.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("ai: decoding completion: %w", models.ErrBackend)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices: %w", models.ErrBackend)
	}

	return completion.Choices[0].Message.Content, nil
}

// extract turns the model's answer into a Receipt, falling back to the raw
// text when the answer does not validate.
func (p *Parser) extract(content string) Receipt {
	raw := strings.TrimSpace(content)
	fallback := Receipt{Raw: raw}

	trimmed := stripFences(raw)

	result, err := p.schema.Validate(gojsonschema.NewStringLoader(trimmed))
	if err != nil || !result.Valid() {
		p.log.Debug().Str("content", trimmed).Msg("unstructured completion answer")
		return fallback
	}

	var parsed struct {
		Amount   decimal.Decimal `json:"amount"`
		Date     string          `json:"date"`
		Merchant string          `json:"merchant"`
		Category string          `json:"category"`
	}
	if err := json.Unmarshal([]byte(trimmed), &parsed); err != nil {
		return fallback
	}

	receipt := Receipt{
		Amount:   parsed.Amount,
		Merchant: parsed.Merchant,
		Category: parsed.Category,
		Raw:      raw,
	}

	if parsed.Date != "" {
		if date, err := types.ParseDate(parsed.Date); err == nil {
			receipt.Date = date
		}
	}

	return receipt
}

// stripFences removes a single markdown code fence around the answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")

	return strings.TrimSpace(s)
}
