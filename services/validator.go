package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ValidationRequest is the payload sent to the LLM content validator.
type ValidationRequest struct {
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	AllowedTags []string `json:"allowedTags,omitempty"`
}

type ValidationFlags struct {
	Inappropriate bool `json:"inappropriate"`
	Spam          bool `json:"spam"`
	Advertisement bool `json:"advertisement"`
	Mismatch      bool `json:"mismatch"`
}

// ValidationResult is the validator's verdict. SuggestedTags is a subset
// of the allowed tags sent with the request.
type ValidationResult struct {
	Allowed       bool            `json:"allowed"`
	Reason        *string         `json:"reason,omitempty"`
	Flags         ValidationFlags `json:"flags"`
	SuggestedTags []string        `json:"suggestedTags"`
	RawLLM        json.RawMessage `json:"raw_llm,omitempty"`
}

// ContentValidator calls the external moderation/categorization service.
// A single POST, no retries; failures surface to the caller unchanged.
type ContentValidator struct {
	url    string
	client *http.Client
}

func NewContentValidator(url string) *ContentValidator {
	return &ContentValidator{
		url:    url,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (v *ContentValidator) Check(ctx context.Context, req ValidationRequest) (*ValidationResult, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("validator request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("validator returned status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}

	var result ValidationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("validator response malformed: %w", err)
	}

	return &result, nil
}
