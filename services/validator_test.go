package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentValidatorCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ValidationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "broken tap near the library", req.Description)
		assert.Contains(t, req.AllowedTags, "Plumbing")

		json.NewEncoder(w).Encode(ValidationResult{
			Allowed:       true,
			SuggestedTags: []string{"Plumbing"},
		})
	}))
	defer server.Close()

	v := NewContentValidator(server.URL)
	result, err := v.Check(context.Background(), ValidationRequest{
		Description: "broken tap near the library",
		AllowedTags: []string{"Plumbing", "Wifi"},
	})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	assert.Equal(t, []string{"Plumbing"}, result.SuggestedTags)
}

func TestContentValidatorCheckBlocked(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"allowed":       false,
			"reason":        "spam",
			"flags":         map[string]bool{"spam": true},
			"suggestedTags": []string{},
		})
	}))
	defer server.Close()

	v := NewContentValidator(server.URL)
	result, err := v.Check(context.Background(), ValidationRequest{Description: "buy now"})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	require.NotNil(t, result.Reason)
	assert.Equal(t, "spam", *result.Reason)
	assert.True(t, result.Flags.Spam)
}

func TestContentValidatorCheckUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	v := NewContentValidator(server.URL)
	_, err := v.Check(context.Background(), ValidationRequest{Description: "anything"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestContentValidatorCheckMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	v := NewContentValidator(server.URL)
	_, err := v.Check(context.Background(), ValidationRequest{Description: "anything"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed")
}

func TestContentValidatorCheckUnreachable(t *testing.T) {
	v := NewContentValidator("http://127.0.0.1:1")
	_, err := v.Check(context.Background(), ValidationRequest{Description: "anything"})
	require.Error(t, err)
}
