package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

func TestOpenAIGenerateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req openai.ImageRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openai.CreateImageModelDallE3, req.Model)
		assert.Equal(t, openai.CreateImageSize1792x1024, req.Size)
		assert.Equal(t, openai.CreateImageResponseFormatURL, req.ResponseFormat)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[{"url":"https://img.test/dalle.png"}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("token", srv.URL+"/v1", srv.Client())
	img, err := c.GenerateImage(context.Background(), "a prompt", domain.Ratio16x9)

	require.NoError(t, err)
	assert.Equal(t, "https://img.test/dalle.png", img.URL)
	assert.Equal(t, "a prompt", img.SourcePrompt)
}

func TestOpenAIGenerateImage_MissingToken(t *testing.T) {
	c := NewOpenAIClient("", "http://127.0.0.1:0", nil)

	_, err := c.GenerateImage(context.Background(), "a prompt", domain.Ratio1x1)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "OPENAI_TOKEN", cfgErr.Setting)
}

func TestOpenAIGenerateImage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited","type":"requests"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("token", srv.URL+"/v1", srv.Client())
	_, err := c.GenerateImage(context.Background(), "a prompt", domain.Ratio1x1)

	var tErr *domain.TransportError
	require.ErrorAs(t, err, &tErr)
	assert.Equal(t, http.StatusTooManyRequests, tErr.StatusCode)
	assert.Equal(t, "rate limited", tErr.Body)
}

func TestOpenAIGenerateImage_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":1,"data":[]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("token", srv.URL+"/v1", srv.Client())
	_, err := c.GenerateImage(context.Background(), "a prompt", domain.Ratio1x1)

	var eErr *domain.EmptyResultError
	require.ErrorAs(t, err, &eErr)
}

func TestSizeForRatio(t *testing.T) {
	tests := []struct {
		ratio    domain.AspectRatio
		expected string
	}{
		{domain.Ratio1x1, openai.CreateImageSize1024x1024},
		{domain.Ratio16x9, openai.CreateImageSize1792x1024},
		{domain.Ratio21x9, openai.CreateImageSize1792x1024},
		{domain.Ratio9x16, openai.CreateImageSize1024x1792},
		{domain.Ratio3x4, openai.CreateImageSize1024x1792},
		{"", openai.CreateImageSize1024x1024},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, sizeForRatio(tt.ratio), string(tt.ratio))
	}
}
