package imagegen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

type openAIClient struct {
	token string
	api   *openai.Client
}

// NewOpenAIClient builds a DALL-E 3 backed generator. baseURL may be empty to
// use the public API.
func NewOpenAIClient(token, baseURL string, hc *http.Client) *openAIClient {
	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if hc != nil {
		cfg.HTTPClient = hc
	}
	return &openAIClient{
		token: token,
		api:   openai.NewClientWithConfig(cfg),
	}
}

func (c *openAIClient) GenerateImage(ctx context.Context, prompt string, ratio domain.AspectRatio) (*domain.GeneratedImage, error) {
	if c.token == "" {
		return nil, &domain.ConfigurationError{Setting: "OPENAI_TOKEN"}
	}

	req := openai.ImageRequest{
		Prompt:         prompt,
		Model:          openai.CreateImageModelDallE3,
		Size:           sizeForRatio(ratio),
		ResponseFormat: openai.CreateImageResponseFormatURL,
		N:              1,
	}

	slog.DebugContext(ctx, "Sending openai image request", "size", req.Size)

	resp, err := c.api.CreateImage(ctx, req)
	if err != nil {
		return nil, toTransportError(err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return nil, &domain.EmptyResultError{}
	}

	return &domain.GeneratedImage{
		URL:          resp.Data[0].URL,
		SourcePrompt: prompt,
	}, nil
}

// sizeForRatio maps a ratio to the closest size DALL-E 3 accepts.
func sizeForRatio(ratio domain.AspectRatio) string {
	switch {
	case ratio.Landscape():
		return openai.CreateImageSize1792x1024
	case ratio.Portrait():
		return openai.CreateImageSize1024x1792
	default:
		return openai.CreateImageSize1024x1024
	}
}

func toTransportError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.TransportError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.TransportError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}

	return &domain.TransportError{Err: fmt.Errorf("creating image: %w", err)}
}
