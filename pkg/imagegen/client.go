package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

type Config struct {
	APIKey            string
	URL               string
	Model             string
	ReferenceImageURL string
}

type client struct {
	cfg Config
	hc  *http.Client
}

func NewClient(cfg Config, hc *http.Client) *client {
	if hc == nil {
		hc = &http.Client{}
	}
	if cfg.ReferenceImageURL == "" {
		cfg.ReferenceImageURL = DefaultReferenceImageURL
	}
	return &client{
		cfg: cfg,
		hc:  hc,
	}
}

// GenerateImage issues a single generation request and returns the first
// image url of the response. Extra urls are ignored.
func (c *client) GenerateImage(ctx context.Context, prompt string, ratio domain.AspectRatio) (*domain.GeneratedImage, error) {
	if c.cfg.APIKey == "" {
		return nil, &domain.ConfigurationError{Setting: "IMAGE_API_KEY"}
	}

	if ratio == "" {
		ratio = domain.DefaultAspectRatio
	}

	imageRequest := imageGenerationRequest{
		Model:          c.cfg.Model,
		Prompt:         prompt,
		AspectRatio:    string(ratio),
		ResponseFormat: responseFormatURL,
		SubjectReference: []subjectReference{
			{Type: subjectTypeCharacter, ImageFile: c.cfg.ReferenceImageURL},
		},
	}

	slog.DebugContext(ctx, "Sending image generation request", "url", c.cfg.URL, "model", c.cfg.Model, "aspectRatio", ratio)

	body, err := c.sendRequest(ctx, imageRequest)
	if err != nil {
		return nil, err
	}

	var imageResponse imageGenerationResponse
	if err := json.Unmarshal(body, &imageResponse); err != nil {
		return nil, &domain.TransportError{Body: string(body), Err: fmt.Errorf("decoding response data: %w", err)}
	}

	if imageResponse.BaseResp.StatusCode != statusCodeSuccess {
		msg := imageResponse.BaseResp.StatusMsg
		if msg == "" {
			msg = defaultUpstreamMessage
		}
		return nil, &domain.UpstreamError{StatusCode: imageResponse.BaseResp.StatusCode, Message: msg}
	}

	if imageResponse.Data == nil || len(imageResponse.Data.ImageURLs) == 0 || imageResponse.Data.ImageURLs[0] == "" {
		return nil, &domain.EmptyResultError{}
	}

	if n := len(imageResponse.Data.ImageURLs); n > 1 {
		slog.DebugContext(ctx, "Ignoring extra image urls", "count", n-1)
	}

	return &domain.GeneratedImage{
		URL:          imageResponse.Data.ImageURLs[0],
		SourcePrompt: prompt,
	}, nil
}

func (c *client) sendRequest(ctx context.Context, imageRequest imageGenerationRequest) ([]byte, error) {
	body, err := json.Marshal(imageRequest)
	if err != nil {
		return nil, fmt.Errorf("marshaling image request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("executing HTTP request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.TransportError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return respBody, nil
}
