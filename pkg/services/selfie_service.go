package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dskvich/selfie-sender/pkg/domain"
	"github.com/dskvich/selfie-sender/pkg/keyword"
	"github.com/dskvich/selfie-sender/pkg/prompt"
)

type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string, ratio domain.AspectRatio) (*domain.GeneratedImage, error)
}

type Transport interface {
	Name() string
	Deliver(ctx context.Context, channel, message, media string) error
}

type selfieService struct {
	imageGenerator ImageGenerator
	transport      Transport
	defaultCaption string
}

func NewSelfieService(
	imageGenerator ImageGenerator,
	transport Transport,
	defaultCaption string,
) *selfieService {
	if defaultCaption == "" {
		defaultCaption = domain.DefaultCaption
	}
	return &selfieService{
		imageGenerator: imageGenerator,
		transport:      transport,
		defaultCaption: defaultCaption,
	}
}

// Send runs one request end to end. Delivery happens only after the image was
// generated, and nothing is retried.
func (s *selfieService) Send(ctx context.Context, req domain.SelfieRequest) (*domain.DispatchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	mode := keyword.ResolveMode(req.Context, req.Mode)
	imagePrompt := prompt.Build(mode, req.Context)

	slog.InfoContext(ctx, "Starting selfie generation", "mode", mode, "channel", req.Channel)

	ratio := req.AspectRatio
	if ratio == "" {
		ratio = domain.DefaultAspectRatio
	}

	image, err := s.imageGenerator.GenerateImage(ctx, imagePrompt, ratio)
	if err != nil {
		return nil, fmt.Errorf("generating image: %w", err)
	}

	slog.InfoContext(ctx, "Image generated", "url", image.URL)

	caption := req.Caption
	if caption == "" {
		caption = s.defaultCaption
	}

	if err := s.transport.Deliver(ctx, req.Channel, caption, image.URL); err != nil {
		return nil, fmt.Errorf("dispatching image: %w", err)
	}

	slog.InfoContext(ctx, "Selfie dispatched", "transport", s.transport.Name(), "channel", req.Channel)

	return &domain.DispatchResult{
		Success:  true,
		Channel:  req.Channel,
		ImageURL: image.URL,
		Prompt:   image.SourcePrompt,
		Mode:     mode,
	}, nil
}
