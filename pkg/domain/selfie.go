package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
)

type Mode string

const (
	ModeMirror Mode = "mirror"
	ModeDirect Mode = "direct"

	// ModeAuto asks for the mode to be resolved from the request context.
	ModeAuto Mode = "auto"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeMirror, ModeDirect, ModeAuto:
		return true
	}
	return false
}

const DefaultCaption = "Here's my selfie"

var ErrInvalidRequest = errors.New("invalid selfie request")

type SelfieRequest struct {
	Context     string
	Mode        Mode
	Channel     string
	Caption     string
	AspectRatio AspectRatio
}

// Validate reports every problem with the request at once. Empty Mode and
// AspectRatio are allowed and fall back to auto and 1:1.
func (r SelfieRequest) Validate() error {
	var result *multierror.Error

	if strings.TrimSpace(r.Context) == "" {
		result = multierror.Append(result, errors.New("context is empty"))
	}
	if strings.TrimSpace(r.Channel) == "" {
		result = multierror.Append(result, errors.New("channel is empty"))
	}
	if r.Mode != "" && !r.Mode.IsValid() {
		result = multierror.Append(result, fmt.Errorf("unknown mode %q", r.Mode))
	}
	if r.AspectRatio != "" && !r.AspectRatio.IsValid() {
		result = multierror.Append(result, fmt.Errorf("unsupported aspect ratio %q", r.AspectRatio))
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = joinErrors
	return fmt.Errorf("%w: %w", ErrInvalidRequest, result)
}

func joinErrors(errs []error) string {
	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

type DispatchResult struct {
	Success  bool   `json:"success"`
	Channel  string `json:"channel"`
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt"`
	Mode     Mode   `json:"mode"`
}
