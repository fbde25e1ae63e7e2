package keyword

import (
	"strings"

	"github.com/samber/lo"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

// Direct keywords win over mirror keywords when both appear.
var directKeywords = []string{
	"cafe", "restaurant", "beach", "park", "city",
	"close-up", "portrait", "face", "eyes", "smile",
}

var mirrorKeywords = []string{
	"outfit", "wearing", "clothes", "dress", "suit",
	"fashion", "full-body", "mirror",
}

// ResolveMode picks the selfie framing for text. An explicit override other
// than auto is returned as is.
func ResolveMode(text string, override domain.Mode) domain.Mode {
	if override != "" && override != domain.ModeAuto {
		return override
	}

	text = strings.ToLower(text)
	switch {
	case containsAny(text, directKeywords):
		return domain.ModeDirect
	case containsAny(text, mirrorKeywords):
		return domain.ModeMirror
	default:
		return domain.ModeMirror
	}
}

func containsAny(text string, keywords []string) bool {
	return lo.SomeBy(keywords, func(kw string) bool {
		return strings.Contains(text, kw)
	})
}
