package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		override domain.Mode
		expected domain.Mode
	}{
		{"mirror keyword", "wearing a santa hat", domain.ModeAuto, domain.ModeMirror},
		{"direct keyword", "a cozy cafe with warm lighting", domain.ModeAuto, domain.ModeDirect},
		{"direct wins over mirror", "wearing a red dress at the beach", domain.ModeAuto, domain.ModeDirect},
		{"case insensitive", "Big SMILE", domain.ModeAuto, domain.ModeDirect},
		{"hyphenated keyword", "a Full-Body shot", domain.ModeAuto, domain.ModeMirror},
		{"substring match", "standing on the surface of mars", domain.ModeAuto, domain.ModeDirect},
		{"no keyword defaults to mirror", "on the moon", domain.ModeAuto, domain.ModeMirror},
		{"empty text defaults to mirror", "", domain.ModeAuto, domain.ModeMirror},
		{"empty override resolves", "close-up shot", "", domain.ModeDirect},
		{"explicit mirror beats direct keyword", "at the beach", domain.ModeMirror, domain.ModeMirror},
		{"explicit direct beats mirror keyword", "new outfit", domain.ModeDirect, domain.ModeDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveMode(tt.text, tt.override))
		})
	}
}

func TestResolveMode_DirectKeywordsAlwaysWin(t *testing.T) {
	for _, direct := range directKeywords {
		for _, mirror := range mirrorKeywords {
			text := mirror + " and " + direct
			assert.Equal(t, domain.ModeDirect, ResolveMode(text, domain.ModeAuto), text)
		}
	}
}

func TestResolveMode_MirrorKeywordsOnly(t *testing.T) {
	for _, mirror := range mirrorKeywords {
		assert.Equal(t, domain.ModeMirror, ResolveMode("in a "+mirror, domain.ModeAuto), mirror)
	}
}
