package domain

import "github.com/samber/lo"

type ImageProvider string

const (
	ProviderMiniMax ImageProvider = "minimax"
	ProviderOpenAI  ImageProvider = "openai"
)

type AspectRatio string

const (
	Ratio1x1  AspectRatio = "1:1"
	Ratio16x9 AspectRatio = "16:9"
	Ratio4x3  AspectRatio = "4:3"
	Ratio3x2  AspectRatio = "3:2"
	Ratio2x3  AspectRatio = "2:3"
	Ratio3x4  AspectRatio = "3:4"
	Ratio9x16 AspectRatio = "9:16"
	Ratio21x9 AspectRatio = "21:9"

	DefaultAspectRatio = Ratio1x1
)

var SupportedAspectRatios = []AspectRatio{
	Ratio1x1,
	Ratio16x9,
	Ratio4x3,
	Ratio3x2,
	Ratio2x3,
	Ratio3x4,
	Ratio9x16,
	Ratio21x9,
}

func (r AspectRatio) IsValid() bool {
	return lo.Contains(SupportedAspectRatios, r)
}

// Landscape reports whether the ratio is wider than it is tall.
func (r AspectRatio) Landscape() bool {
	switch r {
	case Ratio16x9, Ratio4x3, Ratio3x2, Ratio21x9:
		return true
	}
	return false
}

// Portrait reports whether the ratio is taller than it is wide.
func (r AspectRatio) Portrait() bool {
	switch r {
	case Ratio2x3, Ratio3x4, Ratio9x16:
		return true
	}
	return false
}

type GeneratedImage struct {
	URL          string
	SourcePrompt string
}
