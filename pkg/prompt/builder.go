package prompt

import (
	"fmt"

	"github.com/dskvich/selfie-sender/pkg/domain"
)

const (
	mirrorTemplate = "make a pic of this person, but %s. the person is taking a mirror selfie"
	directTemplate = "a close-up selfie taken by herself at %s, direct eye contact with the camera, " +
		"looking straight into the lens, eyes centered and clearly visible, not a mirror selfie, " +
		"phone held at arm's length, face fully visible"
)

// Build returns the image prompt for a resolved mode. The context is inserted
// verbatim. Any mode other than direct uses the mirror template.
func Build(mode domain.Mode, context string) string {
	if mode == domain.ModeDirect {
		return fmt.Sprintf(directTemplate, context)
	}
	return fmt.Sprintf(mirrorTemplate, context)
}
