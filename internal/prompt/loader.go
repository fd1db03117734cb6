package prompt

import (
	"strings"

	"github.com/AkademiaSztuki/awa-api/pkg/embedded"
)

type Loader struct{}

func NewPromptLoader() *Loader {
	return &Loader{}
}

// GetEditSystemInstruction loads the architectural-lock system instruction
// prepended to every image-editing prompt.
func (l *Loader) GetEditSystemInstruction() (string, error) {
	return strings.TrimSpace(string(embedded.EditSystemInstructionTxt)), nil
}

// GetTaggingInstructions loads the vision instructions for tagging
// inspiration reference images.
func (l *Loader) GetTaggingInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.TaggingInstructionsTxt)), nil
}

// GetRoomAnalysisInstructions loads the vision instructions for analyzing
// the user's current room photo.
func (l *Loader) GetRoomAnalysisInstructions() (string, error) {
	return strings.TrimSpace(string(embedded.RoomAnalysisInstructionsTxt)), nil
}
