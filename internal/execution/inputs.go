package execution

import (
	"strings"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/models"
)

// Inputs is what a node receives from the sources of its incoming edges,
// in edge order.
type Inputs struct {
	Texts        []string
	Instructions []string
	ImageURLs    []string
	AudioURLs    []string
	WebsiteURLs  []string
}

// Prompt joins text inputs followed by instructions.
func (in Inputs) Prompt() string {
	return joinNonEmpty(append(append([]string{}, in.Texts...), in.Instructions...)...)
}

func (in Inputs) Empty() bool {
	return len(in.Texts) == 0 && len(in.Instructions) == 0 && len(in.ImageURLs) == 0 &&
		len(in.AudioURLs) == 0 && len(in.WebsiteURLs) == 0
}

func (in *Inputs) add(source *models.Node) {
	data := source.Data
	switch source.Type {
	case enums.NODE_TYPE_TEXT:
		appendNonEmpty(&in.Texts, data.Text)
	case enums.NODE_TYPE_INSTRUCTION:
		appendNonEmpty(&in.Instructions, data.Text)
	case enums.NODE_TYPE_IMAGE:
		appendNonEmpty(&in.ImageURLs, data.ImageURL)
	case enums.NODE_TYPE_SPEECH:
		appendNonEmpty(&in.AudioURLs, data.AudioURL)
	case enums.NODE_TYPE_WEBSITE:
		appendNonEmpty(&in.WebsiteURLs, data.WebsiteURL)
	}
}

func appendNonEmpty(dst *[]string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*dst = append(*dst, value)
	}
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, "\n\n")
}
