package models

type SectionType string

const (
	SectionHeading SectionType = "heading"
	SectionText    SectionType = "text"
	SectionImage   SectionType = "image"
	SectionEmbed   SectionType = "embed"
)

// Section is one block of a Story body. Every block carries a type tag
// selecting its variant; blocks with a missing or unknown tag are skipped
// by renderers, never treated as fatal.
type Section struct {
	Type    SectionType `json:"type"`
	Level   int         `json:"level,omitempty"`
	Text    string      `json:"text,omitempty"`
	URL     string      `json:"url,omitempty"`
	Alt     string      `json:"alt,omitempty"`
	Caption string      `json:"caption,omitempty"`
	HTML    string      `json:"html,omitempty"`
}

// Renderable reports whether the block's type tag selects a known variant.
func (s Section) Renderable() bool {
	switch s.Type {
	case SectionHeading, SectionText, SectionImage, SectionEmbed:
		return true
	}
	return false
}

// RenderableSections filters a block sequence down to known variants,
// preserving order.
func RenderableSections(sections []Section) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.Renderable() {
			out = append(out, s)
		}
	}
	return out
}
