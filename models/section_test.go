package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSectionRenderable(t *testing.T) {
	require.True(t, Section{Type: SectionHeading, Level: 2, Text: "Findings"}.Renderable())
	require.True(t, Section{Type: SectionText, Text: "body"}.Renderable())
	require.True(t, Section{Type: SectionImage, URL: "https://example.com/a.jpg"}.Renderable())
	require.True(t, Section{Type: SectionEmbed, HTML: "<iframe></iframe>"}.Renderable())

	require.False(t, Section{Type: "video"}.Renderable())
	require.False(t, Section{}.Renderable())
}

func TestRenderableSectionsSkipsUnknownBlocks(t *testing.T) {
	// a body authored by a newer tool may carry block types this version
	// does not know about; rendering must survive that
	raw := `[
		{"type":"heading","level":1,"text":"Intro"},
		{"type":"chart","dataset":"households.csv"},
		{"type":"text","text":"First paragraph."},
		{"text":"no type tag at all"}
	]`
	var sections []Section
	require.NoError(t, json.Unmarshal([]byte(raw), &sections))

	out := RenderableSections(sections)
	require.Len(t, out, 2)
	require.Equal(t, SectionHeading, out[0].Type)
	require.Equal(t, "First paragraph.", out[1].Text)
}

func TestRenderableSectionsEmpty(t *testing.T) {
	require.Empty(t, RenderableSections(nil))
	require.Empty(t, RenderableSections([]Section{{Type: "unknown"}}))
}
