package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoryPatch carries the fields a story update may change. Slug and
// projectId are deliberately absent: the slug is the story's stable external
// reference and ownership never moves between projects.
type StoryPatch struct {
	Title       *string          `json:"title,omitempty"`
	CoverImage  *string          `json:"coverImage,omitempty"`
	Authors     *[]string        `json:"authors,omitempty"`
	Sections    *[]Section       `json:"sections,omitempty"`
	Datasets    *[]string        `json:"datasets,omitempty"`
	Visibility  *StoryVisibility `json:"visibility,omitempty"`
	PublishedAt *time.Time       `json:"publishedAt,omitempty"`
}

// Changes returns the set fields as a column-keyed update map.
func (p StoryPatch) Changes() map[string]any {
	changes := map[string]any{}
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.CoverImage != nil {
		changes["cover_image"] = *p.CoverImage
	}
	if p.Authors != nil {
		changes["authors"] = datatypes.NewJSONSlice(*p.Authors)
	}
	if p.Sections != nil {
		changes["sections"] = datatypes.NewJSONSlice(*p.Sections)
	}
	if p.Datasets != nil {
		changes["datasets"] = datatypes.NewJSONSlice(*p.Datasets)
	}
	if p.Visibility != nil {
		changes["visibility"] = *p.Visibility
	}
	if p.PublishedAt != nil {
		changes["published_at"] = *p.PublishedAt
	}
	return changes
}
