package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StoryVisibility string

const (
	StoryPrivate StoryVisibility = "private"
	StoryPublic  StoryVisibility = "public"
)

// Story is a rich-text piece owned by exactly one Project.
// Authors, sections and datasets are stored as JSON columns.
type Story struct {
	ID          uuid.UUID                    `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	ProjectID   uuid.UUID                    `json:"projectId" db:"project_id" gorm:"type:uuid;not null;index"`
	Slug        string                       `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Title       string                       `json:"title" db:"title" gorm:"type:text;not null"`
	CoverImage  string                       `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	Authors     datatypes.JSONSlice[string]  `json:"authors,omitempty" db:"authors"`
	Sections    datatypes.JSONSlice[Section] `json:"sections,omitempty" db:"sections"`
	Datasets    datatypes.JSONSlice[string]  `json:"datasets,omitempty" db:"datasets"`
	Visibility  StoryVisibility              `json:"visibility" db:"visibility" gorm:"type:text;not null;default:public"`
	PublishedAt *time.Time                   `json:"publishedAt,omitempty" db:"published_at" gorm:"type:timestamp"`
	CreatedAt   time.Time                    `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time                    `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`

	Project *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;references:ID"`
}
