package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectPublished ProjectStatus = "published"
)

// Project represents one project presented on the public site.
// "order" is a reserved word in SQL, so the rank column is stored as
// display_order and translated here at the model edge.
type Project struct {
	ID        uuid.UUID     `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Slug      string        `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Title     string        `json:"title" db:"title" gorm:"type:text;not null"`
	Summary   string        `json:"summary,omitempty" db:"summary" gorm:"type:text"`
	HeroImage string        `json:"heroImage,omitempty" db:"hero_image" gorm:"type:text"`
	Status    ProjectStatus `json:"status" db:"status" gorm:"type:text;not null;default:draft"`
	Visible   bool          `json:"visible" db:"visible" gorm:"not null;default:true"`
	Order     int           `json:"order" db:"display_order" gorm:"column:display_order;not null;default:0"`
	StartDate *time.Time    `json:"startDate,omitempty" db:"start_date" gorm:"type:timestamp"`
	EndDate   *time.Time    `json:"endDate,omitempty" db:"end_date" gorm:"type:timestamp"`
	CreatedAt time.Time     `json:"createdAt" db:"created_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updatedAt" db:"updated_at" gorm:"type:timestamp;not null;default:CURRENT_TIMESTAMP"`
}

// Clone returns a deep copy so callers cannot mutate shared state through
// records handed out by the fallback store.
func (p Project) Clone() Project {
	out := p
	if p.StartDate != nil {
		d := *p.StartDate
		out.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		out.EndDate = &d
	}
	return out
}
