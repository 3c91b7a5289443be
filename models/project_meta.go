package models

import "time"

// projectMetaFields is the fixed allow-list of project fields that may be
// changed through the admin metadata-update path. Any other field present in
// an update payload is silently dropped before reaching a store.
var projectMetaFields = map[string]struct{}{
	"visible":   {},
	"status":    {},
	"order":     {},
	"startDate": {},
	"endDate":   {},
}

// FilterProjectMeta returns a copy of updates containing only allow-listed
// fields. An empty result means the payload carried nothing updatable.
func FilterProjectMeta(updates map[string]any) map[string]any {
	filtered := make(map[string]any, len(updates))
	for field := range projectMetaFields {
		if value, ok := updates[field]; ok {
			filtered[field] = value
		}
	}
	return filtered
}

// ApplyMeta merges already-filtered metadata fields into the record and
// stamps UpdatedAt. Values arrive JSON-decoded, so numbers are float64 and
// dates are RFC 3339 strings or null.
func (p *Project) ApplyMeta(fields map[string]any) {
	for field, value := range fields {
		switch field {
		case "visible":
			if v, ok := value.(bool); ok {
				p.Visible = v
			}
		case "status":
			if v, ok := value.(string); ok {
				p.Status = ProjectStatus(v)
			}
		case "order":
			switch v := value.(type) {
			case float64:
				p.Order = int(v)
			case int:
				p.Order = v
			}
		case "startDate":
			p.StartDate = parseMetaDate(value)
		case "endDate":
			p.EndDate = parseMetaDate(value)
		}
	}
	p.UpdatedAt = time.Now().UTC()
}

func parseMetaDate(value any) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		return &v
	case *time.Time:
		return v
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return &t
		}
		if t, err := time.Parse("2006-01-02", v); err == nil {
			return &t
		}
	}
	return nil
}
