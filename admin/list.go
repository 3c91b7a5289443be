package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/omar-mohamud/raagsanplatform/models"
)

type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Notifier receives the user-visible outcomes the portal renders: a toast
// for single-record results, a dismissible banner for list-fetch failures.
type Notifier interface {
	Toast(message string)
	ToastError(message string)
	Banner(message string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) Toast(string)      {}
func (NopNotifier) ToastError(string) {}
func (NopNotifier) Banner(string)     {}

// ProjectList is the portal's ordered project list. Edits render
// immediately: the mutated list is the optimistic state, the last confirmed
// snapshot stays behind it. A successful request promotes the optimistic
// state (or the server's authoritative record) to confirmed; a failed one
// always reverts to the confirmed snapshot, never keeping a guessed
// intermediate state. Not safe for concurrent use; the portal drives it from
// one goroutine.
type ProjectList struct {
	client   *Client
	notifier Notifier

	confirmed []models.Project
	current   []models.Project
}

func NewProjectList(client *Client, notifier Notifier) *ProjectList {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ProjectList{client: client, notifier: notifier}
}

// Refresh loads the list from the server and resets both states to it.
func (l *ProjectList) Refresh(ctx context.Context) error {
	projects, err := l.client.FetchProjects(ctx)
	if err != nil {
		if errors.Is(err, ErrTimedOut) {
			l.notifier.Banner("Request timed out. The server may be slow. Please try again.")
		} else {
			l.notifier.Banner("Failed to fetch projects. Please check your connection.")
		}
		return err
	}
	l.confirmed = cloneList(projects)
	l.current = cloneList(projects)
	return nil
}

// Projects returns a copy of the rendered state.
func (l *ProjectList) Projects() []models.Project {
	return cloneList(l.current)
}

// MoveProject swaps the project one position up or down, renders the swap
// immediately, and persists the full new order. Moving past either end is a
// no-op: the list is unchanged and no request is issued.
func (l *ProjectList) MoveProject(ctx context.Context, id uuid.UUID, direction Direction) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("project %s is not in the list", id)
	}

	j := i - 1
	if direction == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(l.current) {
		return nil
	}

	swapped := cloneList(l.current)
	swapped[i], swapped[j] = swapped[j], swapped[i]
	l.current = swapped

	if err := l.client.ReorderProjects(ctx, swapped); err != nil {
		l.current = cloneList(l.confirmed)
		l.notifier.ToastError("Failed to update order: " + err.Error())
		return err
	}

	// the optimistic array is the new truth; nothing comes back to merge
	l.confirmed = cloneList(swapped)
	l.notifier.Toast("Project order updated")
	return nil
}

// UpdateProject merges a metadata change optimistically, persists it, and on
// success replaces the entry with the server's authoritative record (fields
// like updatedAt are computed server-side).
func (l *ProjectList) UpdateProject(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	i := l.indexOf(id)
	if i < 0 {
		return fmt.Errorf("project %s is not in the list", id)
	}

	optimistic := l.current[i].Clone()
	optimistic.ApplyMeta(models.FilterProjectMeta(updates))
	l.current[i] = optimistic

	project, err := l.client.UpdateProject(ctx, id, updates)
	if err != nil {
		l.current = cloneList(l.confirmed)
		l.notifier.ToastError("Failed to save changes: " + err.Error())
		return err
	}

	l.current[i] = project.Clone()
	l.confirmed = cloneList(l.current)
	l.notifier.Toast("Changes saved successfully")
	return nil
}

func (l *ProjectList) indexOf(id uuid.UUID) int {
	for i, p := range l.current {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func cloneList(projects []models.Project) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Clone())
	}
	return out
}
