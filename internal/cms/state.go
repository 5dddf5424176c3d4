// Package cms holds the project administration workflow: a form over the
// project list, driven by explicit actions and a pure reducer.
package cms

import (
	"strconv"
	"strings"
	"time"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

type Phase int

const (
	Idle Phase = iota
	Creating
	Editing
	Saving
)

func (p Phase) String() string {
	switch p {
	case Creating:
		return "creating"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return "idle"
	}
}

type State struct {
	Phase     Phase
	Projects  []domain.ProjectRecord
	Form      domain.ProjectInput
	TagInput  string
	Loading   bool
	Uploading bool
	Notice    string
}

// BlankForm is a blank create form with candidate id and today's date.
func BlankForm(projectID string, now time.Time) domain.ProjectInput {
	return domain.ProjectInput{
		ProjectID:   projectID,
		Tags:        []string{},
		Category:    domain.CategoryPersonal,
		ProjectDate: now.UTC().Format("2006-01-02"),
		Images:      []domain.ProjectImage{},
		Status:      domain.StatusDraft,
		Extra:       map[string]any{},
	}
}

// Find returns the loaded project with projectID.
func (s State) Find(projectID string) (domain.ProjectRecord, bool) {
	for _, p := range s.Projects {
		if p.ProjectID == projectID {
			return p, true
		}
	}
	return domain.ProjectRecord{}, false
}

// Selected reports whether the form targets an already loaded project, in
// which case saving updates rather than creates.
func (s State) Selected() bool {
	_, ok := s.Find(s.Form.ProjectID)
	return ok
}

func (s State) EditorTitle() string {
	if s.Selected() {
		return "Edit Project"
	}
	return "Create Project"
}

func (s State) SaveLabel() string {
	switch {
	case s.Phase == Saving:
		return "Saving..."
	case s.Selected():
		return "Update Project"
	default:
		return "Create Project"
	}
}

// CanSave mirrors the save button: a title and description are needed.
func (s State) CanSave() bool {
	return s.Phase != Saving && s.Form.Title != "" && s.Form.Description != ""
}

// Row is one line of the project list.
type Row struct {
	ProjectID   string
	Title       string
	Date        string
	Category    domain.Category
	PrimaryTag  string
	Status      domain.Status
	Highlighted bool
	ToggleLabel string
}

func (s State) Rows() []Row {
	rows := make([]Row, 0, len(s.Projects))
	for _, p := range s.Projects {
		r := Row{
			ProjectID:   p.ProjectID,
			Title:       p.Title,
			Date:        p.ProjectDate,
			Category:    p.Category,
			PrimaryTag:  p.PrimaryTag(),
			Status:      p.Status,
			Highlighted: p.IsHighlighted,
			ToggleLabel: "Publish",
		}
		if r.PrimaryTag == "" {
			r.PrimaryTag = "-"
		}
		if p.Status != domain.StatusDraft {
			r.ToggleLabel = "Unpublish"
		}
		rows = append(rows, r)
	}
	return rows
}

// ToggleTarget is the status the list's publish button moves a record to.
func ToggleTarget(current domain.Status) domain.Status {
	if current == domain.StatusDraft {
		return domain.StatusPublished
	}
	return domain.StatusDraft
}

// Field names a scalar form input.
type Field string

const (
	FieldProjectID   Field = "project_id"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldCategory    Field = "category"
	FieldDate        Field = "project_date"
	FieldSortOrder   Field = "sort_order"
	FieldStatus      Field = "status"
	FieldHighlighted Field = "is_highlighted"
)

func setField(in domain.ProjectInput, f Field, value string) domain.ProjectInput {
	switch f {
	case FieldProjectID:
		in.ProjectID = value
	case FieldTitle:
		in.Title = value
	case FieldDescription:
		in.Description = value
	case FieldCategory:
		in.Category = domain.Category(value)
	case FieldDate:
		in.ProjectDate = value
	case FieldSortOrder:
		n, _ := strconv.Atoi(strings.TrimSpace(value))
		in.SortOrder = n
	case FieldStatus:
		in.Status = domain.Status(value)
	case FieldHighlighted:
		b, _ := strconv.ParseBool(value)
		in.IsHighlighted = b
	}
	return in
}
