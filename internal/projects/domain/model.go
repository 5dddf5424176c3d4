package domain

import "time"

// Status is the publication lifecycle of a project.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Category is the fixed classification shown next to a project.
type Category string

const (
	CategoryPersonal  Category = "Personal"
	CategoryCollege   Category = "College"
	CategoryWork      Category = "Work"
	CategoryFreelance Category = "Freelance"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryPersonal, CategoryCollege, CategoryWork, CategoryFreelance}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Class returns the CSS class used to colour the category label.
func (c Category) Class() string {
	switch c {
	case CategoryPersonal:
		return "category-personal"
	case CategoryCollege:
		return "category-college"
	case CategoryWork:
		return "category-work"
	case CategoryFreelance:
		return "category-freelance"
	}
	return ""
}

type ProjectImage struct {
	Key    string `json:"key" dynamodbav:"key" yaml:"key"`
	URL    string `json:"url" dynamodbav:"url" yaml:"url"`
	Alt    string `json:"alt" dynamodbav:"alt" yaml:"alt"`
	Width  *int   `json:"width,omitempty" dynamodbav:"width,omitempty" yaml:"width,omitempty"`
	Height *int   `json:"height,omitempty" dynamodbav:"height,omitempty" yaml:"height,omitempty"`
}

// ProjectInput is the writable part of a project, as sent by the CMS on create.
type ProjectInput struct {
	ProjectID     string         `json:"project_id" dynamodbav:"project_id" yaml:"project_id"`
	Title         string         `json:"title" dynamodbav:"title" yaml:"title"`
	Description   string         `json:"description" dynamodbav:"description" yaml:"description"`
	Tags          []string       `json:"tags" dynamodbav:"tags" yaml:"tags"`
	Category      Category       `json:"category" dynamodbav:"category" yaml:"category"`
	ProjectDate   string         `json:"project_date" dynamodbav:"project_date" yaml:"project_date"`
	Images        []ProjectImage `json:"images" dynamodbav:"images" yaml:"images"`
	IsHighlighted bool           `json:"is_highlighted" dynamodbav:"is_highlighted" yaml:"is_highlighted"`
	Status        Status         `json:"status" dynamodbav:"status" yaml:"status"`
	SortOrder     int            `json:"sort_order" dynamodbav:"sort_order" yaml:"sort_order"`
	Extra         map[string]any `json:"extra" dynamodbav:"extra" yaml:"extra"`
}

// ProjectRecord is a stored project. It is storage-agnostic and shared by the
// repositories, the HTTP layer and the clients.
type ProjectRecord struct {
	ProjectInput `yaml:",inline"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at" yaml:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at" yaml:"updated_at"`
}

// PrimaryTag is the first tag, or "" when the project has none.
func (p ProjectRecord) PrimaryTag() string {
	if len(p.Tags) == 0 {
		return ""
	}
	return p.Tags[0]
}

// Input returns the writable fields of the record.
func (p ProjectRecord) Input() ProjectInput {
	return p.ProjectInput
}

// ProjectPatch carries a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Title         *string         `json:"title,omitempty" yaml:"title,omitempty"`
	Description   *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Tags          *[]string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category      *Category       `json:"category,omitempty" yaml:"category,omitempty"`
	ProjectDate   *string         `json:"project_date,omitempty" yaml:"project_date,omitempty"`
	Images        *[]ProjectImage `json:"images,omitempty" yaml:"images,omitempty"`
	IsHighlighted *bool           `json:"is_highlighted,omitempty" yaml:"is_highlighted,omitempty"`
	Status        *Status         `json:"status,omitempty" yaml:"status,omitempty"`
	SortOrder     *int            `json:"sort_order,omitempty" yaml:"sort_order,omitempty"`
	Extra         map[string]any  `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// CopyList returns a copy of src that is never nil, so a cleared list is
// sent and stored as [] instead of null.
func CopyList[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}

// PatchFrom builds a patch that overwrites every writable field with in.
func PatchFrom(in ProjectInput) ProjectPatch {
	tags := CopyList(in.Tags)
	images := CopyList(in.Images)
	category := in.Category
	status := in.Status
	return ProjectPatch{
		Title:         &in.Title,
		Description:   &in.Description,
		Tags:          &tags,
		Category:      &category,
		ProjectDate:   &in.ProjectDate,
		Images:        &images,
		IsHighlighted: &in.IsHighlighted,
		Status:        &status,
		SortOrder:     &in.SortOrder,
		Extra:         in.Extra,
	}
}

// Apply returns a copy of rec with the patch applied and UpdatedAt set to now.
func (p ProjectPatch) Apply(rec ProjectRecord, now time.Time) ProjectRecord {
	out := rec
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Tags != nil {
		out.Tags = CopyList(*p.Tags)
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	if p.ProjectDate != nil {
		out.ProjectDate = *p.ProjectDate
	}
	if p.Images != nil {
		out.Images = CopyList(*p.Images)
	}
	if p.IsHighlighted != nil {
		out.IsHighlighted = *p.IsHighlighted
	}
	if p.Status != nil {
		out.Status = *p.Status
	}
	if p.SortOrder != nil {
		out.SortOrder = *p.SortOrder
	}
	if p.Extra != nil {
		out.Extra = p.Extra
	}
	out.UpdatedAt = now
	return out
}

// StatusFilter selects which records a list call returns.
type StatusFilter string

const (
	FilterPublished StatusFilter = "published"
	FilterDraft     StatusFilter = "draft"
	FilterAll       StatusFilter = "all"
)

// Status returns the status to match, or "" for FilterAll.
func (f StatusFilter) Status() Status {
	switch f {
	case FilterDraft:
		return StatusDraft
	case FilterAll:
		return ""
	default:
		return StatusPublished
	}
}

// Valid reports whether f is a known filter.
func (f StatusFilter) Valid() bool {
	return f == FilterPublished || f == FilterDraft || f == FilterAll
}
