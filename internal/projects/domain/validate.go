package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	titleMin       = 2
	titleMax       = 140
	descriptionMin = 2
	descriptionMax = 5000
)

// Messages shown by the CMS when a project cannot be published.
const (
	MsgCategoryRequired = "Category is required before saving."
	MsgTagRequired      = "At least one tag is required. The first tag is the primary tag."
)

// RequiresPublishCheck reports whether moving a record to status must pass CheckPublishable.
func RequiresPublishCheck(status Status) bool {
	return status == StatusPublished
}

// CheckPublishable returns the CMS notice for a record that may not be published,
// or "" when it may. The first tag doubles as the required primary tag.
func CheckPublishable(tags []string, category Category) string {
	if strings.TrimSpace(string(category)) == "" {
		return MsgCategoryRequired
	}
	if len(tags) == 0 {
		return MsgTagRequired
	}
	return ""
}

// ValidateCreate checks a create payload the way the API does before storing it.
func ValidateCreate(in ProjectInput) error {
	var problems []string
	problems = append(problems, checkText("title", in.Title, titleMin, titleMax)...)
	problems = append(problems, checkText("description", in.Description, descriptionMin, descriptionMax)...)
	if len(in.Tags) == 0 {
		problems = append(problems, "tags: at least one tag is required")
	}
	if !in.Category.Valid() {
		problems = append(problems, fmt.Sprintf("category: must be one of %v", Categories))
	}
	if in.Status != "" && !in.Status.Valid() {
		problems = append(problems, "status: must be draft or published")
	}
	problems = append(problems, checkDate(in.ProjectDate)...)
	problems = append(problems, checkImages(in.Images)...)
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ValidatePatch checks only the fields present in p.
func ValidatePatch(p ProjectPatch) error {
	var problems []string
	if p.Title != nil {
		problems = append(problems, checkText("title", *p.Title, titleMin, titleMax)...)
	}
	if p.Description != nil {
		problems = append(problems, checkText("description", *p.Description, descriptionMin, descriptionMax)...)
	}
	if p.Category != nil && !p.Category.Valid() {
		problems = append(problems, fmt.Sprintf("category: must be one of %v", Categories))
	}
	if p.Status != nil && !p.Status.Valid() {
		problems = append(problems, "status: must be draft or published")
	}
	if p.ProjectDate != nil {
		problems = append(problems, checkDate(*p.ProjectDate)...)
	}
	if p.Images != nil {
		problems = append(problems, checkImages(*p.Images)...)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

func checkText(field, value string, min, max int) []string {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return []string{fmt.Sprintf("%s: length must be between %d and %d", field, min, max)}
	}
	return nil
}

func checkDate(value string) []string {
	if value == "" {
		return []string{"project_date: required"}
	}
	if _, err := time.Parse(time.DateOnly, value); err != nil {
		return []string{"project_date: must be YYYY-MM-DD"}
	}
	return nil
}

func checkImages(images []ProjectImage) []string {
	var problems []string
	for i, img := range images {
		if img.Key == "" || img.URL == "" {
			problems = append(problems, fmt.Sprintf("images[%d]: key and url are required", i))
		}
	}
	return problems
}
