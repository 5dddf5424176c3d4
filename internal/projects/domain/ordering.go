package domain

import (
	"sort"
	"strings"
)

// SortProjects orders records by sort_order desc, then project_date desc, then
// updated_at desc. ISO dates compare correctly as strings.
func SortProjects(items []ProjectRecord) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder > b.SortOrder
		}
		if a.ProjectDate != b.ProjectDate {
			return a.ProjectDate > b.ProjectDate
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	})
}

// FilterByStatus returns the records whose status matches; an empty status matches all.
func FilterByStatus(items []ProjectRecord, status Status) []ProjectRecord {
	if status == "" {
		return items
	}
	out := make([]ProjectRecord, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			out = append(out, item)
		}
	}
	return out
}

// UniqueTags returns every tag used across projects, sorted case-insensitively.
func UniqueTags(items []ProjectRecord) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, item := range items {
		for _, tag := range item.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i]), strings.ToLower(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

// ParseTags splits a comma-separated tag field, dropping blanks.
func ParseTags(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// JoinTags is the inverse of ParseTags for display in a form field.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
