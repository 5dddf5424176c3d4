package site

import (
	"strings"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// FilterProjects keeps projects whose title contains search (case-insensitive)
// and that carry at least one of tags. Empty criteria match everything.
func FilterProjects(projects []domain.ProjectRecord, search string, tags []string) []domain.ProjectRecord {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.ProjectRecord, 0, len(projects))
	for _, p := range projects {
		if needle != "" && !strings.Contains(strings.ToLower(p.Title), needle) {
			continue
		}
		if len(tags) > 0 && !hasAny(p.Tags, tags) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ToggleTag adds tag to selected, or removes it when already present.
func ToggleTag(selected []string, tag string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, t := range selected {
		if t == tag {
			found = true
			continue
		}
		out = append(out, t)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}

func hasAny(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
