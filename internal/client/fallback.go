package client

import (
	"time"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

// Fallback returns the placeholder projects shown when the API cannot be
// reached, already in display order.
func Fallback(now time.Time) []domain.ProjectRecord {
	stamp := now.UTC()
	items := []domain.ProjectRecord{
		{
			ProjectInput: domain.ProjectInput{
				ProjectID:   "placeholder-2",
				Title:       "Design Systems Playground",
				Description: "Component-driven frontend architecture with reusable cards, tags, and timeline modules.",
				Tags:        []string{"typescript", "design-system", "aws"},
				Category:    domain.CategoryWork,
				ProjectDate: "2026-01-18",
				Images: []domain.ProjectImage{
					{Key: "hero-3", URL: "/images/project-3.svg", Alt: "Gradient poster for placeholder project 3"},
				},
				Status:    domain.StatusPublished,
				SortOrder: 8,
				Extra:     map[string]any{},
			},
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
		{
			ProjectInput: domain.ProjectInput{
				ProjectID:   "placeholder-1",
				Title:       "Immersive Product Story",
				Description: "A performance-focused experience with scroll choreography, smooth fades, and a lightweight animation budget.",
				Tags:        []string{"next.js", "framer-motion", "cloudfront"},
				Category:    domain.CategoryPersonal,
				ProjectDate: "2026-02-08",
				Images: []domain.ProjectImage{
					{Key: "hero-1", URL: "/images/project-1.svg", Alt: "Gradient poster for placeholder project 1"},
					{Key: "hero-2", URL: "/images/project-2.svg", Alt: "Gradient poster for placeholder project 2"},
				},
				IsHighlighted: true,
				Status:        domain.StatusPublished,
				SortOrder:     10,
				Extra:         map[string]any{},
			},
			CreatedAt: stamp,
			UpdatedAt: stamp,
		},
	}
	domain.SortProjects(items)
	return items
}

func fallbackByID(now time.Time, projectID string) (*domain.ProjectRecord, bool) {
	for _, item := range Fallback(now) {
		if item.ProjectID == projectID {
			return &item, true
		}
	}
	return nil, false
}
