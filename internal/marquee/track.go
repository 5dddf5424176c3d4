// Package marquee models the highlighted-projects carousel: an endless
// left-scrolling track that pauses on hover and can be dragged.
package marquee

import (
	"math"
	"strconv"

	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

const (
	EmptyMessage = "No highlighted projects available yet."
	Heading      = "Highlighted Projects"
	Note         = "Carousel auto-scrolls left and pauses on hover."

	fallbackImage = "/images/project-1.svg"
)

// Card is one rendered tile on the track.
type Card struct {
	Key           string          `json:"key" yaml:"key"`
	ProjectID     string          `json:"project_id" yaml:"project_id"`
	Href          string          `json:"href" yaml:"href"`
	ImageURL      string          `json:"image_url" yaml:"image_url"`
	ImageAlt      string          `json:"image_alt" yaml:"image_alt"`
	Title         string          `json:"title" yaml:"title"`
	Category      domain.Category `json:"category" yaml:"category"`
	CategoryClass string          `json:"category_class" yaml:"category_class"`
	PrimaryTag    string          `json:"primary_tag" yaml:"primary_tag"`
}

// Source returns the highlighted projects, or every project when none is
// highlighted.
func Source(projects []domain.ProjectRecord) []domain.ProjectRecord {
	out := make([]domain.ProjectRecord, 0, len(projects))
	for _, p := range projects {
		if p.IsHighlighted {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return projects
	}
	return out
}

// BuildTrack lays the source out twice, back to back. An empty result means
// EmptyMessage should be shown instead.
func BuildTrack(projects []domain.ProjectRecord) []Card {
	source := Source(projects)
	if len(source) == 0 {
		return nil
	}
	cards := make([]Card, 0, 2*len(source))
	for i := 0; i < 2; i++ {
		for j, p := range source {
			cards = append(cards, newCard(p, i*len(source)+j))
		}
	}
	return cards
}

func newCard(p domain.ProjectRecord, index int) Card {
	c := Card{
		Key:           p.ProjectID + "-" + strconv.Itoa(index),
		ProjectID:     p.ProjectID,
		Href:          "/projects/" + p.ProjectID,
		ImageURL:      fallbackImage,
		ImageAlt:      p.Title + " thumbnail",
		Title:         p.Title,
		Category:      p.Category,
		CategoryClass: p.Category.Class(),
		PrimaryTag:    p.PrimaryTag(),
	}
	if len(p.Images) > 0 {
		c.ImageURL = p.Images[0].URL
		if p.Images[0].Alt != "" {
			c.ImageAlt = p.Images[0].Alt
		}
	}
	return c
}

// Normalize folds offset into (-loop, 0]. A non-positive loop pins it to 0.
func Normalize(offset, loop float64) float64 {
	if loop <= 0 || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return 0
	}
	r := math.Mod(offset, loop)
	if r > 0 {
		r -= loop
	}
	if r == 0 {
		return 0
	}
	return r
}
