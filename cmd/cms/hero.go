package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishanichuri/portfolio/internal/hero"
)

func newHeroCmd(a *app) *cobra.Command {
	var (
		progress      float64
		width, height float64
		reduced       bool
		settle        time.Duration
	)
	cmd := &cobra.Command{
		Use:   "hero",
		Short: "Compute the landing animation frame for a scroll position",
		Long: `Prints the animated values of the landing page at a scroll progress
between 0 and 1. With --settle the spring is run for that long first;
without it the frame uses the raw, unsmoothed spread.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if progress < 0 || progress > 1 {
				return fmt.Errorf("--progress must be within [0,1]")
			}
			vp := hero.Viewport{Width: width, Height: height}

			var frame hero.AnimationFrame
			switch {
			case reduced:
				frame = hero.Static()
			case settle > 0:
				anim := hero.NewAnimator(vp, false)
				const step = 16 * time.Millisecond
				for elapsed := time.Duration(0); elapsed < settle; elapsed += step {
					frame = anim.Update(progress, step)
				}
			default:
				frame = hero.Frame(progress, hero.RawSpread(progress), vp)
			}

			if done, err := a.render(cmd.OutOrStdout(), frame); done {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(frame)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&progress, "progress", 0, "scroll progress, 0..1")
	f.Float64Var(&width, "width", hero.DefaultViewport.Width, "viewport width")
	f.Float64Var(&height, "height", hero.DefaultViewport.Height, "viewport height")
	f.BoolVar(&reduced, "reduced-motion", false, "render the static frame")
	f.DurationVar(&settle, "settle", 0, "run the spring this long before printing")
	return cmd
}
