package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishanichuri/portfolio/internal/marquee"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
	"github.com/ishanichuri/portfolio/internal/site"
)

func newSiteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Read the public site data the way visitors see it",
	}
	cmd.AddCommand(siteProjectsCmd(a), siteProjectCmd(a), siteMarqueeCmd(a), siteViewCmd(a), siteSocialsCmd(a), siteNavCmd(a))
	return cmd
}

func siteProjectsCmd(a *app) *cobra.Command {
	var (
		search string
		tags   []string
	)
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List published projects, filtered by title and tags",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			all := c.GetPublishedProjects(cmd.Context())
			c.RecordWebsiteView(cmd.Context(), "/projects")
			items := site.FilterProjects(all, search, tags)
			if done, err := a.render(cmd.OutOrStdout(), items); done {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tags: %s\n", strings.Join(domain.UniqueTags(all), ", "))
			if len(items) == 0 {
				fmt.Fprintln(out, "No projects match your filters.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDATE\tCATEGORY\tPRIMARY TAG")
			for _, p := range items {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.ProjectID, p.Title, p.ProjectDate, p.Category, p.PrimaryTag())
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "title keyword")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "only projects carrying one of these tags")
	return cmd
}

func siteProjectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "project <project-id>",
		Short: "Show one published project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			c.RecordWebsiteView(cmd.Context(), site.ViewPage(args[0]))
			rec, ok := c.GetPublishedProjectByID(cmd.Context(), args[0])
			if !ok {
				return fmt.Errorf("project %s not found", args[0])
			}
			if done, err := a.render(cmd.OutOrStdout(), rec); done {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rec.ProjectDate)
			fmt.Fprintln(out, rec.Title)
			fmt.Fprintln(out, rec.Description)
			fmt.Fprintf(out, "%s · Primary tag: %s\n", rec.Category, rec.PrimaryTag())
			fmt.Fprintf(out, "Tags: %s\n", domain.JoinTags(rec.Tags))
			for _, img := range rec.Images {
				fmt.Fprintf(out, "Image: %s (%s)\n", img.URL, img.Alt)
			}
			return nil
		},
	}
}

func siteMarqueeCmd(a *app) *cobra.Command {
	var (
		simulate bool
		script   string
		loop     float64
		speed    float64
	)
	cmd := &cobra.Command{
		Use:   "marquee",
		Short: "Print the highlighted-projects track",
		Long: `Prints the highlighted-projects track. With --simulate the carousel is
driven through an event script (hover, drag, click, background) and its
mode and offset are printed after every event.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()

			cards := marquee.BuildTrack(c.GetPublishedProjects(cmd.Context()))
			if simulate {
				return a.simulateMarquee(cmd, cards, script, loop, speed)
			}
			if done, err := a.render(cmd.OutOrStdout(), cards); done {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, marquee.EmptyMessage)
				return nil
			}
			fmt.Fprintln(out, marquee.Heading)
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tTITLE\tCATEGORY\tPRIMARY TAG\tIMAGE")
			for _, card := range cards {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", card.Key, card.Title, card.Category, card.PrimaryTag, card.ImageURL)
			}
			return tw.Flush()
		},
	}
	f := cmd.Flags()
	f.BoolVar(&simulate, "simulate", false, "replay an event script through the carousel")
	f.StringVar(&script, "script", "", "YAML list of {at, event, x} steps (default: built-in demo)")
	f.Float64Var(&loop, "loop", 0, "loop length in px (default: one card width per project)")
	f.Float64Var(&speed, "speed", marquee.DefaultSpeed, "autoplay speed in px/s")
	return cmd
}

// cardPitch is one card plus the gap to the next.
const cardPitch = 296

func (a *app) simulateMarquee(cmd *cobra.Command, cards []marquee.Card, script string, loop, speed float64) error {
	out := cmd.OutOrStdout()
	if len(cards) == 0 {
		fmt.Fprintln(out, marquee.EmptyMessage)
		return nil
	}
	steps := marquee.DemoScript()
	if script != "" {
		raw, err := os.ReadFile(script)
		if err != nil {
			return err
		}
		steps = nil
		if err := yaml.Unmarshal(raw, &steps); err != nil {
			return fmt.Errorf("parse %s: %w", script, err)
		}
	}
	if loop <= 0 {
		loop = float64(len(cards)/2) * cardPitch
	}

	m := marquee.New(speed)
	m.Measure(0, loop)
	samples, err := marquee.Replay(m, steps, 0)
	if err != nil {
		return err
	}
	if done, err := a.render(out, samples); done {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "T(S)\tEVENT\tMODE\tOFFSET\tNAVIGATE")
	for _, s := range samples {
		nav := ""
		if s.Navigate != nil {
			nav = strconv.FormatBool(*s.Navigate)
		}
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%.1f\t%s\n", s.Seconds, s.Event, s.Mode, s.Offset, nav)
	}
	return tw.Flush()
}

func siteViewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view [page]",
		Short: "Record a website view (once per page per day)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page := "/"
			if len(args) == 1 {
				page = args[0]
			}
			c, closeFn, err := a.client()
			if err != nil {
				return err
			}
			defer closeFn()
			c.RecordWebsiteView(cmd.Context(), page)
			fmt.Fprintln(cmd.OutOrStdout(), c.ViewKey(page))
			return nil
		},
	}
}

func siteSocialsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "socials",
		Short: "Print the contact links",
		RunE: func(cmd *cobra.Command, args []string) error {
			links := site.Socials()
			if done, err := a.render(cmd.OutOrStdout(), links); done {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, l := range links {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Label, l.Handle, l.Href)
			}
			return tw.Flush()
		},
	}
}

func siteNavCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nav [path]",
		Short: "Print the navigation with the active entry marked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/"
			if len(args) == 1 {
				path = args[0]
			}
			for _, item := range site.Nav(path) {
				mark := " "
				if item.Active {
					mark = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-9s %s\n", mark, item.Label, item.Href)
			}
			return nil
		},
	}
}
