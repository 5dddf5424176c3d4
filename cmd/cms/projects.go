package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishanichuri/portfolio/internal/cms"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
)

func newProjectsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Create, edit, publish and delete projects",
	}
	cmd.AddCommand(
		projectsListCmd(a),
		projectsShowCmd(a),
		projectsSaveCmd(a),
		projectsEditCmd(a),
		projectsStatusCmd(a, "publish", domain.StatusPublished),
		projectsStatusCmd(a, "unpublish", domain.StatusDraft),
		projectsToggleCmd(a),
		projectsDeleteCmd(a),
		projectsUploadCmd(a),
	)
	return cmd
}

// dashboard returns a loaded dashboard. A failed load is returned as the error.
func (a *app) dashboard(ctx context.Context) (*cms.Dashboard, func(), error) {
	c, closeFn, err := a.client()
	if err != nil {
		return nil, nil, err
	}
	d := cms.NewDashboard(c)
	if err := d.Refresh(ctx); err != nil {
		closeFn()
		return nil, nil, errors.New(d.State().Notice)
	}
	return d, closeFn, nil
}

// finish prints the dashboard notice and turns a failed action into an error
// carrying that notice.
func finish(cmd *cobra.Command, d *cms.Dashboard, err error) error {
	notice := d.State().Notice
	if err != nil {
		if notice == "" {
			return err
		}
		return errors.New(notice)
	}
	if notice != "" {
		fmt.Fprintln(cmd.OutOrStdout(), notice)
	}
	return nil
}

func projectsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every project, drafts included",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			st := d.State()
			if done, err := a.render(cmd.OutOrStdout(), st.Projects); done {
				return err
			}
			rows := st.Rows()
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tDATE\tCATEGORY\tPRIMARY TAG\tSTATUS\tHIGHLIGHTED")
			for _, r := range rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
					r.ProjectID, r.Title, r.Date, r.Category, r.PrimaryTag, r.Status, r.Highlighted)
			}
			return tw.Flush()
		},
	}
}

func projectsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Print one project as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			rec, ok := d.State().Find(args[0])
			if !ok {
				return fmt.Errorf("project %s not found", args[0])
			}
			if done, err := a.render(cmd.OutOrStdout(), rec); done {
				return err
			}
			return yaml.NewEncoder(cmd.OutOrStdout()).Encode(rec)
		},
	}
}

func readProjectFile(path string) (domain.ProjectInput, error) {
	var in domain.ProjectInput
	raw, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

func projectsSaveCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "save -f project.yaml",
		Short: "Create a project, or update it when its id already exists",
		Long: `Reads a project from a YAML (or JSON) file and saves it. The tags of a
project that is published must be non-empty and it must have a category.
When project_id is omitted a fresh id is generated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readProjectFile(file)
			if err != nil {
				return err
			}
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			d.New()
			if strings.TrimSpace(in.ProjectID) == "" {
				in.ProjectID = d.State().Form.ProjectID
			}
			if in.Status == "" {
				in.Status = domain.StatusDraft
			}
			d.Load(in)
			return finish(cmd, d, d.Save(cmd.Context()))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "project file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func projectsEditCmd(a *app) *cobra.Command {
	var (
		title, description, tags, category, date, status string
		sortOrder                                        int
		highlighted                                      bool
	)
	cmd := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Change individual fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := d.Edit(args[0]); err != nil {
				return finish(cmd, d, err)
			}
			flags := cmd.Flags()
			set := func(name string, f cms.Field, value string) {
				if flags.Changed(name) {
					d.SetField(f, value)
				}
			}
			set("title", cms.FieldTitle, title)
			set("description", cms.FieldDescription, description)
			set("category", cms.FieldCategory, category)
			set("date", cms.FieldDate, date)
			set("status", cms.FieldStatus, status)
			set("sort-order", cms.FieldSortOrder, strconv.Itoa(sortOrder))
			set("highlighted", cms.FieldHighlighted, strconv.FormatBool(highlighted))
			if flags.Changed("tags") {
				d.SetTagInput(tags)
			}
			return finish(cmd, d, d.Save(cmd.Context()))
		},
	}
	f := cmd.Flags()
	f.StringVar(&title, "title", "", "title")
	f.StringVar(&description, "description", "", "description")
	f.StringVar(&tags, "tags", "", "comma-separated tags, primary first (e.g. \"ux, mobile, usability\")")
	f.StringVar(&category, "category", "", "Personal, College, Work or Freelance")
	f.StringVar(&date, "date", "", "project date, YYYY-MM-DD")
	f.StringVar(&status, "status", "", "draft or published")
	f.IntVar(&sortOrder, "sort-order", 0, "sort order, higher first")
	f.BoolVar(&highlighted, "highlighted", false, "show on the home carousel")
	return cmd
}

func projectsStatusCmd(a *app, use string, status domain.Status) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <project-id>",
		Short: "Set a project to " + string(status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return finish(cmd, d, d.SetStatus(cmd.Context(), args[0], status))
		},
	}
}

func projectsToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <project-id>",
		Short: "Publish a draft or unpublish a published project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return finish(cmd, d, d.Toggle(cmd.Context(), args[0]))
		},
	}
}

func projectsDeleteCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Delete this project?") {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
				return nil
			}
			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			return finish(cmd, d, d.Delete(cmd.Context(), args[0]))
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func projectsUploadCmd(a *app) *cobra.Command {
	var contentType string
	cmd := &cobra.Command{
		Use:   "upload <project-id> <image-file>",
		Short: "Upload an image and attach it to a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[1]
			if contentType == "" {
				mt, err := mimetype.DetectFile(path)
				if err != nil {
					return err
				}
				contentType = mt.String()
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			d, closeFn, err := a.dashboard(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()

			if err := d.Edit(args[0]); err != nil {
				return finish(cmd, d, err)
			}
			if err := d.AttachImage(cmd.Context(), filepath.Base(path), contentType, f); err != nil {
				return finish(cmd, d, err)
			}
			return finish(cmd, d, d.Save(cmd.Context()))
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	return cmd
}
