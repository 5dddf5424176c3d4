package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ishanichuri/portfolio/config"
	"github.com/ishanichuri/portfolio/internal/client"
	"github.com/ishanichuri/portfolio/internal/logging"
	"github.com/ishanichuri/portfolio/internal/markers"
	"github.com/ishanichuri/portfolio/internal/session"
)

// app carries what every subcommand needs once flags and env are resolved.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	envFile string
	output  string
	apiURL  string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "cms",
		Short:        "Manage portfolio projects and inspect the public site",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.envFile != "" {
				if err := godotenv.Overload(a.envFile); err != nil {
					return fmt.Errorf("load %s: %w", a.envFile, err)
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.apiURL != "" {
				cfg.Client.APIBaseURL = strings.TrimRight(a.apiURL, "/")
			}
			a.cfg = cfg
			a.log = logging.New(logging.Options{
				Service:     "portfolio-cms",
				Environment: cfg.App.Environment,
				Level:       cfg.App.LogLevel,
				File:        cfg.App.LogFile,
				Output:      cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "extra .env file to load before the environment")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table, yaml or json")
	root.PersistentFlags().StringVar(&a.apiURL, "api", "", "API base URL (overrides API_BASE_URL)")

	root.AddCommand(newProjectsCmd(a), newSiteCmd(a), newHeroCmd(a), newMigrateCmd(a))
	root.AddCommand(newSessionCmds(a)...)
	return root
}

// session picks the auth gate from config.
func (a *app) session() session.Session {
	return session.New(a.cfg.Client)
}

// client builds the API client. The returned close func releases the marker
// database when one is configured.
func (a *app) client() (*client.Client, func(), error) {
	opts := []client.Option{
		client.WithTokenSource(a.session().TokenSource()),
		client.WithViewSource(a.cfg.Client.ViewSource),
	}
	if a.cfg.Client.RequestTimeout > 0 {
		opts = append(opts, client.WithHTTPClient(&http.Client{Timeout: a.cfg.Client.RequestTimeout}))
	}

	closeFn := func() {}
	if dsn := a.cfg.Client.ViewMarkerDB; dsn != "" {
		store, err := markers.OpenSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, client.WithMarkerStore(store))
		closeFn = func() { _ = store.Close() }
	}
	return client.New(a.cfg.Client.APIBaseURL, opts...), closeFn, nil
}

// render writes v as YAML or JSON. It reports false for the table format so
// the caller prints its own table.
func (a *app) render(w io.Writer, v any) (bool, error) {
	switch a.output {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "table", "":
		return false, nil
	default:
		return true, fmt.Errorf("unknown output format %q", a.output)
	}
}
