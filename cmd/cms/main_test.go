package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ishanichuri/portfolio/internal/bootstrap"
	"github.com/ishanichuri/portfolio/internal/marquee"
	"github.com/ishanichuri/portfolio/internal/projects/domain"
	"github.com/ishanichuri/portfolio/internal/projects/repository"
)

// startAPI serves the real router over a memory repository with auth off.
func startAPI(t *testing.T) *httptest.Server {
	t.Helper()
	bootstrap.SetGinMode("test")
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	srv := httptest.NewServer(bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "portfolio-api",
		Version:     "test",
		Logger:      logger,
		Repo:        repository.NewMemoryRepository(),
	}))
	t.Cleanup(srv.Close)

	t.Setenv("API_BASE_URL", srv.URL)
	t.Setenv("ENABLE_AUTH", "false")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("VIEW_MARKER_DB", "")
	return srv
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const caseStudy = `project_id: case-study
title: Case Study
description: Responsive redesign with animated interactions.
tags: [ux, mobile]
category: Work
project_date: "2026-02-08"
is_highlighted: true
sort_order: 3
`

func TestProjectsWorkflow(t *testing.T) {
	startAPI(t)

	out, err := run(t, "projects", "save", "-f", writeFile(t, "p.yaml", caseStudy))
	require.NoError(t, err)
	assert.Contains(t, out, "Project created")

	out, err = run(t, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "case-study")
	assert.Contains(t, out, "draft")

	out, err = run(t, "site", "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects match your filters.")

	out, err = run(t, "projects", "publish", "case-study")
	require.NoError(t, err)
	assert.Contains(t, out, "Project set to published")

	out, err = run(t, "site", "projects", "--search", "case")
	require.NoError(t, err)
	assert.Contains(t, out, "Case Study")
	assert.Contains(t, out, "Tags: mobile, ux")

	out, err = run(t, "projects", "edit", "case-study", "--title", "Case Study II", "--tags", "web, ux")
	require.NoError(t, err)
	assert.Contains(t, out, "Project updated")

	out, err = run(t, "-o", "json", "projects", "show", "case-study")
	require.NoError(t, err)
	var rec domain.ProjectRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "Case Study II", rec.Title)
	assert.Equal(t, []string{"web", "ux"}, rec.Tags)
	assert.Equal(t, domain.StatusPublished, rec.Status)

	out, err = run(t, "site", "marquee")
	require.NoError(t, err)
	assert.Contains(t, out, "case-study-0")
	assert.Contains(t, out, "case-study-1")

	out, err = run(t, "-o", "json", "site", "marquee", "--simulate")
	require.NoError(t, err)
	var samples []marquee.Sample
	require.NoError(t, json.Unmarshal([]byte(out), &samples))
	require.Len(t, samples, len(marquee.DemoScript()))
	assert.Equal(t, "dragging", samples[2].Mode)
	require.NotNil(t, samples[5].Navigate)
	assert.False(t, *samples[5].Navigate)

	out, err = run(t, "projects", "toggle", "case-study")
	require.NoError(t, err)
	assert.Contains(t, out, "Project set to draft")

	out, err = run(t, "projects", "delete", "case-study")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted")

	out, err = run(t, "projects", "delete", "case-study", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Project deleted")

	out, err = run(t, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects yet.")
}

func TestProjectsSave_PublishCheckStopsBeforeNetwork(t *testing.T) {
	startAPI(t)
	body := strings.Replace(caseStudy, "tags: [ux, mobile]", "tags: []", 1) + "status: published\n"

	_, err := run(t, "projects", "save", "-f", writeFile(t, "p.yaml", body))
	require.Error(t, err)
	assert.Equal(t, domain.MsgTagRequired, err.Error())

	out, err := run(t, "projects", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No projects yet.")
}

func TestProjectsSave_ServerRejection(t *testing.T) {
	startAPI(t)
	body := strings.Replace(caseStudy, "tags: [ux, mobile]", "tags: []", 1)

	_, err := run(t, "projects", "save", "-f", writeFile(t, "p.yaml", body))
	require.Error(t, err)
	assert.Equal(t, "Unable to create project", err.Error())
}

func TestSiteMarquee_Empty(t *testing.T) {
	startAPI(t)
	out, err := run(t, "site", "marquee")
	require.NoError(t, err)
	assert.Equal(t, marquee.EmptyMessage+"\n", out)
}

func TestSiteProject_FallbackWhenAPIDown(t *testing.T) {
	srv := startAPI(t)
	srv.Close()

	out, err := run(t, "site", "project", "placeholder-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Immersive Product Story")

	_, err = run(t, "site", "project", "missing")
	assert.Error(t, err)
}

func TestSiteView_PrintsDailyKey(t *testing.T) {
	startAPI(t)
	t.Setenv("VIEW_MARKER_DB", filepath.Join(t.TempDir(), "markers.db"))

	out, err := run(t, "site", "view", "/timeline")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "portfolio-view-"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "-/timeline"))
}

func TestStaticCommands(t *testing.T) {
	startAPI(t)

	out, err := run(t, "site", "socials")
	require.NoError(t, err)
	assert.Contains(t, out, "ishanichuri@gmail.com")

	out, err = run(t, "site", "nav", "/projects/x")
	require.NoError(t, err)
	assert.Contains(t, out, "* Projects")

	out, err = run(t, "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Signed in as local-admin\n", out)
}

func TestHeroCommand(t *testing.T) {
	startAPI(t)

	out, err := run(t, "-o", "json", "hero", "--progress", "0.5")
	require.NoError(t, err)
	var frame map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &frame))
	assert.Equal(t, 1.0, frame["spread_raw"])
	assert.Equal(t, 1.0, frame["content_opacity"])

	out, err = run(t, "hero", "--reduced-motion")
	require.NoError(t, err)
	assert.Contains(t, out, "animated: false")

	_, err = run(t, "hero", "--progress", "1.5")
	assert.Error(t, err)
}
