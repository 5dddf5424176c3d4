package site

import "strings"

type NavItem struct {
	Href   string
	Label  string
	Active bool
}

// Nav returns the navigation entries with the one matching pathname marked
// active. Any /projects/... path activates Projects.
func Nav(pathname string) []NavItem {
	return []NavItem{
		{Href: "/", Label: "Home", Active: pathname == "/"},
		{Href: "/projects", Label: "Projects", Active: strings.HasPrefix(pathname, "/projects")},
		{Href: "/timeline", Label: "Timeline", Active: pathname == "/timeline"},
		{Href: "/contact", Label: "Contact", Active: pathname == "/contact"},
	}
}

// ViewPage is the page name reported for a project detail view.
func ViewPage(projectID string) string {
	if projectID == "" {
		return "/projects"
	}
	return "/projects/" + projectID
}
