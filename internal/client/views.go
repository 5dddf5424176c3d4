package client

import (
	"context"
	"net/http"

	"github.com/ishanichuri/portfolio/internal/logging"
)

// ViewKey is the marker recorded for page on the day of now.
func (c *Client) ViewKey(page string) string {
	return "portfolio-view-" + c.now().Format("2006-01-02") + "-" + page
}

// RecordWebsiteView reports a page view at most once per page per calendar
// day. The marker is written before the request, so a failed POST is not
// retried that day. Errors are logged and dropped.
func (c *Client) RecordWebsiteView(ctx context.Context, page string) {
	if page == "" {
		page = "/"
	}
	log := logging.Op(ctx, "record_view").WithField("page", page)

	key := c.ViewKey(page)
	seen, err := c.markers.Has(ctx, key)
	if err != nil {
		log.WithError(err).Debug("view marker read failed")
		return
	}
	if seen {
		return
	}
	if err := c.markers.Set(ctx, key); err != nil {
		log.WithError(err).Debug("view marker write failed")
		return
	}

	body := map[string]string{"page": page, "source": c.viewSource}
	if _, err := c.do(ctx, c.plain, http.MethodPost, "/api/metrics/view", body, nil); err != nil {
		log.WithError(err).Debug("view not recorded")
	}
}
