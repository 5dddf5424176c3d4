package metrics

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ishanichuri/portfolio/internal/logging"
)

type viewEvent struct {
	Page   string `json:"page"`
	Source string `json:"source"`
}

// Handler accepts view events. A publish failure is reported as accepted=false,
// never as an error status.
type Handler struct {
	pub ViewPublisher
}

func NewHandler(pub ViewPublisher) *Handler {
	return &Handler{pub: pub}
}

func (h *Handler) Register(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	rg.POST("/view", append(guards, h.recordView)...)
}

func (h *Handler) recordView(c *gin.Context) {
	ev := viewEvent{Page: "/", Source: "website"}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&ev); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
			return
		}
	}
	if strings.TrimSpace(ev.Page) == "" {
		ev.Page = "/"
	}
	if strings.TrimSpace(ev.Source) == "" {
		ev.Source = "website"
	}

	if h.pub == nil {
		c.JSON(http.StatusAccepted, gin.H{"accepted": false})
		return
	}
	if err := h.pub.RecordView(c.Request.Context(), ev.Page, ev.Source); err != nil {
		entry := logging.Op(c.Request.Context(), "record_view").WithError(err)
		if BreakerOpen(err) {
			entry.Debug("view metric skipped")
		} else {
			entry.Warn("view metric failed")
		}
		c.JSON(http.StatusAccepted, gin.H{"accepted": false})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"accepted": true})
}
