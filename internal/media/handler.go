package media

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/ishanichuri/portfolio/internal/logging"
)

type presignReq struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type presignResp struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

// Handler serves presigned upload URLs. A nil presigner means no bucket is configured.
type Handler struct {
	presigner Presigner
	baseURL   string
}

func NewHandler(p Presigner, baseURL string) *Handler {
	return &Handler{presigner: p, baseURL: baseURL}
}

func (h *Handler) Register(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	rg.POST("/presign", append(guards, h.presign)...)
}

func (h *Handler) presign(c *gin.Context) {
	var req presignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !within(req.FileName, 255) || !within(req.ContentType, 120) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"ok": false, "error": "file_name and content_type are required"})
		return
	}
	if h.presigner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "media bucket missing"})
		return
	}

	key := BuildKey(req.FileName)
	url, err := h.presigner.PresignPut(c.Request.Context(), key, req.ContentType)
	if err != nil {
		logging.Op(c.Request.Context(), "presign_upload").WithError(err).Error("presign failed")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "unable to presign upload"})
		return
	}

	c.JSON(http.StatusOK, presignResp{Key: key, UploadURL: url, PublicURL: PublicURL(h.baseURL, key)})
}

func within(v string, max int) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	return n >= 1 && n <= max
}
