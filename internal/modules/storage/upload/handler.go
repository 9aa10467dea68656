package upload

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mx-space/folio/internal/pkg/objectstore"
	"github.com/mx-space/folio/internal/pkg/response"
	"go.uber.org/zap"
)

type Options struct {
	// MaxBytes is the largest accepted file; 0 means unlimited.
	MaxBytes    int64
	AllowedExts []string
}

type Handler struct {
	store objectstore.Store
	opts  Options
	log   *zap.Logger
	now   func() time.Time
}

func NewHandler(store objectstore.Store, opts Options, log *zap.Logger) *Handler {
	return &Handler{store: store, opts: opts, log: log, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.POST("/upload", authMW, h.upload)
}

// POST /upload
func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}
	if h.opts.MaxBytes > 0 && fileHeader.Size > h.opts.MaxBytes {
		response.BadRequest(c, fmt.Sprintf("File exceeds the %d MB limit", h.opts.MaxBytes>>20))
		return
	}

	filename := normalizeFilename(fileHeader.Filename)
	if !extAllowed(filename, h.opts.AllowedExts) {
		response.BadRequest(c, "File type not allowed: "+strings.Join(h.opts.AllowedExts, ", "))
		return
	}
	folder := normalizeFolder(c.PostForm("folder"))
	key := fmt.Sprintf("%s/%d-%s", folder, h.now().UnixMilli(), filename)

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}
	defer file.Close()

	head := make([]byte, 512)
	n, _ := io.ReadFull(file, head)
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}
	contentType := detectContentType(filename, head[:n], fileHeader.Header.Get("Content-Type"))

	url, err := h.store.Put(c.Request.Context(), key, file, fileHeader.Size, contentType)
	if err != nil {
		response.InternalError(c, err, "Failed to upload file")
		return
	}
	h.log.Info("file uploaded", zap.String("key", key), zap.Int64("size", fileHeader.Size))
	response.OK(c, gin.H{"url": url})
}
