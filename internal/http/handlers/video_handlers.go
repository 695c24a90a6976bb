package handlers

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/http/middleware"
)

// VideoHandlers handles video management and playback HTTP requests
type VideoHandlers struct {
	videoSvc   domain.VideoService
	streamSvc  domain.StreamService
	storageSvc domain.StorageService
}

// NewVideoHandlers creates new video handlers
func NewVideoHandlers(videoSvc domain.VideoService, streamSvc domain.StreamService, storageSvc domain.StorageService) *VideoHandlers {
	return &VideoHandlers{videoSvc: videoSvc, streamSvc: streamSvc, storageSvc: storageSvc}
}

// uploadMeta is the multipart metadata accompanying the video file
type uploadMeta struct {
	Title       string `form:"title" binding:"required,min=3,max=100"`
	Description string `form:"description" binding:"required,max=500"`
	Category    string `form:"category" binding:"required"`
	Duration    int64  `form:"duration" binding:"omitempty,min=0"`
}

// updateMeta mirrors uploadMeta with every field optional
type updateMeta struct {
	Title       *string `form:"title" binding:"omitempty,min=3,max=100"`
	Description *string `form:"description" binding:"omitempty,max=500"`
	Category    *string `form:"category"`
}

// Upload handles multipart video creation
func (h *VideoHandlers) Upload(c *gin.Context) {
	var meta uploadMeta
	if err := c.ShouldBind(&meta); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	header, err := c.FormFile("video")
	if err != nil {
		c.Error(domain.NewValidationError("video", "a video file is required"))
		return
	}
	if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "video/") {
		c.Error(domain.NewValidationError("video", "file must be a video"))
		return
	}

	file, err := header.Open()
	if err != nil {
		c.Error(err)
		return
	}
	defer file.Close()

	uploadedBy, _ := c.Get(middleware.CtxUserEmail)
	in := domain.VideoInput{
		Title:       meta.Title,
		Description: meta.Description,
		Category:    meta.Category,
		Duration:    meta.Duration,
		UploadedBy:  uploadedBy.(string),
	}

	video, err := h.videoSvc.Upload(c.Request.Context(), in, file, header.Filename)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"video": video}})
}

// Update handles metadata changes and optional file replacement
func (h *VideoHandlers) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var meta updateMeta
	if err := c.ShouldBind(&meta); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	in := domain.VideoUpdate{
		Title:       meta.Title,
		Description: meta.Description,
		Category:    meta.Category,
	}

	var reader io.Reader
	var filename string
	if header, err := c.FormFile("video"); err == nil {
		if ct := header.Header.Get("Content-Type"); !strings.HasPrefix(ct, "video/") {
			c.Error(domain.NewValidationError("video", "file must be a video"))
			return
		}
		file, err := header.Open()
		if err != nil {
			c.Error(err)
			return
		}
		defer file.Close()
		reader = file
		filename = header.Filename
	}

	video, err := h.videoSvc.Update(c.Request.Context(), id, in, reader, filename)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"video": video}})
}

// Delete removes the metadata record and the stored object
func (h *VideoHandlers) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.videoSvc.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "video deleted"})
}

// List returns a metadata page, optionally filtered by category
func (h *VideoHandlers) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	videos, err := h.videoSvc.List(c.Request.Context(), page, limit, c.Query("category"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(videos),
		"data":    gin.H{"videos": videos},
	})
}

// Trending returns the most-viewed videos
func (h *VideoHandlers) Trending(c *gin.Context) {
	videos, err := h.videoSvc.Trending(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(videos),
		"data":    gin.H{"videos": videos},
	})
}

// Search matches titles against the query parameter
func (h *VideoHandlers) Search(c *gin.Context) {
	videos, err := h.videoSvc.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(videos),
		"data":    gin.H{"videos": videos},
	})
}

// Get returns the public projection of one video
func (h *VideoHandlers) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	video, err := h.videoSvc.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data": gin.H{
			"video": gin.H{
				"title":       video.Title,
				"description": video.Description,
				"url":         h.storageSvc.DeliveryURL(video.URL),
			},
		},
	})
}

// Stream relays a negotiated byte window from the origin to the client.
func (h *VideoHandlers) Stream(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	viewer := c.ClientIP()
	if userID, ok := c.Get(middleware.CtxUserID); ok {
		viewer = "user:" + strconv.FormatUint(uint64(userID.(uint)), 10)
	}

	result, err := h.streamSvc.Stream(c.Request.Context(), id, c.GetHeader("Range"), viewer)
	if err != nil {
		c.Error(err)
		return
	}
	defer result.Body.Close()

	c.Header("Accept-Ranges", "bytes")
	c.Header("Content-Type", "video/mp4")
	c.Header("Cache-Control", "public, max-age=31536000, immutable")
	c.Header("Content-Length", strconv.FormatInt(result.ContentLength, 10))
	if result.ContentRange != "" {
		c.Header("Content-Range", result.ContentRange)
	}
	c.Status(result.Status)

	// Pass-through copy; transport backpressure paces the upstream read.
	_, _ = io.Copy(c.Writer, result.Body)
}
