package handlers

import (
	"net/http"
	"strconv"

	"folio/services/content"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContentHandler serves the read-only portfolio content.
type ContentHandler struct {
	Service content.ContentService
	Logger  *zap.Logger
}

func NewContentHandler(svc content.ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{Service: svc, Logger: logger}
}

// GetPortfolio returns the aggregate payload the landing page renders.
func (h *ContentHandler) GetPortfolio(c *gin.Context) {
	data, err := h.Service.GetPortfolio(c.Request.Context())
	if err != nil {
		h.Logger.Error("failed to load portfolio content", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load portfolio content", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"ready": data.Profile != nil,
	})
}

func (h *ContentHandler) GetProfile(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load profile", err.Error())
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not published yet"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ContentHandler) GetProjects(c *gin.Context) {
	featured, _ := strconv.ParseBool(c.DefaultQuery("featured", "false"))
	projects, err := h.Service.GetProjects(c.Request.Context(), featured)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load projects", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ContentHandler) GetExperience(c *gin.Context) {
	entries, err := h.Service.GetExperience(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load experience", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"experience": entries})
}

func (h *ContentHandler) GetTestimonials(c *gin.Context) {
	testimonials, err := h.Service.GetTestimonials(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load testimonials", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"testimonials": testimonials})
}
