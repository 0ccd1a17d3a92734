package mockapi

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (s *Server) registerMediaRoutes(r *gin.Engine) {
	r.POST("/v1_1/:cloud/:resource/upload", s.uploadAsset)
	r.POST("/v1_1/:cloud/:resource/destroy", s.destroyAsset)
}

func mediaError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": gin.H{"message": msg}})
}

func (s *Server) uploadAsset(c *gin.Context) {
	cloud := c.Param("cloud")
	if cloud != s.cloudName {
		mediaError(c, http.StatusNotFound, "Invalid cloud_name "+cloud)
		return
	}
	if c.PostForm("api_key") == "" && c.PostForm("upload_preset") != s.uploadPreset {
		mediaError(c, http.StatusBadRequest, "Upload preset not found")
		return
	}

	ext := ".jpg"
	if fh, err := c.FormFile("file"); err == nil {
		if e := path.Ext(fh.Filename); e != "" {
			ext = strings.ToLower(e)
		}
	} else if c.PostForm("file") == "" {
		mediaError(c, http.StatusBadRequest, "Missing required parameter - file")
		return
	}

	publicID := uuid.NewString()
	if folder := strings.Trim(c.PostForm("folder"), "/"); folder != "" {
		publicID = folder + "/" + publicID
	}
	url := "http://" + c.Request.Host + "/" + cloud + "/image/upload/v1/" + publicID + ext

	s.mu.Lock()
	s.assets[publicID] = url
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"public_id":     publicID,
		"version":       1,
		"resource_type": "image",
		"format":        strings.TrimPrefix(ext, "."),
		"url":           url,
		"secure_url":    url,
	})
}

func (s *Server) destroyAsset(c *gin.Context) {
	// The SDK posts the signed destroy body without a Content-Type.
	if c.ContentType() == "" {
		c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if c.PostForm("api_key") == "" {
		mediaError(c, http.StatusUnauthorized, "Must supply api_key")
		return
	}
	publicID := c.PostForm("public_id")

	s.mu.Lock()
	_, found := s.assets[publicID]
	delete(s.assets, publicID)
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusOK, gin.H{"result": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}
