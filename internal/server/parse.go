package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jaeyoung-oh/parkrate/internal/ocrparse"
)

type parseRequest struct {
	Text  string                    `json:"text"`
	Lines []ocrparse.RecognizedLine `json:"lines,omitempty"`
}

// ParseSignText runs the extraction pipeline over recognized sign text.
// Extraction never errors; an unusable sign comes back success=false and
// the client falls back to manual entry.
func (s *Service) ParseSignText(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := s.parser.Parse(req.Text, req.Lines)
	s.logger.Info("parse.ok",
		"bytes", len(req.Text),
		"geometry_lines", len(req.Lines),
		"rows", len(res.FeeRows),
		"success", res.Success,
	)
	c.JSON(http.StatusOK, res)
}
