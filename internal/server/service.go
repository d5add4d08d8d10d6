// Package server is the HTTP surface over the extraction pipeline, the
// billing engine, and the lot/session repositories.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jaeyoung-oh/parkrate/internal/common"
	"github.com/jaeyoung-oh/parkrate/internal/export"
	"github.com/jaeyoung-oh/parkrate/internal/ocrparse"
	"github.com/jaeyoung-oh/parkrate/internal/repository"
)

type Service struct {
	lots     repository.LotRepository
	sessions repository.SessionRepository
	parser   *ocrparse.Parser
	exporter *export.Service
	logger   *slog.Logger
}

func NewService(
	lots repository.LotRepository,
	sessions repository.SessionRepository,
	parser *ocrparse.Parser,
	exporter *export.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		lots:     lots,
		sessions: sessions,
		parser:   parser,
		exporter: exporter,
		logger:   logger,
	}
}

// fail writes the error with the status the taxonomy maps it to.
func (s *Service) fail(c *gin.Context, err error) {
	status := common.HTTPStatus(err)
	if status >= 500 {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
