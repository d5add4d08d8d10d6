package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExportSessions streams the lot's sessions for the window as XLSX.
func (s *Service) ExportSessions(c *gin.Context) {
	lotID, ok := s.lotID(c)
	if !ok {
		return
	}
	from, to, ok := s.dateWindow(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	lot, err := s.lots.GetLot(ctx, lotID)
	if err != nil {
		s.fail(c, err)
		return
	}
	sessions, err := s.sessions.ListSessions(ctx, lotID, from, to)
	if err != nil {
		s.fail(c, err)
		return
	}

	data, err := s.exporter.SessionsXLSX(lot, sessions)
	if err != nil {
		s.fail(c, err)
		return
	}

	filename := fmt.Sprintf("sessions-%s.xlsx", lotID)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
