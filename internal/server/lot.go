package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jaeyoung-oh/parkrate/internal/scheduleio"
)

type createLotRequest struct {
	Name        string `json:"name" binding:"required"`
	IsPublic    bool   `json:"is_public"`
	FreeMinutes int    `json:"free_minutes"`
}

func (s *Service) CreateLot(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lot, err := s.lots.CreateLot(c.Request.Context(), req.Name, req.IsPublic, req.FreeMinutes)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, lot)
}

func (s *Service) GetLot(c *gin.Context) {
	id, ok := s.lotID(c)
	if !ok {
		return
	}
	lot, err := s.lots.GetLot(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (s *Service) ListLots(c *gin.Context) {
	lots, err := s.lots.ListLots(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lots": lots})
}

// PutSchedule replaces the lot's schedule wholesale. The body is the
// schedule JSON document; it must pass schema and model validation
// before anything is written.
func (s *Service) PutSchedule(c *gin.Context) {
	id, ok := s.lotID(c)
	if !ok {
		return
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	schedule, err := scheduleio.DecodeSchedule(body)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.lots.SaveSchedule(c.Request.Context(), id, schedule); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s *Service) GetSchedule(c *gin.Context) {
	id, ok := s.lotID(c)
	if !ok {
		return
	}
	schedule, err := s.lots.GetSchedule(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, schedule)
}

func (s *Service) lotID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lot id"})
		return uuid.Nil, false
	}
	return id, true
}
