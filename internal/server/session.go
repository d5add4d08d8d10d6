package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jaeyoung-oh/parkrate/internal/billing"
)

type startSessionRequest struct {
	Plate      string     `json:"plate" binding:"required"`
	CompactCar bool       `json:"compact_car"`
	EnteredAt  *time.Time `json:"entered_at,omitempty"`
}

func (s *Service) StartSession(c *gin.Context) {
	lotID, ok := s.lotID(c)
	if !ok {
		return
	}
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The lot must exist before a stay can open against it.
	if _, err := s.lots.GetLot(c.Request.Context(), lotID); err != nil {
		s.fail(c, err)
		return
	}

	enteredAt := time.Now().UTC()
	if req.EnteredAt != nil {
		enteredAt = *req.EnteredAt
	}
	sess, err := s.sessions.StartSession(c.Request.Context(), lotID, req.Plate, req.CompactCar, enteredAt)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, sess)
}

type exitSessionRequest struct {
	ExitedAt *time.Time `json:"exited_at,omitempty"`
}

// ExitSession closes the stay and bills it against the lot's stored
// schedule. The lot's free allowance and public flag feed the billing
// context; the discount applies only to compact cars in public lots.
func (s *Service) ExitSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	var req exitSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	sess, err := s.sessions.GetSession(ctx, id)
	if err != nil {
		s.fail(c, err)
		return
	}
	lot, err := s.lots.GetLot(ctx, sess.LotID)
	if err != nil {
		s.fail(c, err)
		return
	}
	schedule, err := s.lots.GetSchedule(ctx, sess.LotID)
	if err != nil {
		s.fail(c, err)
		return
	}

	exitedAt := time.Now().UTC()
	if req.ExitedAt != nil {
		exitedAt = *req.ExitedAt
	}

	fee := billing.ComputeFee(sess.EnteredAt, exitedAt, schedule, billing.Context{
		PublicLot:       lot.IsPublic,
		CompactCar:      sess.CompactCar,
		FreeTimeMinutes: lot.FreeMinutes,
	})

	closed, err := s.sessions.CloseSession(ctx, id, exitedAt, fee)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("session.billed",
		"session_id", id.String(),
		"lot_id", lot.ID.String(),
		"original", fee.Original,
		"discounted", fee.Discounted,
	)
	c.JSON(http.StatusOK, closed)
}

func (s *Service) ListSessions(c *gin.Context) {
	lotID, ok := s.lotID(c)
	if !ok {
		return
	}
	from, to, ok := s.dateWindow(c)
	if !ok {
		return
	}
	sessions, err := s.sessions.ListSessions(c.Request.Context(), lotID, from, to)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// dateWindow parses optional from/to query params as 2006-01-02 dates.
func (s *Service) dateWindow(c *gin.Context) (*time.Time, *time.Time, bool) {
	parse := func(key string) (*time.Time, error) {
		v := c.Query(key)
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	from, err := parse("from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date"})
		return nil, nil, false
	}
	to, err := parse("to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date"})
		return nil, nil, false
	}
	return from, to, true
}
