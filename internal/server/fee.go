package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaeyoung-oh/parkrate/internal/billing"
	"github.com/jaeyoung-oh/parkrate/internal/scheduleio"
)

type estimateRequest struct {
	StartEpochMillis int64           `json:"start_epoch_ms"`
	EndEpochMillis   int64           `json:"end_epoch_ms"`
	Schedule         json.RawMessage `json:"schedule"`
	IsPublicLot      bool            `json:"is_public_lot"`
	CompactCar       bool            `json:"compact_car"`
	FreeTimeMinutes  int             `json:"free_time_minutes"`
}

// EstimateFee bills a stay against an inline schedule, without touching
// storage. The schedule document goes through full validation first.
func (s *Service) EstimateFee(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	schedule, err := scheduleio.DecodeSchedule(req.Schedule)
	if err != nil {
		s.fail(c, err)
		return
	}

	res := billing.ComputeFee(
		time.UnixMilli(req.StartEpochMillis),
		time.UnixMilli(req.EndEpochMillis),
		schedule,
		billing.Context{
			PublicLot:       req.IsPublicLot,
			CompactCar:      req.CompactCar,
			FreeTimeMinutes: req.FreeTimeMinutes,
		},
	)
	c.JSON(http.StatusOK, res)
}
