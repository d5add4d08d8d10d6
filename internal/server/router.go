package server

import (
	"github.com/gin-gonic/gin"
)

// NewRouter wires every route. The API is unauthenticated by design;
// access control belongs to the deployment in front of it.
func NewRouter(svc *Service) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/parse", svc.ParseSignText)
		v1.POST("/fees/estimate", svc.EstimateFee)

		lots := v1.Group("/lots")
		{
			lots.POST("", svc.CreateLot)
			lots.GET("", svc.ListLots)
			lots.GET("/:id", svc.GetLot)
			lots.GET("/:id/schedule", svc.GetSchedule)
			lots.PUT("/:id/schedule", svc.PutSchedule)
			lots.POST("/:id/sessions", svc.StartSession)
			lots.GET("/:id/sessions", svc.ListSessions)
			lots.GET("/:id/sessions/export", svc.ExportSessions)
		}

		v1.POST("/sessions/:id/exit", svc.ExitSession)
	}

	return r
}
