package handler

import "github.com/gin-gonic/gin"

type Handlers struct {
	Dispatch *DispatchHandler
	Feeding  *FeedingHandler
	Schedule *ScheduleHandler
}

// Register mounts the API under v1. Nil handlers are skipped.
func (h Handlers) Register(v1 *gin.RouterGroup) {
	if h.Dispatch != nil {
		v1.GET("/reminders/dispatch", h.Dispatch.HandleDispatch)
		v1.POST("/reminders/dispatch", h.Dispatch.HandleDispatch)
	}

	ponds := v1.Group("/ponds/:pondID")
	if h.Feeding != nil {
		ponds.POST("/feeding-session", h.Feeding.HandleOpenSession)
		ponds.POST("/feeding-logs", h.Feeding.HandleSubmitLog)
		ponds.GET("/feeding-logs", h.Feeding.HandleListLogs)
	}
	if h.Schedule != nil {
		ponds.PUT("/schedule", h.Schedule.HandlePutSchedule)
		ponds.GET("/schedule/today", h.Schedule.HandleToday)
		ponds.GET("/ration", h.Schedule.HandleRation)
	}
}
