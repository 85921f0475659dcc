package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type StatusHandler struct {
	db Pinger
}

func NewStatusHandler(db Pinger) *StatusHandler {
	return &StatusHandler{db: db}
}

func (h *StatusHandler) Status(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "Degraded", "error": "storage unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "Available"})
}
