package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/realestate-manager/internal/db"
)

type HealthResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

type HealthHandler struct {
	db     *gorm.DB
	dbType string
}

func NewHealthHandler(db *gorm.DB, dbType string) *HealthHandler {
	return &HealthHandler{db: db, dbType: dbType}
}

func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	result := HealthResult{
		Status:  "healthy",
		Details: map[string]string{"database_type": h.dbType},
	}

	if err := dbpkg.Ping(ctx, h.db); err != nil {
		log.Printf("Health check failed - database ping: %v", err)
		result.Status = "unhealthy"
		result.Database = "unreachable"
		result.ErrorMessage = err.Error()
		c.JSON(http.StatusServiceUnavailable, result)
		return
	}

	result.Database = "ok"
	c.JSON(http.StatusOK, result)
}
