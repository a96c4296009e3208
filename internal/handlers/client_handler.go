package handlers

import (
	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

type ClientHandler struct {
	ledger     domain.LedgerRepository
	properties domain.PropertyRepository
}

func NewClientHandler(ledger domain.LedgerRepository, properties domain.PropertyRepository) *ClientHandler {
	return &ClientHandler{ledger: ledger, properties: properties}
}

// Dashboard shows the caller's payments and owned properties.
func (h *ClientHandler) Dashboard(c *gin.Context) {
	clientID := profileID(c)

	payments, err := h.ledger.PaymentsForClient(c.Request.Context(), clientID)
	if err != nil {
		databaseFailed(c, "/", err)
		return
	}

	properties, err := h.properties.ListPropertiesForClient(c.Request.Context(), clientID)
	if err != nil {
		databaseFailed(c, "/", err)
		return
	}

	web.OK(c, "client_dashboard.html", gin.H{
		"Title":      "Client Dashboard",
		"Payments":   payments,
		"Properties": properties,
	})
}
