package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	ucAgent "github.com/BruksfildServices01/realestate-manager/internal/usecase/agent"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

type AgentHandler struct {
	ledger  domain.LedgerRepository
	clients domain.ClientRepository

	updateClient   *ucAgent.UpdateClientProfile
	createProperty *ucAgent.CreateProperty
	createContract *ucAgent.CreateContract
}

func NewAgentHandler(
	ledger domain.LedgerRepository,
	clients domain.ClientRepository,
	updateClient *ucAgent.UpdateClientProfile,
	createProperty *ucAgent.CreateProperty,
	createContract *ucAgent.CreateContract,
) *AgentHandler {
	return &AgentHandler{
		ledger:         ledger,
		clients:        clients,
		updateClient:   updateClient,
		createProperty: createProperty,
		createContract: createContract,
	}
}

// Dashboard lists the caller's commissions and their total.
func (h *AgentHandler) Dashboard(c *gin.Context) {
	earnings, err := h.ledger.EarningsForAgent(c.Request.Context(), profileID(c))
	if err != nil {
		databaseFailed(c, "/", err)
		return
	}

	total := decimal.Zero
	for _, e := range earnings {
		total = total.Add(e.Amount)
	}

	web.OK(c, "agent_dashboard.html", gin.H{
		"Title":         "Agent Dashboard",
		"Earnings":      earnings,
		"TotalEarnings": total,
	})
}

// --------- Clients ---------

func (h *AgentHandler) AddClientPage(c *gin.Context) {
	var selected *models.Client

	if raw := c.Query("client_id"); raw != "" {
		if id, err := validators.ParseID(raw); err == nil {
			selected, err = h.clients.GetClient(c.Request.Context(), id)
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				web.AddFlash(c, web.FlashWarning, fmt.Sprintf("Client ID %d not found.", id))
			case err != nil:
				web.AddFlash(c, web.FlashError, fmt.Sprintf("Database error: %v", err))
			}
		}
	}

	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/agent_dashboard", err)
		return
	}

	web.OK(c, "add_client.html", gin.H{
		"Title":    "Update Client",
		"Clients":  clients,
		"Selected": selected,
	})
}

func (h *AgentHandler) AddClient(c *gin.Context) {
	client, err := h.updateClient.Execute(c.Request.Context(), profileID(c), ucAgent.UpdateClientInput{
		ClientID: c.PostForm("client_id"),
		Fname:    c.PostForm("fname"),
		Lname:    c.PostForm("lname"),
		Phone:    c.PostForm("phone"),
		Street:   c.PostForm("street"),
		City:     c.PostForm("city"),
		State:    c.PostForm("state"),
		ZIP:      c.PostForm("zip"),
	})
	if err != nil {
		databaseError(c, "/agent_dashboard", err)
		return
	}

	web.RedirectWithFlash(c, "/agent_dashboard", web.FlashSuccess,
		fmt.Sprintf("Client details for ID %d updated successfully!", client.ID))
}

// --------- Properties / contracts ---------

func (h *AgentHandler) AddPropertyPage(c *gin.Context) {
	h.renderClientForm(c, "add_property.html", "Add Property")
}

func (h *AgentHandler) AddProperty(c *gin.Context) {
	_, err := h.createProperty.Execute(c.Request.Context(), profileID(c), ucAgent.CreatePropertyInput{
		ClientID: c.PostForm("client_id"),
		Street:   c.PostForm("street"),
		City:     c.PostForm("city"),
		State:    c.PostForm("state"),
		ZIP:      c.PostForm("zip"),
		Price:    c.PostForm("price"),
		Type:     c.PostForm("type"),
		Size:     c.PostForm("size"),
	})
	if err != nil {
		databaseError(c, "/add_property", err)
		return
	}
	web.RedirectWithFlash(c, "/agent_dashboard", web.FlashSuccess, "Property added successfully!")
}

func (h *AgentHandler) AddContractPage(c *gin.Context) {
	h.renderClientForm(c, "add_contract.html", "Add Contract")
}

func (h *AgentHandler) AddContract(c *gin.Context) {
	_, err := h.createContract.Execute(c.Request.Context(), profileID(c), ucAgent.CreateContractInput{
		ClientID:  c.PostForm("client_id"),
		StartDate: c.PostForm("start_date"),
		EndDate:   c.PostForm("end_date"),
		Amount:    c.PostForm("amount"),
	})
	if err != nil {
		databaseError(c, "/add_contract", err)
		return
	}
	web.RedirectWithFlash(c, "/agent_dashboard", web.FlashSuccess, "Contract added successfully!")
}

func (h *AgentHandler) renderClientForm(c *gin.Context, page, title string) {
	clients, err := h.clients.ListClients(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/agent_dashboard", err)
		return
	}
	web.OK(c, page, gin.H{"Title": title, "Clients": clients})
}
