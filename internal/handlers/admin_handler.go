package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainAccount "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/realestate"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	ucAccount "github.com/BruksfildServices01/realestate-manager/internal/usecase/account"
	ucAdmin "github.com/BruksfildServices01/realestate-manager/internal/usecase/admin"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

const highValueClientLimit = 10

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	reports    domain.ReportRepository
	properties domain.PropertyRepository
	ledger     domain.LedgerRepository
	accounts   domainAccount.Repository

	updatePrice   *ucAdmin.UpdatePropertyPrice
	addPayment    *ucAdmin.AddPayment
	addCommission *ucAdmin.AddCommission
	deleteUser    *ucAccount.DeleteUser
}

func NewAdminHandler(
	reports domain.ReportRepository,
	properties domain.PropertyRepository,
	ledger domain.LedgerRepository,
	accounts domainAccount.Repository,
	updatePrice *ucAdmin.UpdatePropertyPrice,
	addPayment *ucAdmin.AddPayment,
	addCommission *ucAdmin.AddCommission,
	deleteUser *ucAccount.DeleteUser,
) *AdminHandler {
	return &AdminHandler{
		reports:       reports,
		properties:    properties,
		ledger:        ledger,
		accounts:      accounts,
		updatePrice:   updatePrice,
		addPayment:    addPayment,
		addCommission: addCommission,
		deleteUser:    deleteUser,
	}
}

// ======================================================
// REPORTS
// ======================================================

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.reports.DashboardStats(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/", err)
		return
	}
	web.OK(c, "admin_dashboard.html", gin.H{"Title": "Admin Dashboard", "Stats": stats})
}

func (h *AdminHandler) Properties(c *gin.Context) {
	listings, err := h.reports.ListPropertyListings(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "property_list.html", gin.H{"Title": "Properties", "Properties": listings})
}

func (h *AdminHandler) AgentSearchPage(c *gin.Context) {
	web.OK(c, "agent_search.html", gin.H{"Title": "Agent Search"})
}

func (h *AdminHandler) AgentSearch(c *gin.Context) {
	city := strings.TrimSpace(c.PostForm("city"))

	agents, err := h.reports.AgentsInCity(c.Request.Context(), city)
	if err != nil {
		databaseFailed(c, "/agent_search", err)
		return
	}
	web.OK(c, "agent_search.html", gin.H{"Title": "Agent Search", "City": city, "Agents": agents})
}

func (h *AdminHandler) HighValueClients(c *gin.Context) {
	clients, err := h.reports.HighValueClients(c.Request.Context(), highValueClientLimit)
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "high_value_clients.html", gin.H{"Title": "High-Value Clients", "Clients": clients})
}

// ======================================================
// PROPERTY PRICE (trigger)
// ======================================================

func (h *AdminHandler) EditPropertyPage(c *gin.Context) {
	id, err := validators.ParseID(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "Property not found")
		return
	}

	prop, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "Property not found")
			return
		}
		databaseFailed(c, "/properties", err)
		return
	}

	audits, err := h.properties.ListPriceAudits(c.Request.Context(), id)
	if err != nil {
		databaseFailed(c, "/properties", err)
		return
	}

	web.OK(c, "edit_property.html", gin.H{
		"Title":    "Edit Property",
		"Property": prop,
		"Audits":   audits,
	})
}

func (h *AdminHandler) EditProperty(c *gin.Context) {
	id, err := validators.ParseID(c.Param("id"))
	if err != nil {
		httperr.NotFound(c, "Property not found")
		return
	}

	_, err = h.updatePrice.Execute(c.Request.Context(), actorID(c), id, c.PostForm("price"))
	if err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeNotFound):
			httperr.NotFound(c, "Property not found")
		case httperr.IsBusiness(err, httperr.CodeInvalidInput):
			web.RedirectWithFlash(c, fmt.Sprintf("/edit_property/%d", id), web.FlashError,
				"Invalid price: "+httperr.Detail(err))
		default:
			databaseError(c, "/properties", err)
		}
		return
	}

	web.RedirectWithFlash(c, "/properties", web.FlashSuccess,
		fmt.Sprintf("Property %d price updated. Trigger fired!", id))
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *AdminHandler) Payments(c *gin.Context) {
	payments, err := h.ledger.ListPayments(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "payments.html", gin.H{"Title": "Payments", "Payments": payments})
}

func (h *AdminHandler) AddPaymentPage(c *gin.Context) {
	contracts, err := h.ledger.ListContractOptions(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "add_payment.html", gin.H{"Title": "Add Payment", "Contracts": contracts})
}

func (h *AdminHandler) AddPayment(c *gin.Context) {
	_, err := h.addPayment.Execute(c.Request.Context(), actorID(c), ucAdmin.AddPaymentInput{
		ContractID:  c.PostForm("contract_id"),
		PaymentDate: c.PostForm("payment_date"),
		Amount:      c.PostForm("amount"),
	})
	if err != nil {
		databaseError(c, "/add_payment", err)
		return
	}
	web.RedirectWithFlash(c, "/payments", web.FlashSuccess, "Payment added successfully!")
}

// ======================================================
// STORED FUNCTION
// ======================================================

func (h *AdminHandler) AgentSalesReportPage(c *gin.Context) {
	h.renderSalesReport(c, gin.H{})
}

func (h *AdminHandler) AgentSalesReport(c *gin.Context) {
	data := gin.H{}

	agentID, err := validators.ParseID(c.PostForm("agent_id"))
	if err != nil {
		web.AddFlash(c, web.FlashError, fmt.Sprintf("Error calculating sales: %v", err))
		h.renderSalesReport(c, data)
		return
	}
	data["SelectedAgent"] = agentID

	total, err := h.reports.AgentTotalSales(c.Request.Context(), agentID)
	if err != nil {
		web.AddFlash(c, web.FlashError, fmt.Sprintf("Error calculating sales: %v", err))
	} else {
		data["HasTotal"] = true
		data["TotalSales"] = total
		web.AddFlash(c, web.FlashSuccess, fmt.Sprintf("Total sales calculated for Agent ID %d.", agentID))
	}

	h.renderSalesReport(c, data)
}

// renderSalesReport always lists the agents for the dropdown.
func (h *AdminHandler) renderSalesReport(c *gin.Context, data gin.H) {
	agents, err := h.reports.ListAgents(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	data["Title"] = "Agent Sales Report"
	data["Agents"] = agents
	web.OK(c, "agent_sales_report.html", data)
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.accounts.ListUsers(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "users.html", gin.H{"Title": "Users", "Users": users})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := validators.ParseID(c.Param("user_id"))
	if err != nil {
		httperr.NotFound(c, "User not found")
		return
	}

	if _, err := h.deleteUser.Execute(c.Request.Context(), actorID(c), userID); err != nil {
		switch {
		case httperr.IsBusiness(err, httperr.CodeUserNotFound):
			web.RedirectWithFlash(c, "/admin_dashboard", web.FlashWarning,
				fmt.Sprintf("User ID %d not found.", userID))
		default:
			web.RedirectWithFlash(c, "/admin_dashboard", web.FlashError, fmt.Sprintf(
				"Error deleting user: %s. This user might be referenced in other records (e.g., properties, contracts).",
				errorText(err),
			))
		}
		return
	}

	web.RedirectWithFlash(c, "/admin_dashboard", web.FlashSuccess,
		fmt.Sprintf("User ID %d has been deleted.", userID))
}

// ======================================================
// COMMISSIONS
// ======================================================

func (h *AdminHandler) AddCommissionPage(c *gin.Context) {
	agents, err := h.reports.ListAgents(c.Request.Context())
	if err != nil {
		databaseFailed(c, "/admin_dashboard", err)
		return
	}
	web.OK(c, "add_commission.html", gin.H{"Title": "Add Commission", "Agents": agents})
}

func (h *AdminHandler) AddCommission(c *gin.Context) {
	_, err := h.addCommission.Execute(c.Request.Context(), actorID(c), ucAdmin.AddCommissionInput{
		AgentID:    c.PostForm("agent_id"),
		Amount:     c.PostForm("amount"),
		Percentage: c.PostForm("percentage"),
		EarnedDate: c.PostForm("earned_date"),
	})
	if err != nil {
		databaseError(c, "/admin_dashboard", err)
		return
	}
	web.RedirectWithFlash(c, "/admin_dashboard", web.FlashSuccess, "Commission added successfully!")
}
