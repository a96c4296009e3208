package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	"github.com/BruksfildServices01/realestate-manager/internal/config"
	"github.com/BruksfildServices01/realestate-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/realestate-manager/internal/infra/repository"
	"github.com/BruksfildServices01/realestate-manager/internal/metrics"
	"github.com/BruksfildServices01/realestate-manager/internal/middleware"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	ucAccount "github.com/BruksfildServices01/realestate-manager/internal/usecase/account"
	ucAdmin "github.com/BruksfildServices01/realestate-manager/internal/usecase/admin"
	ucAgent "github.com/BruksfildServices01/realestate-manager/internal/usecase/agent"
	"github.com/BruksfildServices01/realestate-manager/internal/validators"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

// Dependencies are the process-wide singletons the routes are built from.
type Dependencies struct {
	DB      *gorm.DB
	Config  *config.Config
	Issuer  *auth.TokenIssuer
	Revoker auth.Revoker
	Audit   audit.Sink
	Metrics *metrics.Metrics // nil disables /metrics
}

func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	cfg := deps.Config

	// ======================================================
	// INFRA
	// ======================================================
	accountRepo := infraRepo.NewAccountGormRepository(deps.DB)
	realEstateRepo := infraRepo.NewRealEstateGormRepository(deps.DB)

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.RequestID())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Use(web.SecureCookies(cfg.CookieSecure))
	r.Use(web.AppTimezone(cfg.Timezone))
	r.Use(middleware.LoadSession(deps.Issuer, deps.Revoker, accountRepo))

	// ======================================================
	// USE CASES
	// ======================================================
	var checkDomain validators.DomainChecker
	if cfg.ValidateEmailDomain {
		checkDomain = validators.IsEmailDomainValid
	}

	authenticateUC := ucAccount.NewAuthenticate(accountRepo, deps.Audit)
	registerUC := ucAccount.NewRegister(accountRepo, deps.Audit, checkDomain)
	deleteUserUC := ucAccount.NewDeleteUser(accountRepo, deps.Audit)

	updatePriceUC := ucAdmin.NewUpdatePropertyPrice(realEstateRepo, deps.Audit)
	addPaymentUC := ucAdmin.NewAddPayment(realEstateRepo, deps.Audit)
	addCommissionUC := ucAdmin.NewAddCommission(realEstateRepo, deps.Audit)

	updateClientUC := ucAgent.NewUpdateClientProfile(realEstateRepo, deps.Audit)
	createPropertyUC := ucAgent.NewCreateProperty(realEstateRepo, deps.Audit)
	createContractUC := ucAgent.NewCreateContract(realEstateRepo, deps.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		deps.Issuer,
		deps.Revoker,
		authenticateUC,
		registerUC,
		deps.Audit,
	)

	adminHandler := handlers.NewAdminHandler(
		realEstateRepo,
		realEstateRepo,
		realEstateRepo,
		accountRepo,
		updatePriceUC,
		addPaymentUC,
		addCommissionUC,
		deleteUserUC,
	)

	agentHandler := handlers.NewAgentHandler(
		realEstateRepo,
		realEstateRepo,
		updateClientUC,
		createPropertyUC,
		createContractUC,
	)

	clientHandler := handlers.NewClientHandler(realEstateRepo, realEstateRepo)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.DB)
	healthHandler := handlers.NewHealthHandler(deps.DB, cfg.DBType)

	// ======================================================
	// OPS
	// ======================================================
	r.GET("/health", healthHandler.Check)
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// ======================================================
	// PUBLIC PAGES
	// ======================================================
	r.GET("/", authHandler.Index)
	r.POST("/login", authHandler.Login)
	r.GET("/signup", authHandler.SignupPage)
	r.POST("/signup", authHandler.Signup)
	r.GET("/logout", middleware.RequireLogin(), authHandler.Logout)

	// ======================================================
	// ADMIN
	// ======================================================
	admin := r.Group("/")
	admin.Use(middleware.RequireRole("", models.RoleAdmin))
	{
		admin.GET("/admin_dashboard", adminHandler.Dashboard)
		admin.GET("/properties", adminHandler.Properties)
		admin.GET("/agent_search", adminHandler.AgentSearchPage)
		admin.POST("/agent_search", adminHandler.AgentSearch)
		admin.GET("/edit_property/:id", adminHandler.EditPropertyPage)
		admin.POST("/edit_property/:id", adminHandler.EditProperty)
		admin.GET("/payments", adminHandler.Payments)
		admin.GET("/add_payment", adminHandler.AddPaymentPage)
		admin.POST("/add_payment", adminHandler.AddPayment)
		admin.GET("/agent_sales_report", adminHandler.AgentSalesReportPage)
		admin.POST("/agent_sales_report", adminHandler.AgentSalesReport)
		admin.GET("/users", adminHandler.Users)
		admin.GET("/audit_logs", auditLogsHandler.List)
	}

	// Management routes flash a notice when another role reaches them.
	adminManage := r.Group("/")
	adminManage.Use(middleware.RequireRole(middleware.MsgUnauthorized, models.RoleAdmin))
	{
		adminManage.GET("/high_value_clients", adminHandler.HighValueClients)
		adminManage.POST("/delete_user/:user_id", adminHandler.DeleteUser)
		adminManage.GET("/add_commission", adminHandler.AddCommissionPage)
		adminManage.POST("/add_commission", adminHandler.AddCommission)
	}

	// ======================================================
	// AGENT
	// ======================================================
	r.GET("/agent_dashboard", middleware.RequireRole("", models.RoleAgent), agentHandler.Dashboard)

	agentManage := r.Group("/")
	agentManage.Use(middleware.RequireRole(middleware.MsgUnauthorized, models.RoleAgent))
	{
		agentManage.GET("/add_client", agentHandler.AddClientPage)
		agentManage.POST("/add_client", agentHandler.AddClient)
		agentManage.GET("/add_property", agentHandler.AddPropertyPage)
		agentManage.POST("/add_property", agentHandler.AddProperty)
		agentManage.GET("/add_contract", agentHandler.AddContractPage)
		agentManage.POST("/add_contract", agentHandler.AddContract)
	}

	// ======================================================
	// CLIENT
	// ======================================================
	r.GET("/client_dashboard", middleware.RequireRole("", models.RoleClient), clientHandler.Dashboard)
}
