package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	"github.com/BruksfildServices01/realestate-manager/internal/config"
	"github.com/BruksfildServices01/realestate-manager/internal/metrics"
	"github.com/BruksfildServices01/realestate-manager/internal/middleware"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/routes"
	"github.com/BruksfildServices01/realestate-manager/internal/testutil"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

// ======================================================
// HARNESS
// ======================================================

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
	audit  *testutil.AuditRecorder

	admin  *models.User
	client *models.User
	agent  *models.User
}

// newTestApp seeds admin (1), client (2) and agent (3); every password is "pw".
func newTestApp(t *testing.T) *testApp {
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	rec := &testutil.AuditRecorder{}

	r := gin.New()
	r.SetHTMLTemplate(web.MustTemplates())
	routes.RegisterRoutes(r, routes.Dependencies{
		DB: db,
		Config: &config.Config{
			DBType:     "sqlite",
			SessionTTL: time.Hour,
			Timezone:   "UTC",
		},
		Issuer:  auth.NewTokenIssuer([]byte("0123456789abcdef01234567"), time.Hour),
		Revoker: auth.NewMemoryRevoker(),
		Audit:   rec,
		Metrics: metrics.New(),
	})

	return &testApp{
		t:      t,
		db:     db,
		engine: r,
		audit:  rec,
		admin:  testutil.CreateUser(t, db, "admin@test.com", "pw", models.RoleAdmin),
		client: testutil.CreateUser(t, db, "client@test.com", "pw", models.RoleClient),
		agent:  testutil.CreateUser(t, db, "agent@test.com", "pw", models.RoleAgent),
	}
}

// browser keeps cookies between requests the way a user agent would.
type browser struct {
	app *testApp
	jar map[string]string
}

func (a *testApp) browser() *browser {
	return &browser{app: a, jar: map[string]string{}}
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	b.app.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for name, value := range b.jar {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	w := httptest.NewRecorder()
	b.app.engine.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 || ck.Value == "" {
			delete(b.jar, ck.Name)
			continue
		}
		b.jar[ck.Name] = ck.Value
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(http.MethodGet, path, nil)
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	return b.do(http.MethodPost, path, form)
}

func (b *browser) login(email string) *httptest.ResponseRecorder {
	b.app.t.Helper()
	w := b.post("/login", url.Values{"name": {email}, "password": {"pw"}})
	require.Equal(b.app.t, http.StatusFound, w.Code)
	return w
}

// flashes renders the login page and returns its body, which lists every
// pending flash message.
func (b *browser) flashes() string {
	w := b.get("/")
	require.Equal(b.app.t, http.StatusOK, w.Code)
	return w.Body.String()
}

func assertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, location, w.Header().Get("Location"))
}

// ======================================================
// AUTH
// ======================================================

func TestLogin_RedirectsByRole(t *testing.T) {
	app := newTestApp(t)

	cases := map[string]string{
		"admin@test.com":  "/admin_dashboard",
		"agent@test.com":  "/agent_dashboard",
		"client@test.com": "/client_dashboard",
	}
	for email, landing := range cases {
		b := app.browser()
		assertRedirect(t, b.login(email), landing)
		assert.NotEmpty(t, b.jar[middleware.SessionCookie])

		w := b.get(landing)
		assert.Equal(t, http.StatusOK, w.Code, email)
	}
}

func TestLogin_WrongPasswordFlashesGenericMessage(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	w := b.post("/login", url.Values{"name": {"admin@test.com"}, "password": {"nope"}})
	assertRedirect(t, w, "/")
	assert.Empty(t, b.jar[middleware.SessionCookie])
	assert.Contains(t, b.flashes(), "Invalid name or password.")

	w = b.post("/login", url.Values{"name": {"ghost@test.com"}, "password": {"pw"}})
	assertRedirect(t, w, "/")
	assert.Contains(t, b.flashes(), "Invalid name or password.")
}

func TestLogout_RevokesSessionToken(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.login("admin@test.com")
	token := b.jar[middleware.SessionCookie]

	assertRedirect(t, b.get("/logout"), "/")
	assert.Contains(t, b.flashes(), "You have been logged out.")
	assert.Empty(t, b.jar[middleware.SessionCookie])

	// Replaying the old cookie no longer works.
	b.jar[middleware.SessionCookie] = token
	assertRedirect(t, b.get("/admin_dashboard"), "/")

	assert.Contains(t, app.audit.Actions(), "logout")
}

func TestLogout_RequiresLogin(t *testing.T) {
	app := newTestApp(t)
	assertRedirect(t, app.browser().get("/logout"), "/")
}

func TestSignup_Messages(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()

	w := b.post("/signup", url.Values{
		"name": {"new@test.com"}, "password": {"a"}, "confirm_password": {"b"}, "role": {"Client"},
	})
	assertRedirect(t, w, "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "Passwords do not match.")

	w = b.post("/signup", url.Values{
		"name": {"client@test.com"}, "password": {"a"}, "confirm_password": {"a"}, "role": {"Client"},
	})
	assertRedirect(t, w, "/signup")
	assert.Contains(t, b.get("/signup").Body.String(), "Name already registered.")

	w = b.post("/signup", url.Values{
		"name": {"boss@test.com"}, "password": {"a"}, "confirm_password": {"a"}, "role": {"Admin"},
	})
	assertRedirect(t, w, "/signup")

	w = b.post("/signup", url.Values{
		"name": {"new@test.com"}, "password": {"secret"}, "confirm_password": {"secret"},
		"role": {"Agent"}, "commission_perc": {"3.5"},
	})
	assertRedirect(t, w, "/")
	assert.Contains(t, b.flashes(), "Account created successfully! Please log in.")

	w = b.post("/login", url.Values{"name": {"new@test.com"}, "password": {"secret"}})
	assertRedirect(t, w, "/agent_dashboard")
}

// ======================================================
// ROLE GATES
// ======================================================

func TestRoleGates_RedirectOtherRoles(t *testing.T) {
	app := newTestApp(t)

	anon := app.browser()
	for _, path := range []string{"/admin_dashboard", "/agent_dashboard", "/client_dashboard", "/users"} {
		assertRedirect(t, anon.get(path), "/")
	}

	agent := app.browser()
	agent.login("agent@test.com")
	assertRedirect(t, agent.get("/admin_dashboard"), "/")
	assertRedirect(t, agent.get("/properties"), "/")
	assertRedirect(t, agent.get("/client_dashboard"), "/")

	client := app.browser()
	client.login("client@test.com")
	assertRedirect(t, client.get("/agent_dashboard"), "/")
	assertRedirect(t, client.get("/add_property"), "/")
}

func TestRoleGates_ManagementRoutesFlashUnauthorized(t *testing.T) {
	app := newTestApp(t)

	agent := app.browser()
	agent.login("agent@test.com")
	assertRedirect(t, agent.get("/high_value_clients"), "/")
	assert.Contains(t, agent.flashes(), "Unauthorized access.")

	assertRedirect(t, agent.post(fmt.Sprintf("/delete_user/%d", app.client.ID), url.Values{}), "/")
	assert.Contains(t, agent.flashes(), "Unauthorized access.")

	var count int64
	app.db.Model(&models.User{}).Where("user_id = ?", app.client.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	admin := app.browser()
	admin.login("admin@test.com")
	assertRedirect(t, admin.get("/add_client"), "/")
	assert.Contains(t, admin.flashes(), "Unauthorized access.")
}

// ======================================================
// ADMIN
// ======================================================

func TestAdminDashboard_ShowsStatistics(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateProperty(t, app.db, app.client.ID, app.agent.ID, "1 Main St", "250000")
	c := testutil.CreateContract(t, app.db, app.client.ID, app.agent.ID, "5000")
	testutil.CreatePayment(t, app.db, c.ID, "2024-02-01", "1200.50")

	b := app.browser()
	b.login("admin@test.com")
	w := b.get("/admin_dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1200.50")

	w = b.get("/properties")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 Main St")
}

func TestEditProperty_UpdatesPriceAndShowsAudit(t *testing.T) {
	app := newTestApp(t)
	p := testutil.CreateProperty(t, app.db, app.client.ID, app.agent.ID, "1 Main St", "250000")

	b := app.browser()
	b.login("admin@test.com")

	assert.Equal(t, http.StatusNotFound, b.get("/edit_property/999").Code)

	path := fmt.Sprintf("/edit_property/%d", p.ID)
	w := b.post(path, url.Values{"price": {"275000"}})
	assertRedirect(t, w, "/properties")

	w = b.get("/properties")
	assert.Contains(t, w.Body.String(), fmt.Sprintf("Property %d price updated. Trigger fired!", p.ID))

	w = b.get(path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "275000.00")
	assert.Contains(t, w.Body.String(), "250000.00")

	var audits int64
	app.db.Model(&models.PropertyPriceAudit{}).Where("property_id = ?", p.ID).Count(&audits)
	assert.Equal(t, int64(1), audits)
}

func TestAgentSalesReport_CallsFunction(t *testing.T) {
	app := newTestApp(t)
	testutil.CreateContract(t, app.db, app.client.ID, app.agent.ID, "5000")
	testutil.CreateContract(t, app.db, app.client.ID, app.agent.ID, "2500")

	b := app.browser()
	b.login("admin@test.com")

	w := b.post("/agent_sales_report", url.Values{"agent_id": {fmt.Sprint(app.agent.ID)}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, fmt.Sprintf("Total sales calculated for Agent ID %d.", app.agent.ID))
	assert.Contains(t, body, "7500.00")
}

func TestAddCommission_ShowsInAgentDashboard(t *testing.T) {
	app := newTestApp(t)

	admin := app.browser()
	admin.login("admin@test.com")
	w := admin.post("/add_commission", url.Values{
		"agent_id":    {fmt.Sprint(app.agent.ID)},
		"amount":      {"500"},
		"percentage":  {"10"},
		"earned_date": {"2024-01-01"},
	})
	assertRedirect(t, w, "/admin_dashboard")

	agent := app.browser()
	agent.login("agent@test.com")
	w = agent.get("/agent_dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "500.00")
	assert.Contains(t, body, "2024-01-01")
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.login("admin@test.com")

	w := b.post("/delete_user/999", url.Values{})
	assertRedirect(t, w, "/admin_dashboard")
	assert.Contains(t, b.get("/admin_dashboard").Body.String(), "User ID 999 not found.")

	// A client that owns a property cannot go.
	testutil.CreateProperty(t, app.db, app.client.ID, app.agent.ID, "1 Main St", "250000")
	w = b.post(fmt.Sprintf("/delete_user/%d", app.client.ID), url.Values{})
	assertRedirect(t, w, "/admin_dashboard")
	assert.Contains(t, b.get("/admin_dashboard").Body.String(), "Error deleting user:")

	other := testutil.CreateUser(t, app.db, "other@test.com", "pw", models.RoleClient)
	w = b.post(fmt.Sprintf("/delete_user/%d", other.ID), url.Values{})
	assertRedirect(t, w, "/admin_dashboard")
	assert.Contains(t, b.get("/admin_dashboard").Body.String(),
		fmt.Sprintf("User ID %d has been deleted.", other.ID))

	var count int64
	app.db.Model(&models.Client{}).Where("client_id = ?", other.ID).Count(&count)
	assert.Zero(t, count)
}

// ======================================================
// AGENT / CLIENT
// ======================================================

func TestAgentAddsPropertyAndContract_ClientSeesThem(t *testing.T) {
	app := newTestApp(t)

	agent := app.browser()
	agent.login("agent@test.com")

	w := agent.post("/add_property", url.Values{
		"client_id": {fmt.Sprint(app.client.ID)},
		"street":    {"42 Elm St"},
		"city":      {"Springfield"},
		"state":     {"IL"},
		"zip":       {"62701"},
		"price":     {"199000"},
		"type":      {"Condo"},
		"size":      {"80"},
	})
	assertRedirect(t, w, "/agent_dashboard")
	assert.Contains(t, agent.get("/agent_dashboard").Body.String(), "Property added successfully!")

	w = agent.post("/add_contract", url.Values{
		"client_id":  {fmt.Sprint(app.client.ID)},
		"start_date": {"2024-01-01"},
		"end_date":   {"2024-06-30"},
		"amount":     {"9000"},
	})
	assertRedirect(t, w, "/agent_dashboard")
	assert.Contains(t, agent.get("/agent_dashboard").Body.String(), "Contract added successfully!")

	var contract models.Contract
	require.NoError(t, app.db.Where("client_id = ?", app.client.ID).First(&contract).Error)
	assert.Equal(t, app.agent.ID, contract.AgentID)
	testutil.CreatePayment(t, app.db, contract.ID, "2024-02-01", "3000")

	client := app.browser()
	client.login("client@test.com")
	w = client.get("/client_dashboard")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "42 Elm St")
	assert.Contains(t, body, "3000.00")
}

func TestAgentUpdatesClientDetails(t *testing.T) {
	app := newTestApp(t)
	agent := app.browser()
	agent.login("agent@test.com")

	w := agent.post("/add_client", url.Values{
		"client_id": {fmt.Sprint(app.client.ID)},
		"fname":     {"Jane"},
		"lname":     {"Doe"},
		"phone":     {"555-0100"},
		"street":    {"1 Oak Ave"},
		"city":      {"Shelbyville"},
		"state":     {"IL"},
		"zip":       {"62565"},
	})
	assertRedirect(t, w, "/agent_dashboard")
	assert.Contains(t, agent.get("/agent_dashboard").Body.String(),
		fmt.Sprintf("Client details for ID %d updated successfully!", app.client.ID))

	w = agent.get(fmt.Sprintf("/add_client?client_id=%d", app.client.ID))
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Jane")
	assert.Contains(t, body, "555-0100")
}

func TestAgentUpdatesUnknownClient(t *testing.T) {
	app := newTestApp(t)
	agent := app.browser()
	agent.login("agent@test.com")

	w := agent.post("/add_client", url.Values{"client_id": {"999"}, "fname": {"Jane"}})
	assertRedirect(t, w, "/agent_dashboard")
	body := agent.get("/agent_dashboard").Body.String()
	assert.Contains(t, body, "Client ID 999 not found.")
	assert.NotContains(t, body, "Database error")

	body = agent.get("/add_client?client_id=999").Body.String()
	assert.Contains(t, body, "Client ID 999 not found.")
}

func TestContractFormPrefillsToday(t *testing.T) {
	app := newTestApp(t)
	agent := app.browser()
	agent.login("agent@test.com")

	w := agent.get("/add_contract")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`name="start_date" value="%s"`, time.Now().UTC().Format("2006-01-02")))
}

// ======================================================
// OPS
// ======================================================

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.browser().get("/health")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	b := app.browser()
	b.get("/")

	w := b.get("/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `realestate_requests_total{method="GET",path="/",status_code="200"} 1`)
}

func TestUsersAndAuditLogPages(t *testing.T) {
	app := newTestApp(t)
	require.NoError(t, app.db.Create(&models.AuditLog{Action: "delete_user", Entity: "user", Metadata: "alpha"}).Error)
	require.NoError(t, app.db.Create(&models.AuditLog{Action: "login", Entity: "user", Metadata: "beta"}).Error)

	b := app.browser()
	b.login("admin@test.com")

	w := b.get("/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "client@test.com")
	assert.Contains(t, w.Body.String(), fmt.Sprintf(`action="/delete_user/%d"`, app.agent.ID))

	w = b.get("/audit_logs?action=delete_user")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1 entries")
	assert.Contains(t, w.Body.String(), "alpha")
	assert.NotContains(t, w.Body.String(), "beta")
}
