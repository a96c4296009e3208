package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	"github.com/BruksfildServices01/realestate-manager/internal/infra/repository"
	"github.com/BruksfildServices01/realestate-manager/internal/middleware"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/testutil"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

type failingRevoker struct{}

func (failingRevoker) Revoke(context.Context, string, time.Time) error { return nil }

func (failingRevoker) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis: connection refused")
}

type sessionFixture struct {
	db     *gorm.DB
	issuer *auth.TokenIssuer
	user   *models.User
}

func newSessionFixture(t *testing.T) *sessionFixture {
	gin.SetMode(gin.TestMode)
	db := testutil.NewDB(t)
	return &sessionFixture{
		db:     db,
		issuer: auth.NewTokenIssuer([]byte("0123456789abcdef01234567"), time.Hour),
		user:   testutil.CreateUser(t, db, "admin@test.com", "pw", models.RoleAdmin),
	}
}

// serve runs one request carrying a session for f.user and returns the
// recorder. The body is the principal's email or "anonymous".
func (f *sessionFixture) serve(t *testing.T, revoker auth.Revoker) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.Use(middleware.LoadSession(f.issuer, revoker, repository.NewAccountGormRepository(f.db)))
	r.GET("/whoami", func(c *gin.Context) {
		if p := web.CurrentPrincipal(c); p != nil {
			c.String(http.StatusOK, p.Email)
			return
		}
		c.String(http.StatusOK, "anonymous")
	})

	token, _, err := f.issuer.Issue(f.user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCleared(w *httptest.ResponseRecorder) bool {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == middleware.SessionCookie && ck.MaxAge < 0 {
			return true
		}
	}
	return false
}

func TestLoadSession_AttachesPrincipal(t *testing.T) {
	f := newSessionFixture(t)

	w := f.serve(t, auth.NewMemoryRevoker())
	assert.Equal(t, "admin@test.com", w.Body.String())
	assert.False(t, sessionCleared(w))
}

func TestLoadSession_DeletedUserLosesCookie(t *testing.T) {
	f := newSessionFixture(t)
	require.NoError(t, f.db.Delete(&models.User{}, f.user.ID).Error)

	w := f.serve(t, auth.NewMemoryRevoker())
	assert.Equal(t, "anonymous", w.Body.String())
	assert.True(t, sessionCleared(w))
}

func TestLoadSession_DatabaseFailureKeepsCookie(t *testing.T) {
	f := newSessionFixture(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w := f.serve(t, auth.NewMemoryRevoker())
	assert.Equal(t, "anonymous", w.Body.String())
	assert.False(t, sessionCleared(w))
}

func TestLoadSession_RevocationStoreFailureKeepsCookie(t *testing.T) {
	f := newSessionFixture(t)

	w := f.serve(t, failingRevoker{})
	assert.Equal(t, "anonymous", w.Body.String())
	assert.False(t, sessionCleared(w))
}
