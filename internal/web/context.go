package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realestate-manager/internal/auth"
)

const (
	ContextPrincipal = "principal"
	ContextRequestID = "requestID"
	ContextSecure    = "secureCookies"
	ContextTimezone  = "appTimezone"
)

func SetPrincipal(c *gin.Context, p *auth.Principal) {
	c.Set(ContextPrincipal, p)
}

// CurrentPrincipal is nil for anonymous requests.
func CurrentPrincipal(c *gin.Context) *auth.Principal {
	if v, ok := c.Get(ContextPrincipal); ok {
		if p, ok := v.(*auth.Principal); ok {
			return p
		}
	}
	return nil
}

// SecureCookies marks every cookie set by the web layer as Secure.
func SecureCookies(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextSecure, secure)
		c.Next()
	}
}

// AppTimezone sets the zone that decides today's date on the forms.
func AppTimezone(tz string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextTimezone, tz)
		c.Next()
	}
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", c.GetBool(ContextSecure), true)
}

// SetSessionCookie stores the signed session token.
func SetSessionCookie(c *gin.Context, name, token string, maxAge int) {
	setCookie(c, name, token, maxAge)
}

func ClearCookie(c *gin.Context, name string) {
	setCookie(c, name, "", -1)
}
