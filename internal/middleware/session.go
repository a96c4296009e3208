package middleware

import (
	"errors"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	domain "github.com/BruksfildServices01/realestate-manager/internal/domain/account"
	"github.com/BruksfildServices01/realestate-manager/internal/models"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

const SessionCookie = "session"

// MsgUnauthorized is flashed when a signed-in user hits a route of another role.
const MsgUnauthorized = "Unauthorized access."

// LoadSession attaches the principal of a valid, unrevoked session cookie.
// The user row is re-read on every request so deleted accounts lose access.
func LoadSession(
	issuer *auth.TokenIssuer,
	revoker auth.Revoker,
	users domain.Repository,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			web.ClearCookie(c, SessionCookie)
			c.Next()
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			// Anonymous for this request only; the cookie stays.
			log.Printf("session: revocation lookup failed: %v", err)
			c.Next()
			return
		}
		if revoked {
			web.ClearCookie(c, SessionCookie)
			c.Next()
			return
		}

		userID, err := strconv.ParseUint(claims.Subject, 10, 64)
		if err != nil {
			web.ClearCookie(c, SessionCookie)
			c.Next()
			return
		}

		user, err := users.FindUserByID(c.Request.Context(), uint(userID))
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("session: user lookup failed: %v", err)
			c.Next()
			return
		}
		if err != nil || user.Role != claims.Role {
			web.ClearCookie(c, SessionCookie)
			c.Next()
			return
		}

		web.SetPrincipal(c, &auth.Principal{
			UserID:    user.ID,
			Email:     user.Email,
			Role:      user.Role,
			ProfileID: user.ProfileID(),
			TokenID:   claims.ID,
			ExpiresAt: claims.ExpiresAt.Time,
		})
		c.Next()
	}
}

// StartSession issues a token for user and stores it in the session cookie.
func StartSession(c *gin.Context, issuer *auth.TokenIssuer, user *models.User) error {
	token, _, err := issuer.Issue(user)
	if err != nil {
		return err
	}
	web.SetSessionCookie(c, SessionCookie, token, int(issuer.TTL().Seconds()))
	return nil
}

// EndSession revokes the current token and clears the cookie.
func EndSession(c *gin.Context, revoker auth.Revoker) error {
	web.ClearCookie(c, SessionCookie)

	p := web.CurrentPrincipal(c)
	if p == nil {
		return nil
	}
	return revoker.Revoke(c.Request.Context(), p.TokenID, p.ExpiresAt)
}

// RequireLogin sends anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if web.CurrentPrincipal(c) == nil {
			web.Redirect(c, "/")
			return
		}
		c.Next()
	}
}

// RequireRole lets through only the given roles. Other signed-in users are
// redirected to "/", with notice flashed when it is not empty.
func RequireRole(notice string, roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := web.CurrentPrincipal(c)
		if p == nil {
			web.Redirect(c, "/")
			return
		}
		if !auth.Authorize(p, roles...) {
			if notice != "" {
				web.AddFlash(c, web.FlashDanger, notice)
			}
			web.Redirect(c, "/")
			return
		}
		c.Next()
	}
}
