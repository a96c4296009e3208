package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realestate-manager/internal/audit"
	"github.com/BruksfildServices01/realestate-manager/internal/auth"
	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/middleware"
	ucAccount "github.com/BruksfildServices01/realestate-manager/internal/usecase/account"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

const (
	MsgInvalidLogin   = "Invalid name or password."
	MsgLoggedOut      = "You have been logged out."
	MsgAccountCreated = "Account created successfully! Please log in."
)

type AuthHandler struct {
	issuer       *auth.TokenIssuer
	revoker      auth.Revoker
	authenticate *ucAccount.Authenticate
	register     *ucAccount.Register
	audit        audit.Sink
}

func NewAuthHandler(
	issuer *auth.TokenIssuer,
	revoker auth.Revoker,
	authenticate *ucAccount.Authenticate,
	register *ucAccount.Register,
	audit audit.Sink,
) *AuthHandler {
	return &AuthHandler{
		issuer:       issuer,
		revoker:      revoker,
		authenticate: authenticate,
		register:     register,
		audit:        audit,
	}
}

// --------- Pages ---------

func (h *AuthHandler) Index(c *gin.Context) {
	web.OK(c, "login.html", gin.H{"Title": "Login"})
}

func (h *AuthHandler) SignupPage(c *gin.Context) {
	web.OK(c, "signup.html", gin.H{"Title": "Sign up"})
}

// --------- Actions ---------

func (h *AuthHandler) Login(c *gin.Context) {
	user, err := h.authenticate.Execute(
		c.Request.Context(),
		c.PostForm("name"),
		c.PostForm("password"),
	)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeInvalidCredentials) {
			web.RedirectWithFlash(c, "/", web.FlashError, MsgInvalidLogin)
			return
		}
		log.Printf("login failed: %v", err)
		httperr.DatabaseUnavailable(c)
		return
	}

	if err := middleware.StartSession(c, h.issuer, user); err != nil {
		log.Printf("session start failed: %v", err)
		httperr.Internal(c, "Could not start session")
		return
	}

	web.Redirect(c, ucAccount.LandingPath(user.Role))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if p := web.CurrentPrincipal(c); p != nil {
		userID := p.UserID
		h.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   audit.ActionLogout,
			Entity:   "user",
			EntityID: &userID,
		})
	}

	if err := middleware.EndSession(c, h.revoker); err != nil {
		log.Printf("session revoke failed: %v", err)
	}
	web.RedirectWithFlash(c, "/", web.FlashSuccess, MsgLoggedOut)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	_, err := h.register.Execute(c.Request.Context(), ucAccount.RegisterInput{
		Name:            c.PostForm("name"),
		Password:        c.PostForm("password"),
		ConfirmPassword: c.PostForm("confirm_password"),
		Role:            c.PostForm("role"),
		CommissionPerc:  c.PostForm("commission_perc"),
	})
	if err != nil {
		web.RedirectWithFlash(c, "/signup", web.FlashError, signupMessage(err))
		return
	}

	web.RedirectWithFlash(c, "/", web.FlashSuccess, MsgAccountCreated)
}

func signupMessage(err error) string {
	switch {
	case httperr.IsBusiness(err, httperr.CodePasswordMismatch):
		return "Passwords do not match."
	case httperr.IsBusiness(err, httperr.CodeEmailTaken):
		return "Name already registered."
	case httperr.IsBusiness(err, httperr.CodeInvalidRole):
		return "Only Client and Agent accounts can sign up."
	case httperr.IsBusiness(err, httperr.CodeInvalidInput):
		if d := httperr.Detail(err); d != "" {
			return "Invalid input: " + d
		}
		return "Name and password are required."
	}
	log.Printf("signup failed: %v", err)
	return msgDatabaseFailed
}
