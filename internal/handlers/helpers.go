package handlers

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/realestate-manager/internal/httperr"
	"github.com/BruksfildServices01/realestate-manager/internal/web"
)

const (
	msgDatabaseFailed = "Database connection failed."
	msgRecordNotFound = "Record not found."
)

// databaseFailed logs err and sends the user to path with the generic
// database flash.
func databaseFailed(c *gin.Context, path string, err error) {
	log.Printf("[%s %s] database error: %v", c.Request.Method, c.FullPath(), err)
	web.RedirectWithFlash(c, path, web.FlashError, msgDatabaseFailed)
}

// databaseError flashes "Database error: ..." with the business detail when
// there is one, or the driver message otherwise. Missing records get a
// warning carrying the detail alone.
func databaseError(c *gin.Context, path string, err error) {
	log.Printf("[%s %s] %v", c.Request.Method, c.FullPath(), err)
	if httperr.IsBusiness(err, httperr.CodeNotFound) {
		msg := httperr.Detail(err)
		if msg == "" {
			msg = msgRecordNotFound
		}
		web.RedirectWithFlash(c, path, web.FlashWarning, msg)
		return
	}
	web.RedirectWithFlash(c, path, web.FlashError, fmt.Sprintf("Database error: %s", errorText(err)))
}

func errorText(err error) string {
	if d := httperr.Detail(err); d != "" {
		return d
	}
	return err.Error()
}

func actorID(c *gin.Context) uint {
	if p := web.CurrentPrincipal(c); p != nil {
		return p.UserID
	}
	return 0
}

// profileID is the client_id or agent_id of the signed-in user.
func profileID(c *gin.Context) uint {
	if p := web.CurrentPrincipal(c); p != nil {
		return p.ProfileID
	}
	return 0
}
