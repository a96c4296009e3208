package web

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// Flash categories used by the pages.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"c"`
	Message  string `json:"m"`
}

// AddFlash queues a message for the next rendered page.
func AddFlash(c *gin.Context, category, message string) {
	flashes := pending(c)
	flashes = append(flashes, Flash{Category: category, Message: message})
	c.Set(flashCookie, flashes)

	b, err := json.Marshal(flashes)
	if err != nil {
		log.Println("flash encode error:", err)
		return
	}
	setCookie(c, flashCookie, base64.RawURLEncoding.EncodeToString(b), 0)
}

// ConsumeFlashes returns the queued messages and clears them.
func ConsumeFlashes(c *gin.Context) []Flash {
	flashes := pending(c)
	if len(flashes) > 0 {
		c.Set(flashCookie, []Flash(nil))
		setCookie(c, flashCookie, "", -1)
	}
	return flashes
}

func pending(c *gin.Context) []Flash {
	if v, ok := c.Get(flashCookie); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}

	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(b, &flashes); err != nil {
		return nil
	}
	c.Set(flashCookie, flashes)
	return flashes
}

// Redirect answers with 302 Found, the status browsers follow with GET.
func Redirect(c *gin.Context, path string) {
	c.Redirect(http.StatusFound, path)
	c.Abort()
}

// RedirectWithFlash is the usual end of a form POST.
func RedirectWithFlash(c *gin.Context, path, category, message string) {
	AddFlash(c, category, message)
	Redirect(c, path)
}
