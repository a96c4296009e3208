package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/realestate-manager/internal/timezone"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every embedded page. Page templates are addressed by file
// name ("login.html") and share the "header" and "footer" partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return d.StringFixed(2)
		},
		"optmoney": func(d decimal.NullDecimal) string {
			if !d.Valid {
				return "-"
			}
			return d.Decimal.StringFixed(2)
		},
		"date": func(d datatypes.Date) string {
			return timezone.FormatDate(d)
		},
		"uintval": func(p *uint) uint {
			if p == nil {
				return 0
			}
			return *p
		},
	}
}

// Render executes a page with the values every layout needs: flashes, the
// current principal, the CSRF hidden field and today's date.
func Render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["Flashes"] = ConsumeFlashes(c)
	data["User"] = CurrentPrincipal(c)
	data["CSRFField"] = csrf.TemplateField(c.Request)
	data["Today"] = timezone.Today(c.GetString(ContextTimezone), time.Now())
	if id, ok := c.Get(ContextRequestID); ok {
		data["RequestID"] = id
	}

	c.HTML(status, page, data)
}

func OK(c *gin.Context, page string, data gin.H) {
	Render(c, http.StatusOK, page, data)
}
