package handler

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

const layout = "templates/layout"

// NewViews returns the HTML view engine for the admin pages.
// Pass it as fiber.Config.Views.
func NewViews() *html.Engine {
	return html.NewFileSystem(http.FS(templatesFS), ".html")
}
