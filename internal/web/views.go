package web

import (
	"embed"
	"html/template"

	"userDirectory/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names.
const (
	tmplIndex = "index.html"
	tmplAdd   = "add_user.html"
	tmplEdit  = "edit_user.html"
	tmplError = "error.html"
)

// listView feeds the listing page.
type listView struct {
	Users []models.User
}

// formView feeds the add and edit forms. The add form always carries a zero User.
type formView struct {
	User         models.User
	ErrorMessage string
}

type errorView struct {
	Title   string
	Message string
}

func parseTemplates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
