package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/sirupsen/logrus"
)

//go:embed templates static
var content embed.FS

var pageNames = []string{
	"register",
	"login",
	"profile",
	"edit",
	"petition",
	"thankyou",
	"signers",
}

// Base carries the fields the layout needs on every page. Page data
// structs embed it.
type Base struct {
	CSRFToken string
	FirstName string
	LoggedIn  bool
}

// Renderer executes the embedded template set. Each page is parsed against
// the shared layout once at startup.
type Renderer struct {
	log   *logrus.Logger
	pages map[string]*template.Template
}

func New(log *logrus.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		t, err := template.ParseFS(content, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}

		pages[name] = t
	}

	return &Renderer{log: log, pages: pages}, nil
}

// Render writes the named page over the layout. Render failures are logged;
// by then part of the body may already be on the wire, so no error page is
// attempted.
func (re *Renderer) Render(w http.ResponseWriter, page string, data interface{}) {
	t, ok := re.pages[page]
	if !ok {
		re.log.WithField("page", page).Error("render of unknown page")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		re.log.WithFields(logrus.Fields{"page": page, "error": err}).Error("failed to render page")
	}
}

// Static serves the embedded assets under /static/.
func (re *Renderer) Static() http.Handler {
	sub, _ := fs.Sub(content, "static")
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
