// Package view renders the HTML pages and serves the static assets.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"

	"blogapp/internal/auth"
	"blogapp/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageHome         = "home"
	PageOops         = "oops"
	PageRegister     = "register"
	PageLogin        = "login"
	PageLogout       = "logout"
	PageAllPosts     = "allposts"
	PageAddPost      = "addpost"
	PageUserPosts    = "userpost"
	PageSpecificPost = "specificpost"
)

var pages = []string{
	PageHome, PageOops, PageRegister, PageLogin, PageLogout,
	PageAllPosts, PageAddPost, PageUserPosts, PageSpecificPost,
}

// Data is what every page template receives.
type Data struct {
	User     *auth.Identity
	Posts    []model.Post
	Post     *model.Post
	Comments []model.Comment
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("02 Jan 2006 15:04")
	},
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render executes the layout for the named page.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Static returns the asset tree served under /static.
func Static() fs.FS {
	return echo.MustSubFS(staticFS, "static")
}
