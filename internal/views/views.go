package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/cleancity/api/internal/route"
)

// Content holds the page shell, the view templates and the browser assets.
//
//go:embed layouts/* templates/* static/*
var Content embed.FS

// Static returns the browser assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(Content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// ShellData fills the page shell. Views are loaded into it by the browser.
type ShellData struct {
	Title string
	Links []route.Link
}

type Renderer struct {
	shell *template.Template
	views map[route.View]*template.Template
	now   func() time.Time
}

type Option func(*Renderer)

// WithClock sets the reference time for relative dates such as "3h ago".
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		views: make(map[route.View]*template.Template),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}

	funcs := r.funcs()

	shell, err := template.New("shell.html").Funcs(funcs).ParseFS(Content, "layouts/shell.html")
	if err != nil {
		return nil, fmt.Errorf("parse shell: %w", err)
	}
	r.shell = shell

	for _, v := range route.Views() {
		name := v.Fragment() + ".html"
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(Content, "templates/partials.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse view %s: %w", v, err)
		}
		r.views[v] = tmpl
	}

	return r, nil
}

func (r *Renderer) Shell(w io.Writer, data ShellData) error {
	return r.shell.ExecuteTemplate(w, "shell.html", data)
}

// Render writes view v. The output is buffered so a template error never
// leaves a half-written view behind.
func (r *Renderer) Render(w io.Writer, v route.View, data any) error {
	tmpl, ok := r.views[v]
	if !ok {
		return fmt.Errorf("no template for view %s", v)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, v.Fragment()+".html", data); err != nil {
		return fmt.Errorf("render %s: %w", v, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// ReportForm fills the report view.
type ReportForm struct {
	MaxPhotoBytes int64
}
