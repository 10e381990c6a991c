package server

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/billing-console/users"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const (
	layoutTemplate  = "layout.html"
	contentTypeHTML = "text/html; charset=utf-8"
)

// pageData is what every page template receives.
type pageData struct {
	AppName string
	Title   string
	Active  string
	User    *users.User
	Error   string
	Notice  string
	Data    any
}

var templateFuncs = template.FuncMap{
	"money": formatMoney,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("02 Jan 2006 15:04")
	},
}

// formatMoney renders minor units, e.g. 5000 GHS as "GHS 50.00".
func formatMoney(amount int64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", currency, sign, amount/100, amount%100)
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

// parsePages parses every page template together with the shared layout, keyed by file name.
func parsePages() (map[string]*template.Template, error) {
	fsys := TemplateFilesFS()
	names, err := fs.Glob(fsys, "*.html")
	if err != nil {
		return nil, err
	}
	pages := make(map[string]*template.Template, len(names))
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(fsys, layoutTemplate, name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		pages[strings.TrimSuffix(name, ".html")] = tmpl
	}
	return pages, nil
}

// render writes page with the layout. Error and Notice default to the "error" and "notice"
// query parameters left by redirectWithError.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "404 - Page Not Found", http.StatusNotFound)
		return
	}
	data.AppName = s.appName
	if data.User == nil {
		data.User = s.sessions.Session().User
	}
	if data.Error == "" {
		data.Error = r.URL.Query().Get("error")
	}
	if data.Notice == "" {
		data.Notice = r.URL.Query().Get("notice")
	}

	var buf strings.Builder
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Err(err).Str("page", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
