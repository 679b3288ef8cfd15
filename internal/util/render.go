package util

import (
	"html/template"
	"log"
	"net/http"

	"blog/web"
)

// Render writes the named page wrapped in the shared layout.
func Render(w http.ResponseWriter, name string, data any) {
	t, err := template.ParseFS(web.Templates, "templates/layout.html", "templates/"+name)
	if err != nil {
		log.Printf("parse template %s: %v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		log.Printf("render template %s: %v", name, err)
	}
}
