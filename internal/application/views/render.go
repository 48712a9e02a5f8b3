package views

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"basinmap/internal/domain/model"
)

var mapTmpl *template.Template

// loadTemplatesFromFS loads map templates from the given fs and dir.
// Used by LoadTemplates and by tests to simulate failure scenarios.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	mapTmpl, err = template.New("").Funcs(template.FuncMap{
		"json": toJSON,
	}).ParseFS(sub, "*.html")
	if err != nil {
		return err
	}
	return nil
}

// LoadTemplates loads the embedded map templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

// RenderMap writes the interactive basin map page
func RenderMap(w io.Writer, view *model.MapView) error {
	if mapTmpl == nil {
		return errors.New("map template not loaded: call views.LoadTemplates during startup")
	}
	return mapTmpl.ExecuteTemplate(w, "map.html", view)
}

func toJSON(v any) (template.JS, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(data), nil
}
