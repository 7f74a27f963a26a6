package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/golang/glog"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	return template.New("storefront").ParseFS(templateFS, "templates/*.gohtml")
}

type homePage struct {
	Title    string
	Chrome   Chrome
	Carousel CarouselView
	Grid     GridView
}

type coursePage struct {
	Title  string
	Chrome Chrome
	Card   *CardView
	Error  string
}

type noticePage struct {
	Title   string
	Chrome  Chrome
	Message string
	Success bool
}

// render executes name into a buffer first so a template failure can still
// produce a clean 500.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		glog.Errorf("render %s: %v", name, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		glog.Warningf("write %s: %v", name, err)
	}
}
