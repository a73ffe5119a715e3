// Package page serves the server-rendered HTML views.
package page

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/students-service/internal/storage"
	"github.com/aanand-mishra/students-service/internal/types"
)

//go:embed templates/*.html
var templates embed.FS

var studentList = template.Must(template.ParseFS(templates, "templates/student_list.html"))

type studentListData struct {
	Students []types.Student
}

// StudentList handles GET /student_list with an HTML table of every
// student. The page is rendered into a buffer first so a template
// failure still yields a clean 500.
func StudentList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := store.ListStudents(r.Context())
		if err != nil {
			slog.Error("error listing students for page", slog.String("error", err.Error()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		if err := studentList.Execute(&buf, studentListData{Students: students}); err != nil {
			slog.Error("error rendering student list", slog.String("error", err.Error()))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := buf.WriteTo(w); err != nil {
			slog.Debug("error writing student list", slog.String("error", err.Error()))
		}
	}
}
