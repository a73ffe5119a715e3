// Package router wires every route and middleware into one http.Handler.
//
// Route table:
//
//	GET    /api/students        list all students
//	POST   /api/students        create a student
//	GET    /api/students/{id}   get one student
//	PUT    /api/students/{id}   update a student
//	DELETE /api/students/{id}   delete a student
//	GET    /student_list        HTML list of students
//	GET    /health              liveness probe
//
// {id} only matches digits; anything else falls through to 404.
package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/students-service/internal/http/handlers/page"
	"github.com/aanand-mishra/students-service/internal/http/handlers/student"
	"github.com/aanand-mishra/students-service/internal/http/middleware"
	"github.com/aanand-mishra/students-service/internal/storage"
)

const idPattern = "/{" + student.IDParam + ":[0-9]+}"

// New builds the application router on top of store.
func New(store storage.Storage, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)

	r.Route("/api/students", func(r chi.Router) {
		r.Get("/", student.GetList(store))
		r.Post("/", student.New(store))
		r.Get(idPattern, student.GetByID(store))
		r.Put(idPattern, student.Update(store))
		r.Delete(idPattern, student.Delete(store))
	})

	r.Get("/student_list", page.StudentList(store))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	return r
}
