// Package student contains the HTTP handlers for the Student resource.
//
// Every handler is built by a factory that receives its dependencies
// and returns the http.HandlerFunc the router needs:
//
//	r.Post("/api/students", student.New(store))
//
// New(store) runs once at startup; the returned closure runs on every
// request. Handlers keep no state between requests.
package student

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/students-service/internal/storage"
	"github.com/aanand-mishra/students-service/internal/types"
	"github.com/aanand-mishra/students-service/internal/utils/response"
)

// Client-facing messages. API consumers match on these strings.
const (
	MsgAdded        = "Student added successfully"
	MsgUpdated      = "Student updated successfully"
	MsgDeleted      = "Student deleted successfully"
	MsgNotFound     = "Student not found"
	MsgIncomplete   = "Incomplete data"
	MsgNoUpdateData = "No data provided to update"
	MsgInvalidBody  = "Invalid request body"
	MsgInternal     = "Internal server error"
)

// IDParam is the path parameter every /{id} route declares.
const IDParam = "id"

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/students
//
// Success response (200 OK), [] when the table is empty:
//
//	[ { "id": 1, "name": "Ana", "spec": "Math", "age": 21 } ]
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all students")

		students, err := store.ListStudents(r.Context())
		if err != nil {
			serverError(w, "error listing students", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/students/{id}
//
// Success response (200 OK):
//
//	{ "id": 1, "name": "Ana", "spec": "Math", "age": 21 }
//
// Error responses:
//
//	404 Not Found  {"error": "Student not found"}
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("getting a student", slog.Int64("id", id))

		student, err := store.GetStudentByID(r.Context(), id)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
			return
		}
		if err != nil {
			serverError(w, "error getting student", err, slog.Int64("id", id))
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/students
//
// Request body:
//
//	{ "name": "Ana", "age": 21, "spec": "Math" }
//
// All three fields must be present and non-empty (age non-zero).
//
// Success response (201 Created):
//
//	{ "message": "Student added successfully" }
//
// Error responses:
//
//	400 Bad Request  {"error": "Incomplete data"}
//	400 Bad Request  malformed JSON or a name/spec longer than 50 characters
//
// ─────────────────────────────────────────────────────────────────────────────
func New(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a student")

		var req types.CreateStudentRequest
		if err := decodeBody(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgInvalidBody))
			return
		}

		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && !hasTag(verrs, "required") {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgIncomplete))
			return
		}

		student, err := store.CreateStudent(r.Context(), req.Name, req.Age, req.Spec)
		if err != nil {
			serverError(w, "error creating student", err)
			return
		}

		slog.Info("student created", slog.Int64("id", student.ID))
		response.WriteJSON(w, http.StatusCreated, response.Message(MsgAdded))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/students/{id}
//
// Request body, every key optional:
//
//	{ "name": "Ana Maria" }
//
// Only keys present with a non-empty value (age non-zero) overwrite the
// stored row; the rest keep their values.
//
// Error responses:
//
//	400 Bad Request  {"error": "No data provided to update"}
//	404 Not Found    {"error": "Student not found"}
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("updating a student", slog.Int64("id", id))

		var req types.UpdateStudentRequest
		if err := decodeBody(r, &req); err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgInvalidBody))
			return
		}

		patch := req.Patch()
		if patch.IsEmpty() {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgNoUpdateData))
			return
		}

		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				response.WriteJSON(w, http.StatusBadRequest, response.ValidationError(verrs))
				return
			}
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgInvalidBody))
			return
		}

		_, err := store.UpdateStudentByID(r.Context(), id, patch)
		if errors.Is(err, storage.ErrNotFound) {
			response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
			return
		}
		if err != nil {
			serverError(w, "error updating student", err, slog.Int64("id", id))
			return
		}

		slog.Info("student updated", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message(MsgUpdated))
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/students/{id}
//
// Success response (200 OK):
//
//	{ "message": "Student deleted successfully" }
//
// Error responses:
//
//	404 Not Found  {"error": "Student not found"}
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(store storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		slog.Info("deleting a student", slog.Int64("id", id))

		deleted, err := store.DeleteStudentByID(r.Context(), id)
		if err != nil {
			serverError(w, "error deleting student", err, slog.Int64("id", id))
			return
		}
		if !deleted {
			response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
			return
		}

		slog.Info("student deleted", slog.Int64("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message(MsgDeleted))
	}
}

// pathID reads the {id} segment. The route pattern only admits digits,
// so a parse failure means the number overflows int64 and cannot match
// a stored row.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, IDParam), 10, 64)
	if err != nil {
		response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON body into dst. An empty body leaves dst
// at its zero value.
func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func hasTag(errs validator.ValidationErrors, tag string) bool {
	for _, e := range errs {
		if e.ActualTag() == tag {
			return true
		}
	}
	return false
}

// serverError logs err and answers a generic 500 without driver details.
func serverError(w http.ResponseWriter, msg string, err error, attrs ...any) {
	slog.Error(msg, append(attrs, slog.String("error", err.Error()))...)
	response.WriteJSON(w, http.StatusInternalServerError, response.Error(MsgInternal))
}
