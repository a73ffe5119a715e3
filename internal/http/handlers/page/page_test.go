package page

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aanand-mishra/students-service/internal/storage"
	"github.com/aanand-mishra/students-service/internal/types"
)

// listStore only implements ListStudents; any other call panics on the
// nil embedded interface.
type listStore struct {
	storage.Storage
	students []types.Student
	err      error
}

func (s listStore) ListStudents(ctx context.Context) ([]types.Student, error) {
	return s.students, s.err
}

func TestStudentList(t *testing.T) {
	store := listStore{students: []types.Student{
		{ID: 1, Name: "Ana", Spec: "Math", Age: 21},
		{ID: 2, Name: "<script>", Spec: "Physics", Age: 23},
	}}

	rr := httptest.NewRecorder()
	StudentList(store)(rr, httptest.NewRequest(http.MethodGet, "/student_list", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	body := rr.Body.String()
	assert.Contains(t, body, "<td>Ana</td>")
	assert.Contains(t, body, "<td>Math</td>")
	assert.Contains(t, body, "&lt;script&gt;", "names must be HTML-escaped")
	assert.NotContains(t, body, "No students yet.")
}

func TestStudentListEmpty(t *testing.T) {
	rr := httptest.NewRecorder()
	StudentList(listStore{students: []types.Student{}})(rr, httptest.NewRequest(http.MethodGet, "/student_list", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No students yet.")
}

func TestStudentListStorageFailure(t *testing.T) {
	rr := httptest.NewRecorder()
	StudentList(listStore{err: errors.New("boom")})(rr, httptest.NewRequest(http.MethodGet, "/student_list", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "boom")
}

// failingWriter accepts headers but fails every body write, like a client
// that hung up mid-response.
type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func TestStudentListWriteFailureIsLogged(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })

	w := failingWriter{httptest.NewRecorder()}
	store := listStore{students: []types.Student{{ID: 1, Name: "Ana", Spec: "Math", Age: 21}}}
	StudentList(store)(w, httptest.NewRequest(http.MethodGet, "/student_list", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, logs.String(), "error writing student list")
	assert.Contains(t, logs.String(), "broken pipe")
}
