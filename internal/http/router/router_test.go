package router

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-service/internal/http/middleware"
	"github.com/aanand-mishra/students-service/internal/storage/sqldb"
	"github.com/aanand-mishra/students-service/internal/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := sqldb.New(context.Background(), filepath.Join(t.TempDir(), "students.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(New(db, slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (int, string) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func listStudents(t *testing.T, srv *httptest.Server) []types.Student {
	t.Helper()

	status, body := call(t, srv, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, status)

	var students []types.Student
	require.NoError(t, json.Unmarshal([]byte(body), &students))
	return students
}

func TestCreateThenGet(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, http.MethodPost, "/api/students", `{"name":"Ana","age":21,"spec":"Math"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.JSONEq(t, `{"message":"Student added successfully"}`, body)

	students := listStudents(t, srv)
	require.Len(t, students, 1)
	id := students[0].ID

	status, body = call(t, srv, http.MethodGet, "/api/students/"+strconv.FormatInt(id, 10), "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":`+strconv.FormatInt(id, 10)+`,"name":"Ana","spec":"Math","age":21}`, body)
}

func TestCreateIncompleteCreatesNothing(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, http.MethodPost, "/api/students", `{"name":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"Incomplete data"}`, body)

	assert.Empty(t, listStudents(t, srv))
}

func TestListAfterCreates(t *testing.T) {
	srv := newTestServer(t)

	for i, name := range []string{"Ana", "Luis", "Marta", "Jon"} {
		body := `{"name":"` + name + `","age":` + strconv.Itoa(20+i) + `,"spec":"Math"}`
		status, _ := call(t, srv, http.MethodPost, "/api/students", body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := call(t, srv, http.MethodGet, "/api/students", "")
	require.Equal(t, http.StatusOK, status)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &raw))
	require.Len(t, raw, 4)
	for _, obj := range raw {
		assert.Len(t, obj, 4)
		for _, key := range []string{"id", "name", "spec", "age"} {
			assert.Contains(t, obj, key)
		}
	}
}

func TestUpdateChangesOnlySuppliedField(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, http.MethodPost, "/api/students", `{"name":"Ana","age":21,"spec":"Math"}`)
	require.Equal(t, http.StatusCreated, status)
	id := strconv.FormatInt(listStudents(t, srv)[0].ID, 10)

	status, body := call(t, srv, http.MethodPut, "/api/students/"+id, `{"spec":"Biology"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Student updated successfully"}`, body)

	status, body = call(t, srv, http.MethodPut, "/api/students/"+id, `{}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.JSONEq(t, `{"error":"No data provided to update"}`, body)

	_, body = call(t, srv, http.MethodGet, "/api/students/"+id, "")
	assert.JSONEq(t, `{"id":`+id+`,"name":"Ana","spec":"Biology","age":21}`, body)
}

func TestUpdateMissing(t *testing.T) {
	srv := newTestServer(t)

	status, body := call(t, srv, http.MethodPut, "/api/students/999", `{"name":"X"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Student not found"}`, body)
}

func TestDelete(t *testing.T) {
	srv := newTestServer(t)

	for _, body := range []string{
		`{"name":"Ana","age":21,"spec":"Math"}`,
		`{"name":"Luis","age":23,"spec":"Physics"}`,
	} {
		status, _ := call(t, srv, http.MethodPost, "/api/students", body)
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := call(t, srv, http.MethodDelete, "/api/students/999", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"Student not found"}`, body)
	assert.Len(t, listStudents(t, srv), 2)

	id := strconv.FormatInt(listStudents(t, srv)[0].ID, 10)
	status, body = call(t, srv, http.MethodDelete, "/api/students/"+id, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"Student deleted successfully"}`, body)
	assert.Len(t, listStudents(t, srv), 1)

	status, _ = call(t, srv, http.MethodGet, "/api/students/"+id, "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNonIntegerIDIsNotFound(t *testing.T) {
	srv := newTestServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		status, _ := call(t, srv, method, "/api/students/abc", `{"name":"X"}`)
		assert.Equal(t, http.StatusNotFound, status, method)
	}
}

func TestStudentListPage(t *testing.T) {
	srv := newTestServer(t)

	status, _ := call(t, srv, http.MethodPost, "/api/students", `{"name":"Ana","age":21,"spec":"Math"}`)
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, srv, http.MethodGet, "/student_list", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<td>Ana</td>")
}

func TestHealthAndRequestID(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", string(body))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}
