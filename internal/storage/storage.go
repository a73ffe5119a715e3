// Package storage defines the Storage interface, the contract any
// database backend must satisfy to serve the student handlers.
//
// Handlers depend only on this interface, so tests can hand them an
// in-memory fake and main can pick SQLite or PostgreSQL at startup.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-service/internal/types"
)

// ErrNotFound is returned when no student matches the requested id.
var ErrNotFound = errors.New("student not found")

// Storage is the database contract.
//
// Each call acquires a connection from the pool for the duration of
// the call only; nothing is shared between calls.
type Storage interface {
	// ListStudents returns every student in the engine's scan order.
	// Returns an empty slice (not nil) if there are no students.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// GetStudentByID fetches a single student by primary key.
	// Returns ErrNotFound if no row matches.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// CreateStudent inserts a new row and returns it with its
	// storage-assigned id.
	CreateStudent(ctx context.Context, name string, age int, spec string) (types.Student, error)

	// UpdateStudentByID overwrites the non-nil fields of patch and returns
	// the stored row. Returns ErrNotFound if no row matches.
	UpdateStudentByID(ctx context.Context, id int64, patch types.StudentPatch) (types.Student, error)

	// DeleteStudentByID removes the row and reports whether it existed.
	DeleteStudentByID(ctx context.Context, id int64) (bool, error)
}
