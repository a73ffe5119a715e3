// Package types holds the shared data structures used across the
// application. Handlers, storage and page rendering all import types
// without depending on each other.
package types

// Student is the single persisted entity.
//
// ID is assigned by storage on creation and never changes afterwards.
// Name and Spec are limited to 50 characters by the students table.
type Student struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Spec string `json:"spec"`
	Age  int    `json:"age"`
}

// CreateStudentRequest is the body of POST /api/students.
//
// "required" on validator tags means present and non-zero, so an empty
// name, an empty spec or an age of 0 all count as missing. Age is kept
// within 1..150, which also fits the INTEGER column on every engine.
type CreateStudentRequest struct {
	Name string `json:"name" validate:"required,max=50"`
	Age  int    `json:"age"  validate:"required,gt=0,lte=150"`
	Spec string `json:"spec" validate:"required,max=50"`
}

// UpdateStudentRequest is the body of PUT /api/students/{id}.
// Every field is optional; a nil pointer means the key was absent.
type UpdateStudentRequest struct {
	Name *string `json:"name" validate:"omitempty,max=50"`
	Age  *int    `json:"age"  validate:"omitempty,gt=0,lte=150"`
	Spec *string `json:"spec" validate:"omitempty,max=50"`
}

// Patch converts the request into a StudentPatch. Empty strings and a
// zero age are dropped, so they leave the stored value unchanged.
func (r UpdateStudentRequest) Patch() StudentPatch {
	var p StudentPatch
	if r.Name != nil && *r.Name != "" {
		p.Name = r.Name
	}
	if r.Age != nil && *r.Age != 0 {
		p.Age = r.Age
	}
	if r.Spec != nil && *r.Spec != "" {
		p.Spec = r.Spec
	}
	return p
}

// StudentPatch lists the fields an update overwrites. Nil fields are
// left untouched by storage.
type StudentPatch struct {
	Name *string
	Age  *int
	Spec *string
}

// IsEmpty reports whether the patch would change nothing.
func (p StudentPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Spec == nil
}
