package gym

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ironhouse-gym/gym-admin/internal/app/integrity"
	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

const (
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeNotFound            = "NOT_FOUND"
	CodeInvalidReference    = "INVALID_REFERENCE"
	CodeDuplicateEnrollment = "DUPLICATE_ENROLLMENT"
)

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code string) bool {
	ae := (*Error)(nil)
	return errors.As(err, &ae) && ae.Code == code
}

func notFound(kind domain.Kind, id int) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s %d not found", kind, id),
		Details: map[string]any{"entity": string(kind), "id": id},
	}
}

func invalidReference(field, message string) *Error {
	return &Error{
		Status:  http.StatusUnprocessableEntity,
		Code:    CodeInvalidReference,
		Message: message,
		Details: map[string]any{"field": field},
	}
}

func duplicateEnrollment(memberID domain.MemberID, classID domain.ClassID) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Code:    CodeDuplicateEnrollment,
		Message: "Member is already enrolled in this class",
		Details: map[string]any{"member_id": int(memberID), "class_id": int(classID)},
	}
}

func constraintViolation(v *integrity.Violation) *Error {
	return &Error{
		Status:  http.StatusConflict,
		Code:    CodeConstraintViolation,
		Message: v.Reason,
		Details: map[string]any{"entity": string(v.Kind), "id": v.ID},
	}
}
