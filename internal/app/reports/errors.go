package reports

import (
	"net/http"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

const CodeNotFound = "NOT_FOUND"

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

func memberNotFound(id domain.MemberID) *Error {
	return &Error{
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
		Message: "Member not found",
		Details: map[string]any{"entity": string(domain.KindMember), "id": int(id)},
	}
}
