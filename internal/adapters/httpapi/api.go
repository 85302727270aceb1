package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oapi-codegen/nullable"

	"github.com/ironhouse-gym/gym-admin/internal/app/reports"
	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

type errorResponse struct {
	Error struct {
		Code      string                            `json:"code"`
		Message   string                            `json:"message"`
		Details   nullable.Nullable[map[string]any] `json:"details,omitempty"`
		RequestId nullable.Nullable[string]         `json:"requestId,omitempty"`
	} `json:"error"`
}

func writeJSONError(w http.ResponseWriter, r *http.Request, status int, code string, message string, details map[string]any) {
	var er errorResponse
	er.Error.Code = code
	er.Error.Message = message
	if details != nil {
		er.Error.Details = nullable.NewNullableWithValue(details)
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		er.Error.RequestId = nullable.NewNullableWithValue(rid)
	}
	writeJSON(w, status, er)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type memberJSON struct {
	ID               int         `json:"memberId"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	Gender           string      `json:"gender"`
	DateOfBirth      domain.Date `json:"dateOfBirth"`
	RegistrationDate domain.Date `json:"registrationDate"`
	MembershipID     int         `json:"membershipId"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
}

func memberToJSON(m domain.Member) memberJSON {
	return memberJSON{
		ID:               int(m.ID),
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		Gender:           m.Gender,
		DateOfBirth:      m.DateOfBirth,
		RegistrationDate: m.RegistrationDate,
		MembershipID:     int(m.MembershipID),
		Phone:            m.Phone,
		Email:            m.Email,
	}
}

type popularClassJSON struct {
	ClassID   int    `json:"classId"`
	ClassName string `json:"className"`
	Count     int    `json:"count"`
}

type labelCountJSON struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type trainerLoadJSON struct {
	TrainerID int    `json:"trainerId"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
}

type reportsResponse struct {
	OldestMember           nullable.Nullable[memberJSON]       `json:"oldestMember"`
	PopularClass           nullable.Nullable[popularClassJSON] `json:"popularClass"`
	TotalRevenue           float64                             `json:"totalRevenue"`
	MembershipCounts       map[string]int                      `json:"membershipCounts"`
	MembershipDistribution []labelCountJSON                    `json:"membershipDistribution"`
	TrainerWorkload        []trainerLoadJSON                   `json:"trainerWorkload"`
	InactiveMembers        []memberJSON                        `json:"inactiveMembers"`
}

func (s *Server) apiReports(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Reports.Summary(r.Context())
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	resp := reportsResponse{
		OldestMember:           nullable.NewNullNullable[memberJSON](),
		PopularClass:           nullable.NewNullNullable[popularClassJSON](),
		TotalRevenue:           sum.TotalRevenue,
		MembershipCounts:       reports.DistributionMap(sum.Distribution),
		MembershipDistribution: make([]labelCountJSON, 0, len(sum.Distribution)),
		TrainerWorkload:        make([]trainerLoadJSON, 0, len(sum.TrainerWorkload)),
		InactiveMembers:        make([]memberJSON, 0, len(sum.InactiveMembers)),
	}
	if sum.OldestMember != nil {
		resp.OldestMember = nullable.NewNullableWithValue(memberToJSON(*sum.OldestMember))
	}
	if pc := sum.PopularClass; pc != nil {
		resp.PopularClass = nullable.NewNullableWithValue(popularClassJSON{
			ClassID:   int(pc.Class.ID),
			ClassName: pc.Class.Name,
			Count:     pc.Count,
		})
	}
	for _, lc := range sum.Distribution {
		resp.MembershipDistribution = append(resp.MembershipDistribution, labelCountJSON{Label: lc.Label, Count: lc.Count})
	}
	for _, tl := range sum.TrainerWorkload {
		resp.TrainerWorkload = append(resp.TrainerWorkload, trainerLoadJSON{TrainerID: int(tl.TrainerID), Name: tl.Name, Count: tl.ClassCount})
	}
	for _, m := range sum.InactiveMembers {
		resp.InactiveMembers = append(resp.InactiveMembers, memberToJSON(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

type lifetimeValueResponse struct {
	MemberID        int                            `json:"memberId"`
	MemberName      string                         `json:"memberName"`
	TotalPaid       float64                        `json:"totalPaid"`
	PaymentCount    int                            `json:"paymentCount"`
	LastPaymentDate nullable.Nullable[domain.Date] `json:"lastPaymentDate"`
}

func (s *Server) apiLifetimeValue(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "memberID"))
	if err != nil || id <= 0 {
		writeJSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "memberID must be a positive integer", map[string]any{"memberID": chi.URLParam(r, "memberID")})
		return
	}
	lv, err := s.Reports.MemberLifetimeValue(r.Context(), domain.MemberID(id))
	if err != nil {
		s.apiError(w, r, err)
		return
	}

	resp := lifetimeValueResponse{
		MemberID:        int(lv.MemberID),
		MemberName:      lv.MemberName,
		TotalPaid:       lv.TotalPaid,
		PaymentCount:    lv.PaymentCount,
		LastPaymentDate: nullable.NewNullNullable[domain.Date](),
	}
	if lv.LastPaymentDate != nil {
		resp.LastPaymentDate = nullable.NewNullableWithValue(*lv.LastPaymentDate)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) apiError(w http.ResponseWriter, r *http.Request, err error) {
	if ae := (*reports.Error)(nil); errors.As(err, &ae) {
		writeJSONError(w, r, ae.Status, ae.Code, ae.Message, ae.Details)
		return
	}
	s.Logger.ErrorContext(r.Context(), "api request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("err", err),
	)
	writeJSONError(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}
