package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ironhouse-gym/gym-admin/internal/app/gym"
	"github.com/ironhouse-gym/gym-admin/internal/app/reports"
	"github.com/ironhouse-gym/gym-admin/internal/domain"
	platformclock "github.com/ironhouse-gym/gym-admin/internal/platform/clock"
	clockport "github.com/ironhouse-gym/gym-admin/internal/ports/out/clock"
	"github.com/ironhouse-gym/gym-admin/internal/ports/out/idempotency"
)

type Server struct {
	Gym     *gym.Service
	Reports *reports.Service
	Idem    idempotency.Store
	Metrics *Metrics
	Logger  *slog.Logger
	Clock   clockport.Clock

	views *views
}

func NewServer(gymSvc *gym.Service, reportsSvc *reports.Service, idem idempotency.Store) (*Server, error) {
	v, err := parseViews()
	if err != nil {
		return nil, err
	}
	return &Server{
		Gym:     gymSvc,
		Reports: reportsSvc,
		Idem:    idem,
		Logger:  slog.Default(),
		Clock:   platformclock.NewSystemClock(),
		views:   v,
	}, nil
}

var kindPaths = map[domain.Kind]string{
	domain.KindMembership: "/memberships",
	domain.KindMember:     "/members",
	domain.KindTrainer:    "/trainers",
	domain.KindClass:      "/classes",
	domain.KindEnrollment: "/enrollments",
	domain.KindPayment:    "/payments",
}

func flashURL(p, key, msg string) string {
	return p + "?" + url.Values{key: {msg}}.Encode()
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.Logger.ErrorContext(r.Context(), "request failed",
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.Any("err", err),
	)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// catalogView is gym.Catalog with the lookups the list pages need.
type catalogView struct {
	gym.Catalog
}

func (c catalogView) MembershipLabel(id domain.MembershipID) string {
	for _, ms := range c.Memberships {
		if ms.ID == id {
			return ms.Type
		}
	}
	return "Unknown"
}

func (c catalogView) MemberName(id domain.MemberID) string {
	for _, m := range c.Members {
		if m.ID == id {
			return m.FullName()
		}
	}
	return "Unknown Member"
}

func (c catalogView) TrainerName(id domain.TrainerID) string {
	for _, t := range c.Trainers {
		if t.ID == id {
			return t.FullName()
		}
	}
	return "Unassigned"
}

func (c catalogView) ClassName(id domain.ClassID) string {
	for _, cl := range c.Classes {
		if cl.ID == id {
			return cl.Name
		}
	}
	return "Class"
}

// listPage renders one of the six collection pages.
func (s *Server) listPage(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := s.Gym.Catalog(r.Context())
		if err != nil {
			s.serverError(w, r, err)
			return
		}
		s.render(w, r, name, newPage(r, title, catalogView{c}))
	}
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.Reports.Dashboard(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, "dashboard", newPage(r, "Dashboard", d))
}

type reportsView struct {
	reports.Summary
	Lifetime *reports.LifetimeValue
}

func (s *Server) reportsPage(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Reports.Summary(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	p := newPage(r, "Reports", nil)
	view := reportsView{Summary: sum}
	if raw := r.URL.Query().Get("member_id"); raw != "" {
		id, _ := strconv.Atoi(raw)
		lv, err := s.Reports.MemberLifetimeValue(r.Context(), domain.MemberID(id))
		switch ae := (*reports.Error)(nil); {
		case err == nil:
			view.Lifetime = &lv
		case errors.As(err, &ae):
			p.Error = ae.Message
		default:
			s.serverError(w, r, err)
			return
		}
	}
	p.Data = view
	s.render(w, r, "reports", p)
}

// lifetimeValueDemo checks the member exists and hands over to the reports page,
// which renders the lifetime value panel for member_id.
func (s *Server) lifetimeValueDemo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, flashURL("/reports", "error", "Invalid form submission"), http.StatusSeeOther)
		return
	}
	id := formInt(r.PostForm, "member_id")
	_, err := s.Reports.MemberLifetimeValue(r.Context(), domain.MemberID(id))
	if ae := (*reports.Error)(nil); errors.As(err, &ae) {
		http.Redirect(w, r, flashURL("/reports", "error", ae.Message), http.StatusSeeOther)
		return
	} else if err != nil {
		s.serverError(w, r, err)
		return
	}
	http.Redirect(w, r, "/reports?member_id="+strconv.Itoa(id), http.StatusSeeOther)
}

type mutateFunc func(ctx context.Context, f url.Values) (string, error)

// mutation adapts op to a form POST that answers with a 303 back to the kind's
// list page carrying success= or error=. A submission whose idempotency_key was
// seen before on the same route replays the first answer instead of running op
// again.
func (s *Server) mutation(kind domain.Kind, op mutateFunc) http.HandlerFunc {
	listPath := kindPaths[kind]
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, flashURL(listPath, "error", "Invalid form submission"), http.StatusSeeOther)
			return
		}

		key := idempotency.Key(r.PostForm.Get(idempotencyField))
		fp := idempotency.Fingerprint{Key: key, Method: r.Method, Route: r.URL.Path}
		bodyHash := hashForm(r.PostForm)
		track := key != "" && s.Idem != nil
		if track {
			rec, ok, err := s.Idem.Get(ctx, fp)
			if err != nil {
				s.serverError(w, r, err)
				return
			}
			if ok {
				if rec.BodyHash != bodyHash {
					http.Redirect(w, r, flashURL(listPath, "error", "This form was already submitted with different values"), http.StatusSeeOther)
					return
				}
				s.Metrics.replay(string(kind))
				http.Redirect(w, r, rec.Location, rec.StatusCode)
				return
			}
		}

		msg, err := op(ctx, r.PostForm)
		loc := flashURL(listPath, "success", msg)
		if err != nil {
			ae := (*gym.Error)(nil)
			if !errors.As(err, &ae) {
				s.serverError(w, r, err)
				return
			}
			if ae.Code == gym.CodeConstraintViolation {
				s.Metrics.refusedDelete(string(kind))
			}
			s.Logger.InfoContext(ctx, "request refused",
				slog.String("path", r.URL.Path),
				slog.String("code", ae.Code),
				slog.String("reason", ae.Message),
				slog.String("request_id", middleware.GetReqID(ctx)),
			)
			loc = flashURL(listPath, "error", ae.Message)
		}

		if track {
			err := s.Idem.Put(ctx, fp, idempotency.Record{
				BodyHash:   bodyHash,
				StatusCode: http.StatusSeeOther,
				Location:   loc,
				CreatedAt:  s.Clock.Now().UTC(),
			})
			if err != nil {
				s.Logger.WarnContext(ctx, "record submission", slog.Any("err", err))
			}
		}
		http.Redirect(w, r, loc, http.StatusSeeOther)
	}
}

// ignoreNotFound drops NOT_FOUND so a form update of a vanished record still
// reports success, as the admin screens always have.
func ignoreNotFound(err error) error {
	if gym.IsCode(err, gym.CodeNotFound) {
		return nil
	}
	return err
}

// Memberships

func (s *Server) createMembership(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreateMembership(ctx, membershipFromForm(f))
	return "Created Membership Successfully", err
}

func (s *Server) updateMembership(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdateMembership(ctx, membershipFromForm(f))
	return "Updated Membership Successfully", ignoreNotFound(err)
}

func (s *Server) deleteMembership(ctx context.Context, f url.Values) (string, error) {
	return "Deleted Membership Successfully", s.Gym.DeleteMembership(ctx, domain.MembershipID(formInt(f, "membership_id")))
}

// Members

func (s *Server) createMember(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreateMember(ctx, memberFromForm(f))
	return "Created Member Successfully", err
}

func (s *Server) updateMember(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdateMember(ctx, memberFromForm(f))
	return "Updated Member Successfully", ignoreNotFound(err)
}

func (s *Server) deleteMember(ctx context.Context, f url.Values) (string, error) {
	return "Deleted Member Successfully", s.Gym.DeleteMember(ctx, domain.MemberID(formInt(f, "member_id")))
}

// Trainers

func (s *Server) createTrainer(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreateTrainer(ctx, trainerFromForm(f))
	return "Created Trainer Successfully", err
}

func (s *Server) updateTrainer(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdateTrainer(ctx, trainerFromForm(f))
	return "Updated Trainer Successfully", ignoreNotFound(err)
}

func (s *Server) deleteTrainer(ctx context.Context, f url.Values) (string, error) {
	return "Deleted Trainer Successfully", s.Gym.DeleteTrainer(ctx, domain.TrainerID(formInt(f, "trainer_id")))
}

// Classes

func (s *Server) createClass(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreateClass(ctx, classFromForm(f))
	return "Created Class Successfully", err
}

func (s *Server) updateClass(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdateClass(ctx, classFromForm(f))
	return "Updated Class Successfully", ignoreNotFound(err)
}

func (s *Server) deleteClass(ctx context.Context, f url.Values) (string, error) {
	return "Deleted Class Successfully", s.Gym.DeleteClass(ctx, domain.ClassID(formInt(f, "class_id")))
}

// Enrollments

func (s *Server) createEnrollment(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreateEnrollment(ctx, enrollmentFromForm(f))
	return "Member Enrolled Successfully", err
}

func (s *Server) updateEnrollment(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdateEnrollment(ctx, enrollmentFromForm(f))
	return "Enrollment Updated Successfully", ignoreNotFound(err)
}

func (s *Server) deleteEnrollment(ctx context.Context, f url.Values) (string, error) {
	return "Enrollment Removed Successfully", s.Gym.DeleteEnrollment(ctx, domain.EnrollmentID(formInt(f, "enrollment_id")))
}

// Payments

func (s *Server) createPayment(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.CreatePayment(ctx, paymentFromForm(f))
	return "Payment Recorded Successfully", err
}

func (s *Server) updatePayment(ctx context.Context, f url.Values) (string, error) {
	_, err := s.Gym.UpdatePayment(ctx, paymentFromForm(f))
	return "Payment Updated Successfully", ignoreNotFound(err)
}

func (s *Server) deletePayment(ctx context.Context, f url.Values) (string, error) {
	return "Payment Deleted Successfully", s.Gym.DeletePayment(ctx, domain.PaymentID(formInt(f, "payment_id")))
}
