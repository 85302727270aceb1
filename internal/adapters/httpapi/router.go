package httpapi

import (
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ironhouse-gym/gym-admin/internal/domain"
)

type RouterOptions struct {
	// CSRFKey turns on CSRF protection for every form when non-empty (32 bytes).
	CSRFKey []byte
	// CSRFTrustedOrigins lists extra hosts allowed to post forms (e.g. "localhost:3000").
	CSRFTrustedOrigins []string

	// Gatherer exposes /metrics when set.
	Gatherer prometheus.Gatherer

	// Static overrides the embedded assets served under /static/.
	Static fs.FS
}

// NewRouter constructs the HTTP router with default options.
func NewRouter(s *Server) http.Handler {
	return NewRouterWithOptions(s, RouterOptions{})
}

func NewRouterWithOptions(s *Server, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(s.Logger))
	r.Use(middleware.Recoverer)
	r.Use(s.Metrics.Middleware)

	// Health endpoint is used for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	static := opts.Static
	if static == nil {
		static = EmbeddedStatic()
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Route("/api", func(r chi.Router) {
		r.Get("/reports", s.apiReports)
		r.Get("/members/{memberID}/lifetime-value", s.apiLifetimeValue)
	})

	r.Group(func(r chi.Router) {
		if len(opts.CSRFKey) > 0 {
			r.Use(csrfProtect(opts.CSRFKey, opts.CSRFTrustedOrigins))
		}

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
		})
		r.Get("/dashboard", s.dashboard)

		r.Get("/memberships", s.listPage("memberships", "Memberships"))
		r.Post("/memberships/create", s.mutation(domain.KindMembership, s.createMembership))
		r.Post("/memberships/update", s.mutation(domain.KindMembership, s.updateMembership))
		r.Post("/memberships/delete", s.mutation(domain.KindMembership, s.deleteMembership))

		r.Get("/members", s.listPage("members", "Members"))
		r.Post("/members/create", s.mutation(domain.KindMember, s.createMember))
		r.Post("/members/update", s.mutation(domain.KindMember, s.updateMember))
		r.Post("/members/delete", s.mutation(domain.KindMember, s.deleteMember))

		r.Get("/trainers", s.listPage("trainers", "Trainers"))
		r.Post("/trainers/create", s.mutation(domain.KindTrainer, s.createTrainer))
		r.Post("/trainers/update", s.mutation(domain.KindTrainer, s.updateTrainer))
		r.Post("/trainers/delete", s.mutation(domain.KindTrainer, s.deleteTrainer))

		r.Get("/classes", s.listPage("classes", "Classes"))
		r.Post("/classes/create", s.mutation(domain.KindClass, s.createClass))
		r.Post("/classes/update", s.mutation(domain.KindClass, s.updateClass))
		r.Post("/classes/delete", s.mutation(domain.KindClass, s.deleteClass))

		r.Get("/enrollments", s.listPage("enrollments", "Enrollments"))
		r.Post("/enrollments/create", s.mutation(domain.KindEnrollment, s.createEnrollment))
		r.Post("/enrollments/update", s.mutation(domain.KindEnrollment, s.updateEnrollment))
		r.Post("/enrollments/delete", s.mutation(domain.KindEnrollment, s.deleteEnrollment))

		r.Get("/payments", s.listPage("payments", "Payments"))
		r.Post("/payments/create", s.mutation(domain.KindPayment, s.createPayment))
		r.Post("/payments/update", s.mutation(domain.KindPayment, s.updatePayment))
		r.Post("/payments/delete", s.mutation(domain.KindPayment, s.deletePayment))

		r.Get("/reports", s.reportsPage)
		r.Post("/reports/sp-demo", s.lifetimeValueDemo)
	})
	return r
}

// csrfProtect wraps gorilla/csrf. Requests that arrived without TLS are marked
// plaintext so the origin check does not demand an https Referer.
func csrfProtect(key []byte, trusted []string) func(http.Handler) http.Handler {
	protect := csrf.Protect(key,
		csrf.Secure(false),
		csrf.Path("/"),
		csrf.FieldName(csrfField),
		csrf.TrustedOrigins(trusted),
	)
	return func(next http.Handler) http.Handler {
		h := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil {
				r = csrf.PlaintextHTTPRequest(r)
			}
			h.ServeHTTP(w, r)
		})
	}
}

func accessLog(logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.LogAttrs(r.Context(), slog.LevelInfo, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
