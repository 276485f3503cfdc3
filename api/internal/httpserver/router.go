package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"text-decoder/api/internal/admission"
	"text-decoder/api/internal/apperr"
	"text-decoder/api/internal/envelope"
	"text-decoder/api/internal/handle"
)

type RouterConfig struct {
	// TrustProxyHeaders takes the caller address from X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool
}

var (
	errNotFound = apperr.New(apperr.NotFound, "Not Found", "The requested endpoint does not exist")
	errMethod   = apperr.New(apperr.MethodNotAllowed, "Method Not Allowed", "The requested method is not allowed for this endpoint")
)

// NewRouter wires every route behind its admission guard.
func NewRouter(h *handle.Handle, adm *admission.Admitter, log *zap.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	if cfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(accessLog(log))
	r.Use(recoverer(log))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { envelope.WriteError(w, errNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { envelope.WriteError(w, errMethod) })

	guard := adm.Guard
	r.With(guard(admission.Health)).Get("/health", h.Health)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/analyze", func(a chi.Router) {
			a.With(guard(admission.IdentifySpeakers)).Post("/identify-speakers", h.IdentifySpeakers)
			a.With(guard(admission.Conversation)).Post("/conversation", h.AnalyzeConversation)
			a.With(guard(admission.ResponseImpact)).Post("/response-impact", h.ResponseImpact)
			a.With(guard(admission.Profile)).Post("/profile", h.Profile)
			a.With(guard(admission.SelfProfile)).Post("/self-profile", h.SelfProfile)
		})

		api.With(guard(admission.Behaviors)).Get("/behaviors", h.Behaviors)
		api.With(guard(admission.BehaviorCategories)).Get("/behaviors/categories", h.BehaviorCategories)

		api.With(guard(admission.SyncUpload)).Post("/sync/upload", h.SyncUpload)
		api.With(guard(admission.SyncDownload)).Post("/sync/download", h.SyncDownload)
		api.With(guard(admission.UserDelete)).Delete("/user/delete", h.DeleteUser)
	})
	return r
}
