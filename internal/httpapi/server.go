package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"channelhub/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Definitions() []types.ModuleDefinition
	ListInstances() []types.InstanceSummary
	CreateInstance(kind, name string) (types.InstanceSummary, error)
	InstanceDetail(id string) (types.InstanceDetail, error)
	RemoveInstance(id string) error
	ReplaceContents(instanceID, channelID string, contents []types.ContentPayload) error
	PublishContent(instanceID, channelID, contentID string, payload types.ContentPayload) error
	Subscribe(instanceID, receiverID string, req types.SubscribeRequest) error
	Unsubscribe(instanceID, receiverID string) error
	ReceiverSnapshot(instanceID, receiverID string) (types.ReceiverSnapshot, error)
	Status() types.StatusResponse
	Ready() bool
}

// NewMux builds the router for svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if mw := corsMiddleware(); mw != nil {
		r.Use(mw)
	}
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	r.Use(MetricsMiddleware)

	h := &handlers{svc: svc}

	r.Get("/definitions", h.definitions)
	r.Route("/instances", func(r chi.Router) {
		r.Get("/", h.listInstances)
		r.With(rejectWhenDraining).Post("/", h.createInstance)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.instanceDetail)
			r.Delete("/", h.removeInstance)
			r.Group(func(r chi.Router) {
				r.Use(rejectWhenDraining)
				r.Put("/channels/{channelID}/contents", h.replaceContents)
				r.Put("/channels/{channelID}/contents/{contentID}", h.publishContent)
				r.Post("/receivers/{receiverID}/subscription", h.subscribe)
			})
			r.Delete("/receivers/{receiverID}/subscription", h.unsubscribe)
			r.Get("/receivers/{receiverID}", h.receiverSnapshot)
		})
	})

	r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Status())
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("closed"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
