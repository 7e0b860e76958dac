// internal/api/router.go
//
// HTTP surface of the content backend.
//
// Context
// -------
// NewRouter builds one chi router with two groups:
//
//   - /api/…  admin operations, bearer token required.  The token subject
//     becomes the caller identity passed to the service.
//   - /cms/…  public read and contact form, no authentication.
//
// plus /metrics (Prometheus) and /healthz.
//
// Middleware order
// ----------------
//  1. RequestID, Recoverer (chi)
//  2. requestinfo.Enrich   UA and geo hints
//  3. AccessLog            zap line and request counter
//  4. Security, CORS       response headers
//
// Notes
// -----
//   - Handlers depend on the AdminService and PublicService interfaces so
//     the router can be tested without a database.
//   - Oxford commas, two spaces after periods.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/adept-content/internal/domain"
	"github.com/yanizio/adept-content/internal/middleware"
	"github.com/yanizio/adept-content/internal/requestinfo"
	"github.com/yanizio/adept-content/internal/service"
)

// AdminService is the authenticated surface.
type AdminService interface {
	CollectionAll(ctx context.Context) (service.CollectionAllResponse, error)
	GetCollection(ctx context.Context, id string) (service.CollectionResponse, error)
	StoreCollection(ctx context.Context, actor domain.Identity, req service.StoreCollectionRequest) (service.CollectionResponse, error)
	UpdateCollection(ctx context.Context, actor domain.Identity, req service.UpdateCollectionRequest) (service.CollectionResponse, error)
	DeleteCollection(ctx context.Context, actor domain.Identity, id string) (service.DeleteResponse, error)
	CountOfCollection(ctx context.Context, identifier string) (service.CountResponse, error)

	ContentPaginate(ctx context.Context, req service.ContentPaginateRequest) (service.ContentPaginateResponse, error)
	StoreContent(ctx context.Context, actor domain.Identity, req service.StoreContentRequest) (service.ContentResponse, error)
	GetContent(ctx context.Context, req service.GetContentRequest) (service.ContentResponse, error)
	UpdateContent(ctx context.Context, actor domain.Identity, req service.UpdateContentRequest) (service.ContentResponse, error)
	PutContentIdentifier(ctx context.Context, actor domain.Identity, req service.PutContentIdentifierRequest) (service.ContentResponse, error)
	DeleteContent(ctx context.Context, actor domain.Identity, req service.DeleteContentRequest) (service.DeleteResponse, error)
	CountOfIdentifier(ctx context.Context, contentType, identifier string) (service.CountResponse, error)
}

// PublicService is the unauthenticated surface.
type PublicService interface {
	GetCMSContent(ctx context.Context, req service.GetCMSContentRequest) (service.ContentResponse, error)
	SentContactForm(ctx context.Context, req service.SentContactFormRequest) (service.SentContactFormResponse, error)
}

// Verifier turns a bearer token into a caller identity.
type Verifier interface {
	Verify(raw string) (domain.Identity, error)
}

// Options configures NewRouter.
type Options struct {
	Admin          AdminService
	Public         PublicService
	Verifier       Verifier
	Log            *zap.SugaredLogger
	AllowedOrigins []string
	ForceHTTPS     bool
}

type handlers struct {
	admin  AdminService
	public PublicService
}

// NewRouter wires every route.
func NewRouter(o Options) http.Handler {
	log := o.Log
	if log == nil {
		log = zap.S()
	}
	h := &handlers{admin: o.Admin, public: o.Public}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if o.ForceHTTPS {
		r.Use(middleware.ForceHTTPS)
	}
	r.Use(requestinfo.Enrich)
	r.Use(AccessLog(log))
	r.Use(middleware.Security)
	r.Use(middleware.CORS(o.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, req, domain.NotFound("route", req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
			Error: errorBody{Kind: "validation", Message: "method not allowed"},
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"status": true})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(o.Verifier))

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", h.collectionAll)
			r.Post("/", h.storeCollection)
			r.Get("/identifier-count", h.countOfCollection)
			r.Get("/{id}", h.getCollection)
			r.Put("/{id}", h.updateCollection)
			r.Delete("/{id}", h.deleteCollection)
		})

		r.Route("/contents/{type}", func(r chi.Router) {
			r.Get("/", h.contentPaginate)
			r.Post("/", h.storeContent)
			r.Get("/identifier-count", h.countOfIdentifier)
			r.Get("/{id}", h.getContent)
			r.Put("/{id}", h.updateContent)
			r.Put("/{id}/identifier", h.putContentIdentifier)
			r.Delete("/{id}", h.deleteContent)
		})
	})

	r.Route("/cms", func(r chi.Router) {
		r.Get("/contents/{type}/{identifier}", h.getCMSContent)
		r.Post("/contact", h.sentContactForm)
	})

	return r
}
