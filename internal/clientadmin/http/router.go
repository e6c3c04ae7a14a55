package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/render"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/service"
	"github.com/aussiebroadwan/clientadmin/internal/clientadmin/store"
	"github.com/aussiebroadwan/clientadmin/pkg/httpx"
	"github.com/aussiebroadwan/clientadmin/pkg/metricsx"
	"github.com/aussiebroadwan/clientadmin/pkg/slogx"

	_ "github.com/aussiebroadwan/clientadmin/api/clientadmin" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterConfig carries the optional parts of the router.
type RouterConfig struct {
	BuildVersion string

	// Outer middlewares wrap the whole router, before request logging.
	Outer []httpx.Middleware

	Session     httpx.SessionConfig
	CORSOrigins []string
	RateLimit   bool

	// StaticDir, when set, is served at / for the browser shell.
	StaticDir string

	// Metrics, when set, instruments every route and is served at /metrics.
	Metrics *metricsx.Metrics
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	cfg       RouterConfig
	startTime time.Time
	logger    *slog.Logger
	renderer  *render.Renderer

	cache         store.ListCache
	ClientService *service.ClientService
}

func NewRouter(cfg RouterConfig, svc *service.ClientService, cache store.ListCache, rr *render.Renderer, logger *slog.Logger) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		cfg:           cfg,
		startTime:     time.Now(),
		logger:        logger,
		renderer:      rr,
		cache:         cache,
		ClientService: svc,
	}

	// Set default middleware chain
	r.middlewares = append(r.middlewares, cfg.Outer...)
	if cfg.Metrics != nil {
		r.middlewares = append(r.middlewares, cfg.Metrics.Middleware(r.Mux))
	}
	r.middlewares = append(r.middlewares, slogx.HTTPMiddleware(r.logger))
	if len(cfg.CORSOrigins) > 0 {
		r.middlewares = append(r.middlewares, httpx.CORS(cfg.CORSOrigins...))
	}
	r.middlewares = append(r.middlewares, httpx.SessionMiddleware(cfg.Session))

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerClients()
	r.registerPartials()
	r.registerSystem()

	r.Mux.Handle("GET /swagger/", httpSwagger.Handler())

	if r.cfg.StaticDir != "" {
		r.Mux.Handle("GET /", http.FileServer(http.Dir(r.cfg.StaticDir)))
	}
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Client Admin API
//	@version		0.1.0
//	@description	Backend for the OAuth2 client administration panel. Lists, views, registers and edits clients held by a dynamic client registration API.
//	@description
//	@description	Every endpoint answers with JSON, or with an HTML fragment when the HX-Request header is present.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/clientadmin
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:3000
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// limit returns the session rate limiter for cfg, or nil when rate limiting
// is off. Chain skips nil middlewares.
func (r *Router) limit(cfg httpx.RateLimitConfig) httpx.Middleware {
	if !r.cfg.RateLimit {
		return nil
	}
	return httpx.RateLimitBySession(cfg)
}

// limitByIP is limit keyed on the client IP alone. Sessions are free to
// obtain, so strict profiles must not hand a fresh bucket to every new one.
func (r *Router) limitByIP(cfg httpx.RateLimitConfig) httpx.Middleware {
	if !r.cfg.RateLimit {
		return nil
	}
	return httpx.RateLimitByIP(cfg)
}

func (r *Router) registerClients() {
	h := &ClientsHandler{
		ClientService: r.ClientService,
		responder:     responder{Renderer: r.renderer},
	}

	// Reads - generous limits, paging issues one request per click
	r.Mux.Handle("GET /api/clients",
		httpx.Chain(http.HandlerFunc(h.HandleList), r.limit(httpx.ReadLimit)))
	r.Mux.Handle("GET /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet), r.limit(httpx.ReadLimit)))
	r.Mux.Handle("GET /api/clients/{id}/edit",
		httpx.Chain(http.HandlerFunc(h.HandleEdit), r.limit(httpx.ReadLimit)))
	r.Mux.Handle("GET /api/clients/{id}/change-secret-form",
		httpx.Chain(http.HandlerFunc(h.HandleSecretForm), r.limit(httpx.ReadLimit)))

	// Writes
	r.Mux.Handle("POST /api/clients",
		httpx.Chain(http.HandlerFunc(h.HandleCreate), r.limit(httpx.WriteLimit)))
	r.Mux.Handle("PUT /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate), r.limit(httpx.WriteLimit)))
	r.Mux.Handle("PATCH /api/clients/{id}",
		httpx.Chain(http.HandlerFunc(h.HandlePatch), r.limit(httpx.WriteLimit)))

	// Secret rotation - strict
	r.Mux.Handle("PUT /api/clients/{id}/secret",
		httpx.Chain(http.HandlerFunc(h.HandleSecret), r.limitByIP(httpx.SecretLimit)))
}

func (r *Router) registerPartials() {
	r.Mux.Handle("GET /partial/{kind}",
		httpx.Chain(&PartialsHandler{Renderer: r.renderer}, r.limit(httpx.ReadLimit)))
}

func (r *Router) registerSystem() {
	var cache Pinger
	if r.cache != nil {
		cache = r.cache
	}

	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.cfg.BuildVersion), r.limit(httpx.ProbeLimit)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.cfg.BuildVersion, r.ClientService, cache), r.limit(httpx.ProbeLimit)))

	if r.cfg.Metrics != nil {
		r.Mux.Handle("GET /metrics", r.cfg.Metrics.Handler())
	}
}
