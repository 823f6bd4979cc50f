package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine      *gin.Engine
	apiVersion  string
	middleware  []gin.HandlerFunc
	registrars  []RouteRegistrar
	unversioned []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAPIMiddleware adds middleware to every group under /api
func WithAPIMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.middleware = append(r.middleware, middleware...)
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar mounted under /api/<version>
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterUnversioned adds a RouteRegistrar mounted under /api as well as /api/<version>.
// Existing clients call the export endpoint without a version prefix.
func (r *Router) RegisterUnversioned(registrar RouteRegistrar) *Router {
	r.unversioned = append(r.unversioned, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api", r.middleware...)
	for _, registrar := range r.unversioned {
		registrar.RegisterRoutes(api)
	}

	versioned := api.Group("/" + r.apiVersion)
	for _, registrar := range r.unversioned {
		registrar.RegisterRoutes(versioned)
	}
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(versioned)
	}
}
