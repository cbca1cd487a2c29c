package api

import (
	"net/http"

	"github.com/beka-birhanu/maze-collapse/api/i"
	"github.com/gin-gonic/gin"
)

// Router manages the HTTP server and its dependencies,
// including controllers, the authorization middleware and the game page.
type Router struct {
	addr                    string
	baseURL                 string
	mode                    string
	controllers             []i.Controller
	authorizationMiddleware gin.HandlerFunc
	page                    []byte
	assets                  http.FileSystem
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr                    string // Address to listen on
	BaseURL                 string // Base URL for API routes
	Mode                    string // Gin mode (debug, release, test)
	Controllers             []i.Controller
	AuthorizationMiddleware gin.HandlerFunc // Nil disables protected routes
	Page                    []byte          // HTML served at the root path
	Assets                  http.FileSystem // Files served under /assets
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	return &Router{
		addr:                    config.Addr,
		baseURL:                 config.BaseURL,
		mode:                    config.Mode,
		controllers:             config.Controllers,
		authorizationMiddleware: config.AuthorizationMiddleware,
		page:                    config.Page,
		assets:                  config.Assets,
	}
}

// Handler builds the gin engine with every route registered.
//
// Routes are grouped and managed under the base URL, with the following access levels:
// - Public routes: No authentication required.
// - Protected routes: Authentication required.
//
// The game page is served at "/" and its scripts under "/assets".
func (r *Router) Handler() *gin.Engine {
	if r.mode != "" {
		gin.SetMode(r.mode)
	}
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	if r.page != nil {
		router.GET("/", func(ctx *gin.Context) {
			ctx.Data(http.StatusOK, "text/html; charset=utf-8", r.page)
		})
	}
	if r.assets != nil {
		router.StaticFS("/assets", r.assets)
	}

	// Setting up routes under baseURL
	api := router.Group(r.baseURL)

	{
		// Public routes (accessible without authentication)
		publicRoutes := api.Group("/v1")
		{
			for _, c := range r.controllers {
				c.RegisterPublic(publicRoutes)
			}
		}

		// Protected routes (authentication required)
		if r.authorizationMiddleware != nil {
			protectedRoutes := api.Group("/v1")
			protectedRoutes.Use(r.authorizationMiddleware)
			{
				for _, c := range r.controllers {
					c.RegisterProtected(protectedRoutes)
				}
			}
		}
	}

	router.NoRoute(func(ctx *gin.Context) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router
}

// Run starts the HTTP server.
func (r *Router) Run() error {
	gin.ForceConsoleColor()
	return r.Handler().Run(r.addr)
}
