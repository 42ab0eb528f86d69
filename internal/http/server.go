// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"smartdrive/internal/http/handlers"
	"smartdrive/internal/http/middleware"
	"smartdrive/internal/modules/session"
)

type ServerDeps struct {
	Chat     handlers.Turner
	Sessions *session.Store
	// Searcher is optional; without it car search runs over Listings.
	Searcher    handlers.Searcher
	Listings    handlers.Listings
	ResultLimit int
	// CORSOrigins defaults to "*" when empty.
	CORSOrigins []string
}

type Server struct {
	chat        *handlers.ChatHandler
	sessions    *handlers.SessionHandler
	cars        *handlers.CarHandler
	corsOrigins []string
}

func NewServer(deps ServerDeps) *Server {
	origins := deps.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		chat:        handlers.NewChatHandler(deps.Chat),
		sessions:    handlers.NewSessionHandler(deps.Sessions),
		cars:        handlers.NewCarHandler(deps.Searcher, deps.Listings, deps.ResultLimit),
		corsOrigins: origins,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		otelgin.Middleware("smartdrive-api"),
		middleware.Logging(),
		middleware.CORS(s.corsOrigins),
	)

	r.POST("/chat", s.chat.Chat)

	api := r.Group("/api")
	api.POST("/chat", s.chat.Chat)
	api.POST("/sessions", s.sessions.Create)
	api.GET("/sessions/:id", s.sessions.Get)
	api.GET("/cars", s.cars.Search)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OPTIONS preflights have no route and reach CORS through this chain.
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}
