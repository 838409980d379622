// Package web is the local browser UI: login and register forms plus the
// gated dashboard. Presentation glue only, every decision about the session
// is delegated to the session manager.
package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dquisbert/cartera/internal/logger"
	"github.com/dquisbert/cartera/internal/session"
	"github.com/dquisbert/cartera/internal/transactions"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Server struct {
	sessions *session.Manager
	txs      *transactions.Service
	logger   logger.Logger
}

func NewServer(sessions *session.Manager, txs *transactions.Service, log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Server{sessions: sessions, txs: txs, logger: log}
}

func (s *Server) Router() http.Handler {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})
	r.GET("/login", s.loginPage)
	r.POST("/login", s.login)
	r.GET("/register", s.registerPage)
	r.POST("/register", s.register)
	r.GET("/home", s.home)
	r.POST("/logout", s.logout)
	r.POST("/logout-all", s.logoutAll)

	// Anything else behaves like the SPA catch-all route
	r.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	return r
}
