package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-contacts-server/auth"
	"github.com/jrsteele09/go-contacts-server/contacts"
	"github.com/jrsteele09/go-contacts-server/internal/config"
	"github.com/jrsteele09/go-contacts-server/internal/telemetry"
	"github.com/rs/zerolog"
)

// Server routes the contacts API: the /auth session lifecycle endpoints and
// the bearer-protected /contacts CRUD endpoints.
type Server struct {
	env      string
	mux      *http.ServeMux
	routes   []string
	config   config.Config
	auth     *auth.Service
	contacts *contacts.Service
	log      zerolog.Logger
}

func New(cfg config.Config, authService *auth.Service, contactService *contacts.Service, log zerolog.Logger) *Server {
	s := &Server{
		mux:      http.NewServeMux(),
		config:   cfg,
		auth:     authService,
		contacts: contactService,
		log:      log,
	}
	s.env = cfg.GetEnv()

	telemetry.Register()
	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)
		if len(parts) > 1 {
			s.log.Info().Str("method", parts[0]).Str("path", parts[1]).Msg("route registered")
		} else {
			s.log.Info().Str("path", parts[0]).Msg("route registered")
		}
	}
}
