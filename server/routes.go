package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	RouteRegister       = "/auth/register"
	RouteLogin          = "/auth/login"
	RouteRefresh        = "/auth/refresh"
	RouteLogout         = "/auth/logout"
	RouteSendResetEmail = "/auth/send-reset-email"
	RouteResetPassword  = "/auth/reset-pwd"
	RouteContacts       = "/contacts"
	RouteContact        = "/contacts/{contactID}"
	RouteMetrics        = "/metrics"
)

func (s *Server) initRoutes() {
	baseMW := []func(http.HandlerFunc) http.HandlerFunc{
		s.LoggingMiddleware,
		s.RecoverMiddleware,
		s.CorsMiddleware,
	}
	protectedMW := append(append([]func(http.HandlerFunc) http.HandlerFunc{}, baseMW...), s.RequireAuth)

	// Auth / session lifecycle
	s.RegisterRouteFunc("POST "+RouteRegister, ChainMiddleware(s.RegisterHandler(), baseMW...))
	s.RegisterRouteFunc("POST "+RouteLogin, ChainMiddleware(s.LoginHandler(), baseMW...))
	s.RegisterRouteFunc("POST "+RouteRefresh, ChainMiddleware(s.RefreshHandler(), baseMW...))
	s.RegisterRouteFunc("POST "+RouteLogout, ChainMiddleware(s.LogoutHandler(), baseMW...))
	s.RegisterRouteFunc("POST "+RouteSendResetEmail, ChainMiddleware(s.SendResetEmailHandler(), baseMW...))
	s.RegisterRouteFunc("POST "+RouteResetPassword, ChainMiddleware(s.ResetPasswordHandler(), baseMW...))

	// Contacts (bearer-protected)
	s.RegisterRouteFunc("GET "+RouteContacts, ChainMiddleware(s.ListContactsHandler(), protectedMW...))
	s.RegisterRouteFunc("POST "+RouteContacts, ChainMiddleware(s.CreateContactHandler(), protectedMW...))
	s.RegisterRouteFunc("GET "+RouteContact, ChainMiddleware(s.GetContactHandler(), protectedMW...))
	s.RegisterRouteFunc("PATCH "+RouteContact, ChainMiddleware(s.PatchContactHandler(), protectedMW...))
	s.RegisterRouteFunc("DELETE "+RouteContact, ChainMiddleware(s.DeleteContactHandler(), protectedMW...))

	// Metrics
	s.RegisterRouteHandler("GET "+RouteMetrics, promhttp.Handler())
}
