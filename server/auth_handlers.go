package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/jrsteele09/go-contacts-server/internal/errors"
	"github.com/jrsteele09/go-contacts-server/internal/telemetry"
)

const refreshCookieName = "refreshToken"

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendResetEmailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "invalid JSON body"))
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "missing required fields"))
			return
		}

		user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, "Successfully registered a user!", userResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		})
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "invalid JSON body"))
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "missing required fields"))
			return
		}

		pair, err := s.auth.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			telemetry.LoginsTotal.WithLabelValues("failure").Inc()
			writeError(w, err)
			return
		}
		telemetry.LoginsTotal.WithLabelValues("success").Inc()

		s.setRefreshCookie(w, pair.RefreshToken)
		writeJSON(w, http.StatusOK, "Successfully logged in an user!", tokenResponse{AccessToken: pair.AccessToken})
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil || cookie.Value == "" {
			telemetry.RefreshesTotal.WithLabelValues("failure").Inc()
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		pair, err := s.auth.Refresh(r.Context(), cookie.Value)
		if err != nil {
			telemetry.RefreshesTotal.WithLabelValues("failure").Inc()
			writeError(w, err)
			return
		}
		telemetry.RefreshesTotal.WithLabelValues("success").Inc()

		s.setRefreshCookie(w, pair.RefreshToken)
		writeJSON(w, http.StatusOK, "Successfully refreshed a session!", tokenResponse{AccessToken: pair.AccessToken})
	}
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, apperrors.ErrMissingToken)
			return
		}

		if err := s.auth.Logout(r.Context(), cookie.Value); err != nil {
			writeError(w, err)
			return
		}

		s.clearRefreshCookie(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) SendResetEmailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendResetEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "missing required fields"))
			return
		}

		if err := s.auth.RequestPasswordReset(r.Context(), req.Email); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Reset password email has been successfully sent.", struct{}{})
	}
}

func (s *Server) ResetPasswordHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req resetPasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" || req.Password == "" {
			writeError(w, apperrors.Wrapf(apperrors.ErrValidation, "missing required fields"))
			return
		}

		if err := s.auth.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, "Password has been successfully reset!", struct{}{})
	}
}

func (s *Server) setRefreshCookie(w http.ResponseWriter, refreshToken string) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    refreshToken,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(s.config.GetRefreshTokenExpiry().Seconds()),
	})
}

func (s *Server) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     refreshCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
