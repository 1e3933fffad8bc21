package api

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/utils"
	"golang.org/x/crypto/bcrypt"
)

// InvalidCredentialsMessage is shown for any failed login.
const InvalidCredentialsMessage = "Invalid credentials. Please use demo login or check your username/password."

// LoginHandler checks the demo credentials and opens a session.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "login", errx.Validation("Invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		utils.RespondError(w, "login", errx.Validation("Username and password are required"))
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(req.Password))
	if !userOK || passErr != nil {
		utils.RespondError(w, "login", errx.Unauthorized(InvalidCredentialsMessage))
		return
	}

	user, err := s.sessions.Start(r.Context(), req.Username)
	if err != nil {
		utils.RespondError(w, "login", err)
		return
	}
	token, err := utils.GenerateToken(s.jwtSecret, user.SessionID, s.ttl)
	if err != nil {
		utils.RespondError(w, "login", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})

	logx.Info().Str("api", "login").Str("username", user.Username).Msg("login successful")
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    map[string]string{"username": user.Username},
	})
}

// LogoutHandler ends the caller's session, if any, and clears the cookie.
// It succeeds for callers that are already logged out.
func (s *Server) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if token := tokenFrom(r); token != "" {
		if sessionID, err := utils.ValidateToken(s.jwtSecret, token); err == nil {
			if err := s.sessions.End(r.Context(), sessionID); err != nil {
				logx.Warn().Err(err).Str("api", "logout").Msg("failed to end session")
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// SessionHandler returns the logged-in user.
func (s *Server) SessionHandler(w http.ResponseWriter, r *http.Request) {
	sc := sessionFrom(r.Context())
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"user": map[string]string{"username": sc.user.Username},
		"site": sc.coordinator.Snapshot().Site,
	})
}
