package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/session"
	"github.com/raushankrgupta/multisite-product-viewer/utils"
	"golang.org/x/crypto/bcrypt"
)

// CookieName carries the signed session token.
const CookieName = "scraper_user"

// StatusChecker reports the health of the scraping backend.
type StatusChecker interface {
	Status(ctx context.Context) (*models.StatusResponse, error)
}

// HistoryReader lists a session's recent scrape attempts.
type HistoryReader interface {
	Recent(ctx context.Context, sessionID string, limit int64) ([]models.ScrapeAttempt, error)
}

// Options configure the demo login.
type Options struct {
	Username   string
	Password   string
	JWTSecret  string
	SessionTTL time.Duration
	Secure     bool
}

// Server serves the JSON API consumed by the viewer UI.
type Server struct {
	sessions     *session.Manager
	status       StatusChecker
	history      HistoryReader
	username     string
	passwordHash []byte
	jwtSecret    string
	ttl          time.Duration
	secure       bool
}

func NewServer(sessions *session.Manager, status StatusChecker, opts Options) (*Server, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Server{
		sessions:     sessions,
		status:       status,
		username:     opts.Username,
		passwordHash: hash,
		jwtSecret:    opts.JWTSecret,
		ttl:          opts.SessionTTL,
		secure:       opts.Secure,
	}, nil
}

// WithHistory enables GET /history.
func (s *Server) WithHistory(h HistoryReader) *Server {
	s.history = h
	return s
}

// Routes returns the API mux wrapped in CORS and latency logging.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.LoginHandler)
	mux.HandleFunc("POST /auth/logout", s.LogoutHandler)
	mux.HandleFunc("GET /auth/session", s.requireSession(s.SessionHandler))

	mux.HandleFunc("GET /sites", SitesHandler)
	mux.HandleFunc("GET /status", s.StatusHandler)
	mux.HandleFunc("POST /site", s.requireSession(s.SelectSiteHandler))
	mux.HandleFunc("POST /scrape", s.requireSession(s.ScrapeHandler))
	mux.HandleFunc("GET /product", s.requireSession(s.ProductHandler))
	if s.history != nil {
		mux.HandleFunc("GET /history", s.requireSession(s.HistoryHandler))
	}

	return utils.LatencyMiddleware(corsMiddleware(mux))
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type contextKey struct{}

type sessionContext struct {
	user        models.User
	coordinator *session.Coordinator
}

// requireSession resolves the caller's session from the cookie or a bearer
// token and rejects the request when there is none.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := tokenFrom(r)
		if token == "" {
			utils.RespondError(w, "auth", errx.Unauthorized("Please log in"))
			return
		}
		sessionID, err := utils.ValidateToken(s.jwtSecret, token)
		if err != nil {
			utils.RespondError(w, "auth", errx.New(errx.KindAuth, http.StatusUnauthorized, "Session expired, please log in again", err))
			return
		}
		user, coordinator, err := s.sessions.Get(r.Context(), sessionID)
		if errors.Is(err, session.ErrNotFound) {
			utils.RespondError(w, "auth", errx.Unauthorized("Session expired, please log in again"))
			return
		}
		if err != nil {
			utils.RespondError(w, "auth", err)
			return
		}

		ctx := context.WithValue(r.Context(), contextKey{}, sessionContext{user: user, coordinator: coordinator})
		next(w, r.WithContext(ctx))
	}
}

func tokenFrom(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

func sessionFrom(ctx context.Context) sessionContext {
	sc, _ := ctx.Value(contextKey{}).(sessionContext)
	return sc
}
