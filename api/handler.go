package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/raushankrgupta/multisite-product-viewer/errx"
	"github.com/raushankrgupta/multisite-product-viewer/logx"
	"github.com/raushankrgupta/multisite-product-viewer/models"
	"github.com/raushankrgupta/multisite-product-viewer/session"
	"github.com/raushankrgupta/multisite-product-viewer/sites"
	"github.com/raushankrgupta/multisite-product-viewer/utils"
	"github.com/raushankrgupta/multisite-product-viewer/view"
)

// SupersededMessage is returned to a scrape whose response lost to a newer
// request from the same session.
const SupersededMessage = "Request superseded by a newer scrape"

// SitesHandler lists the supported sites.
func SitesHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"sites": sites.All()})
}

// SelectSiteHandler switches the session's active site. The current product
// is cleared.
func (s *Server) SelectSiteHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Site string `json:"site"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "site", errx.Validation("Invalid request body"))
		return
	}

	sc := sessionFrom(r.Context())
	if err := sc.coordinator.SelectSite(req.Site); err != nil {
		if errors.Is(err, session.ErrUnknownSite) {
			utils.RespondError(w, "site", errx.Validation("Unsupported site: "+req.Site))
			return
		}
		utils.RespondError(w, "site", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, sc.coordinator.Snapshot())
}

// ScrapeHandler scrapes a product URL for the active site.
func (s *Server) ScrapeHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ScrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, "scrape", errx.Validation("Invalid request body"))
		return
	}

	sc := sessionFrom(r.Context())
	logx.Info().Str("api", "scrape").Str("username", sc.user.Username).Str("url", req.URL).Msg("scrape requested")

	product, err := sc.coordinator.Scrape(r.Context(), req.URL)
	if errors.Is(err, session.ErrStaleResponse) {
		utils.RespondError(w, "scrape", errx.New(errx.KindLogicalFailure, http.StatusConflict, SupersededMessage, err))
		return
	}
	if err != nil {
		utils.RespondError(w, "scrape", err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, models.ScrapeResponse{
		Success:   true,
		Data:      product,
		Timestamp: sc.coordinator.Snapshot().LastScrapeTime,
	})
}

// ProductHandler returns the session state with the current product and its
// display view.
func (s *Server) ProductHandler(w http.ResponseWriter, r *http.Request) {
	state := sessionFrom(r.Context()).coordinator.Snapshot()
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"state": state,
		"view":  view.Build(state.Product),
	})
}

// StatusHandler proxies the scraping backend's status.
func (s *Server) StatusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := s.status.Status(r.Context())
	if err != nil {
		utils.RespondError(w, "status", err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, status)
}

// HistoryHandler returns the session's most recent scrape attempts.
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	limit := int64(20)
	if l, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	sc := sessionFrom(r.Context())
	attempts, err := s.history.Recent(r.Context(), sc.user.SessionID, limit)
	if err != nil {
		utils.RespondError(w, "history", err)
		return
	}
	if attempts == nil {
		attempts = []models.ScrapeAttempt{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"attempts": attempts})
}
