package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/fortuna/dfscrape/internal/ingest"
	"github.com/fortuna/dfscrape/internal/logger"
)

// Trigger starts scrapes on demand
type Trigger interface {
	Run(ctx context.Context, name string) (*ingest.Report, error)
	Sources() []string
}

// ScrapeHandler lets operators trigger a scrape outside the schedule
type ScrapeHandler struct {
	trigger Trigger
	baseCtx context.Context
	log     *logger.Logger
}

// NewScrapeHandler wires the REST layer to the runner. Background runs use
// baseCtx so they outlive the request.
func NewScrapeHandler(baseCtx context.Context, trigger Trigger) *ScrapeHandler {
	return &ScrapeHandler{trigger: trigger, baseCtx: baseCtx, log: logger.Named("rest")}
}

// HandleScrape handles POST /api/v1/scrape/{source}. With ?wait=true the run
// report is returned; otherwise the run continues in the background.
func (h *ScrapeHandler) HandleScrape(w http.ResponseWriter, r *http.Request) {
	source := mux.Vars(r)["source"]
	if !h.known(source) {
		respondError(w, http.StatusNotFound, "Unknown source", nil)
		return
	}

	if r.URL.Query().Get("wait") == "true" {
		report, err := h.trigger.Run(r.Context(), source)
		switch {
		case errors.Is(err, ingest.ErrRunInProgress):
			respondError(w, http.StatusConflict, "Scrape already running", err)
		case err != nil && report != nil:
			respondJSON(w, http.StatusBadGateway, report)
		case err != nil:
			respondError(w, http.StatusInternalServerError, "Scrape failed", err)
		default:
			respondJSON(w, http.StatusOK, report)
		}
		return
	}

	go func() {
		if _, err := h.trigger.Run(h.baseCtx, source); err != nil {
			h.log.Warn().Err(err).Str("source", source).Msg("triggered scrape failed")
		}
	}()
	respondJSON(w, http.StatusAccepted, map[string]string{
		"source": source,
		"status": "accepted",
	})
}

func (h *ScrapeHandler) known(source string) bool {
	for _, s := range h.trigger.Sources() {
		if s == source {
			return true
		}
	}
	return false
}
