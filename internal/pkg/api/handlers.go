package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"lottokit/internal/draw"
	"lottokit/internal/pkg/models"
	"lottokit/internal/schedule"
)

const maxPicksPerRequest = 10

type payload struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleDraws returns the canonical record list verbatim. Unknown games get
// an empty array, never an error. The game ID gates the store lookup: only
// known IDs ever reach the filesystem.
func (s *Server) handleDraws(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if _, ok := models.RuleByID(game); !ok {
		writeJSON(w, payload{Success: true, Data: []models.DrawRecord{}})
		return
	}

	records, err := s.store.Load(game)
	if err != nil {
		slog.Warn("store read failed", "game", game, "error", err)
		records = nil
	}
	if records == nil {
		records = []models.DrawRecord{}
	}

	writeJSON(w, payload{Success: true, Data: records})
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	rule, ok := models.RuleByID(game)
	if !ok {
		writeJSON(w, payload{Success: false, Error: "unknown game"})
		return
	}

	latest := s.cfg.Games[game].SeedIssue
	if records, err := s.store.Load(game); err == nil && len(records) > 0 {
		latest = records[0].Issue
	}
	if latest == "" {
		latest = strconv.Itoa(time.Now().Year()) + "000"
	}

	info := schedule.Next(latest, time.Now(), rule)
	writeJSON(w, payload{Success: true, Data: info})
}

func (s *Server) handlePick(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	rule, ok := models.RuleByID(game)
	if !ok {
		writeJSON(w, payload{Success: false, Error: "unknown game"})
		return
	}

	n := 1
	if v := r.URL.Query().Get("n"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > maxPicksPerRequest {
			writeJSON(w, payload{Success: false, Error: "n must be 1.." + strconv.Itoa(maxPicksPerRequest)})
			return
		}
		n = parsed
	}

	picks := make([]models.Pick, 0, n)
	for i := 0; i < n; i++ {
		pick, err := draw.Numbers(rule)
		if err != nil {
			slog.Error("draw failed", "game", game, "error", err)
			writeJSON(w, payload{Success: false, Error: "draw failed"})
			return
		}
		picks = append(picks, pick)
	}

	writeJSON(w, payload{Success: true, Data: picks})
}

func writeJSON(w http.ResponseWriter, p payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		slog.Warn("response encode failed", "error", err)
	}
}
