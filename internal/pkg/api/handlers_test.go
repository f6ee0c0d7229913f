package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
)

type stubStore struct {
	loads   []string
	records map[string][]models.DrawRecord
}

func (s *stubStore) Load(game string) ([]models.DrawRecord, error) {
	s.loads = append(s.loads, game)
	return s.records[game], nil
}

func (s *stubStore) Save(game string, records []models.DrawRecord) error { return nil }

type drawsPayload struct {
	Success bool                `json:"success"`
	Data    []models.DrawRecord `json:"data"`
}

func getDraws(t *testing.T, s *Server, target string) drawsPayload {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.handleDraws(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var p drawsPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return p
}

func TestHandleDraws(t *testing.T) {
	store := &stubStore{records: map[string][]models.DrawRecord{
		models.GameSSQ: {
			{Issue: "2024005", Date: "2024-01-09", Week: "周二", Red: []int{1, 5, 12, 18, 22, 29}, Blue: []int{7}},
		},
	}}
	s := &Server{cfg: &config.Config{}, store: store}

	p := getDraws(t, s, "/api/draws?game=ssq")
	if !p.Success || len(p.Data) != 1 || p.Data[0].Issue != "2024005" {
		t.Errorf("response = %+v", p)
	}
}

// Anything that is not a known game ID must short-circuit to an empty array
// without reaching the store: the ID becomes a filename there, so a raw
// path like "../secrets" must never get that far.
func TestHandleDrawsUnknownGameSkipsStore(t *testing.T) {
	store := &stubStore{}
	s := &Server{cfg: &config.Config{}, store: store}

	for _, game := range []string{"nope", "../secrets", ""} {
		p := getDraws(t, s, "/api/draws?game="+game)
		if !p.Success {
			t.Errorf("game %q: success = false, want true", game)
		}
		if len(p.Data) != 0 {
			t.Errorf("game %q: data = %v, want empty", game, p.Data)
		}
	}
	if len(store.loads) != 0 {
		t.Errorf("store was consulted for unknown games: %v", store.loads)
	}
}
