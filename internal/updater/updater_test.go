package updater

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"lottokit/internal/pkg/config"
	"lottokit/internal/pkg/models"
	"lottokit/internal/pkg/storage"
	"lottokit/internal/sources"
)

type fakeBulk struct {
	draws []models.RawDraw
	calls int
}

func (f *fakeBulk) Name() string              { return "fake-bulk" }
func (f *fakeBulk) Supports(game string) bool { return true }
func (f *fakeBulk) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	f.calls++
	return f.draws
}

type fakeIssue struct {
	byIssue map[string]models.RawDraw
	calls   int
}

func (f *fakeIssue) Name() string              { return "fake-issue" }
func (f *fakeIssue) Supports(game string) bool { return true }
func (f *fakeIssue) FetchSince(ctx context.Context, game, lastIssue string) []models.RawDraw {
	return nil
}
func (f *fakeIssue) FetchIssue(ctx context.Context, game, issue string) (models.RawDraw, bool) {
	f.calls++
	raw, ok := f.byIssue[issue]
	return raw, ok
}

var _ sources.IssueSource = (*fakeIssue)(nil)

func testConfig(dir string) *config.Config {
	return &config.Config{
		Store: config.StoreConfig{Dir: dir, Keep: 50},
		Updater: config.UpdaterConfig{
			MaxAdvance: 5,
			IssueDelay: time.Millisecond,
		},
		Games: map[string]config.GameConfig{
			models.GameSSQ: {SeedIssue: "2024001"},
		},
	}
}

func ssqRaw(seq int) models.RawDraw {
	return models.RawDraw{
		Issue: fmt.Sprintf("2024%03d", seq),
		Date:  "2024-01-09",
		Red:   []int{1, 5, 12, 18, 22, 29},
		Blue:  []int{7},
	}
}

func TestRunGameBulkSeeding(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	bulk := &fakeBulk{draws: []models.RawDraw{
		ssqRaw(3),
		ssqRaw(1),
		{Issue: "2024002", Date: "2024-01-07", Red: []int{1, 2, 3}, Blue: []int{7}}, // wrong red count
		ssqRaw(4),
	}}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {bulk}}, nil, nil)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("RunGame error: %v", err)
	}

	records, err := store.Load(models.GameSSQ)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("stored %d records, want 3 (invalid one dropped)", len(records))
	}
	if records[0].Issue != "2024004" {
		t.Errorf("head issue = %q, want greatest 2024004", records[0].Issue)
	}
	for _, rec := range records {
		if rec.Issue == "2024002" {
			t.Errorf("invalid record was stored")
		}
	}
}

func TestRunGameIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	bulk := &fakeBulk{draws: []models.RawDraw{ssqRaw(1), ssqRaw(2)}}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {bulk}}, nil, nil)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "ssq.json"))
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "ssq.json"))
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("store file changed on a run with no new upstream data")
	}
}

func TestForwardWalk(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	// Store already knows 2024001; the vendor has three newer issues.
	seed := []models.DrawRecord{{Issue: "2024001", Date: "2024-01-02", Week: "周二", Red: []int{1, 5, 12, 18, 22, 29}, Blue: []int{7}}}
	if err := store.Save(models.GameSSQ, seed); err != nil {
		t.Fatal(err)
	}

	vendor := &fakeIssue{byIssue: map[string]models.RawDraw{
		"2024002": ssqRaw(2),
		"2024003": ssqRaw(3),
		"2024004": ssqRaw(4),
	}}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {vendor}}, nil, nil)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("RunGame error: %v", err)
	}

	records, _ := store.Load(models.GameSSQ)
	if len(records) != 4 {
		t.Fatalf("stored %d records, want 4", len(records))
	}
	if records[0].Issue != "2024004" {
		t.Errorf("head issue = %q, want 2024004", records[0].Issue)
	}
	// Three hits plus the miss on 2024005 that stops the walk.
	if vendor.calls != 4 {
		t.Errorf("vendor calls = %d, want 4", vendor.calls)
	}
}

func TestForwardWalkBounded(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	byIssue := map[string]models.RawDraw{}
	for i := 2; i <= 20; i++ {
		byIssue[fmt.Sprintf("2024%03d", i)] = ssqRaw(i)
	}
	vendor := &fakeIssue{byIssue: byIssue}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {vendor}}, nil, nil)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("RunGame error: %v", err)
	}

	records, _ := store.Load(models.GameSSQ)
	if len(records) != cfg.Updater.MaxAdvance {
		t.Errorf("stored %d records, want %d (walk must be bounded)", len(records), cfg.Updater.MaxAdvance)
	}
	if vendor.calls != cfg.Updater.MaxAdvance {
		t.Errorf("vendor calls = %d, want %d", vendor.calls, cfg.Updater.MaxAdvance)
	}
}

func TestTruncation(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	var draws []models.RawDraw
	for i := 1; i <= 60; i++ {
		draws = append(draws, ssqRaw(i))
	}
	bulk := &fakeBulk{draws: draws}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {bulk}}, nil, nil)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("RunGame error: %v", err)
	}

	records, _ := store.Load(models.GameSSQ)
	if len(records) != cfg.Store.Keep {
		t.Fatalf("stored %d records, want cap %d", len(records), cfg.Store.Keep)
	}
	if records[0].Issue != "2024060" {
		t.Errorf("head issue = %q, want 2024060", records[0].Issue)
	}
	if records[len(records)-1].Issue != "2024011" {
		t.Errorf("tail issue = %q, want 2024011 (oldest evicted)", records[len(records)-1].Issue)
	}
}

type fakeNotifier struct {
	issues []string
}

func (f *fakeNotifier) NotifyNewDraw(game string, rec models.DrawRecord) error {
	f.issues = append(f.issues, rec.Issue)
	return nil
}

// A bulk listing reaches further back than the retention window; once the
// store is at capacity, re-running against an unchanged listing must not
// re-add, re-save, or re-announce the evicted issues.
func TestBulkEvictedIssuesStayEvicted(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Store.Keep = 2
	store := storage.NewFileStore(dir)

	bulk := &fakeBulk{draws: []models.RawDraw{
		ssqRaw(5), ssqRaw(4), ssqRaw(3), ssqRaw(2), ssqRaw(1),
	}}
	notifier := &fakeNotifier{}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {bulk}}, nil, notifier)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("first run: %v", err)
	}
	records, _ := store.Load(models.GameSSQ)
	if len(records) != 2 || records[0].Issue != "2024005" {
		t.Fatalf("after first run records = %+v", records)
	}
	first, err := os.ReadFile(filepath.Join(dir, "ssq.json"))
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}
	notified := len(notifier.issues)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "ssq.json"))
	if err != nil {
		t.Fatalf("read store file: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("store file rewritten on a run with no new upstream data")
	}
	if extra := notifier.issues[notified:]; len(extra) != 0 {
		t.Errorf("second run re-announced evicted issues %v, want none", extra)
	}
}

func TestNotifierOrderedOldestFirst(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	store := storage.NewFileStore(dir)

	bulk := &fakeBulk{draws: []models.RawDraw{ssqRaw(3), ssqRaw(1), ssqRaw(2)}}
	notifier := &fakeNotifier{}
	u := New(cfg, store, map[string][]sources.Source{models.GameSSQ: {bulk}}, nil, notifier)

	if err := u.RunGame(context.Background(), models.GameSSQ); err != nil {
		t.Fatalf("RunGame error: %v", err)
	}

	want := []string{"2024001", "2024002", "2024003"}
	if len(notifier.issues) != len(want) {
		t.Fatalf("notified %d draws, want %d", len(notifier.issues), len(want))
	}
	for i, issue := range want {
		if notifier.issues[i] != issue {
			t.Errorf("notification %d = %q, want %q", i, notifier.issues[i], issue)
		}
	}
}
