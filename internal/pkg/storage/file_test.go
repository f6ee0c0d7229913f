package storage

import (
	"reflect"
	"testing"

	"lottokit/internal/pkg/models"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	records := []models.DrawRecord{
		{Issue: "2024005", Date: "2024-01-09", Week: "周二", Red: []int{1, 5, 12, 18, 22, 29}, Blue: []int{7}},
		{Issue: "2024004", Date: "2024-01-07", Week: "周日", Red: []int{2, 8, 14, 20, 26, 33}, Blue: []int{11}},
	}

	if err := store.Save("ssq", records); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Load("ssq")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("Load = %+v, want %+v", got, records)
	}
}

func TestFileStoreUnknownGame(t *testing.T) {
	store := NewFileStore(t.TempDir())

	got, err := store.Load("nope")
	if err != nil {
		t.Fatalf("Load error for unknown game: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load unknown game = %v, want empty", got)
	}
}
