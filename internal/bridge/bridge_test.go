package bridge

import (
	"context"
	"testing"
	"time"

	"linkhub/internal/models"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	submitted := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	in := []models.Upload{
		{ID: 1, Title: "example.com", URL: "https://example.com", Status: models.StatusPending, SubmittedBy: "bob", CreatedAt: submitted},
	}
	if err := b.Save(ctx, KeyUploads, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	var out []models.Upload
	found, err := b.Load(ctx, KeyUploads, &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !found {
		t.Fatal("Load reported key not found after Save")
	}
	if len(out) != 1 {
		t.Fatalf("loaded %d uploads, want 1", len(out))
	}
	if out[0] != in[0] {
		t.Errorf("round-trip mismatch: got %+v, want %+v", out[0], in[0])
	}
	if !out[0].CreatedAt.Equal(submitted) {
		t.Errorf("timestamp did not survive the round trip: %v", out[0].CreatedAt)
	}
}

func TestMemoryLoadMissingKey(t *testing.T) {
	b := NewMemory()

	var out []models.User
	found, err := b.Load(context.Background(), KeyUsers, &out)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if found {
		t.Error("Load reported a never-written key as found")
	}
	if out != nil {
		t.Errorf("Load mutated the destination for a missing key: %v", out)
	}
}

func TestMemorySaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()

	if err := b.Save(ctx, KeyUsers, []models.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}); err != nil {
		t.Fatal(err)
	}
	if err := b.Save(ctx, KeyUsers, []models.User{{ID: 3, Username: "carol"}}); err != nil {
		t.Fatal(err)
	}

	var out []models.User
	if _, err := b.Load(ctx, KeyUsers, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Username != "carol" {
		t.Errorf("second Save did not replace the snapshot wholesale: %+v", out)
	}
}
