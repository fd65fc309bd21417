package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

// blockedDir returns a path that cannot be created as a directory because a
// regular file sits where its parent would be.
func blockedDir(t *testing.T) string {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	return filepath.Join(blocker, "data")
}

func TestFallbackUsesFirstWritableDir(t *testing.T) {
	dir := t.TempDir()
	repo := NewFallbackRepository(zap.NewNop(), blockedDir(t), dir)

	ticket := newTicket("Alice", "alice@example.com", 12345)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, ticketsFileName)); err != nil {
		t.Fatalf("tickets file missing in fallback dir: %v", err)
	}
}

func TestFallbackDegradesToMemory(t *testing.T) {
	repo := NewFallbackRepository(zap.NewNop(), blockedDir(t), blockedDir(t))

	ticket := newTicket("Alice", "alice@example.com", 12345)
	if err := repo.Create(context.Background(), ticket); err != nil {
		t.Fatalf("create on memory tier: %v", err)
	}

	found, err := repo.Find(context.Background(), "alice", "ALICE@example.com", 12345)
	if err != nil {
		t.Fatalf("find on memory tier: %v", err)
	}
	if found.ID != ticket.ID {
		t.Fatalf("found id %q, want %q", found.ID, ticket.ID)
	}
}

func TestFallbackResolvesOnce(t *testing.T) {
	dir := t.TempDir()
	repo := NewFallbackRepository(zap.NewNop(), dir)

	if err := repo.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// Removing the directory after resolution must not trigger a re-probe
	// onto a different tier; the cached file store simply starts erroring.
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}
	if err := repo.Ping(context.Background()); err == nil {
		t.Fatal("ping after dir removal: got nil, want error from the cached file tier")
	}
}
