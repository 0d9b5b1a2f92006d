package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/skill-swap-service/internal/domain"
)

func newPendingSwap(t *testing.T, repo SwapRepository, from, to string) *domain.SwapRequest {
	t.Helper()
	swap := &domain.SwapRequest{
		FromUserID:   from,
		ToUserID:     to,
		SkillOffered: "React",
		SkillWanted:  "UI Design",
		Message:      "hi",
		Status:       domain.SwapStatusPending,
	}
	if err := repo.Create(context.Background(), swap); err != nil {
		t.Fatalf("create: %v", err)
	}
	return swap
}

func TestMemorySwapResolve_CAS(t *testing.T) {
	repo := NewMemorySwapRepository()
	swap := newPendingSwap(t, repo, "a", "b")

	resolved, err := repo.Resolve(context.Background(), swap.ID, domain.SwapStatusAccepted, time.Now())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != domain.SwapStatusAccepted || resolved.ResolvedAt == nil {
		t.Fatalf("unexpected resolve result: %+v", resolved)
	}

	if _, err := repo.Resolve(context.Background(), swap.ID, domain.SwapStatusRejected, time.Now()); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}

	if _, err := repo.Resolve(context.Background(), "missing-id", domain.SwapStatusAccepted, time.Now()); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestMemorySwapList_Ordering(t *testing.T) {
	repo := NewMemorySwapRepository()

	first := newPendingSwap(t, repo, "a", "b")
	second := newPendingSwap(t, repo, "b", "c")
	third := newPendingSwap(t, repo, "c", "a")

	all, err := repo.List(context.Background(), SwapFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != third.ID || all[1].ID != second.ID || all[2].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %+v", all)
	}

	participant := "b"
	scoped, err := repo.List(context.Background(), SwapFilter{ParticipantID: &participant})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 records involving %q, got %d", participant, len(scoped))
	}
}

func TestMemorySwapReadersSeeCopies(t *testing.T) {
	repo := NewMemorySwapRepository()
	swap := newPendingSwap(t, repo, "a", "b")

	got, err := repo.GetByID(context.Background(), swap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = domain.SwapStatusRejected

	again, err := repo.GetByID(context.Background(), swap.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Status != domain.SwapStatusPending {
		t.Fatal("mutating a returned record leaked into the store")
	}
}

func TestMemorySwapDeletePending_CAS(t *testing.T) {
	repo := NewMemorySwapRepository()

	pending := newPendingSwap(t, repo, "a", "b")
	if err := repo.DeletePending(context.Background(), pending.ID); err != nil {
		t.Fatalf("delete pending: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), pending.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected record gone, got %v", err)
	}

	accepted := newPendingSwap(t, repo, "a", "b")
	if _, err := repo.Resolve(context.Background(), accepted.ID, domain.SwapStatusAccepted, time.Now()); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := repo.DeletePending(context.Background(), accepted.ID); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
	if _, err := repo.GetByID(context.Background(), accepted.ID); err != nil {
		t.Fatalf("expected resolved record kept, got %v", err)
	}

	if err := repo.DeletePending(context.Background(), "missing-id"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}
}

func TestMemorySwapDeleteForParticipant(t *testing.T) {
	repo := NewMemorySwapRepository()

	newPendingSwap(t, repo, "a", "b")
	newPendingSwap(t, repo, "b", "c")
	kept := newPendingSwap(t, repo, "c", "a")

	if err := repo.DeleteForParticipant(context.Background(), "b"); err != nil {
		t.Fatalf("delete for participant: %v", err)
	}

	all, err := repo.List(context.Background(), SwapFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 || all[0].ID != kept.ID {
		t.Fatalf("expected only the uninvolved record to remain, got %+v", all)
	}
}

func TestMemorySwapDelete(t *testing.T) {
	repo := NewMemorySwapRepository()
	swap := newPendingSwap(t, repo, "a", "b")

	if err := repo.Delete(context.Background(), swap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(context.Background(), swap.ID); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected pgx.ErrNoRows, got %v", err)
	}

	all, err := repo.List(context.Background(), SwapFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty ledger, got %d", len(all))
	}
}
