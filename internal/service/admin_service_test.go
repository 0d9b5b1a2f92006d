package service

import (
	"context"
	"testing"

	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/repository"
)

type adminFixture struct {
	*swapFixture
	svc      *AdminService
	feedback *FeedbackService
	admin    *domain.User
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	base := newSwapFixture(t)
	feedbackRepo := repository.NewMemoryFeedbackRepository()

	admin := &domain.User{
		Name:         "Admin User",
		Email:        "admin@example.com",
		Availability: domain.AvailabilityFlexible,
		Role:         domain.RoleAdmin,
	}
	if err := base.users.Create(context.Background(), admin); err != nil {
		t.Fatalf("create admin: %v", err)
	}

	return &adminFixture{
		swapFixture: base,
		svc: NewAdminService(AdminDependencies{
			UserRepo:         base.users,
			SwapRepo:         base.swaps,
			FeedbackRepo:     feedbackRepo,
			AnnouncementRepo: repository.NewMemoryAnnouncementRepository(),
		}),
		feedback: NewFeedbackService(FeedbackDependencies{
			FeedbackRepo: feedbackRepo,
			SwapRepo:     base.swaps,
			UserRepo:     base.users,
		}),
		admin: admin,
	}
}

func TestListAllUsers_IncludesBannedAndPrivate(t *testing.T) {
	f := newAdminFixture(t)

	if _, err := f.svc.SetBanned(context.Background(), f.admin.ID, f.john.ID, true); err != nil {
		t.Fatalf("ban: %v", err)
	}

	users, err := f.svc.ListAllUsers(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Sarah, John (banned) and the admin (private profile).
	if len(users) != 3 {
		t.Fatalf("expected all 3 accounts, got %d", len(users))
	}
}

func TestSetBanned_BlocksSwapParticipation(t *testing.T) {
	f := newAdminFixture(t)

	banned, err := f.svc.SetBanned(context.Background(), f.admin.ID, f.john.ID, true)
	if err != nil {
		t.Fatalf("ban: %v", err)
	}
	if !banned.Banned {
		t.Fatal("expected banned flag set")
	}

	_, err = f.swapFixture.svc.Submit(context.Background(), f.sarah.ID, SwapSubmitInput{
		ToUserID:     f.john.ID,
		SkillOffered: "React",
		SkillWanted:  "UI Design",
		Message:      "hi",
	})
	assertDomainCode(t, err, "USER_BANNED")

	unbanned, err := f.svc.SetBanned(context.Background(), f.admin.ID, f.john.ID, false)
	if err != nil {
		t.Fatalf("unban: %v", err)
	}
	if unbanned.Banned {
		t.Fatal("expected banned flag cleared")
	}

	_, err = f.svc.SetBanned(context.Background(), f.admin.ID, "missing-id", true)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestDeleteUser(t *testing.T) {
	f := newAdminFixture(t)

	if err := f.svc.DeleteUser(context.Background(), f.john.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	users, err := f.svc.ListAllUsers(context.Background(), 1, 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, u := range users {
		if u.ID == f.john.ID {
			t.Fatal("deleted user still listed")
		}
	}

	err = f.svc.DeleteUser(context.Background(), f.john.ID)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestDeleteSwap(t *testing.T) {
	f := newAdminFixture(t)
	swap := f.submit(t)

	// Admin removal works even after the request is resolved.
	if _, err := f.swapFixture.svc.Respond(context.Background(), swap.ID, domain.SwapDecisionAccept, f.john.ID); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if err := f.svc.DeleteSwap(context.Background(), swap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	err := f.svc.DeleteSwap(context.Background(), swap.ID)
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestDeleteSwap_RemovesFeedback(t *testing.T) {
	f := newAdminFixture(t)
	swap := f.submit(t)

	if _, err := f.swapFixture.svc.Respond(context.Background(), swap.ID, domain.SwapDecisionAccept, f.john.ID); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if _, err := f.feedback.Leave(context.Background(), f.sarah.ID, swap.ID, 5, "great session"); err != nil {
		t.Fatalf("leave feedback: %v", err)
	}

	if err := f.svc.DeleteSwap(context.Background(), swap.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	left, err := f.feedback.ListForUser(context.Background(), f.john.ID)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected feedback removed with swap, got %d entries", len(left))
	}
}

func TestDeleteUser_RemovesSwapsAndFeedback(t *testing.T) {
	f := newAdminFixture(t)
	swap := f.submit(t)

	if _, err := f.swapFixture.svc.Respond(context.Background(), swap.ID, domain.SwapDecisionAccept, f.john.ID); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if _, err := f.feedback.Leave(context.Background(), f.john.ID, swap.ID, 4, "thanks"); err != nil {
		t.Fatalf("leave feedback: %v", err)
	}

	if err := f.svc.DeleteUser(context.Background(), f.john.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	remaining, err := f.swaps.List(context.Background(), repository.SwapFilter{ParticipantID: &f.john.ID})
	if err != nil {
		t.Fatalf("list swaps: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected john's swaps removed, got %d", len(remaining))
	}

	left, err := f.feedback.ListForUser(context.Background(), f.sarah.ID)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("expected john's feedback removed, got %d entries", len(left))
	}
}

func TestAnnouncements(t *testing.T) {
	f := newAdminFixture(t)

	_, err := f.svc.Announce(context.Background(), f.admin.ID, "   ")
	assertDomainCode(t, err, "VALIDATION_FAILED")

	first, err := f.svc.Announce(context.Background(), f.admin.ID, "Welcome to the exchange!")
	if err != nil {
		t.Fatalf("announce: %v", err)
	}
	if first.ID == "" || first.PostedBy != f.admin.ID {
		t.Fatalf("unexpected announcement: %+v", first)
	}

	second, err := f.svc.Announce(context.Background(), f.admin.ID, "Maintenance window Friday.")
	if err != nil {
		t.Fatalf("announce: %v", err)
	}

	listed, err := f.svc.ListAnnouncements(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Fatalf("expected newest-first ordering, got %+v", listed)
	}
}
