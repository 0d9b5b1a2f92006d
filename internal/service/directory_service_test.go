package service

import (
	"context"
	"testing"

	"github.com/spec-kit/skill-swap-service/internal/domain"
	"github.com/spec-kit/skill-swap-service/internal/repository"
)

type directoryFixture struct {
	svc   *DirectoryService
	users repository.UserRepository
	sarah *domain.User
	john  *domain.User
	sujal *domain.User
	admin *domain.User
}

func newDirectoryFixture(t *testing.T) *directoryFixture {
	t.Helper()
	users := repository.NewMemoryUserRepository()

	sarah := &domain.User{
		Name:          "Sarah Chen",
		Email:         "sarah@example.com",
		SkillsOffered: []string{"React", "JavaScript"},
		SkillsWanted:  []string{"UI Design"},
		Availability:  domain.AvailabilityEvenings,
		Role:          domain.RoleUser,
		Public:        true,
	}
	john := &domain.User{
		Name:          "John Park",
		Email:         "john@example.com",
		SkillsOffered: []string{"UI Design", "Figma"},
		SkillsWanted:  []string{"React"},
		Availability:  domain.AvailabilityWeekends,
		Role:          domain.RoleUser,
		Public:        true,
	}
	sujal := &domain.User{
		Name:          "Sujal Sule",
		Email:         "sujal@example.com",
		SkillsOffered: []string{"HTML", "CSS"},
		SkillsWanted:  []string{"JavaScript"},
		Availability:  domain.AvailabilityWeekends,
		Role:          domain.RoleUser,
		Public:        true,
	}
	admin := &domain.User{
		Name:         "Admin User",
		Email:        "admin@example.com",
		Availability: domain.AvailabilityFlexible,
		Role:         domain.RoleAdmin,
		Public:       false,
	}
	for _, u := range []*domain.User{sarah, john, sujal, admin} {
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	return &directoryFixture{
		svc:   NewDirectoryService(DirectoryDependencies{UserRepo: users}),
		users: users,
		sarah: sarah,
		john:  john,
		sujal: sujal,
		admin: admin,
	}
}

func listedNames(users []domain.User) []string {
	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Name)
	}
	return names
}

func TestListUsers_ExcludesPrivateAndBanned(t *testing.T) {
	f := newDirectoryFixture(t)

	f.sujal.Banned = true
	if err := f.users.Update(context.Background(), f.sujal); err != nil {
		t.Fatalf("update: %v", err)
	}

	users, err := f.svc.ListUsers(context.Background(), DirectoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 public unbanned users, got %v", listedNames(users))
	}
	for _, u := range users {
		if u.Name == "Sujal Sule" || u.Name == "Admin User" {
			t.Fatalf("unexpected user in directory: %s", u.Name)
		}
	}
}

func TestListUsers_SearchIsCaseInsensitive(t *testing.T) {
	f := newDirectoryFixture(t)

	for _, query := range []string{"react", "REACT", "React"} {
		users, err := f.svc.ListUsers(context.Background(), DirectoryFilter{Query: query})
		if err != nil {
			t.Fatalf("list %q: %v", query, err)
		}
		// Sarah offers React, John wants React.
		if len(users) != 2 {
			t.Fatalf("query %q: expected 2 matches, got %v", query, listedNames(users))
		}
	}

	users, err := f.svc.ListUsers(context.Background(), DirectoryFilter{Query: "sujal"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 1 || users[0].Name != "Sujal Sule" {
		t.Fatalf("expected name match for Sujal, got %v", listedNames(users))
	}
}

func TestListUsers_AvailabilityFilter(t *testing.T) {
	f := newDirectoryFixture(t)

	users, err := f.svc.ListUsers(context.Background(), DirectoryFilter{Availability: "weekends"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected John and Sujal, got %v", listedNames(users))
	}

	_, err = f.svc.ListUsers(context.Background(), DirectoryFilter{Availability: "never"})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestListUsers_PaginationLaw(t *testing.T) {
	f := newDirectoryFixture(t)

	all, err := f.svc.ListUsers(context.Background(), DirectoryFilter{PageSize: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var joined []domain.User
	for page := 1; ; page++ {
		chunk, err := f.svc.ListUsers(context.Background(), DirectoryFilter{Page: page, PageSize: 2})
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if len(chunk) == 0 {
			break
		}
		joined = append(joined, chunk...)
	}
	if len(joined) != len(all) {
		t.Fatalf("concatenated pages have %d users, want %d", len(joined), len(all))
	}
	for i := range all {
		if joined[i].ID != all[i].ID {
			t.Fatalf("user %d differs between paged and unpaged listing", i)
		}
	}
}

func TestUpdateProfile_Authorization(t *testing.T) {
	f := newDirectoryFixture(t)

	input := ProfileUpdateInput{
		Name:          "Sarah C.",
		Location:      "Portland",
		SkillsOffered: []string{"React"},
		Availability:  domain.AvailabilityFlexible,
	}

	_, err := f.svc.UpdateProfile(context.Background(), f.john, f.sarah.ID, input)
	assertDomainCode(t, err, "UNAUTHORIZED")

	updated, err := f.svc.UpdateProfile(context.Background(), f.sarah, f.sarah.ID, input)
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if updated.Name != "Sarah C." || updated.Location != "Portland" {
		t.Fatalf("update not applied: %+v", updated)
	}

	input.Name = "Sarah Chen"
	if _, err := f.svc.UpdateProfile(context.Background(), f.admin, f.sarah.ID, input); err != nil {
		t.Fatalf("admin override: %v", err)
	}
}

func TestUpdateProfile_MissingTargetIsNotFound(t *testing.T) {
	f := newDirectoryFixture(t)

	input := ProfileUpdateInput{
		Name:         "Ghost",
		Availability: domain.AvailabilityFlexible,
	}

	// A missing profile reports NOT_FOUND to owner and non-owner alike,
	// so the error does not reveal whether the id exists.
	_, err := f.svc.UpdateProfile(context.Background(), f.john, "missing-id", input)
	assertDomainCode(t, err, "NOT_FOUND")

	_, err = f.svc.UpdateProfile(context.Background(), f.admin, "missing-id", input)
	assertDomainCode(t, err, "NOT_FOUND")

	_, err = f.svc.AddSkill(context.Background(), f.john, "missing-id", SkillListOffered, "Go")
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestDirectoryCacheable(t *testing.T) {
	weekends := domain.AvailabilityWeekends

	if !directoryCacheable("", nil, 1, defaultDirectoryPageSize) {
		t.Fatal("expected default-shaped first page to be cacheable")
	}
	uncacheable := []struct {
		name         string
		query        string
		availability *domain.Availability
		page         int
		pageSize     int
	}{
		{"search query", "react", nil, 1, defaultDirectoryPageSize},
		{"availability filter", "", &weekends, 1, defaultDirectoryPageSize},
		{"later page", "", nil, 2, defaultDirectoryPageSize},
		{"custom page size", "", nil, 1, 50},
	}
	for _, tc := range uncacheable {
		if directoryCacheable(tc.query, tc.availability, tc.page, tc.pageSize) {
			t.Errorf("%s: expected request not to be cacheable", tc.name)
		}
	}
}

func TestUpdateProfile_Validation(t *testing.T) {
	f := newDirectoryFixture(t)

	_, err := f.svc.UpdateProfile(context.Background(), f.sarah, f.sarah.ID, ProfileUpdateInput{
		Name:         "  ",
		Availability: domain.AvailabilityEvenings,
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")

	_, err = f.svc.UpdateProfile(context.Background(), f.sarah, f.sarah.ID, ProfileUpdateInput{
		Name:         "Sarah Chen",
		Availability: domain.Availability("SOMETIMES"),
	})
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestAddSkill(t *testing.T) {
	f := newDirectoryFixture(t)

	updated, err := f.svc.AddSkill(context.Background(), f.sarah, f.sarah.ID, SkillListOffered, "TypeScript")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(updated.SkillsOffered) != 3 || updated.SkillsOffered[2] != "TypeScript" {
		t.Fatalf("expected TypeScript appended, got %v", updated.SkillsOffered)
	}

	_, err = f.svc.AddSkill(context.Background(), f.sarah, f.sarah.ID, SkillListOffered, "React")
	assertDomainCode(t, err, "DUPLICATE_SKILL")

	// Case differs, so this is a distinct entry.
	if _, err := f.svc.AddSkill(context.Background(), f.sarah, f.sarah.ID, SkillListOffered, "react"); err != nil {
		t.Fatalf("add lowercase variant: %v", err)
	}

	_, err = f.svc.AddSkill(context.Background(), f.sarah, f.sarah.ID, SkillListWanted, "  ")
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestRemoveSkill(t *testing.T) {
	f := newDirectoryFixture(t)

	updated, err := f.svc.RemoveSkill(context.Background(), f.sarah, f.sarah.ID, SkillListOffered, 0)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(updated.SkillsOffered) != 1 || updated.SkillsOffered[0] != "JavaScript" {
		t.Fatalf("expected remaining order preserved, got %v", updated.SkillsOffered)
	}

	_, err = f.svc.RemoveSkill(context.Background(), f.sarah, f.sarah.ID, SkillListOffered, 5)
	assertDomainCode(t, err, "INDEX_OUT_OF_RANGE")

	_, err = f.svc.RemoveSkill(context.Background(), f.sarah, f.sarah.ID, SkillListWanted, -1)
	assertDomainCode(t, err, "INDEX_OUT_OF_RANGE")
}

func TestSetVisibility(t *testing.T) {
	f := newDirectoryFixture(t)

	if _, err := f.svc.SetVisibility(context.Background(), f.sarah, f.sarah.ID, false); err != nil {
		t.Fatalf("set visibility: %v", err)
	}

	users, err := f.svc.ListUsers(context.Background(), DirectoryFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, u := range users {
		if u.ID == f.sarah.ID {
			t.Fatal("hidden profile still listed in directory")
		}
	}

	// Direct lookup still works for a hidden profile.
	if _, err := f.svc.GetUser(context.Background(), f.sarah.ID); err != nil {
		t.Fatalf("get hidden profile: %v", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	f := newDirectoryFixture(t)
	_, err := f.svc.GetUser(context.Background(), "missing-id")
	assertDomainCode(t, err, "NOT_FOUND")
}
