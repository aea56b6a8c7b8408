package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"butce/internal/testutil"
)

func TestCreateMember(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		m, err := svc.CreateMember(" aytun ")
		testutil.AssertNoError(t, err)
		if m.ID == 0 || m.Name != "aytun" {
			t.Errorf("unexpected member %+v", m)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		_, err := svc.CreateMember("kınık")
		testutil.AssertNoError(t, err)
		_, err = svc.CreateMember("kınık")
		testutil.AssertAppError(t, err, "DUPLICATE_MEMBER")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		_, err := svc.CreateMember("")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("name_length_counts_characters", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewMemberService(db)

		// "ı" is two bytes; 50 of them are still 50 characters.
		m, err := svc.CreateMember(strings.Repeat("ı", 50))
		testutil.AssertNoError(t, err)
		if utf8.RuneCountInString(m.Name) != 50 {
			t.Errorf("expected 50 characters, got %d", utf8.RuneCountInString(m.Name))
		}

		_, err = svc.CreateMember(strings.Repeat("ı", 51))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMemberService(db)

	empty, err := svc.ListMembers()
	testutil.AssertNoError(t, err)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil list, got %v", empty)
	}

	testutil.CreateTestMember(t, db, "kandemir")
	testutil.CreateTestMember(t, db, "aytun")

	members, err := svc.ListMembers()
	testutil.AssertNoError(t, err)
	if len(members) != 2 || members[0].Name != "aytun" || members[1].Name != "kandemir" {
		t.Errorf("expected members sorted by name, got %+v", members)
	}
}

func TestResolveMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMemberService(db)
	a := testutil.CreateTestMember(t, db, "aytun")
	k := testutil.CreateTestMember(t, db, "kandemir")

	t.Run("resolves_all", func(t *testing.T) {
		members, err := svc.ResolveMembers([]uint{k.ID, a.ID})
		testutil.AssertNoError(t, err)
		if len(members) != 2 {
			t.Fatalf("expected 2 members, got %d", len(members))
		}
	})

	t.Run("duplicates_collapse", func(t *testing.T) {
		members, err := svc.ResolveMembers([]uint{a.ID, a.ID, a.ID})
		testutil.AssertNoError(t, err)
		if len(members) != 1 {
			t.Errorf("expected 1 member, got %d", len(members))
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := svc.ResolveMembers(nil)
		testutil.AssertAppError(t, err, "MEMBERS_REQUIRED")
	})

	t.Run("only_zero_ids", func(t *testing.T) {
		_, err := svc.ResolveMembers([]uint{0})
		testutil.AssertAppError(t, err, "MEMBERS_REQUIRED")
	})

	t.Run("unknown_id", func(t *testing.T) {
		_, err := svc.ResolveMembers([]uint{a.ID, 99999})
		testutil.AssertAppError(t, err, "MEMBER_NOT_FOUND")
	})
}

func TestGetMemberByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewMemberService(db)
	a := testutil.CreateTestMember(t, db, "aytun")

	got, err := svc.GetMemberByID(a.ID)
	testutil.AssertNoError(t, err)
	if got.Name != "aytun" {
		t.Errorf("expected aytun, got %s", got.Name)
	}

	_, err = svc.GetMemberByID(424242)
	testutil.AssertAppError(t, err, "NOT_FOUND")
}
