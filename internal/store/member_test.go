package store

import (
	"testing"
	"time"
)

func TestMemberCreateAndGet(t *testing.T) {
	s := NewMemberStore(setupTestDB(t))

	joined := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	created, err := s.Create("Grimnir", "Officer", "Warrior", &joined, "founding member")
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if created.Name != "Grimnir" || created.Rank != "Officer" || created.Class != "Warrior" {
		t.Errorf("member = %+v", created)
	}
	if created.JoinedAt == nil || !created.JoinedAt.Equal(joined) {
		t.Errorf("joined_at = %v, want %v", created.JoinedAt, joined)
	}

	got, err := s.GetByName("Grimnir")
	if err != nil {
		t.Fatalf("get by name: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Errorf("get by name returned %+v", got)
	}
}

func TestMemberListSortedByName(t *testing.T) {
	s := NewMemberStore(setupTestDB(t))

	for _, name := range []string{"zara", "Aldric", "Merek"} {
		if _, err := s.Create(name, "Member", "", nil, ""); err != nil {
			t.Fatalf("create %q: %v", name, err)
		}
	}

	members, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Aldric", "Merek", "zara"} // case-insensitive sort
	if len(members) != len(want) {
		t.Fatalf("got %d members, want %d", len(members), len(want))
	}
	for i := range want {
		if members[i].Name != want[i] {
			t.Errorf("members[%d] = %q, want %q", i, members[i].Name, want[i])
		}
	}
}

func TestMemberUpsert(t *testing.T) {
	s := NewMemberStore(setupTestDB(t))

	first, err := s.Upsert("Grimnir", "Member", "Warrior", nil)
	if err != nil {
		t.Fatalf("upsert create: %v", err)
	}

	joined := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	second, err := s.Upsert("Grimnir", "Officer", "Warrior", &joined)
	if err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a duplicate: %d vs %d", second.ID, first.ID)
	}
	if second.Rank != "Officer" {
		t.Errorf("rank = %q, want Officer", second.Rank)
	}

	members, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("got %d members, want 1", len(members))
	}
}

func TestMemberDelete(t *testing.T) {
	s := NewMemberStore(setupTestDB(t))

	created, err := s.Create("Temp", "Recruit", "", nil, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := s.GetByID(created.ID)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}
