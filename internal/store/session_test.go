package store

import (
	"errors"
	"testing"
)

func TestSessions_StartAndEnd(t *testing.T) {
	repo := testStore(t).Sessions()

	sess, err := repo.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sess.ID == "" {
		t.Fatal("Start() returned session with empty ID")
	}
	if sess.EndedAt != nil {
		t.Error("new session should not have an end time")
	}

	if err := repo.End(sess.ID, 1200, 7); err != nil {
		t.Fatalf("End() error = %v", err)
	}

	got, err := repo.GetByID(sess.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.EndedAt == nil {
		t.Error("ended session should have an end time")
	}
	if got.Frames != 1200 || got.Clicks != 7 {
		t.Errorf("session totals = %d frames, %d clicks, want 1200, 7", got.Frames, got.Clicks)
	}
}

func TestSessions_EndUnknown(t *testing.T) {
	repo := testStore(t).Sessions()

	if err := repo.End("no-such-session", 0, 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("End() error = %v, want ErrNotFound", err)
	}
}

func TestSessions_GetByIDUnknown(t *testing.T) {
	repo := testStore(t).Sessions()

	if _, err := repo.GetByID("no-such-session"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestSessions_List(t *testing.T) {
	repo := testStore(t).Sessions()

	first, err := repo.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	second, err := repo.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	sessions, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("List() returned %d sessions, want 2", len(sessions))
	}

	ids := map[string]bool{sessions[0].ID: true, sessions[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Errorf("List() = %v, missing started sessions", ids)
	}
}

func TestSessions_RecordAndListEvents(t *testing.T) {
	repo := testStore(t).Sessions()

	sess, err := repo.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := repo.RecordEvent(sess.ID, "button_down", 100, 200); err != nil {
		t.Fatalf("RecordEvent(down) error = %v", err)
	}
	if err := repo.RecordEvent(sess.ID, "button_up", 105, 198); err != nil {
		t.Fatalf("RecordEvent(up) error = %v", err)
	}

	events, err := repo.EventsBySession(sess.ID)
	if err != nil {
		t.Fatalf("EventsBySession() error = %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("EventsBySession() returned %d events, want 2", len(events))
	}
	if events[0].Type != "button_down" || events[1].Type != "button_up" {
		t.Errorf("event order = %s, %s, want button_down, button_up", events[0].Type, events[1].Type)
	}
	if events[0].X != 100 || events[0].Y != 200 {
		t.Errorf("event position = (%d, %d), want (100, 200)", events[0].X, events[0].Y)
	}
}

func TestSessions_RecordEvent_InvalidType(t *testing.T) {
	repo := testStore(t).Sessions()

	sess, err := repo.Start()
	if err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Schema restricts event types to button transitions
	if err := repo.RecordEvent(sess.ID, "move", 0, 0); err == nil {
		t.Error("RecordEvent with non-button type should fail")
	}
}

func TestSessions_RecordEvent_UnknownSession(t *testing.T) {
	repo := testStore(t).Sessions()

	// Foreign keys reject events for sessions that do not exist
	if err := repo.RecordEvent("no-such-session", "button_down", 0, 0); err == nil {
		t.Error("RecordEvent for unknown session should fail")
	}
}
