package state

import (
	"context"
	"testing"
)

func TestMemoryManagerDefaults(t *testing.T) {
	m := NewMemoryManager()
	sess, err := m.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.State != StateNone {
		t.Errorf("default state = %q, want %q", sess.State, StateNone)
	}
	if len(sess.Data) != 0 {
		t.Errorf("default data not empty: %v", sess.Data)
	}
}

func TestMemoryManagerMergeOnSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()

	if err := m.Set(ctx, 7, State("step_one"), map[string]string{"ism": "Ali"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set(ctx, 7, State("step_two"), map[string]string{"familiya": "Valiyev"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess, err := m.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if sess.State != State("step_two") {
		t.Errorf("state = %q, want step_two", sess.State)
	}
	if sess.Data["ism"] != "Ali" {
		t.Errorf("earlier data lost: %v", sess.Data)
	}
	if sess.Data["familiya"] != "Valiyev" {
		t.Errorf("patch not merged: %v", sess.Data)
	}
}

func TestMemoryManagerGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()
	if err := m.Set(ctx, 3, State("s"), map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Set: %v", err)
	}

	sess, _ := m.Get(ctx, 3)
	sess.Data["k"] = "mutated"

	again, _ := m.Get(ctx, 3)
	if again.Data["k"] != "v" {
		t.Errorf("stored session mutated through returned copy")
	}
}

func TestMemoryManagerClear(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryManager()
	if err := m.Set(ctx, 5, State("s"), map[string]string{"k": "v"}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Clear(ctx, 5); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	sess, _ := m.Get(ctx, 5)
	if sess.State != StateNone || len(sess.Data) != 0 {
		t.Errorf("session not cleared: %+v", sess)
	}
}
