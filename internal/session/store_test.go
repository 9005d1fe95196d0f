package session

import (
	"context"
	"errors"
	"testing"

	"eventplanner/internal/model"
)

func TestMemoryStore_PutGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sess := &model.Session{
		ID:    "abc",
		State: model.StateCollectEventType,
	}

	if err := store.Put(ctx, sess); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != "abc" || got.State != model.StateCollectEventType {
		t.Errorf("got %+v, want stored session", got)
	}

	// Returned sessions are copies; mutating one must not leak back.
	got.State = model.StateDone
	again, _ := store.Get(ctx, "abc")
	if again.State != model.StateCollectEventType {
		t.Error("mutating a returned session leaked into the store")
	}

	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Get(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
