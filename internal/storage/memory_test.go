package storage

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryGetPutDelete(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	if _, err := mem.Get(ctx, KeyPredictions); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get on empty store: err = %v, want ErrNotFound", err)
	}

	if err := mem.Put(ctx, KeyPredictions, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := mem.Get(ctx, KeyPredictions)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `[]` {
		t.Fatalf("Get = %q, want %q", got, `[]`)
	}

	// Overwrite replaces the whole value.
	if err := mem.Put(ctx, KeyPredictions, []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, _ = mem.Get(ctx, KeyPredictions)
	if string(got) != `[{"id":1}]` {
		t.Fatalf("Get after overwrite = %q", got)
	}

	if err := mem.Delete(ctx, KeyPredictions); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := mem.Get(ctx, KeyPredictions); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete: err = %v, want ErrNotFound", err)
	}

	// Deleting a missing key is a no-op.
	if err := mem.Delete(ctx, "winx_never_written"); err != nil {
		t.Fatalf("Delete missing key: %v", err)
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	in := []byte(`{"dark":true}`)
	if err := mem.Put(ctx, KeyDarkMode, in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in[2] = 'X' // caller keeps ownership of its slice

	out, err := mem.Get(ctx, KeyDarkMode)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(out) != `{"dark":true}` {
		t.Fatalf("stored value aliased caller slice: %q", out)
	}

	out[0] = 'X'
	again, _ := mem.Get(ctx, KeyDarkMode)
	if string(again) != `{"dark":true}` {
		t.Fatalf("returned value aliased internal slice: %q", again)
	}
}
