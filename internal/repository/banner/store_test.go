package banner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arkadiuszzietek/doofinder-woocommerce/internal/db"
	dombanner "github.com/arkadiuszzietek/doofinder-woocommerce/internal/domain/search/banner"
)

type fakeKV struct {
	data    map[string][]byte
	lastTTL time.Duration
	setErr  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string][]byte{}}
}

func (f *fakeKV) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeKV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.lastTTL = ttl
	return nil
}

func (f *fakeKV) Del(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestStoreRoundTrip(t *testing.T) {
	kv := newFakeKV()
	store := New(kv, 30*time.Minute)
	ctx := context.Background()

	in := dombanner.New(42, []byte(`{"image":"sale.png"}`))
	if err := store.Put(ctx, "req-1", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if kv.lastTTL != 30*time.Minute {
		t.Errorf("ttl = %v, want 30m", kv.lastTTL)
	}

	out, err := store.Get(ctx, "req-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if out == nil {
		t.Fatal("expected a stored banner")
	}
	if out.ID() != 42 {
		t.Errorf("id = %d, want 42", out.ID())
	}
	if string(out.Payload()) != `{"image":"sale.png"}` {
		t.Errorf("payload = %s", out.Payload())
	}
}

func TestStoreGet_Missing(t *testing.T) {
	store := New(newFakeKV(), time.Minute)

	b, err := store.Get(context.Background(), "never-stored")
	if err != nil {
		t.Fatalf("a missing banner is not an error: %v", err)
	}
	if b != nil {
		t.Errorf("banner = %+v, want nil", b)
	}
}

func TestStoreGet_IsolatedPerRequest(t *testing.T) {
	kv := newFakeKV()
	store := New(kv, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "req-a", dombanner.New(1, nil)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	b, err := store.Get(ctx, "req-b")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b != nil {
		t.Error("a banner must never leak across request identities")
	}
}

func TestStoreDelete(t *testing.T) {
	kv := newFakeKV()
	store := New(kv, time.Minute)
	ctx := context.Background()

	if err := store.Put(ctx, "req-1", dombanner.New(7, nil)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Delete(ctx, "req-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	b, err := store.Get(ctx, "req-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if b != nil {
		t.Error("banner must be gone after Delete")
	}
}

func TestStorePut_Error(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("cache down")
	store := New(kv, time.Minute)

	if err := store.Put(context.Background(), "req-1", dombanner.New(7, nil)); err == nil {
		t.Fatal("expected error")
	}
}
