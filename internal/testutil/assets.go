package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/imanprime/estatecms/internal/app/assets"
)

// FakeAssetStore is an in-memory assets.Store for handler tests. Uploaded
// refs use the same /v<digits>/ URL shape the real store produces so
// PublicIDFromURL round-trips.
type FakeAssetStore struct {
	mu       sync.Mutex
	seq      atomic.Int64
	Uploaded []assets.Ref
	Deleted  []string

	// FailUploads/FailDeletes make the corresponding calls error.
	FailUploads bool
	FailDeletes bool
}

// NewFakeAssetStore returns an empty fake store.
func NewFakeAssetStore() *FakeAssetStore {
	return &FakeAssetStore{}
}

// Upload records the call and fabricates a ref without reading r fully.
func (f *FakeAssetStore) Upload(ctx context.Context, folder, name string, r io.Reader) (assets.Ref, error) {
	if f.FailUploads {
		return assets.Ref{}, errors.New("fake upload failure")
	}
	// Drain so handlers that stream the file behave as in production.
	_, _ = io.Copy(io.Discard, r)

	n := f.seq.Add(1)
	publicID := fmt.Sprintf("%s/%s-%d", folder, name, n)
	ref := assets.Ref{
		URL:      fmt.Sprintf("https://fake.example/v1/%s.jpg", publicID),
		PublicID: publicID,
	}

	f.mu.Lock()
	f.Uploaded = append(f.Uploaded, ref)
	f.mu.Unlock()
	return ref, nil
}

// Delete records the call.
func (f *FakeAssetStore) Delete(ctx context.Context, publicID string) error {
	if f.FailDeletes {
		return errors.New("fake delete failure")
	}
	f.mu.Lock()
	f.Deleted = append(f.Deleted, publicID)
	f.mu.Unlock()
	return nil
}

// DeletedIDs returns a copy of the recorded delete calls.
func (f *FakeAssetStore) DeletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Deleted...)
}
