package testutil

import (
	"context"
	"sync"

	"github.com/angelofallars/crewdesk/internal/storage"
)

// RecordingStorage keeps uploads in memory.
type RecordingStorage struct {
	mu      sync.Mutex
	Objects []storage.Object
	Err     error
}

func (r *RecordingStorage) Upload(_ context.Context, obj storage.Object) (*storage.Uploaded, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.Objects = append(r.Objects, obj)
	return &storage.Uploaded{
		FilePath:    obj.Key,
		PublicURL:   storage.PublicURL("https://files.test/storage/v1/object/public", obj.Bucket, obj.Key),
		ContentType: storage.DetectContentType(obj.Data),
	}, nil
}
