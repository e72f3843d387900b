package testutil

import (
	"sync"

	"github.com/angelofallars/crewdesk/internal/pdf"
)

// RecordingRenderer returns a fixed payload and remembers what it drew.
type RecordingRenderer struct {
	mu       sync.Mutex
	Rendered []pdf.Document
	Err      error
}

func (r *RecordingRenderer) Render(doc pdf.Document) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	r.Rendered = append(r.Rendered, doc)
	return []byte("%PDF-1.3 " + doc.FileName()), nil
}

func (r *RecordingRenderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Rendered)
}
