package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Smallest valid PNG header.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://project.supabase.co/storage/v1/object/public/event_files/42/call%20sheet.pdf",
		PublicURL("https://project.supabase.co/storage/v1/object/public/", "event_files", "42/call sheet.pdf"),
	)
}

func TestDetectContentType(t *testing.T) {
	assert.Equal(t, "image/png", DetectContentType(pngHeader))
	assert.True(t, IsImage(pngHeader))
	assert.Equal(t, "png", Extension(pngHeader, "bin"))

	assert.Equal(t, "application/octet-stream", DetectContentType([]byte("plain text")))
	assert.False(t, IsImage([]byte("plain text")))
	assert.Equal(t, "txt", Extension([]byte("plain text"), ".txt"))
}
