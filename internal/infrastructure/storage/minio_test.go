package storage

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteHost(t *testing.T) {
	u, err := url.Parse("http://minio:9000/polyglot-minutes/audio/abc/standup%20call.wav?X-Amz-Expires=3600&X-Amz-Signature=deadbeef")
	require.NoError(t, err)

	assert.Equal(t, u.String(), rewriteHost(u, ""))
	assert.Equal(t,
		"https://files.example.com/polyglot-minutes/audio/abc/standup%20call.wav?X-Amz-Expires=3600&X-Amz-Signature=deadbeef",
		rewriteHost(u, "https://files.example.com"),
	)
}

func TestRewriteHost_NoQuery(t *testing.T) {
	u, err := url.Parse("http://minio:9000/bucket/notes/id/meeting_notes.json")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.test/bucket/notes/id/meeting_notes.json", rewriteHost(u, "https://cdn.test"))
}
