package desktop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeScript(t *testing.T, body string) string {
	t.Helper()
	return writeFile(t, t.TempDir(), "probe", "#!/bin/sh\n"+body+"\n", 0o755)
}

func TestDetectServer(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{
			name:     "daemon keyword",
			body:     `echo "Run the application daemon"`,
			expected: true,
		},
		{
			name:     "server keyword",
			body:     `echo "usage: probe server [options]"`,
			expected: true,
		},
		{
			name:     "keyword matched case-insensitively",
			body:     `echo "START the thing"`,
			expected: true,
		},
		{
			name:     "no keywords",
			body:     `echo "usage: probe [options] FILE"`,
			expected: false,
		},
		{
			name:     "keyword on stderr with non-zero exit",
			body:     `echo "probe daemon" >&2; exit 1`,
			expected: true,
		},
	}

	b := NewBuilder(testLayout(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := probeScript(t, tt.body)
			assert.Equal(t, tt.expected, b.DetectServer(context.Background(), script))
		})
	}
}

func TestDetectServer_MissingExecutable(t *testing.T) {
	b := NewBuilder(testLayout(t))
	assert.False(t, b.DetectServer(context.Background(), "/nonexistent/binary"))
}

func TestDetectServer_TimeoutMeansNotAServer(t *testing.T) {
	b := NewBuilder(testLayout(t))
	b.ProbeTimeout = 50 * time.Millisecond
	// The script would match "server" if the probe waited for it.
	script := probeScript(t, `sleep 5; echo "server"`)

	start := time.Now()
	result := b.DetectServer(context.Background(), script)
	elapsed := time.Since(start)

	assert.False(t, result)
	require.Less(t, elapsed, 3*time.Second, "probe must be bounded by the timeout")
}
