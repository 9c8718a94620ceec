package client

import (
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/stretchr/testify/require"
)

// recordingLogger keeps every message for assertions.
type recordingLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *recordingLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, level+": "+msg)
}

func (l *recordingLogger) Debug(msg string, _ map[string]interface{}) { l.add("debug", msg) }
func (l *recordingLogger) Info(msg string, _ map[string]interface{})  { l.add("info", msg) }
func (l *recordingLogger) Warn(msg string, _ map[string]interface{})  { l.add("warn", msg) }
func (l *recordingLogger) Error(msg string, _ map[string]interface{}) { l.add("error", msg) }

// newTestClient creates a client talking to server over plain HTTP.
func newTestClient(t *testing.T, server *httptest.Server, mutate ...func(*soda.Config)) *Client {
	t.Helper()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)

	config := &soda.Config{
		Domain:    u.Host,
		URIPrefix: "http://",
		AppToken:  "app-token",
		Logger:    soda.NoopLogger{},
	}

	for _, fn := range mutate {
		fn(config)
	}

	client, err := New(config)
	require.NoError(t, err)

	t.Cleanup(func() { _ = client.Close() })

	return client
}
