package ui

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/leapstack-labs/signalboard/internal/loader"
	"github.com/leapstack-labs/signalboard/internal/sampledata"
	"github.com/leapstack-labs/signalboard/internal/testutil"
	"github.com/leapstack-labs/signalboard/internal/ui/features"
	"github.com/leapstack-labs/signalboard/internal/ui/notifier"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Loader == nil {
		cfg.Loader = loader.New(loader.FSSource(sampledata.FS(), "sample"), testutil.NewTestLogger(t))
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = features.TestSessionSecret
	}
	cfg.Logger = testutil.NewTestLogger(t)
	return NewServer(cfg)
}

func TestServer_ServeAndShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.ServeListener(ctx, ln) }()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}, Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Network Overview")
	assert.Equal(t, 1, s.Registry().Len())

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down")
	}
	client.CloseIdleConnections()
}

func TestServer_HandlerCompresses(t *testing.T) {
	s := newTestServer(t, Config{})
	h, err := s.Handler()
	require.NoError(t, err)

	srv := &http.Server{Handler: h, ReadHeaderTimeout: time.Second}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = srv.Serve(ln) }()
	defer func() { _ = srv.Close() }()

	req, err := http.NewRequest(http.MethodGet, "http://"+ln.Addr().String()+"/static/dashboard.css", nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")
	transport := &http.Transport{DisableCompression: true}
	defer transport.CloseIdleConnections()

	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
}

func TestServer_WatchDisabledWithoutDir(t *testing.T) {
	s := newTestServer(t, Config{Watch: true})
	assert.False(t, s.watch)
}

func writeSample(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{"config.json", "scenarios.json", "overview.json", "corridors.json", "fleet.json"} {
		data, err := fsReadFile(name)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0600))
	}
}

func fsReadFile(name string) ([]byte, error) {
	f, err := sampledata.FS().Open(name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

func TestServer_WatchData(t *testing.T) {
	dir := t.TempDir()
	writeSample(t, dir)

	s := newTestServer(t, Config{
		Loader:  loader.New(loader.DirSource(dir), testutil.NewTestLogger(t)),
		Watch:   true,
		DataDir: dir,
	})
	events := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(events)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.watchData(ctx) }()
	defer func() {
		cancel()
		assert.NoError(t, <-done)
	}()

	touch := func(name string) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0600))
	}

	// The watcher registers asynchronously, so keep touching until it reports.
	var got notifier.Event
	require.Eventually(t, func() bool {
		touch("fleet.json")
		select {
		case got = <-events:
			return true
		case <-time.After(150 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, notifier.Event{Kind: notifier.DataChanged, Tabs: []string{"fleet"}}, got)

	touch("config.json")
	select {
	case got = <-events:
		assert.Equal(t, notifier.Reload, got.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload event for config change")
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0600))
	select {
	case got = <-events:
		t.Errorf("unexpected event %+v for non-data file", got)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestChangeSet(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  notifier.Event
	}{
		{
			name:  "tab files",
			files: []string{"/data/ops.json", "/data/fleet.json", "/data/ops.json"},
			want:  notifier.Event{Kind: notifier.DataChanged, Tabs: []string{"ops", "fleet"}},
		},
		{
			name:  "catalog forces reload",
			files: []string{"/data/ops.json", "/data/scenarios.json"},
			want:  notifier.Event{Kind: notifier.Reload},
		},
		{
			name:  "non json ignored",
			files: []string{"/data/readme.md", "/data/.ops.json.swp"},
			want:  notifier.Event{Kind: notifier.DataChanged},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c changeSet
			for _, f := range tt.files {
				c.add(f)
			}
			assert.Equal(t, tt.want, c.take())
			assert.Equal(t, notifier.Event{Kind: notifier.DataChanged}, c.take(), "take resets the set")
		})
	}
}

func TestPublish_InvalidatesSessions(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, Config{})
	sess := s.Registry().Start("")
	require.NoError(t, sess.Controller.Bootstrap(ctx))
	require.True(t, sess.Cache.Cached("overview"))

	events := s.Notifier().Subscribe()
	defer s.Notifier().Unsubscribe(events)

	s.publish(notifier.Event{Kind: notifier.DataChanged})
	assert.True(t, sess.Cache.Cached("overview"), "empty change set is dropped")

	s.publish(notifier.Event{Kind: notifier.DataChanged, Tabs: []string{"overview"}})
	assert.False(t, sess.Cache.Cached("overview"))
	assert.Equal(t, []string{"overview"}, (<-events).Tabs)
}
