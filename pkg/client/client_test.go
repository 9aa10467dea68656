package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeAPI serves a tiny in-memory projects collection.
type fakeAPI struct {
	mu       sync.Mutex
	projects map[string]Project
	gets     atomic.Int64
	gate     chan struct{}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	path := strings.TrimPrefix(r.URL.Path, "/api")
	switch {
	case r.Method == http.MethodGet && path == "/projects":
		f.gets.Add(1)
		if f.gate != nil {
			<-f.gate
		}
		f.mu.Lock()
		out := []Project{}
		for _, p := range f.projects {
			if r.URL.Query().Get("featured") == "true" && !p.Featured {
				continue
			}
			out = append(out, p)
		}
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(out)
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/projects/"):
		f.gets.Add(1)
		f.mu.Lock()
		p, ok := f.projects[strings.TrimPrefix(path, "/projects/")]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Project not found"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPut && strings.HasPrefix(path, "/projects/"):
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Unauthorized"}`)
			return
		}
		id := strings.TrimPrefix(path, "/projects/")
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		f.mu.Lock()
		p := f.projects[id]
		if title, ok := patch["title"].(string); ok {
			p.Title = title
		}
		f.projects[id] = p
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodPost && path == "/auth/login":
		_, _ = io.WriteString(w, `{"token":"tok","user":{"id":"1","email":"a@b.c","name":"Admin"}}`)
	case r.Method == http.MethodPost && path == "/upload":
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, fh, err := r.FormFile("file")
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"url": "/objects/" + r.FormValue("folder") + "/" + fh.Filename})
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Not found"}`)
	}
}

func newFake(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{projects: map[string]Project{
		"p1": {Meta: Meta{ID: "p1"}, Title: "One", Featured: true},
		"p2": {Meta: Meta{ID: "p2"}, Title: "Two"},
	}}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return f, c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("/api")
	assert.Error(t, err)
}

func TestQuery_CachesByFilter(t *testing.T) {
	f, c := newFake(t)
	ctx := context.Background()

	all, err := c.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = c.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.gets.Load())

	featured, err := c.Projects(ctx, ProjectFilter{Featured: true})
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "One", featured[0].Title)
	assert.EqualValues(t, 2, f.gets.Load())
}

func TestQuery_ExpiresAfterTTL(t *testing.T) {
	f, c := newFake(t)
	now := time.Now()
	c.cache.now = func() time.Time { return now }

	_, err := c.Project(context.Background(), "p1")
	require.NoError(t, err)
	now = now.Add(DefaultCacheTTL + time.Second)
	_, err = c.Project(context.Background(), "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.gets.Load())
}

func TestQuery_ConcurrentCallersShareOneFetch(t *testing.T) {
	f, c := newFake(t)
	f.gate = make(chan struct{})

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Projects(context.Background(), ProjectFilter{})
			assert.NoError(t, err)
		}()
	}
	require.Eventually(t, func() bool { return f.gets.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(f.gate)
	wg.Wait()
	assert.EqualValues(t, 1, f.gets.Load())
}

func TestMutation_InvalidatesListAndItem(t *testing.T) {
	_, c := newFake(t)
	ctx := context.Background()

	_, err := c.Login(ctx, "a@b.c", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok", c.Token())

	_, err = c.Projects(ctx, ProjectFilter{})
	require.NoError(t, err)
	_, err = c.Projects(ctx, ProjectFilter{Featured: true})
	require.NoError(t, err)
	_, err = c.Project(ctx, "p1")
	require.NoError(t, err)
	_, err = c.Project(ctx, "p2")
	require.NoError(t, err)

	_, err = c.UpdateProject(ctx, "p1", Patch{"title": "Renamed"})
	require.NoError(t, err)

	assert.False(t, c.Cached(listKey(entityProjects, ProjectFilter{}.key())))
	assert.False(t, c.Cached(listKey(entityProjects, ProjectFilter{Featured: true}.key())))
	assert.False(t, c.Cached(itemKey(entityProjects, "p1")))
	assert.True(t, c.Cached(itemKey(entityProjects, "p2")))

	p, err := c.Project(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", p.Title)
}

func TestMutation_FailureKeepsCache(t *testing.T) {
	_, c := newFake(t)
	ctx := context.Background()

	_, err := c.Project(ctx, "p1")
	require.NoError(t, err)

	_, err = c.UpdateProject(ctx, "p1", Patch{"title": "x"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, c.Cached(itemKey(entityProjects, "p1")))
}

func TestAPIError_Message(t *testing.T) {
	_, c := newFake(t)

	_, err := c.Project(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	if diff := cmp.Diff(&APIError{Status: 404, Message: "Project not found"}, err); diff != "" {
		t.Errorf("error mismatch (-want +got):\n%s", diff)
	}
}

func TestCache_StaleFetchIsDropped(t *testing.T) {
	c := newCache(time.Minute)
	k := itemKey(entityReviews, "r1")

	gen := c.generation(entityReviews)
	c.invalidate(Key{entityReviews, "list"})
	c.put(k, gen, []byte(`{}`))
	assert.False(t, c.has(k))

	c.put(k, c.generation(entityReviews), []byte(`{}`))
	assert.True(t, c.has(k))
}

func TestUpload(t *testing.T) {
	_, c := newFake(t)

	url, err := c.Upload(context.Background(), "projects", "shot.png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "/objects/projects/shot.png", url)
}

func TestQuery_CanceledCallerDoesNotFailOthers(t *testing.T) {
	f, c := newFake(t)
	f.gate = make(chan struct{})

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Projects(first, ProjectFilter{})
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return f.gets.Load() == 1 }, time.Second, 5*time.Millisecond)

	secondDone := make(chan []Project, 1)
	go func() {
		items, err := c.Projects(context.Background(), ProjectFilter{})
		assert.NoError(t, err)
		secondDone <- items
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(f.gate)
	assert.Len(t, <-secondDone, 2)
	assert.EqualValues(t, 1, f.gets.Load())
	assert.True(t, c.Cached(listKey(entityProjects, ProjectFilter{}.key())))
}
