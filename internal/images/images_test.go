package images

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestResolver(accessKey string, baseURL string) *Resolver {
	return &Resolver{
		accessKey:  accessKey,
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

func TestHashString(t *testing.T) {
	for _, s := range []string{"golang", "machine learning", "", "日本語"} {
		first := hashString(s)
		second := hashString(s)
		assert.Equal(t, first, second, "hash of %q must be stable", s)
		assert.GreaterOrEqual(t, first, int32(0), "hash of %q must be non-negative", s)
	}
}

func TestFallbackImageStable(t *testing.T) {
	a := fallbackImage("golang", "default")
	b := fallbackImage("golang", "default")

	assert.Equal(t, a.URL, b.URL)
	assert.Contains(t, a.URL, "picsum.photos/seed/")
	assert.Equal(t, "golang", a.Alt)
	assert.Equal(t, "Lorem Picsum", a.Photographer)
}

func TestFallbackImageEmptyQuery(t *testing.T) {
	img := fallbackImage("", "default")

	assert.Equal(t, fallbackImage("default", "").URL, img.URL)
	assert.Equal(t, "Educational content", img.Alt)
}

func TestFetchImageWithoutKey(t *testing.T) {
	img := newTestResolver("", "http://unused").FetchImage("golang")

	assert.Contains(t, img.URL, "picsum.photos/seed/")
	assert.Equal(t, "Lorem Picsum", img.Photographer)
}

func TestFetchImageLive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/photos", r.URL.Path)
		assert.Equal(t, "golang", r.URL.Query().Get("query"))
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"results": [{
				"alt_description": "gopher at a laptop",
				"urls": {"regular": "https://images.example.com/gopher.jpg"},
				"user": {"name": "Ada", "links": {"html": "https://unsplash.example.com/@ada"}}
			}]
		}`))
	}))
	defer srv.Close()

	img := newTestResolver("test-key", srv.URL).FetchImage("golang")

	assert.Equal(t, "https://images.example.com/gopher.jpg", img.URL)
	assert.Equal(t, "gopher at a laptop", img.Alt)
	assert.Equal(t, "Ada", img.Photographer)
	assert.Equal(t, "https://unsplash.example.com/@ada", img.PhotographerURL)
}

func TestFetchImageEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	img := newTestResolver("test-key", srv.URL).FetchImage("golang")

	assert.Contains(t, img.URL, "picsum.photos/seed/")
	assert.Equal(t, "golang", img.Alt)
}

func TestFetchImageServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	img := newTestResolver("test-key", srv.URL).FetchImage("golang")

	// The resolver degrades to the fallback rather than failing.
	assert.Contains(t, img.URL, "picsum.photos/seed/")
	assert.Equal(t, "Lorem Picsum", img.Photographer)
}

func TestFetchImageMissingAltFallsBackToQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"urls": {"regular": "https://images.example.com/x.jpg"}, "user": {"name": "Ada", "links": {"html": ""}}}]}`))
	}))
	defer srv.Close()

	img := newTestResolver("test-key", srv.URL).FetchImage("golang")

	assert.Equal(t, "golang", img.Alt)
}
