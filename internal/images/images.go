package images

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"innovision/internal/config"

	"github.com/golang/glog"
)

const defaultBaseURL = "https://api.unsplash.com"

// Image is a resolved topic image with attribution metadata.
type Image struct {
	URL             string `json:"url"`
	Alt             string `json:"alt"`
	Photographer    string `json:"photographer"`
	PhotographerURL string `json:"photographerUrl"`
}

// Resolver maps a text query to an image URL, preferring Unsplash and falling
// back to a seeded placeholder so the same query always yields the same image
// even offline.
type Resolver struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

func NewResolver() *Resolver {
	return &Resolver{
		accessKey:  config.Config.UnsplashAccessKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Results []struct {
		AltDescription string `json:"alt_description"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// FetchImage resolves a query to an image. It never fails: every error path
// degrades to the deterministic fallback.
func (r *Resolver) FetchImage(query string) *Image {
	if r.accessKey == "" {
		glog.Warningln("missing Unsplash access key, using seeded fallback image")
		return fallbackImage(query, "default")
	}

	endpoint := fmt.Sprintf("%s/search/photos?query=%s&per_page=1&orientation=landscape", r.baseURL, url.QueryEscape(query))
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fallbackImage(query, "fallback")
	}
	req.Header.Set("Authorization", "Client-ID "+r.accessKey)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		glog.Warningf("Unsplash fetch error: %v\n", err)
		return fallbackImage(query, "fallback")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		glog.Warningf("Unsplash API error: %d %s\n", resp.StatusCode, resp.Status)
		return fallbackImage(query, "fallback")
	}

	var search searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		glog.Warningf("Unsplash decode error: %v\n", err)
		return fallbackImage(query, "fallback")
	}

	if len(search.Results) == 0 {
		// No results found for this query, fall back to the placeholder.
		return fallbackImage(query, "default")
	}

	photo := search.Results[0]
	alt := photo.AltDescription
	if alt == "" {
		alt = query
	}

	return &Image{
		URL:             photo.URLs.Regular,
		Alt:             alt,
		Photographer:    photo.User.Name,
		PhotographerURL: photo.User.Links.HTML,
	}
}

// fallbackImage derives a stable placeholder from a 32-bit hash of the query
// so repeated calls with the same query return the identical URL.
func fallbackImage(query string, emptySeed string) *Image {
	seed := query
	if seed == "" {
		seed = emptySeed
	}

	alt := query
	if alt == "" {
		alt = "Educational content"
	}

	return &Image{
		URL:             fmt.Sprintf("https://picsum.photos/seed/%d/1000/600", hashString(seed)),
		Alt:             alt,
		Photographer:    "Lorem Picsum",
		PhotographerURL: "https://picsum.photos",
	}
}

// hashString maps a string to a non-negative 32-bit seed.
func hashString(s string) int32 {
	var hash int32
	for _, c := range s {
		hash = (hash << 5) - hash + int32(c)
	}
	if hash < 0 {
		hash = -hash
	}
	return hash
}
