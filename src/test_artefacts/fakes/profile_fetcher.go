package fakes

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// ProfileFetcher answers from fixed documents and errors keyed by URL and
// records every call with its timestamp.
type ProfileFetcher struct {
	mu        sync.Mutex
	Documents map[string]json.RawMessage
	Errors    map[string]error
	// Fallback é usado quando a URL não está em Documents nem em Errors.
	Fallback json.RawMessage
	Calls    []FetchCall
}

type FetchCall struct {
	URL string
	At  time.Time
}

func NewProfileFetcher(fallback json.RawMessage) *ProfileFetcher {
	return &ProfileFetcher{
		Documents: map[string]json.RawMessage{},
		Errors:    map[string]error{},
		Fallback:  fallback,
	}
}

func (f *ProfileFetcher) FetchProfile(_ context.Context, linkedinURL string) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Calls = append(f.Calls, FetchCall{URL: linkedinURL, At: time.Now()})

	if err, ok := f.Errors[linkedinURL]; ok {
		return nil, err
	}
	if document, ok := f.Documents[linkedinURL]; ok {
		return document, nil
	}
	return f.Fallback, nil
}

func (f *ProfileFetcher) CalledURLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	urls := make([]string, 0, len(f.Calls))
	for _, call := range f.Calls {
		urls = append(urls, call.URL)
	}
	return urls
}
