package assets

import (
	"net/http"
	"path/filepath"
	"strings"
)

// Status is the outcome of mapping a request.
type Status int

const (
	// StatusOK means the asset was found.
	StatusOK Status = iota
	// StatusNotFound means no asset is stored under the request path.
	StatusNotFound
)

// Code returns the HTTP status code for s.
func (s Status) Code() int {
	if s == StatusOK {
		return http.StatusOK
	}
	return http.StatusNotFound
}

func (s Status) String() string {
	if s == StatusOK {
		return "OK"
	}
	return "NotFound"
}

// Request is the part of an inbound request the store cares about.
type Request struct {
	Method string
	URL    string
}

// Response describes what to send back. Body and ContentType are empty when
// Status is StatusNotFound.
type Response struct {
	Status      Status
	Body        []byte
	ContentType string
}

// Key returns the store key for url under root.
func Key(root, url string) string {
	return filepath.Join(root, strings.TrimPrefix(url, "/"))
}

// Map resolves req against s. A single leading slash is stripped from the
// URL before it is joined onto root, so "/a/b" and "a/b" are equivalent.
func Map(req Request, root string, s *Store) Response {
	asset, ok := s.Lookup(Key(root, req.URL))
	if !ok {
		return Response{Status: StatusNotFound}
	}
	return Response{Status: StatusOK, Body: asset.Bytes, ContentType: asset.ContentType}
}

// Map resolves req against the store's own root.
func (s *Store) Map(req Request) Response {
	return Map(req, s.root, s)
}
