package web

import (
	"net/url"
	"strings"
)

// Location is the current client route: a path plus query parameters.
type Location struct {
	path  string
	query url.Values
}

// NewLocation starts at target.
func NewLocation(target string) *Location {
	l := &Location{}
	l.Navigate(target)
	return l
}

// Navigate replaces the current route. Targets are paths with an optional
// query string, e.g. "/error?culprit=/movies/1".
func (l *Location) Navigate(target string) {
	path, rawQuery, _ := strings.Cut(target, "?")
	if path == "" || path[0] != '/' {
		path = "/" + path
	}
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		query = url.Values{}
	}
	l.path = path
	l.query = query
}

// Path returns the current route path.
func (l *Location) Path() string {
	return l.path
}

// Search returns the value of query parameter key.
func (l *Location) Search(key string) string {
	return l.query.Get(key)
}

func (l *Location) String() string {
	if len(l.query) == 0 {
		return l.path
	}
	return l.path + "?" + l.query.Encode()
}

func withQuery(path, key, value string) string {
	return path + "?" + url.Values{key: []string{value}}.Encode()
}
