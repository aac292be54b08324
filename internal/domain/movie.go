package domain

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Year is a release year as entered by users: a four digit year or the
// literal "unknown". JSON numbers are accepted on input. The empty Year
// means no year; "" and null decode to it.
type Year string

// UnmarshalJSON accepts both "1999" and 1999.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*y = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("year must be a string or number: %w", err)
		}
		*y = Year(n.String())
		return nil
	}
}

// Movie is a film stored in the catalog. Attributes keeps any additional
// members supplied at creation; they are flattened into the JSON object.
type Movie struct {
	ID         string
	Type       Kind
	Title      string
	Year       Year
	Attributes map[string]any
}

// MovieDraft carries the client-writable fields of a Movie.
type MovieDraft struct {
	Title      string
	Year       Year `validate:"omitempty,releaseyear"`
	Attributes map[string]any
}

// Reserved movie members that Attributes can never shadow.
var movieFields = map[string]struct{}{
	"id":    {},
	"type":  {},
	"title": {},
	"year":  {},
}

// IsMovieField reports whether key is one of the fixed movie members.
func IsMovieField(key string) bool {
	_, ok := movieFields[key]
	return ok
}

func (m Movie) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Attributes)+4)
	for k, v := range m.Attributes {
		if IsMovieField(k) {
			continue
		}
		out[k] = v
	}
	out["id"] = m.ID
	out["type"] = m.Type
	out["title"] = m.Title
	if m.Year != "" {
		out["year"] = m.Year
	}
	return json.Marshal(out)
}

func (m *Movie) UnmarshalJSON(data []byte) error {
	var fixed struct {
		ID    string `json:"id"`
		Type  Kind   `json:"type"`
		Title string `json:"title"`
		Year  Year   `json:"year"`
	}
	if err := json.Unmarshal(data, &fixed); err != nil {
		return err
	}
	attrs, err := extraMembers(data)
	if err != nil {
		return err
	}
	*m = Movie{
		ID:         fixed.ID,
		Type:       fixed.Type,
		Title:      fixed.Title,
		Year:       fixed.Year,
		Attributes: attrs,
	}
	return nil
}

func (d MovieDraft) MarshalJSON() ([]byte, error) {
	return Movie{Title: d.Title, Year: d.Year, Attributes: d.Attributes}.marshalDraft()
}

func (d *MovieDraft) UnmarshalJSON(data []byte) error {
	var m Movie
	if err := m.UnmarshalJSON(data); err != nil {
		return err
	}
	*d = MovieDraft{Title: m.Title, Year: m.Year, Attributes: m.Attributes}
	return nil
}

func (m Movie) marshalDraft() ([]byte, error) {
	out := make(map[string]any, len(m.Attributes)+2)
	for k, v := range m.Attributes {
		if IsMovieField(k) {
			continue
		}
		out[k] = v
	}
	out["title"] = m.Title
	if m.Year != "" {
		out["year"] = m.Year
	}
	return json.Marshal(out)
}

func extraMembers(data []byte) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	var attrs map[string]any
	for k, v := range all {
		if IsMovieField(k) {
			continue
		}
		if attrs == nil {
			attrs = make(map[string]any)
		}
		attrs[k] = v
	}
	return attrs, nil
}
