package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/graph"
)

// ErrNotFound is returned when no record carries the requested id.
var ErrNotFound = errors.New("record not found")

// Property keys shared by every catalog node.
const (
	keyID   = "id"
	keyType = "type"
)

// ActedIn links an actor node to a movie node.
const ActedIn = "ACTED_IN"

// Repository encapsulates catalog persistence on top of a graph store.
type Repository struct {
	store graph.Store
}

// New instantiates a Repository backed by the supplied graph store.
func New(store graph.Store) *Repository {
	return &Repository{store: store}
}

// codec converts a record type to and from node payloads.
// mutable lists the members an update may change; encode can omit them
// when empty.
type codec[T any] struct {
	kind    domain.Kind
	mutable []string
	encode  func(T) map[string]any
	decode  func(map[string]any) T
}

var actorCodec = codec[domain.Actor]{
	kind:    domain.KindActor,
	mutable: []string{"name", "bio"},
	encode:  actorProperties,
	decode:  actorFromProperties,
}

var movieCodec = codec[domain.Movie]{
	kind:    domain.KindMovie,
	mutable: []string{"title", "year"},
	encode:  movieProperties,
	decode:  movieFromProperties,
}

// ListActors returns every node tagged as an actor, in index order.
func (r *Repository) ListActors(ctx context.Context) ([]domain.Actor, error) {
	return list(ctx, r.store, actorCodec)
}

// GetActor returns the actor with the given id.
func (r *Repository) GetActor(ctx context.Context, id string) (domain.Actor, error) {
	return get(ctx, r.store, actorCodec, id)
}

// CreateActor persists a new actor node. The caller assigns id and type.
func (r *Repository) CreateActor(ctx context.Context, actor domain.Actor) (domain.Actor, error) {
	return create(ctx, r.store, actorCodec, actor)
}

// UpdateActor loads the actor, applies mutate and saves the result.
func (r *Repository) UpdateActor(ctx context.Context, id string, mutate func(*domain.Actor)) (domain.Actor, error) {
	return update(ctx, r.store, actorCodec, id, mutate)
}

// DeleteActor removes the actor and its relationships. Unknown ids succeed.
func (r *Repository) DeleteActor(ctx context.Context, id string) error {
	return remove(ctx, r.store, actorCodec, id)
}

// ListMovies returns every node tagged as a movie, in index order.
func (r *Repository) ListMovies(ctx context.Context) ([]domain.Movie, error) {
	return list(ctx, r.store, movieCodec)
}

// GetMovie returns the movie with the given id.
func (r *Repository) GetMovie(ctx context.Context, id string) (domain.Movie, error) {
	return get(ctx, r.store, movieCodec, id)
}

// CreateMovie persists a new movie node. The caller assigns id and type.
func (r *Repository) CreateMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	return create(ctx, r.store, movieCodec, movie)
}

// UpdateMovie loads the movie, applies mutate and saves the result.
func (r *Repository) UpdateMovie(ctx context.Context, id string, mutate func(*domain.Movie)) (domain.Movie, error) {
	return update(ctx, r.store, movieCodec, id, mutate)
}

// DeleteMovie removes the movie and its relationships. Unknown ids succeed.
func (r *Repository) DeleteMovie(ctx context.Context, id string) error {
	return remove(ctx, r.store, movieCodec, id)
}

// LinkCast records that the actor appeared in the movie.
func (r *Repository) LinkCast(ctx context.Context, actorID, movieID string) error {
	err := r.store.Relate(ctx,
		graph.Match{Key: keyID, Value: actorID},
		graph.Match{Key: keyID, Value: movieID},
		ActedIn)
	if errors.Is(err, graph.ErrNodeNotFound) {
		return fmt.Errorf("link actor %s to movie %s: %w", actorID, movieID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("link actor %s to movie %s: %w", actorID, movieID, err)
	}
	return nil
}

func list[T any](ctx context.Context, store graph.Store, c codec[T]) ([]T, error) {
	nodes, err := store.IndexedNodes(ctx, keyType, string(c.kind))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.kind.Plural(), err)
	}
	records := make([]T, 0, len(nodes))
	for _, node := range nodes {
		records = append(records, c.decode(node.Data))
	}
	return records, nil
}

func get[T any](ctx context.Context, store graph.Store, c codec[T], id string) (T, error) {
	node, err := lookup(ctx, store, c, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.decode(node.Data), nil
}

func create[T any](ctx context.Context, store graph.Store, c codec[T], record T) (T, error) {
	node, err := store.CreateNode(ctx, c.encode(record))
	if err != nil {
		var zero T
		return zero, fmt.Errorf("create %s: %w", c.kind, err)
	}
	return c.decode(node.Data), nil
}

func update[T any](ctx context.Context, store graph.Store, c codec[T], id string, mutate func(*T)) (T, error) {
	var zero T
	node, err := lookup(ctx, store, c, id)
	if err != nil {
		return zero, err
	}

	record := c.decode(node.Data)
	mutate(&record)

	// Merge over the stored payload so members this codec does not know
	// about survive the save. Mutable members are replaced, never kept.
	for _, k := range c.mutable {
		delete(node.Data, k)
	}
	for k, v := range c.encode(record) {
		node.Data[k] = v
	}
	saved, err := store.SaveNode(ctx, *node)
	if errors.Is(err, graph.ErrNodeNotFound) {
		return zero, fmt.Errorf("save %s %s: %w", c.kind, id, ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("save %s %s: %w", c.kind, id, err)
	}
	return c.decode(saved.Data), nil
}

func remove[T any](ctx context.Context, store graph.Store, c codec[T], id string) error {
	err := store.DeleteNodes(ctx,
		graph.Match{Key: keyID, Value: id},
		graph.Match{Key: keyType, Value: string(c.kind)})
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", c.kind, id, err)
	}
	return nil
}

func lookup[T any](ctx context.Context, store graph.Store, c codec[T], id string) (*graph.Node, error) {
	node, err := store.IndexedNode(ctx, keyID, id)
	if err != nil {
		return nil, fmt.Errorf("retrieve %s %s: %w", c.kind, id, err)
	}
	if node == nil || toString(node.Data[keyType]) != string(c.kind) {
		return nil, fmt.Errorf("%s %s: %w", c.kind, id, ErrNotFound)
	}
	if node.Data == nil {
		node.Data = map[string]any{}
	}
	return node, nil
}

func actorProperties(a domain.Actor) map[string]any {
	return map[string]any{
		keyID:   a.ID,
		keyType: string(a.Type),
		"name":  a.Name,
		"bio":   a.Bio,
	}
}

func actorFromProperties(props map[string]any) domain.Actor {
	return domain.Actor{
		ID:   toString(props[keyID]),
		Type: domain.Kind(toString(props[keyType])),
		Name: toString(props["name"]),
		Bio:  toString(props["bio"]),
	}
}

func movieProperties(m domain.Movie) map[string]any {
	props := make(map[string]any, len(m.Attributes)+4)
	for k, v := range m.Attributes {
		if domain.IsMovieField(k) {
			continue
		}
		props[k] = v
	}
	props[keyID] = m.ID
	props[keyType] = string(m.Type)
	props["title"] = m.Title
	if m.Year != "" {
		props["year"] = string(m.Year)
	}
	return props
}

func movieFromProperties(props map[string]any) domain.Movie {
	movie := domain.Movie{
		ID:    toString(props[keyID]),
		Type:  domain.Kind(toString(props[keyType])),
		Title: toString(props["title"]),
		Year:  domain.Year(toString(props["year"])),
	}
	for k, v := range props {
		if domain.IsMovieField(k) {
			continue
		}
		if movie.Attributes == nil {
			movie.Attributes = make(map[string]any)
		}
		movie.Attributes[k] = v
	}
	return movie
}

func toString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
