package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/vanshika/moviedb/internal/domain"
	"github.com/vanshika/moviedb/internal/service"
)

// ErrMissingService is returned when handlers are built without a catalog service.
var ErrMissingService = errors.New("server: catalog service is required")

// CatalogService is the behaviour the REST handlers depend on.
type CatalogService interface {
	ListActors(ctx context.Context) ([]domain.Actor, error)
	GetActor(ctx context.Context, id string) (domain.Actor, error)
	CreateActor(ctx context.Context, draft domain.ActorDraft) (domain.Actor, error)
	UpdateActor(ctx context.Context, id string, draft domain.ActorDraft) (domain.Actor, error)
	DeleteActor(ctx context.Context, id string) error

	ListMovies(ctx context.Context) ([]domain.Movie, error)
	GetMovie(ctx context.Context, id string) (domain.Movie, error)
	CreateMovie(ctx context.Context, draft domain.MovieDraft) (domain.Movie, error)
	UpdateMovie(ctx context.Context, id string, draft domain.MovieDraft) (domain.Movie, error)
	DeleteMovie(ctx context.Context, id string) error
}

// CatalogHandlers exposes the actor and movie REST resources.
type CatalogHandlers struct {
	actors *resource[domain.Actor, domain.ActorDraft]
	movies *resource[domain.Movie, domain.MovieDraft]
}

// NewCatalogHandlers constructs the handler set over svc.
func NewCatalogHandlers(logger *slog.Logger, svc CatalogService) (*CatalogHandlers, error) {
	if svc == nil {
		return nil, ErrMissingService
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogHandlers{
		actors: &resource[domain.Actor, domain.ActorDraft]{
			kind:   domain.KindActor,
			logger: logger.With("component", "actors"),
			list:   svc.ListActors,
			get:    svc.GetActor,
			create: svc.CreateActor,
			update: svc.UpdateActor,
			remove: svc.DeleteActor,
			id:     func(a domain.Actor) string { return a.ID },
		},
		movies: &resource[domain.Movie, domain.MovieDraft]{
			kind:   domain.KindMovie,
			logger: logger.With("component", "movies"),
			list:   svc.ListMovies,
			get:    svc.GetMovie,
			create: svc.CreateMovie,
			update: svc.UpdateMovie,
			remove: svc.DeleteMovie,
			id:     func(m domain.Movie) string { return m.ID },
		},
	}, nil
}

// Mount registers /actors and /movies on r.
func (h *CatalogHandlers) Mount(r chi.Router) {
	r.Route("/"+domain.KindActor.Plural(), h.actors.routes)
	r.Route("/"+domain.KindMovie.Plural(), h.movies.routes)
}

// resource implements the five CRUD handlers for one record type.
type resource[T, D any] struct {
	kind   domain.Kind
	logger *slog.Logger
	list   func(context.Context) ([]T, error)
	get    func(context.Context, string) (T, error)
	create func(context.Context, D) (T, error)
	update func(context.Context, string, D) (T, error)
	remove func(context.Context, string) error
	id     func(T) string
}

func (res *resource[T, D]) routes(r chi.Router) {
	r.Get("/", res.handleList)
	r.Post("/", res.handleCreate)
	r.Get("/{id}", res.handleGet)
	r.Put("/{id}", res.handleUpdate)
	r.Delete("/{id}", res.handleDelete)
}

func (res *resource[T, D]) handleList(w http.ResponseWriter, r *http.Request) {
	records, err := res.list(r.Context())
	if err != nil {
		res.fail(w, "", "list", err)
		return
	}
	if records == nil {
		records = []T{}
	}
	res.logger.Debug("listed records", "resource", res.kind, "count", len(records))
	respondJSON(w, http.StatusOK, records)
}

func (res *resource[T, D]) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	record, err := res.get(r.Context(), id)
	if err != nil {
		res.fail(w, id, "get", err)
		return
	}
	res.logger.Debug("fetched record", "resource", res.kind, "id", id)
	respondJSON(w, http.StatusOK, record)
}

func (res *resource[T, D]) handleCreate(w http.ResponseWriter, r *http.Request) {
	var draft D
	if err := decodeJSON(r, &draft); err != nil {
		res.logger.Debug("failed to decode record", "resource", res.kind, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	record, err := res.create(r.Context(), draft)
	if err != nil {
		res.fail(w, "", "create", err)
		return
	}
	id := res.id(record)
	w.Header().Set("Location", resourceURL(r, res.kind, id))
	res.logger.Debug("created record", "resource", res.kind, "id", id)
	respondJSON(w, http.StatusCreated, record)
}

func (res *resource[T, D]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var draft D
	if err := decodeJSON(r, &draft); err != nil {
		res.logger.Debug("failed to decode record", "resource", res.kind, "id", id, "error", err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	record, err := res.update(r.Context(), id, draft)
	if err != nil {
		res.fail(w, id, "update", err)
		return
	}
	res.logger.Debug("updated record", "resource", res.kind, "id", id)
	respondJSON(w, http.StatusOK, record)
}

func (res *resource[T, D]) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := res.remove(r.Context(), id); err != nil {
		res.fail(w, id, "delete", err)
		return
	}
	res.logger.Debug("deleted record", "resource", res.kind, "id", id)
	w.WriteHeader(http.StatusNoContent)
}

// fail logs err and writes the matching status. Persistence causes are
// never sent to the client.
func (res *resource[T, D]) fail(w http.ResponseWriter, id, op string, err error) {
	attrs := []any{"resource", res.kind, "operation", op, "error", err}
	if id != "" {
		attrs = append(attrs, "id", id)
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		res.logger.Debug("record could not be found", attrs...)
		w.WriteHeader(http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidRecord):
		res.logger.Debug("record rejected", attrs...)
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		res.logger.Error("request failed", attrs...)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// resourceURL builds the absolute URI of a created record.
func resourceURL(r *http.Request, kind domain.Kind, id string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	u := url.URL{
		Scheme: scheme,
		Host:   r.Host,
		Path:   "/" + kind.Plural() + "/" + id,
	}
	return u.String()
}

// decodeJSON reads the request body into dst. An empty body leaves dst at
// its zero value.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return nil
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
