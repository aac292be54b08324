package graph

import (
	"context"
	"time"
)

// Observer receives one callback per store operation.
type Observer interface {
	ObserveGraphOperation(operation string, duration time.Duration, err error)
}

// ObservedStore decorates a Store with operation callbacks.
type ObservedStore struct {
	Store
	observer Observer
}

// Observe wraps store so that every data operation is reported to observer.
// A nil observer returns store unchanged.
func Observe(store Store, observer Observer) Store {
	if observer == nil {
		return store
	}
	return &ObservedStore{Store: store, observer: observer}
}

func (s *ObservedStore) observe(op string, start time.Time, err error) {
	s.observer.ObserveGraphOperation(op, time.Since(start), err)
}

func (s *ObservedStore) IndexedNodes(ctx context.Context, key string, value any) (nodes []Node, err error) {
	defer func(start time.Time) { s.observe("indexed_nodes", start, err) }(time.Now())
	nodes, err = s.Store.IndexedNodes(ctx, key, value)
	return nodes, err
}

func (s *ObservedStore) IndexedNode(ctx context.Context, key string, value any) (node *Node, err error) {
	defer func(start time.Time) { s.observe("indexed_node", start, err) }(time.Now())
	node, err = s.Store.IndexedNode(ctx, key, value)
	return node, err
}

func (s *ObservedStore) CreateNode(ctx context.Context, data map[string]any) (node Node, err error) {
	defer func(start time.Time) { s.observe("create_node", start, err) }(time.Now())
	node, err = s.Store.CreateNode(ctx, data)
	return node, err
}

func (s *ObservedStore) SaveNode(ctx context.Context, in Node) (node Node, err error) {
	defer func(start time.Time) { s.observe("save_node", start, err) }(time.Now())
	node, err = s.Store.SaveNode(ctx, in)
	return node, err
}

func (s *ObservedStore) DeleteNodes(ctx context.Context, where ...Match) (err error) {
	defer func(start time.Time) { s.observe("delete_nodes", start, err) }(time.Now())
	err = s.Store.DeleteNodes(ctx, where...)
	return err
}

func (s *ObservedStore) Relate(ctx context.Context, from, to Match, relType string) (err error) {
	defer func(start time.Time) { s.observe("relate", start, err) }(time.Now())
	err = s.Store.Relate(ctx, from, to, relType)
	return err
}
