package graph

/*
	This package exposes utilities for working with graph structures.

	Graphs appear in several places in the lock placement pipeline: method
	control-flow graphs, the accessed-before relation and its condensation.
	Instead of ad-hoc implementations of standard graph algorithms for each,
	the caller provides a function describing the edge relation (and a
	key-value map factory for the node type).
*/

type Mapper[K any] interface {
	Get(key K) (any, bool)
	Set(key K, value any)
}

type mapFactory[K any] func() Mapper[K]
type edgesOf[T any] func(node T) []T

type Graph[T any] struct {
	mapFactory  mapFactory[T]
	edgesOf     edgesOf[T]
	cachedEdges Mapper[T]
}

func (G Graph[T]) Edges(node T) []T {
	if cached, found := G.cachedEdges.Get(node); found {
		return cached.([]T)
	}

	es := G.edgesOf(node)
	G.cachedEdges.Set(node, es)
	return es
}

func Of[T any](mapFactory mapFactory[T], edgesOf edgesOf[T]) Graph[T] {
	return Graph[T]{
		mapFactory,
		edgesOf,
		mapFactory(),
	}
}

// Mapper implementation using Go's builtin maps
type mapMapper[K comparable] map[K]any

func (m mapMapper[K]) Get(key K) (any, bool) {
	value, ok := m[key]
	return value, ok
}

func (m mapMapper[K]) Set(key K, value any) {
	m[key] = value
}

func OfHashable[K comparable](edgesOf edgesOf[K]) Graph[K] {
	return Of(func() Mapper[K] { return mapMapper[K]{} }, edgesOf)
}

// Dense graphs over the node set 0..n-1 use slices instead of maps.
type sliceMapper struct {
	vals []any
	set  []bool
}

func (m *sliceMapper) Get(key int) (any, bool) {
	if key < 0 || key >= len(m.vals) || !m.set[key] {
		return nil, false
	}
	return m.vals[key], true
}

func (m *sliceMapper) Set(key int, value any) {
	m.vals[key] = value
	m.set[key] = true
}

// OfDense creates a graph over the nodes 0..n-1.
func OfDense(n int, edgesOf edgesOf[int]) Graph[int] {
	return Of(func() Mapper[int] {
		return &sliceMapper{make([]any, n), make([]bool, n)}
	}, edgesOf)
}

// Range returns the nodes 0..n-1 of a dense graph.
func Range(n int) []int {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}
	return nodes
}
