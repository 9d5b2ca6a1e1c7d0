// Package balance picks a read replica for each store call.
package balance

import (
	"errors"
	"math/rand"
	"sync/atomic"
)

var (
	ErrNoAvailableSlaves = errors.New("no available slave nodes")
	ErrInvalidStrategy   = errors.New("invalid load balance strategy")
)

// Balancer chooses one of the given nodes
type Balancer[C any] interface {
	Next(nodes []C) (C, error)
}

// New returns the balancer named by strategy. weights is only used by the
// "weight" strategy, one entry per node; non-positive weights count as 1.
func New[C any](strategy string, weights []int) (Balancer[C], error) {
	switch strategy {
	case "round_robin", "":
		return &RoundRobin[C]{}, nil
	case "random":
		return Random[C]{}, nil
	case "weight":
		return NewWeighted[C](weights), nil
	}
	return nil, ErrInvalidStrategy
}

// RoundRobin cycles through the nodes
type RoundRobin[C any] struct {
	current atomic.Uint64
}

func (rb *RoundRobin[C]) Next(nodes []C) (C, error) {
	var zero C
	if len(nodes) == 0 {
		return zero, ErrNoAvailableSlaves
	}
	next := rb.current.Add(1) % uint64(len(nodes))
	return nodes[next], nil
}

// Random picks a node uniformly
type Random[C any] struct{}

func (Random[C]) Next(nodes []C) (C, error) {
	var zero C
	if len(nodes) == 0 {
		return zero, ErrNoAvailableSlaves
	}
	return nodes[rand.Intn(len(nodes))], nil
}

// Weighted cycles through the nodes in proportion to their weights
type Weighted[C any] struct {
	weights []int
	current atomic.Uint64
}

func NewWeighted[C any](weights []int) *Weighted[C] {
	w := make([]int, len(weights))
	for i, weight := range weights {
		w[i] = max(weight, 1)
	}
	return &Weighted[C]{weights: w}
}

func (wb *Weighted[C]) Next(nodes []C) (C, error) {
	var zero C
	if len(nodes) == 0 {
		return zero, ErrNoAvailableSlaves
	}
	// the node list shrinks when replicas fail health checks
	if len(wb.weights) != len(nodes) {
		return nodes[wb.current.Add(1)%uint64(len(nodes))], nil
	}

	total := 0
	for _, w := range wb.weights {
		total += w
	}
	next := wb.current.Add(1) % uint64(total)

	var accumulator int
	for i, w := range wb.weights {
		accumulator += w
		if uint64(accumulator) > next {
			return nodes[i], nil
		}
	}
	return nodes[0], nil
}
