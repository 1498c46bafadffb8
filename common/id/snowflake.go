package id

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"
)

// Source hands out record identifiers.
type Source interface {
	NextID() int64
}

// Snowflake generates time-ordered ids that stay unique across instances
// sharing one backend, as long as each instance has its own node ID.
type Snowflake struct {
	node *snowflake.Node
}

func NewSnowflake(nodeID int64) (*Snowflake, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("creating snowflake node %d: %w", nodeID, err)
	}
	return &Snowflake{node: node}, nil
}

func (s *Snowflake) NextID() int64 {
	return s.node.Generate().Int64()
}

// Sequence counts up from 1. Used by the in-memory backend so ids stay small and predictable.
type Sequence struct {
	mu   sync.Mutex
	last int64
}

func (s *Sequence) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last++
	return s.last
}
