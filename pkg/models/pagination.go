package models

import "github.com/doctorew/pocket-morties/pkg/apperrors"

// DefaultPageSize applies when a request names neither first nor last.
const DefaultPageSize = 5

// PageRequest selects a window of a sorted sequence.
// First and Last are mutually exclusive; nil means unset.
type PageRequest struct {
	First *int
	Last  *int
	After string
}

// Validate checks the mutual exclusion and sign rules.
func (p PageRequest) Validate() error {
	if p.First != nil && p.Last != nil {
		return apperrors.InvalidArgument("first and last cannot be combined")
	}
	if p.First != nil && *p.First < 0 {
		return apperrors.InvalidArgument("first must be non-negative, got %d", *p.First)
	}
	if p.Last != nil && *p.Last < 0 {
		return apperrors.InvalidArgument("last must be non-negative, got %d", *p.Last)
	}
	return nil
}

// IsLast reports whether the request is in last (ascending) mode.
func (p PageRequest) IsLast() bool {
	return p.Last != nil
}

// Size returns the requested window size.
func (p PageRequest) Size() int {
	switch {
	case p.First != nil:
		return *p.First
	case p.Last != nil:
		return *p.Last
	default:
		return DefaultPageSize
	}
}

// Edge pairs a record with its cursor.
type Edge struct {
	Node   PocketMorty `json:"node"`
	Cursor string      `json:"cursor"`
}

// PageInfo describes the position of a page within the full sequence.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor"`
}

// Connection is one page of edges.
type Connection struct {
	Edges    []Edge   `json:"edges"`
	PageInfo PageInfo `json:"pageInfo"`
}

// Nodes returns the records of the connection in edge order.
func (c *Connection) Nodes() []PocketMorty {
	nodes := make([]PocketMorty, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// IntPtr is a convenience for building PageRequests.
func IntPtr(v int) *int {
	return &v
}
