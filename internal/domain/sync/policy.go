package sync

import (
	"context"
	"fmt"
	"strings"
)

// PrunePolicy decides what happens to stored repositories that GitHub no longer returns
type PrunePolicy string

const (
	// PruneKeep is upsert-only: stale repositories stay in the snapshot
	PruneKeep PrunePolicy = "keep"
	// PruneStale deletes the caller's repositories that were not part of the current sync batch
	PruneStale PrunePolicy = "prune"
)

// ParsePrunePolicy parses a configured policy name
func ParsePrunePolicy(s string) (PrunePolicy, error) {
	switch p := PrunePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PruneKeep, PruneStale:
		return p, nil
	case "":
		return PruneKeep, nil
	default:
		return "", fmt.Errorf("unknown prune policy %q", s)
	}
}

// Transactor runs fn so that every store write made with the ctx passed to fn
// commits or rolls back together.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
