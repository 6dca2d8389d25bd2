package repo

import (
	"gitfolio-core/internal/domain/events"
)

// Event types
const (
	EventTypeRepositoriesSynced = "repository.synced"
)

// RepositoriesSyncedEvent is raised when a user's repositories are written by a sync
type RepositoriesSyncedEvent struct {
	events.BaseEvent
	UserID          string
	SyncBatch       string
	RepositoryCount int
	PrunedCount     int64
}

// NewRepositoriesSyncedEvent creates a new RepositoriesSyncedEvent
func NewRepositoriesSyncedEvent(userID, batch string, count int, pruned int64) *RepositoriesSyncedEvent {
	return &RepositoriesSyncedEvent{
		BaseEvent:       events.NewBaseEvent(EventTypeRepositoriesSynced, userID),
		UserID:          userID,
		SyncBatch:       batch,
		RepositoryCount: count,
		PrunedCount:     pruned,
	}
}
