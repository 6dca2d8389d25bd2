package profile

import (
	"gitfolio-core/internal/domain/events"
)

const EventTypeProfileSynced = "profile.synced"

// ProfileSyncedEvent is raised after a sync has persisted a user's snapshot
type ProfileSyncedEvent struct {
	events.BaseEvent
	UserID     string
	Username   string
	ReposCount int
}

func NewProfileSyncedEvent(userID, username string, reposCount int) *ProfileSyncedEvent {
	return &ProfileSyncedEvent{
		BaseEvent:  events.NewBaseEvent(EventTypeProfileSynced, userID),
		UserID:     userID,
		Username:   username,
		ReposCount: reposCount,
	}
}
