package generation

import (
	"gitfolio-core/internal/domain/events"
)

// Event types
const (
	EventTypeGenerationRequested = "generation.requested"
	EventTypeGenerationFinished  = "generation.finished"
)

// GenerationRequestedEvent is raised when a user asks for a portfolio build
type GenerationRequestedEvent struct {
	events.BaseEvent
	GenerationID   string
	UserID         string
	GitHubUsername string
	TemplateID     *string
}

func NewGenerationRequestedEvent(g *Generation) *GenerationRequestedEvent {
	return &GenerationRequestedEvent{
		BaseEvent:      events.NewBaseEvent(EventTypeGenerationRequested, g.ID()),
		GenerationID:   g.ID(),
		UserID:         g.UserID().String(),
		GitHubUsername: g.GitHubUsername(),
		TemplateID:     g.TemplateID(),
	}
}

// GenerationFinishedEvent is raised when a generation reaches ready or failed
type GenerationFinishedEvent struct {
	events.BaseEvent
	GenerationID string
	UserID       string
	Status       Status
}

func NewGenerationFinishedEvent(g *Generation) *GenerationFinishedEvent {
	return &GenerationFinishedEvent{
		BaseEvent:    events.NewBaseEvent(EventTypeGenerationFinished, g.ID()),
		GenerationID: g.ID(),
		UserID:       g.UserID().String(),
		Status:       g.Status(),
	}
}
