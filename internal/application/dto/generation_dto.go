package dto

import "time"

// StartGenerationRequest asks for a portfolio build from the synced profile
type StartGenerationRequest struct {
	TemplateID   *string `json:"template_id,omitempty"`
	CustomPrompt *string `json:"custom_prompt,omitempty"`
}

// CompleteGenerationRequest records the outcome of a build
type CompleteGenerationRequest struct {
	Status        string  `json:"status" binding:"required,oneof=ready failed"`
	DeploymentURL *string `json:"deployment_url,omitempty"`
	FailureReason *string `json:"failure_reason,omitempty"`
}

// GenerationResponse represents a portfolio generation
type GenerationResponse struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	GitHubUsername string    `json:"github_username"`
	Status         string    `json:"status"`
	TemplateID     *string   `json:"template_id"`
	CustomPrompt   *string   `json:"custom_prompt"`
	DeploymentURL  *string   `json:"deployment_url"`
	FailureReason  *string   `json:"failure_reason"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GenerationListResponse lists the caller's generations, newest first
type GenerationListResponse struct {
	Generations []*GenerationResponse `json:"generations"`
}
