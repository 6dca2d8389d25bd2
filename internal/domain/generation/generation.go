package generation

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gitfolio-core/internal/domain/user"
)

// Status is where a portfolio generation is in its lifecycle.
// generating is the only non-terminal status.
type Status string

const (
	StatusGenerating Status = "generating"
	StatusReady      Status = "ready"
	StatusFailed     Status = "failed"
)

const (
	maxTemplateIDLength = 100
	maxPromptLength     = 4000
	maxReasonLength     = 1000
)

// ParseStatus parses a stored or requested status
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusGenerating, StatusReady, StatusFailed:
		return st, nil
	default:
		return "", ErrInvalidGeneration("status", fmt.Errorf("unknown status %q", s))
	}
}

// Generation records one request to build a portfolio site from a synced profile
type Generation struct {
	id             string
	userID         user.UserID
	githubUsername string
	status         Status
	templateID     *string
	customPrompt   *string
	deploymentURL  *string
	failureReason  *string
	createdAt      time.Time
	updatedAt      time.Time
}

// New starts a generation for the owner of a synced profile
func New(id string, owner user.UserID, githubUsername string, templateID, customPrompt *string, now time.Time) (*Generation, error) {
	if id == "" {
		return nil, ErrInvalidGeneration("id", fmt.Errorf("id cannot be empty"))
	}
	if owner.IsZero() {
		return nil, ErrInvalidGeneration("owner", fmt.Errorf("owner cannot be empty"))
	}
	if githubUsername == "" {
		return nil, ErrInvalidGeneration("github_username", fmt.Errorf("username cannot be empty"))
	}

	templateID = trimmed(templateID)
	if templateID != nil && len(*templateID) > maxTemplateIDLength {
		return nil, ErrInvalidGeneration("template_id", fmt.Errorf("longer than %d characters", maxTemplateIDLength))
	}
	customPrompt = trimmed(customPrompt)
	if customPrompt != nil && len(*customPrompt) > maxPromptLength {
		return nil, ErrInvalidGeneration("custom_prompt", fmt.Errorf("longer than %d characters", maxPromptLength))
	}

	now = now.UTC()
	return &Generation{
		id:             id,
		userID:         owner,
		githubUsername: githubUsername,
		status:         StatusGenerating,
		templateID:     templateID,
		customPrompt:   customPrompt,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// Reconstitute rebuilds a Generation from storage
func Reconstitute(
	id, userID, githubUsername, status string,
	templateID, customPrompt, deploymentURL, failureReason *string,
	createdAt, updatedAt time.Time,
) (*Generation, error) {
	uid, err := user.ParseUserID(userID)
	if err != nil {
		return nil, ErrInvalidGeneration("user_id", err)
	}
	st, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return &Generation{
		id:             id,
		userID:         uid,
		githubUsername: githubUsername,
		status:         st,
		templateID:     templateID,
		customPrompt:   customPrompt,
		deploymentURL:  deploymentURL,
		failureReason:  failureReason,
		createdAt:      createdAt.UTC(),
		updatedAt:      updatedAt.UTC(),
	}, nil
}

// MarkReady completes the generation. deploymentURL is optional but must be http(s).
func (g *Generation) MarkReady(deploymentURL *string, now time.Time) error {
	if g.status != StatusGenerating {
		return ErrInvalidStatusTransition(g.status, StatusReady)
	}

	deploymentURL = trimmed(deploymentURL)
	if deploymentURL != nil {
		u, err := url.Parse(*deploymentURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidGeneration("deployment_url", fmt.Errorf("must be an absolute http(s) URL"))
		}
	}

	g.status = StatusReady
	g.deploymentURL = deploymentURL
	g.updatedAt = now.UTC()
	return nil
}

// MarkFailed ends the generation with an optional reason
func (g *Generation) MarkFailed(reason *string, now time.Time) error {
	if g.status != StatusGenerating {
		return ErrInvalidStatusTransition(g.status, StatusFailed)
	}

	reason = trimmed(reason)
	if reason != nil && len(*reason) > maxReasonLength {
		r := (*reason)[:maxReasonLength]
		reason = &r
	}

	g.status = StatusFailed
	g.failureReason = reason
	g.updatedAt = now.UTC()
	return nil
}

// Transition moves the generation to a terminal status
func (g *Generation) Transition(to Status, deploymentURL, reason *string, now time.Time) error {
	switch to {
	case StatusReady:
		return g.MarkReady(deploymentURL, now)
	case StatusFailed:
		return g.MarkFailed(reason, now)
	default:
		return ErrInvalidStatusTransition(g.status, to)
	}
}

// BelongsTo checks if the generation was started by userID
func (g *Generation) BelongsTo(userID user.UserID) bool {
	return g.userID.Equals(userID)
}

func (g *Generation) ID() string {
	return g.id
}

func (g *Generation) UserID() user.UserID {
	return g.userID
}

func (g *Generation) GitHubUsername() string {
	return g.githubUsername
}

func (g *Generation) Status() Status {
	return g.status
}

func (g *Generation) TemplateID() *string {
	return g.templateID
}

func (g *Generation) CustomPrompt() *string {
	return g.customPrompt
}

func (g *Generation) DeploymentURL() *string {
	return g.deploymentURL
}

func (g *Generation) FailureReason() *string {
	return g.failureReason
}

func (g *Generation) CreatedAt() time.Time {
	return g.createdAt
}

func (g *Generation) UpdatedAt() time.Time {
	return g.updatedAt
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
