// Package admission decides whether a request may reach business logic:
// bearer presence first, then per-caller rate quotas.
package admission

import (
	"net/http"
	"strings"

	"text-decoder/api/internal/apperr"
)

type Route string

const (
	Health             Route = "health"
	IdentifySpeakers   Route = "identify_speakers"
	Conversation       Route = "conversation"
	ResponseImpact     Route = "response_impact"
	Profile            Route = "profile"
	SelfProfile        Route = "self_profile"
	Behaviors          Route = "behaviors"
	BehaviorCategories Route = "behavior_categories"
	SyncUpload         Route = "sync_upload"
	SyncDownload       Route = "sync_download"
	UserDelete         Route = "user_delete"
)

// Policy is the static admission rule of one route.
// PerMinute == 0 means only the global ceilings apply.
// Exempt routes skip rate limiting entirely.
type Policy struct {
	Auth      bool
	PerMinute int
	Exempt    bool
}

var Policies = map[Route]Policy{
	Health:             {Exempt: true},
	IdentifySpeakers:   {Auth: true, PerMinute: 30},
	Conversation:       {Auth: true, PerMinute: 20},
	ResponseImpact:     {Auth: true, PerMinute: 30},
	Profile:            {Auth: true, PerMinute: 10},
	SelfProfile:        {Auth: true, PerMinute: 10},
	Behaviors:          {PerMinute: 60},
	BehaviorCategories: {},
	SyncUpload:         {Auth: true, PerMinute: 10},
	SyncDownload:       {Auth: true, PerMinute: 10},
	UserDelete:         {Auth: true, PerMinute: 5},
}

const bearerPrefix = "Bearer "

// Authorize checks only that a "Bearer <token>" credential is present.
// Verifying the token itself belongs to the identity provider.
func Authorize(h http.Header) error {
	v := h.Get("Authorization")
	if !strings.HasPrefix(v, bearerPrefix) || strings.TrimSpace(v[len(bearerPrefix):]) == "" {
		return apperr.New(apperr.Unauthorized, "Unauthorized", "Valid authentication token required")
	}
	return nil
}

var errRateLimited = apperr.New(apperr.RateLimited, "Rate Limit Exceeded", "Too many requests. Please wait before trying again.")
