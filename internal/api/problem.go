package api

import (
	"strings"
	"time"

	"portfoliohub/internal/hub"
)

// problemTypeBaseURI prefixes the stable problem type URIs.
const problemTypeBaseURI = "https://api.portfoliohub.dev/problems/"

// Problem is the RFC7807 problem-detail body returned for every non-2xx
// response.
type Problem struct {
	Type          string          `json:"type"`
	Title         string          `json:"title"`
	Status        int             `json:"status"`
	Detail        string          `json:"detail"`
	Instance      string          `json:"instance"`
	CorrelationID string          `json:"correlationId"`
	ErrorCode     string          `json:"errorCode"`
	Timestamp     time.Time       `json:"timestamp"`
	Violations    []hub.Violation `json:"violations,omitempty"`
	Metadata      map[string]any  `json:"metadata,omitempty"`
}

// problemEntry is the per-kind translation table row.
type problemEntry struct {
	status int
	title  string
	code   string
}

var problemEntries = map[hub.Kind]problemEntry{
	hub.KindNotFound:     {404, "Not Found", "RESOURCE_NOT_FOUND"},
	hub.KindValidation:   {400, "Bad Request", "VALIDATION_ERROR"},
	hub.KindUnauthorized: {401, "Unauthorized", "UNAUTHORIZED"},
	hub.KindForbidden:    {403, "Forbidden", "FORBIDDEN"},
	hub.KindProvider:     {503, "Service Unavailable", "PROVIDER_ERROR"},
	hub.KindInternal:     {500, "Internal Server Error", "INTERNAL_ERROR"},
}

// NewProblem translates a failure into its problem-detail body. The mapping
// is total: anything that is not a *hub.Error, or carries an unknown kind,
// becomes a generic internal error with the cause withheld from the caller.
func NewProblem(err error, instance, correlationID string, now time.Time) Problem {
	detail := "An unexpected error occurred"
	var violations []hub.Violation

	entry := problemEntries[hub.KindInternal]
	if e := hub.AsError(err); e != nil {
		if known, ok := problemEntries[e.Kind]; ok {
			entry = known
			detail = e.Detail
			violations = e.Violations
		}
	}

	return Problem{
		Type:          problemTypeBaseURI + strings.ReplaceAll(strings.ToLower(entry.code), "_", "-"),
		Title:         entry.title,
		Status:        entry.status,
		Detail:        detail,
		Instance:      instance,
		CorrelationID: correlationID,
		ErrorCode:     entry.code,
		Timestamp:     now,
		Violations:    violations,
	}
}
