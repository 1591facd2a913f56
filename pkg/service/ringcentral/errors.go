package ringcentral

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors for typed fault outcomes. All classification of platform
// faults happens once, at the transport boundary; callers branch on these
// with errors.Is and never re-parse error bodies.
var (
	// ErrNotFound is reported when the platform says a resource "is not found".
	// It is a terminal, informational outcome: synchronizers disregard it in
	// list and membership contexts, and it is never retried.
	ErrNotFound = goerr.New("resource is not found on RingCentral")

	// ErrAlreadyExists is reported on the duplicate-email conflict during user
	// creation
	ErrAlreadyExists = goerr.New("extension e-mail already exists on RingCentral account")

	// ErrUnsupported marks operations the RingCentral API does not offer
	ErrUnsupported = goerr.New("operation is not supported by the RingCentral API")

	// ErrInvalidResponse marks a success response that is missing an expected
	// field, such as the id after a create or update
	ErrInvalidResponse = goerr.New("RingCentral returned an invalid response")
)

// faultRule pairs a case-insensitive substring predicate with the typed
// outcome it maps to. The platform has no structured error codes; matching
// its fault text is the only discrimination mechanism available. Rules are
// evaluated in order, so new platform fault strings can be added without
// restructuring control flow.
type faultRule struct {
	substr  string
	wrap    error
	message string
}

var faultRules = []faultRule{
	{substr: "is not found", wrap: ErrNotFound, message: "not found"},
	{substr: "extension e-mail already exists on account", wrap: ErrAlreadyExists, message: "cannot create user: duplicate email"},
}

// classifyFault turns a non-2xx response into a typed error. The body must be
// an ErrorResponse JSON document; anything else is a generic transport error
// carrying the raw body for diagnostics.
func classifyFault(resp *http.Response, body []byte) error {
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		return goerr.New("unable to parse RingCentral fault, not valid JSON",
			goerr.V("status", resp.StatusCode),
			goerr.V("content_type", contentType),
			goerr.V("body", string(body)),
		)
	}

	var fault ErrorResponse
	if err := json.Unmarshal(body, &fault); err != nil {
		return goerr.Wrap(err, "unable to read RingCentral fault information",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}
	if fault == (ErrorResponse{}) {
		return goerr.New("unable to read RingCentral fault information",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(body)),
		)
	}

	// detail takes precedence over message when both are present
	text := fault.Detail
	if text == "" {
		text = fault.Message
	}

	lower := strings.ToLower(text)
	for _, rule := range faultRules {
		if strings.Contains(lower, rule.substr) {
			return goerr.Wrap(rule.wrap, rule.message,
				goerr.V("fault", text),
				goerr.V("status", resp.StatusCode),
			)
		}
	}

	return goerr.New("unknown fault occurred with RingCentral call",
		goerr.V("fault", text),
		goerr.V("status", resp.StatusCode),
	)
}
