package router

import (
	"fmt"
	"strings"

	"github.com/waypost-dev/waypost/pkg/routepath"
)

// Validator lints a manifest for conditions the trie resolves silently:
// duplicate registrations, ambiguous parameter names, unroutable redirect
// targets. None of these stop a build; they are surfaced so route
// definitions can be fixed at the source.
type Validator struct {
	manifest *Manifest
	errors   []ValidationError
}

// ValidationError is one manifest diagnostic.
type ValidationError struct {
	// Type is the diagnostic category
	Type ValidationErrorType

	// Message is the human-readable description
	Message string

	// Path is the pattern involved
	Path string

	// Details contains additional category-specific information
	Details string
}

func (e ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes manifest diagnostics.
type ValidationErrorType string

const (
	// ErrorDuplicateRoute indicates two registrations of the same pattern.
	// The second never matches: the first terminal wins in the trie.
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorAmbiguousParamName indicates two differently named parameters
	// at the same trie position. The dynamic slot is single per node, so
	// the second name is never observed in match results.
	ErrorAmbiguousParamName ValidationErrorType = "AMBIGUOUS_PARAM_NAME"

	// ErrorUnroutableRedirect indicates a redirect whose target is
	// invalid or resolves to no registered route.
	ErrorUnroutableRedirect ValidationErrorType = "UNROUTABLE_REDIRECT"

	// ErrorSuspiciousStatusCode indicates a status route keyed outside
	// the 4xx/5xx range.
	ErrorSuspiciousStatusCode ValidationErrorType = "SUSPICIOUS_STATUS_CODE"
)

// MultiValidationError wraps multiple diagnostics.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d manifest validation errors:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// NewValidator creates a validator for a manifest.
func NewValidator(m *Manifest) *Validator {
	return &Validator{manifest: m}
}

// Validate runs all checks. It returns nil when the manifest is clean,
// or a MultiValidationError carrying every diagnostic found.
func (v *Validator) Validate() error {
	v.errors = nil

	v.validateDuplicateRoutes()
	v.validateAmbiguousParamNames()
	v.validateRedirects()
	v.validateStatusRoutes()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// addError records a diagnostic.
func (v *Validator) addError(err ValidationError) {
	v.errors = append(v.errors, err)
}

// validateDuplicateRoutes flags patterns registered more than once.
// Patterns compare by canonical text, so "/a/" and "/a" collide, as do
// "/p/:id" and "/p/:id" registered from different entries.
func (v *Validator) validateDuplicateRoutes() {
	seen := make(map[string]*RouteEntry)
	for _, entry := range v.manifest.Routes {
		key := entry.Pattern.String()
		if first, dup := seen[key]; dup {
			v.addError(ValidationError{
				Type:    ErrorDuplicateRoute,
				Message: fmt.Sprintf("pattern %s registered more than once; only the first registration matches", key),
				Path:    key,
				Details: fmt.Sprintf("first: %s, duplicate: %s", first.Module, entry.Module),
			})
			continue
		}
		seen[key] = entry
	}
}

// validateAmbiguousParamNames flags differently named parameters at the
// same structural position. The trie keeps the first name silently; this
// check makes the shadowing visible.
func (v *Validator) validateAmbiguousParamNames() {
	// position key: canonical prefix with dynamic segments erased to their kind
	paramAt := make(map[string]string)   // position -> first param name
	patternAt := make(map[string]string) // position -> first pattern text

	for _, entry := range v.manifest.Routes {
		var prefix strings.Builder
		for _, seg := range entry.Pattern {
			switch seg.Kind {
			case SegmentParam, SegmentCatchAll:
				key := prefix.String() + "/" + seg.Kind.String()
				if first, ok := paramAt[key]; ok {
					if first != seg.Value {
						v.addError(ValidationError{
							Type:    ErrorAmbiguousParamName,
							Message: fmt.Sprintf("parameter :%s in %s shadowed by earlier :%s", seg.Value, entry.Pattern, first),
							Path:    entry.Pattern.String(),
							Details: fmt.Sprintf("first registered in %s", patternAt[key]),
						})
					}
				} else {
					paramAt[key] = seg.Value
					patternAt[key] = entry.Pattern.String()
				}
				prefix.WriteString("/" + seg.Kind.String())
			default:
				prefix.WriteString("/" + seg.Value)
			}
		}
	}
}

// validateRedirects checks that redirect targets canonicalize and
// resolve against the manifest's own routes.
func (v *Validator) validateRedirects() {
	t, err := build(v.manifest)
	if err != nil {
		// Malformed patterns are reported at build time, not by lint.
		return
	}

	for _, entry := range v.manifest.Routes {
		if entry.Kind != KindRedirect {
			continue
		}
		target, err := routepath.Canonicalize(entry.RedirectTo)
		if err != nil {
			v.addError(ValidationError{
				Type:    ErrorUnroutableRedirect,
				Message: fmt.Sprintf("redirect %s has invalid target %q", entry.Pattern, entry.RedirectTo),
				Path:    entry.Pattern.String(),
				Details: err.Error(),
			})
			continue
		}
		// Dynamic targets can't be checked statically.
		if strings.Contains(target, ":") {
			continue
		}
		if _, _, ok := t.root.resolve(routepath.Split(target)); !ok {
			v.addError(ValidationError{
				Type:    ErrorUnroutableRedirect,
				Message: fmt.Sprintf("redirect %s targets %s, which matches no registered route", entry.Pattern, target),
				Path:    entry.Pattern.String(),
			})
		}
	}
}

// validateStatusRoutes flags status routes keyed outside 4xx/5xx.
func (v *Validator) validateStatusRoutes() {
	for code := range v.manifest.StatusRoutes {
		if code < 400 || code > 599 {
			v.addError(ValidationError{
				Type:    ErrorSuspiciousStatusCode,
				Message: fmt.Sprintf("status route registered for %d; expected an error status (4xx or 5xx)", code),
				Path:    fmt.Sprintf("%d", code),
			})
		}
	}
}

// FormatValidationError formats a diagnostic for display:
//
//	ERROR: pattern /projects/:id registered more than once; only the first registration matches
//	  /projects/:id
//	  first: routes/projects/show, duplicate: routes/projects/detail
func FormatValidationError(err ValidationError) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ERROR: %s\n", err.Message))
	if err.Path != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", err.Path))
	}
	if err.Details != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", err.Details))
	}
	return sb.String()
}
