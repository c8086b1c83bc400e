package router

import (
	"errors"
	"fmt"
	"strings"
)

// Pattern parsing errors.
var (
	// ErrCatchAllNotLast indicates a catch-all segment before the final position.
	ErrCatchAllNotLast = errors.New("catch-all segment must be last")

	// ErrDuplicateCatchAll indicates more than one catch-all in a pattern.
	ErrDuplicateCatchAll = errors.New("pattern has more than one catch-all segment")
)

// SegmentKind identifies how a pattern segment matches path text.
type SegmentKind int

const (
	// SegmentLiteral matches exact, undecoded segment text.
	SegmentLiteral SegmentKind = iota

	// SegmentParam matches any single segment and binds it to a name.
	SegmentParam

	// SegmentCatchAll matches zero or more remaining segments.
	SegmentCatchAll
)

// String returns the kind name for diagnostics.
func (k SegmentKind) String() string {
	switch k {
	case SegmentLiteral:
		return "literal"
	case SegmentParam:
		return "param"
	case SegmentCatchAll:
		return "catch-all"
	default:
		return "unknown"
	}
}

// Segment is one element of a parsed pattern. Value holds the literal
// text for SegmentLiteral, or the parameter name otherwise.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Pattern is the parsed, immutable form of a route pattern string.
type Pattern []Segment

// ParsePattern parses a pattern string into typed segments.
//
// The string is split on "/" with empty segments dropped, so "/", leading
// and trailing slashes all normalize away. A ":name" token is a parameter,
// a ":name*" token is a catch-all, anything else is a literal taken
// verbatim (no decoding, no case folding).
func ParsePattern(raw string) (Pattern, error) {
	tokens := strings.Split(strings.Trim(raw, "/"), "/")

	var pattern Pattern
	catchAllAt := -1

	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		switch {
		case strings.HasPrefix(tok, ":") && strings.HasSuffix(tok, "*"):
			if catchAllAt != -1 {
				return nil, fmt.Errorf("pattern %q: %w", raw, ErrDuplicateCatchAll)
			}
			catchAllAt = len(pattern)
			pattern = append(pattern, Segment{Kind: SegmentCatchAll, Value: tok[1 : len(tok)-1]})
		case strings.HasPrefix(tok, ":"):
			pattern = append(pattern, Segment{Kind: SegmentParam, Value: tok[1:]})
		default:
			pattern = append(pattern, Segment{Kind: SegmentLiteral, Value: tok})
		}
	}

	if catchAllAt != -1 && catchAllAt != len(pattern)-1 {
		return nil, fmt.Errorf("pattern %q: %w", raw, ErrCatchAllNotLast)
	}

	return pattern, nil
}

// MustParsePattern is ParsePattern that panics on malformed input.
// Intended for statically known patterns in tests and registration code.
func MustParsePattern(raw string) Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// HasCatchAll reports whether the final segment is a catch-all.
func (p Pattern) HasCatchAll() bool {
	return len(p) > 0 && p[len(p)-1].Kind == SegmentCatchAll
}

// ParamNames returns the parameter and catch-all names in segment order.
func (p Pattern) ParamNames() []string {
	var names []string
	for _, seg := range p {
		if seg.Kind != SegmentLiteral {
			names = append(names, seg.Value)
		}
	}
	return names
}

// String reassembles the canonical pattern text, "/" for the empty pattern.
func (p Pattern) String() string {
	if len(p) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, seg := range p {
		sb.WriteByte('/')
		switch seg.Kind {
		case SegmentParam:
			sb.WriteByte(':')
			sb.WriteString(seg.Value)
		case SegmentCatchAll:
			sb.WriteByte(':')
			sb.WriteString(seg.Value)
			sb.WriteByte('*')
		default:
			sb.WriteString(seg.Value)
		}
	}
	return sb.String()
}
