package reactive

import (
	"errors"
	"fmt"
	"strings"
)

// ErrReentrant is matched by every ReentrancyError.
var ErrReentrant = errors.New("reactive: effect re-entered while running")

// ReentrancyError reports an effect that was scheduled to rerun while its own
// body was still executing, typically because it writes a signal it reads.
type ReentrancyError struct {
	// Effect is the effect that was re-entered.
	Effect ID

	// Depth is the tracking stack depth at detection.
	Depth int
}

// Error implements the error interface.
func (e *ReentrancyError) Error() string {
	return fmt.Sprintf("reactive: effect %s re-entered while running (depth %d)", e.Effect, e.Depth)
}

// Is reports whether target is ErrReentrant.
func (e *ReentrancyError) Is(target error) bool {
	return target == ErrReentrant
}

// ReentrancyPolicy controls what happens when an effect is re-entered.
type ReentrancyPolicy int

const (
	// ReentrancyPanic panics with a *ReentrancyError. This is the default:
	// a self-triggering effect is a bug and fails fast.
	ReentrancyPanic ReentrancyPolicy = iota

	// ReentrancySkip logs a warning and drops the nested rerun.
	ReentrancySkip
)

// String returns the policy name.
func (p ReentrancyPolicy) String() string {
	switch p {
	case ReentrancyPanic:
		return "panic"
	case ReentrancySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// ParseReentrancyPolicy parses "panic" or "skip" (case-insensitive).
// An empty string yields ReentrancyPanic.
func ParseReentrancyPolicy(s string) (ReentrancyPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "panic":
		return ReentrancyPanic, nil
	case "skip":
		return ReentrancySkip, nil
	default:
		return ReentrancyPanic, fmt.Errorf("reactive: unknown reentrancy policy %q", s)
	}
}
