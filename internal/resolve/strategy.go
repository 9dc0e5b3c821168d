// Package resolve applies a conflict strategy to the unmerged paths left
// behind by a failed merge.
package resolve

import (
	"fmt"

	arerrors "github.com/gitops-tools/autoresolve/internal/errors"
)

// Strategy selects which side of a conflicting file is authoritative.
// It is a closed enumeration: untyped configuration input is validated once
// through ParseStrategy and every downstream component consumes only this type.
type Strategy string

// Accepted strategy values.
const (
	// StrategyOurs keeps the local pre-merge version of a conflicted file.
	StrategyOurs Strategy = "ours"
	// StrategyTheirs keeps the incoming version of a conflicted file.
	StrategyTheirs Strategy = "theirs"
)

// ParseStrategy validates an untyped strategy value at the configuration
// boundary. Returns ErrInvalidStrategy for anything outside {ours, theirs}.
func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyOurs:
		return StrategyOurs, nil
	case StrategyTheirs:
		return StrategyTheirs, nil
	default:
		return "", fmt.Errorf("%w: %q must be one of [ours theirs]", arerrors.ErrInvalidStrategy, value)
	}
}

// Side returns the checkout side argument for the strategy.
func (s Strategy) Side() string {
	return string(s)
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	return string(s)
}
