package nodemap

import "fmt"

// Policy decides what happens when two records share a SLiM id.
type Policy int

const (
	// LastWins keeps the record seen last.
	LastWins Policy = iota
	// Reject fails the build with [ErrDuplicateID].
	Reject
)

func (p Policy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case Reject:
		return "reject"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps "last-wins" or "reject" to a [Policy].
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "last-wins":
		return LastWins, nil
	case "reject":
		return Reject, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Option configures [Build] and [BuildFrom].
type Option func(*options)

type options struct {
	policy Policy
}

func defaultOptions() options {
	return options{policy: LastWins}
}

// WithDuplicates sets the duplicate policy. Default is [LastWins].
func WithDuplicates(p Policy) Option {
	return func(o *options) {
		o.policy = p
	}
}
