package adjustment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMethod is returned when an adjustment method name is not recognized.
var ErrInvalidMethod = errors.New("invalid adjustment method")

// Method selects the multiple-testing correction applied to a run.
type Method uint8

const (
	// Bonferroni multiplies every p-value by the number of tests.
	Bonferroni Method = iota + 1
	// BenjaminiHochberg is the step-up FDR procedure for independent tests.
	BenjaminiHochberg
	// BenjaminiYekutieli is BenjaminiHochberg scaled for arbitrary dependence.
	BenjaminiYekutieli
)

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case Bonferroni:
		return "Bonferroni"
	case BenjaminiHochberg:
		return "BenjaminiHochberg"
	case BenjaminiYekutieli:
		return "BenjaminiYekutieli"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= Bonferroni && m <= BenjaminiYekutieli
}

// RequiresRanking reports whether Adjust depends on the rank, i.e. whether
// records must be sorted by p-value before adjusting.
func (m Method) RequiresRanking() bool {
	return m == BenjaminiHochberg || m == BenjaminiYekutieli
}

// ParseMethod parses a method name case-insensitively. The short forms
// "bh" and "by" are accepted.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bonferroni":
		return Bonferroni, nil
	case "benjaminihochberg", "bh":
		return BenjaminiHochberg, nil
	case "benjaminiyekutieli", "by":
		return BenjaminiYekutieli, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMethod, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMethod, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
