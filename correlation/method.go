package correlation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMethod is returned when a correlation method name is not recognized.
var ErrInvalidMethod = errors.New("invalid correlation method")

// Method selects the correlation algorithm used for every pair of a run.
type Method uint8

const (
	// Pearson is the product-moment correlation coefficient.
	Pearson Method = iota + 1
	// Spearman is the Pearson coefficient computed over mean ranks.
	Spearman
	// Kendall is the tie-corrected Kendall rank correlation (tau-b).
	Kendall
)

// String returns the canonical name of the method.
func (m Method) String() string {
	switch m {
	case Pearson:
		return "Pearson"
	case Spearman:
		return "Spearman"
	case Kendall:
		return "Kendall"
	default:
		return fmt.Sprintf("Method(%d)", uint8(m))
	}
}

// Valid reports whether m is one of the supported methods.
func (m Method) Valid() bool {
	return m >= Pearson && m <= Kendall
}

// ParseMethod parses a method name case-insensitively.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pearson":
		return Pearson, nil
	case "spearman":
		return Spearman, nil
	case "kendall":
		return Kendall, nil
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
