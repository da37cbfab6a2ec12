package testutil

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillGaussian fills dst with standard normal values.
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// GaussianRows returns num rows of the given number of standard normal samples.
func (r *RNG) GaussianRows(num, samples int) [][]float64 {
	rows := make([][]float64, num)
	for i := range rows {
		rows[i] = make([]float64, samples)
		r.FillGaussian(rows[i])
	}
	return rows
}

// TiedRows returns num rows whose values are drawn from {0, ..., levels-1}.
// Small level counts produce many ties, exercising the rank paths.
func (r *RNG) TiedRows(num, samples, levels int) [][]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := make([][]float64, num)
	for i := range rows {
		rows[i] = make([]float64, samples)
		for j := range rows[i] {
			rows[i][j] = float64(r.rand.Intn(levels))
		}
	}
	return rows
}

// Shuffle shuffles n elements using swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(n, swap)
}

// RowNames returns prefix0..prefix{n-1}.
func RowNames(prefix string, n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return names
}

// FormatTSV renders a header line followed by one line per row. Each line is
// the row's leading string fields followed by its values.
func FormatTSV(header []string, fields [][]string, values [][]float64) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, "\t"))
	sb.WriteByte('\n')
	for i, vals := range values {
		parts := append([]string(nil), fields[i]...)
		for _, v := range vals {
			parts = append(parts, strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteString(strings.Join(parts, "\t"))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// WriteTSV writes content to dir/name and returns the path.
func WriteTSV(t testing.TB, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
