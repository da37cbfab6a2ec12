package paircorr

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordCodec(t *testing.T) {
	var c recordCodec

	records := []Record{
		{Primary: "BRCA1", Secondary: "BRCA1", Annotation: "cg0001", Statistic: -0.93, PValue: 1e-300, AdjustedPValue: 5e-299, Evaluated: true, Adjusted: true},
		{Primary: "g", Secondary: "", Statistic: math.NaN(), PValue: 1, Evaluated: true},
		{},
	}

	var buf []byte
	for _, r := range records {
		buf = c.Append(buf, r)
	}

	for i, want := range records {
		got, n, err := c.Decode(buf)
		require.NoError(t, err, i)
		buf = buf[n:]

		assert.Equal(t, want.Primary, got.Primary)
		assert.Equal(t, want.Secondary, got.Secondary)
		assert.Equal(t, want.Annotation, got.Annotation)
		assert.Equal(t, math.Float64bits(want.Statistic), math.Float64bits(got.Statistic))
		assert.Equal(t, want.PValue, got.PValue)
		assert.Equal(t, want.AdjustedPValue, got.AdjustedPValue)
		assert.Equal(t, want.Evaluated, got.Evaluated)
		assert.Equal(t, want.Adjusted, got.Adjusted)
	}
	assert.Empty(t, buf)
}

func TestRecordCodecTruncated(t *testing.T) {
	var c recordCodec
	full := c.Append(nil, Record{Primary: "a", Secondary: "b", Annotation: "c", Statistic: 0.5})

	for n := range len(full) {
		_, _, err := c.Decode(full[:n])
		assert.ErrorIs(t, err, errShortRecord, "prefix %d", n)
	}
}
