package paircorr

import (
	"encoding/binary"
	"errors"
	"math"
)

// Record is one correlated pair.
type Record struct {
	// Primary is the label of the first dataset's row.
	Primary string
	// Secondary is the label of the second dataset's row.
	Secondary string
	// Annotation is the second row's annotation, empty if absent.
	Annotation string

	Statistic      float64
	PValue         float64
	AdjustedPValue float64

	// Evaluated is false for pairs matching-only mode excluded; Statistic
	// and PValue are then meaningless. Such pairs never reach a Result.
	Evaluated bool
	// Adjusted reports that AdjustedPValue is set.
	Adjusted bool
}

const (
	flagEvaluated byte = 1 << iota
	flagAdjusted
)

var errShortRecord = errors.New("truncated record")

// recordCodec is the spill encoding of a Record: three uvarint-prefixed
// strings, three little-endian float64 and a flag byte.
type recordCodec struct{}

func (recordCodec) Append(dst []byte, r Record) []byte {
	for _, s := range [...]string{r.Primary, r.Secondary, r.Annotation} {
		dst = binary.AppendUvarint(dst, uint64(len(s)))
		dst = append(dst, s...)
	}
	for _, f := range [...]float64{r.Statistic, r.PValue, r.AdjustedPValue} {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(f))
	}

	var flags byte
	if r.Evaluated {
		flags |= flagEvaluated
	}
	if r.Adjusted {
		flags |= flagAdjusted
	}
	return append(dst, flags)
}

func (recordCodec) Decode(src []byte) (Record, int, error) {
	var r Record
	off := 0

	var strs [3]string
	for i := range strs {
		l, n := binary.Uvarint(src[off:])
		if n <= 0 || uint64(len(src)-off-n) < l {
			return Record{}, 0, errShortRecord
		}
		off += n
		strs[i] = string(src[off : off+int(l)])
		off += int(l)
	}
	r.Primary, r.Secondary, r.Annotation = strs[0], strs[1], strs[2]

	if len(src)-off < 3*8+1 {
		return Record{}, 0, errShortRecord
	}
	r.Statistic = math.Float64frombits(binary.LittleEndian.Uint64(src[off:]))
	r.PValue = math.Float64frombits(binary.LittleEndian.Uint64(src[off+8:]))
	r.AdjustedPValue = math.Float64frombits(binary.LittleEndian.Uint64(src[off+16:]))
	off += 24

	flags := src[off]
	r.Evaluated = flags&flagEvaluated != 0
	r.Adjusted = flags&flagAdjusted != 0
	off++

	return r, off, nil
}
