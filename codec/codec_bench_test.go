package codec

import (
	"testing"
)

// analysisDoc has the shape of an analysis configuration file.
type analysisDoc struct {
	CorrelationMethod    string  `json:"correlation_method"`
	AdjustmentMethod     string  `json:"adjustment_method"`
	CorrelationThreshold float64 `json:"correlation_threshold"`
	SortMemoryBudget     int     `json:"sort_memory_budget"`
	AllVsAll             bool    `json:"all_vs_all"`
	Materialize          *bool   `json:"materialize_second_dataset"`
	TopN                 *int    `json:"top_n"`
	Annotated            bool    `json:"second_dataset_has_secondary_annotation"`
}

var benchCodecs = []Codec{JSON{}, GoJSON{}}

func BenchmarkCodec_DecodeConfig(b *testing.B) {
	topN := 100
	data := MustMarshal(JSON{}, analysisDoc{
		CorrelationMethod:    "Kendall",
		AdjustmentMethod:     "BenjaminiYekutieli",
		CorrelationThreshold: 0.6,
		SortMemoryBudget:     2_000_000,
		TopN:                 &topN,
	})

	for _, c := range benchCodecs {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(data)))

			for b.Loop() {
				var doc analysisDoc
				if err := c.Unmarshal(data, &doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCodec_EncodeConfig(b *testing.B) {
	doc := analysisDoc{CorrelationMethod: "Pearson", AdjustmentMethod: "BenjaminiHochberg", CorrelationThreshold: 0.7}

	for _, c := range benchCodecs {
		b.Run(c.Name(), func(b *testing.B) {
			b.ReportAllocs()

			for b.Loop() {
				if _, err := c.Marshal(doc); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
