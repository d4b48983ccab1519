package core

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/JonMunkholm/brfss/internal/codebook"
	"github.com/JonMunkholm/brfss/internal/validation"
)

// ============================================================================
// Test Data Generators
// ============================================================================

var benchStates = []struct{ abbr, name string }{
	{"CA", "California"}, {"TX", "Texas"}, {"NY", "New York"}, {"FL", "Florida"}, {"GA", "Georgia"},
}

// aggregatedCSV builds n aggregated prevalence rows.
func aggregatedCSV(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("year,locationabbr,locationdesc,topic,question,response,break_out,data_value,confidence_limit_low,confidence_limit_high\n")
	for i := 0; i < n; i++ {
		s := benchStates[i%len(benchStates)]
		fmt.Fprintf(&buf, "2023,%s,%s,Obesity,Adults who have obesity,Yes,Overall,%.1f,%.1f,%.1f\n",
			s.abbr, s.name, 20+float64(i%150)/10, 18+float64(i%150)/10, 22+float64(i%150)/10)
	}
	return buf.Bytes()
}

// rawCSV builds n respondent rows, every 10th with an out-of-range GENHLTH.
func rawCSV(n int) []byte {
	var buf bytes.Buffer
	buf.WriteString("_STATE,SEQNO,IYEAR,GENHLTH,PHYSHLTH,SEXVAR\n")
	for i := 0; i < n; i++ {
		gen := 1 + i%5
		if i%10 == 9 {
			gen = 6
		}
		fmt.Fprintf(&buf, "6,%d,2023,%d,%d,%d\n", i+1, gen, i%31, 1+i%2)
	}
	return buf.Bytes()
}

// ============================================================================
// Ingestion Benchmarks
// ============================================================================

// BenchmarkParseTable_CSV measures CSV decoding through the sanitizing reader.
func BenchmarkParseTable_CSV(b *testing.B) {
	data := aggregatedCSV(10000)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseTable(KindCSV, WrapForParsing(bytes.NewReader(data), 0)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkParseTable_JSON measures record-array decoding.
func BenchmarkParseTable_JSON(b *testing.B) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < 5000; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		s := benchStates[i%len(benchStates)]
		fmt.Fprintf(&buf, `{"year":2023,"locationabbr":%q,"topic":"Obesity","data_value":%d.5}`, s.abbr, 20+i%10)
	}
	buf.WriteByte(']')
	data := buf.Bytes()

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ParseTable(KindJSON, bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSanitizingReader_LargeDataset measures BOM and UTF-8 cleanup on
// clean input, the common case.
func BenchmarkSanitizingReader_LargeDataset(b *testing.B) {
	data := append([]byte("\xEF\xBB\xBF"), bytes.Repeat([]byte("2023,CA,California,Obesity,25.5\n"), 3000)...)

	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := io.Copy(io.Discard, WrapForParsing(bytes.NewReader(data), 0)); err != nil {
			b.Fatal(err)
		}
	}
}

// ============================================================================
// Validation Benchmarks
// ============================================================================

// BenchmarkCheckFile compares sequential and parallel row checking. The
// threshold decides which path a table takes.
func BenchmarkCheckFile(b *testing.B) {
	inputs := []struct {
		name string
		data []byte
	}{
		{"aggregated_20k", aggregatedCSV(20000)},
		{"raw_20k", rawCSV(20000)},
	}
	modes := []struct {
		name      string
		threshold int
	}{
		{"sequential", 1 << 30},
		{"parallel", 1},
	}

	for _, in := range inputs {
		for _, mode := range modes {
			b.Run(in.name+"/"+mode.name, func(b *testing.B) {
				engine := validation.NewEngine(codebook.Default(), validation.Options{ParallelThreshold: mode.threshold})
				b.SetBytes(int64(len(in.data)))
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					res := validation.NewResult("bench", "bench.csv")
					if _, err := CheckFile(engine, res, KindCSV, bytes.NewReader(in.data), 0); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

// BenchmarkSubmit covers the full path including the limiter and the
// memory store.
func BenchmarkSubmit(b *testing.B) {
	data := string(aggregatedCSV(1000))
	engine := validation.NewEngine(codebook.Default(), validation.Options{})
	svc := NewService(NewMemoryStore(), engine, ServiceOptions{})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := svc.Submit(ctx, "CA_submission_2023.csv", strings.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkBuildSummary measures the dashboard roll-up over a full history.
func BenchmarkBuildSummary(b *testing.B) {
	reports := make([]*validation.ValidationResult, 500)
	for i := range reports {
		res := validation.NewResult(fmt.Sprintf("r%07d", i), benchStates[i%len(benchStates)].abbr+"_submission_2023.csv")
		if i%3 == 0 {
			res.AddError(i, "data_value", "bad value")
		}
		res.Finalize()
		reports[i] = res
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		BuildSummary(reports)
		BuildStateStatus(codebook.Default(), reports)
	}
}
