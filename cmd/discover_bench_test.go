package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func generateFeature(name string, scenarioCount int) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Feature: %s\n", name)
	buf.WriteString("  Background:\n")
	buf.WriteString("    Given the system is running\n\n")
	for i := 1; i <= scenarioCount; i++ {
		fmt.Fprintf(&buf, "  @n%d\n", i%3)
		fmt.Fprintf(&buf, "  Scenario: %s scenario %d\n", name, i)
		fmt.Fprintf(&buf, "    Given precondition %d\n", i)
		fmt.Fprintf(&buf, "    When action %d is taken\n", i)
		fmt.Fprintf(&buf, "    Then result %d is observed\n\n", i)
	}
	return buf.String()
}

func setupBenchProject(b *testing.B, fileCount, scenariosPerFile int, journal bool) {
	b.Helper()
	dir := b.TempDir()
	orig, err := os.Getwd()
	require.NoError(b, err)
	require.NoError(b, os.Chdir(dir))
	b.Cleanup(func() { os.Chdir(orig) })

	if journal {
		var buf bytes.Buffer
		require.NoError(b, RunInit(&buf, testJournal))
	}
	for i := 0; i < fileCount; i++ {
		name := fmt.Sprintf("feature_%d", i)
		writeFeature(b, fmt.Sprintf("features/%s.feature", name), generateFeature(name, scenariosPerFile))
	}
}

func benchmarkDiscover(b *testing.B, opts DiscoverOptions) {
	var buf bytes.Buffer
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		require.NoError(b, RunDiscover(context.Background(), &buf, opts))
	}
}

// BenchmarkDiscover_Small: 5 files, 10 scenarios each
func BenchmarkDiscover_Small(b *testing.B) {
	setupBenchProject(b, 5, 10, false)
	benchmarkDiscover(b, discoverOptions("features"))
}

// BenchmarkDiscover_Large: 50 files, 50 scenarios each
func BenchmarkDiscover_Large(b *testing.B) {
	setupBenchProject(b, 50, 50, false)
	benchmarkDiscover(b, discoverOptions("features"))
}

// BenchmarkDiscover_Tagged: 20 files, 20 scenarios each, tag filter
func BenchmarkDiscover_Tagged(b *testing.B) {
	setupBenchProject(b, 20, 20, false)
	opts := discoverOptions("features")
	opts.Tags = []string{"@n1"}
	benchmarkDiscover(b, opts)
}

// BenchmarkDiscover_Journal: 20 files, 20 scenarios each, recorded
func BenchmarkDiscover_Journal(b *testing.B) {
	setupBenchProject(b, 20, 20, true)
	benchmarkDiscover(b, discoverOptions("features"))
}

// BenchmarkDiscover_NDJSON: 20 files, 20 scenarios each, event stream
func BenchmarkDiscover_NDJSON(b *testing.B) {
	setupBenchProject(b, 20, 20, false)
	opts := discoverOptions("features")
	opts.Format = "ndjson"
	benchmarkDiscover(b, opts)
}
