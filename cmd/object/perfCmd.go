package object

import (
	"context"
	"encoding/csv"
	"fmt"
	"github.com/ValentinKolb/oconn/cmd/util"
	"github.com/ValentinKolb/oconn/rpc/client"
	"github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf [model]",
		Short:   "Measures the latency of search_count and read calls on a model",
		Args:    cobra.ExactArgs(1),
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfNumThreads = 10
	perfRequests   = 100
	perfKeySpread  = 100
	perfSkip       = make([]string, 0)
)

// perfResult is the outcome of a single benchmark
type perfResult struct {
	timer  metrics.Timer
	errors metrics.Counter
}

func init() {
	// add flags
	key := "skip"
	perfTestCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. count,read)"))
	key = "threads"
	perfTestCmd.Flags().Int(key, 10, util.WrapString("Number of concurrent workers"))
	key = "requests"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("Number of requests per worker and benchmark"))
	key = "keys"
	perfTestCmd.Flags().Int(key, 100, util.WrapString("How many record ids the read benchmark uses"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfNumThreads = max(viper.GetInt("threads"), 1)
	perfRequests = max(viper.GetInt("requests"), 1)
	perfKeySpread = max(viper.GetInt("keys"), 1)
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(cmd *cobra.Command, args []string) error {
	model := args[0]
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Performance testing tool for model %s\n", model)

	// Print configuration
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Configuration:")
	fmt.Fprintln(out, session.String())
	fmt.Fprintf(out, "Threads: %d, Requests per thread: %d\n", perfNumThreads, perfRequests)
	fmt.Fprintln(out)

	registry := metrics.NewRegistry()
	results := make(map[string]perfResult)
	tests := []string{"count", "read"}

	// ids used by the read benchmark
	ids, err := session.Search(ctx, model, nil, client.WithLimit(perfKeySpread))
	if err != nil {
		return fmt.Errorf("failed to search records of %s: %w", model, err)
	}

	for _, test := range tests {
		if shouldSkip(test) {
			fmt.Fprintf(out, "%-10sskipped\n", test)
			continue
		}

		var op func(ctx context.Context, i int) error
		switch test {
		case "count":
			op = func(ctx context.Context, _ int) error {
				_, err := session.SearchCount(ctx, model, nil)
				return err
			}
		case "read":
			if len(ids) == 0 {
				fmt.Fprintf(out, "%-10sskipped (no records)\n", test)
				continue
			}
			op = func(ctx context.Context, i int) error {
				_, err := session.Read(ctx, model, ids[i%len(ids):i%len(ids)+1], nil)
				return err
			}
		}

		res := perfResult{
			timer:  metrics.GetOrRegisterTimer(test, registry),
			errors: metrics.GetOrRegisterCounter(test+".errors", registry),
		}
		benchmark(ctx, res, op)
		results[test] = res
		printResult(out, test, res)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	// Write results to csv if specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, model, results); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Fprintln(out, "Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchmark runs op perfRequests times on each of perfNumThreads workers
func benchmark(ctx context.Context, res perfResult, op func(context.Context, int) error) {
	var wg sync.WaitGroup
	for w := 0; w < perfNumThreads; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for i := 0; i < perfRequests && ctx.Err() == nil; i++ {
				start := time.Now()
				err := op(ctx, worker*perfRequests+i)
				res.timer.UpdateSince(start)
				if err != nil {
					res.errors.Inc(1)
					Logger.Warningf("request failed: %v", err)
				}
			}
		}(w)
	}
	wg.Wait()
}

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == strings.TrimSpace(skip) {
			return true
		}
	}
	return false
}

var percentiles = []float64{0.5, 0.95, 0.99}

// printResult prints the result of a benchmark in a formatted way
func printResult(out io.Writer, test string, res perfResult) {
	snap := res.timer.Snapshot()
	ps := snap.Percentiles(percentiles)

	fmt.Fprintf(out, "%-10s%d calls, %d errors\tmean %s\tp50 %s\tp95 %s\tp99 %s\t%.1f calls/sec\n",
		test,
		snap.Count(),
		res.errors.Snapshot().Count(),
		time.Duration(snap.Mean()),
		time.Duration(ps[0]),
		time.Duration(ps[1]),
		time.Duration(ps[2]),
		snap.RateMean(),
	)
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath, model string, results map[string]perfResult) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	header := []string{
		"Test", "Model", "Calls", "Errors", "MeanNs", "P50Ns", "P95Ns", "P99Ns", "CallsPerSec",
		"Server", "Protocol", "Threads", "Requests",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	config := session.Config()
	for test, res := range results {
		snap := res.timer.Snapshot()
		ps := snap.Percentiles(percentiles)

		row := []string{
			test,
			model,
			strconv.FormatInt(snap.Count(), 10),
			strconv.FormatInt(res.errors.Snapshot().Count(), 10),
			fmt.Sprintf("%.0f", snap.Mean()),
			fmt.Sprintf("%.0f", ps[0]),
			fmt.Sprintf("%.0f", ps[1]),
			fmt.Sprintf("%.0f", ps[2]),
			fmt.Sprintf("%.1f", snap.RateMean()),
			config.BaseURL(),
			string(config.Protocol),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfRequests),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
