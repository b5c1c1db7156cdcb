package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/vskvj3/idxlist/internal/harness"
	"github.com/vskvj3/idxlist/internal/utils"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Parse command-line arguments
	configPtr := flag.String("config", defaultConfigPath(), "Path of the YAML config file")
	quantityPtr := flag.Int("quantity", -1, "Number of data items to use in tests")
	dataTypePtr := flag.String("data_type", "", "Label used to build test values: str, int, float, or char")
	maxSizePtr := flag.Int("max_size", -1, "Maximum size of the linked list (0 for unbounded)")
	workersPtr := flag.Int("workers", -1, "Number of concurrent appenders")
	debugPtr := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	// Load configurations
	config, err := utils.LoadConfig(*configPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading configuration:", err)
		return 2
	}

	// Flags win over the config file
	if *quantityPtr >= 0 {
		config.Quantity = *quantityPtr
	}
	if *dataTypePtr != "" {
		config.DataType = *dataTypePtr
	}
	if *maxSizePtr >= 0 {
		config.SetCapacity(*maxSizePtr)
	}
	if *workersPtr >= 0 {
		config.Workers = *workersPtr
	}
	if *debugPtr {
		config.Debug = true
	}

	logger := utils.NewLogger(config.LogFile, config.Debug)
	logger.Info("Loaded configurations from " + *configPtr)

	runner, err := harness.NewRunner(config, logger)
	if err != nil {
		logger.Error("Invalid configuration: " + err.Error())
		return 2
	}
	logger.Info(fmt.Sprintf("Running with quantity=%d data_type=%s max_size=%d workers=%d",
		config.Quantity, config.DataType, config.Capacity(), config.Workers))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := runner.Run(ctx)
	printReport(report)

	if report.Failed() {
		return 1
	}
	return 0
}

func printReport(report harness.Report) {
	pass := color.New(color.FgGreen).SprintFunc()
	fail := color.New(color.FgRed, color.Bold).SprintFunc()
	skip := color.New(color.FgYellow).SprintFunc()

	for _, res := range report.Results {
		switch {
		case res.Passed():
			fmt.Printf("%s %-22s %s\n", pass("PASS"), res.Name, res.Duration)
		case res.Skipped():
			fmt.Printf("%s %-22s %v\n", skip("SKIP"), res.Name, res.Err)
		default:
			fmt.Printf("%s %-22s %v\n", fail("FAIL"), res.Name, res.Err)
		}
	}

	if len(report.Samples) == 0 {
		return
	}
	fmt.Println()
	for _, s := range report.Samples {
		if s.Mean == 0 && s.Max == 0 {
			fmt.Printf("%-44s count=%d\n", s.Name, s.Count)
			continue
		}
		fmt.Printf("%-44s count=%d mean=%.4fms max=%.4fms\n", s.Name, s.Count, s.Mean, s.Max)
	}
}

func defaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "idxlist.yaml"
	}
	return filepath.Join(homeDir, ".idxlist", "idxlist.yaml")
}
