package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cybershield/threat-analyzer/internal/core"
	"github.com/cybershield/threat-analyzer/internal/logging"
	"github.com/cybershield/threat-analyzer/internal/utils"
	"go.uber.org/zap"
)

var (
	contentType  = flag.String("type", "email", "Content type to analyze (email, url, message)")
	inputFile    = flag.String("file", "", "Input file (use stdin if not specified)")
	modelVersion = flag.String("model-version", "1.0.0", "Version string stamped on the verdict")
	maxLength    = flag.Int("max-length", 50000, "Maximum content length in bytes")
	jsonOutput   = flag.Bool("json", false, "Print the full verdict as JSON")
	verbose      = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog      = flag.Bool("json-log", false, "Output logs in JSON format")
)

func main() {
	flag.Parse()

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ct := core.ContentType(*contentType)
	switch ct {
	case core.ContentTypeEmail, core.ContentTypeURL, core.ContentTypeMessage:
	default:
		logger.Fatal("Invalid content type", zap.String("type", *contentType))
	}

	// Read content from file or stdin
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		reader = file
	} else {
		reader = os.Stdin
		logger.Info("Reading content from stdin")
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		logger.Fatal("Failed to read content", zap.Error(err))
	}

	sanitizer := utils.NewContentSanitizer(*maxLength, logger)
	content, err := sanitizer.Sanitize(string(raw))
	if err != nil {
		logger.Fatal("Invalid content", zap.Error(err))
	}

	analyzer := core.NewAnalysisService(logger, *modelVersion)
	result, err := analyzer.Analyze(context.Background(), &core.AnalysisRequest{
		ContentType: ct,
		Content:     content,
	})
	if err != nil {
		logger.Fatal("Analysis failed", zap.Error(err))
	}

	if *jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Fatal("Failed to encode result", zap.Error(err))
		}
		return
	}

	printReport(result)
}

// printReport writes the human-readable verdict to stdout.
func printReport(result *core.AnalysisResult) {
	fmt.Printf("\n=== Verdict ===\n")
	fmt.Printf("Threat type: %s\n", result.ThreatType)
	fmt.Printf("Severity: %s\n", result.Severity)
	fmt.Printf("Risk score: %d/100\n", result.RiskScore)
	fmt.Printf("Confidence: %d%%\n", result.Confidence)
	fmt.Printf("False positive likelihood: %s\n", result.FalsePositiveLikelihood)
	fmt.Printf("Summary: %s\n", result.Summary)

	if len(result.Indicators) > 0 {
		fmt.Printf("\n=== Indicators ===\n")
		for _, ind := range result.Indicators {
			fmt.Printf("  [%s] %s (+%d): %s\n", ind.Kind, ind.Value, ind.RiskContribution, ind.Description)
		}
	}

	if len(result.RiskContributions) > 0 {
		fmt.Printf("\n=== Risk Breakdown ===\n")
		for _, rc := range result.RiskContributions {
			fmt.Printf("  %-22s %3d  (%s)\n", rc.Label, rc.Value, rc.Category)
		}
	}

	fmt.Printf("\n=== Explanation ===\n")
	for _, section := range result.Explanation {
		fmt.Printf("%s [%s]\n", section.Title, section.Severity)
		fmt.Printf("  %s\n", section.Content)
	}

	if len(result.Recommendations) > 0 {
		fmt.Printf("\n=== Recommendations ===\n")
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}

	fmt.Printf("\nModel version: %s\n", result.ModelVersion)
	fmt.Printf("Input hash: %s\n", result.InputHash)
	fmt.Printf("Processing time: %dms\n", result.ProcessingTimeMs)
	fmt.Println(strings.Repeat("-", 40))
}
