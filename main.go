package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/statement-analyzer/internal/analytics"
	"github.com/insightdelivered/statement-analyzer/internal/api"
	"github.com/insightdelivered/statement-analyzer/internal/categorizer"
	"github.com/insightdelivered/statement-analyzer/internal/config"
	"github.com/insightdelivered/statement-analyzer/internal/logger"
	"github.com/insightdelivered/statement-analyzer/internal/parser"
	"github.com/insightdelivered/statement-analyzer/internal/storage"
)

const version = "1.0.0"

func main() {
	configFlag := flag.String("config", "config.yaml", "Path to the YAML configuration file")
	addrFlag := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbFlag := flag.String("db", "", "Path to the sqlite database (overrides config)")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Bank Statement Analyzer
by Insight Delivered

Ingests bank statement files (CSV, XLSX, PDF), extracts and categorizes
transactions, and serves analytics over HTTP.

Usage:
  statement-analyzer [flags]                 # start the HTTP server
  statement-analyzer [flags] <statement...>  # analyze files and print a summary

Flags:
`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("statement-analyzer v%s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag, true)
	if err != nil {
		fatalf("Error loading config: %v\n", err)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *dbFlag != "" {
		cfg.DatabasePath = *dbFlag
	}

	log := logger.New(cfg.LogLevel)

	cat := categorizer.New()
	if cfg.CategoryRulesPath != "" {
		cat, err = categorizer.NewFromFile(cfg.CategoryRulesPath)
		if err != nil {
			fatalf("Error loading category rules: %v\n", err)
		}
	}

	p := &parser.StatementParser{TempDir: cfg.TempDir}

	// One-shot mode: analyze the given files without persisting anything.
	if flag.NArg() > 0 {
		for _, path := range flag.Args() {
			if err := analyzeFile(p, cat, path); err != nil {
				fatalf("Error processing %s: %v\n", path, err)
			}
		}
		return
	}

	store, err := storage.Open(cfg.DatabasePath)
	if err != nil {
		fatalf("Error opening database: %v\n", err)
	}
	defer store.Close()

	app := fiber.New(fiber.Config{
		AppName:   "statement-analyzer v" + version,
		BodyLimit: cfg.MaxUploadMB << 20,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	api.New(p, store, cat, log).RegisterRoutes(app)

	log.Info().Str("addr", cfg.Addr).Str("db", cfg.DatabasePath).Msg("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// analyzeFile parses one statement from disk and prints its summary as JSON.
func analyzeFile(p *parser.StatementParser, cat *categorizer.Categorizer, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := p.Parse(content, path)
	if err != nil {
		return err
	}
	cat.Apply(result.Transactions)

	out := struct {
		Metadata     interface{} `json:"metadata"`
		Summary      interface{} `json:"summary"`
		TopMerchants interface{} `json:"top_merchants"`
		SkippedRows  int         `json:"skipped_rows"`
	}{
		Metadata:     result.Metadata,
		Summary:      analytics.CalculateSummary(result.Transactions),
		TopMerchants: analytics.CalculateTopMerchants(result.Transactions, 0),
		SkippedRows:  len(result.Skipped),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
