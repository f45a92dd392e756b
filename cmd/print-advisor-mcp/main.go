package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/print-advisor-mcp/internal/complexity"
	"github.com/ironsheep/print-advisor-mcp/internal/config"
	"github.com/ironsheep/print-advisor-mcp/internal/logger"
	"github.com/ironsheep/print-advisor-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("print-advisor-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("print-advisor-mcp - MCP server for print complexity analysis")
			fmt.Println()
			fmt.Println("Usage: print-advisor-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  PRINT_ADVISOR_LOG_LEVEL=info        debug, info, warn, error")
			fmt.Println("  PRINT_ADVISOR_LOG_FORMAT=text       text or json")
			fmt.Println("  PRINT_ADVISOR_TOLERANCE=8           color quantization step (1-255)")
			fmt.Println("  PRINT_ADVISOR_ANALYSIS_SIZE=256     color sampling resolution")
			fmt.Println("  PRINT_ADVISOR_GRADIENT_SIZE=128     gradient/edge resolution")
			fmt.Println("  PRINT_ADVISOR_EDGE_THRESHOLD=50     edge response threshold (0-255)")
			fmt.Println("  PRINT_ADVISOR_TOP_COLORS=5          dominant colors per report")
			fmt.Println("  PRINT_ADVISOR_MAX_IMAGE_BYTES=20971520")
			fmt.Println("  PRINT_ADVISOR_MAX_PIXELS=40000000")
			fmt.Println("  PRINT_ADVISOR_WORKERS=<cpus>        parallel batch analyses")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(2)
	}

	// Logs go to stderr (stdout is for MCP protocol)
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(2)
	}

	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
		"workers":    cfg.Workers,
	}).Debug("starting print advisor MCP server")

	analyzer, err := complexity.NewAnalyzer(cfg.AnalysisOptions(), log)
	if err != nil {
		log.WithError(err).Fatal("invalid analysis options")
	}

	srv := server.New(analyzer, log, Version)
	if err := srv.Run(); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
