package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/ironsheep/math-analysis-mcp/internal/config"
	"github.com/ironsheep/math-analysis-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("math-analysis-mcp", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	cfgFile := flags.String("config", config.DefaultConfigPath(), "YAML config file (default: $MATH_MCP_CONFIG)")
	logLevel := flags.String("log-level", "", "log level: debug, info, warn, error")
	logFormat := flags.String("log-format", "", "log format: json or text")
	showVersion := flags.BoolP("version", "v", false, "Print version information")
	showHelp := flags.BoolP("help", "h", false, "Print this help message")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "math-analysis-mcp %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}
	if *showHelp {
		printUsage(stdout, flags)
		return 0
	}

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = *logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = *logFormat
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	// stdout is for MCP protocol
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	logger.Debug("math analysis MCP server",
		"version", Version, "build_time", BuildTime, "commit", GitCommit)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The read loop blocks on stdin, so a signal is observed here rather
	// than inside Run.
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, stdin, stdout) }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("server error", "error", err)
			return 1
		}
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}
	return 0
}

func printUsage(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintln(w, "math-analysis-mcp - MCP server for numerical analysis")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: math-analysis-mcp [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (also read from ./.env):")
	fmt.Fprintln(w, "  MATH_MCP_CONFIG               Config file path")
	fmt.Fprintln(w, "  MATH_MCP_LOG_LEVEL=debug      Enable debug logging")
	fmt.Fprintln(w, "  MATH_MCP_LOG_FORMAT=text      Human-readable logs")
	fmt.Fprintln(w, "  MATH_MCP_SERVER_NAME          Name reported by initialize")
	fmt.Fprintln(w, "  MATH_MCP_SERVER_VERSION       Version reported by initialize")
	fmt.Fprintln(w, "  MATH_MCP_MAX_MESSAGE_BYTES    Longest accepted input line")
	fmt.Fprintln(w, "  MATH_MCP_LEGACY_TOOL_ERRORS   Report tool failures with isError=false")
	fmt.Fprintln(w, "  MATH_MCP_DISABLED_TOOLS       Comma-separated tools to hide")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client (e.g., Claude Desktop).")
}
