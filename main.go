package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	toolcli "github.com/mnakata/mcp-gsheets/internal/cli"
	"github.com/mnakata/mcp-gsheets/internal/gsheets"
	"github.com/mnakata/mcp-gsheets/internal/registry"

	// Import all tool packages to register them
	_ "github.com/mnakata/mcp-gsheets/internal/imports"
)

// Version information (set during build)
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Global resources that need cleanup. Atomics prevent races between signal
// handlers and cleanup.
var (
	debugLogFile atomic.Pointer[os.File]
	isStdioMode  atomic.Bool
)

// parseLogLevel parses the LOG_LEVEL environment variable. Defaults to
// WarnLevel if not set or invalid.
func parseLogLevel() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

func main() {
	// Best effort: a missing .env file is not an error
	_ = godotenv.Load()

	// Create context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Discard output until the transport mode is known; stdio must never see
	// log lines on stdout.
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(parseLogLevel())
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	registry.Init(logger)

	defer performCleanup()

	app := &cli.Command{
		Name:    "mcp-gsheets",
		Usage:   "MCP server for Google Sheets",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "transport",
				Aliases: []string{"t"},
				Value:   "stdio",
				Usage:   "Transport type (stdio or http)",
			},
			&cli.StringFlag{
				Name:  "port",
				Value: "18080",
				Usage: "Port for the HTTP transport",
			},
			&cli.StringFlag{
				Name:  "endpoint-path",
				Value: "/mcp",
				Usage: "Endpoint path for the HTTP transport",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					fmt.Printf("mcp-gsheets version %s\n", Version)
					fmt.Printf("Commit: %s\n", Commit)
					fmt.Printf("Built: %s\n", BuildDate)
					return nil
				},
			},
			{
				Name:  "tool",
				Usage: "Invoke a spreadsheet tool directly, without an MCP client",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "text",
						Usage:   "Output format (text or json)",
					},
				},
				Commands: []*cli.Command{
					{
						Name:  "list",
						Usage: "List available tools",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							runner, err := newToolRunner(logger, cmd)
							if err != nil {
								return err
							}
							return runner.ListTools()
						},
					},
					{
						Name:      "help",
						Usage:     "Show the parameters of a tool",
						ArgsUsage: "<tool-name>",
						Action: func(ctx context.Context, cmd *cli.Command) error {
							if cmd.Args().Len() != 1 {
								return fmt.Errorf("usage: mcp-gsheets tool help <tool-name>")
							}
							runner, err := newToolRunner(logger, cmd)
							if err != nil {
								return err
							}
							return runner.HelpTool(cmd.Args().First())
						},
					},
					{
						Name:            "run",
						Usage:           "Run a tool with flag or JSON arguments",
						ArgsUsage:       "<tool-name> [--key=value ... | '{...}']",
						SkipFlagParsing: true,
						Action: func(runCtx context.Context, cmd *cli.Command) error {
							args := cmd.Args().Slice()
							if len(args) == 0 {
								return fmt.Errorf("usage: mcp-gsheets tool run <tool-name> [--key=value ...]")
							}
							configureLogging(logger, "cli")
							if err := gsheets.CheckCredentialConfig(); err != nil {
								return err
							}
							runner, err := newToolRunner(logger, cmd)
							if err != nil {
								return err
							}
							return runner.RunTool(runCtx, args[0], args[1:])
						},
					},
				},
			},
		},
		Action: func(cliCtx context.Context, cmd *cli.Command) error {
			transport := cmd.String("transport")
			isStdioMode.Store(transport == "stdio")

			configureLogging(logger, transport)

			// Missing credentials are fatal at startup; the client handle
			// itself is still built lazily on first tool call.
			if err := gsheets.CheckCredentialConfig(); err != nil {
				logger.WithError(err).Error("Credential configuration invalid")
				return err
			}

			if transport != "stdio" {
				logger.Infof("Starting mcp-gsheets version %s (commit: %s, built: %s)",
					Version, Commit, BuildDate)
			}

			mcpSrv := mcpserver.NewMCPServer("mcp-gsheets", Version)

			enabledTools := registry.GetTools()
			logger.WithField("tool_count", len(enabledTools)).Debug("MCP server created, registering tools")

			for toolName, toolImpl := range enabledTools {
				name := toolName
				tool := toolImpl

				if transport != "stdio" {
					logger.Infof("Registering tool: %s", name)
				}

				mcpSrv.AddTool(tool.Definition(), func(toolCtx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
					currentTool, ok := registry.GetTool(name)
					if !ok {
						return mcp.NewToolResultError(fmt.Sprintf("tool not found: %s", name)), nil
					}

					args, ok := request.Params.Arguments.(map[string]any)
					if !ok {
						return mcp.NewToolResultError(fmt.Sprintf("invalid arguments type: expected object, got %T", request.Params.Arguments)), nil
					}

					client, err := registry.SheetsClient(toolCtx)
					if err != nil {
						return mcp.NewToolResultError(fmt.Sprintf("sheets client unavailable: %v", err)), nil
					}

					result, err := currentTool.Execute(toolCtx, registry.GetLogger(), client, args)
					if err != nil {
						// Tool failures become error envelopes, never a
						// crashed call.
						logger.WithError(err).WithField("tool", name).Warn("Tool execution failed")
						return mcp.NewToolResultError(err.Error()), nil
					}
					return result, nil
				})
			}

			logger.WithField("transport", transport).Debug("Starting server")
			switch transport {
			case "stdio":
				return mcpserver.ServeStdio(mcpSrv)
			case "http":
				return startHTTPServer(cliCtx, cmd, mcpSrv, logger)
			default:
				return fmt.Errorf("unsupported transport: %s", transport)
			}
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		// In stdio mode nothing may be written to stdout or stderr; the MCP
		// protocol owns both streams' framing.
		if !isStdioMode.Load() {
			logger.Fatalf("Error: %v", err)
		}
		os.Exit(1)
	}
}

// newToolRunner builds a CLI runner honouring the --output flag.
func newToolRunner(logger *logrus.Logger, cmd *cli.Command) (*toolcli.Runner, error) {
	switch output := cmd.String("output"); output {
	case "text":
		return toolcli.NewRunner(logger, toolcli.OutputText), nil
	case "json":
		return toolcli.NewRunner(logger, toolcli.OutputJSON), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text or json)", output)
	}
}

// configureLogging routes log output so the stdio protocol stream stays
// clean: file sink when possible, stderr for non-stdio transports, discard
// otherwise. Logging failures are swallowed, never fatal.
func configureLogging(logger *logrus.Logger, transport string) {
	stdio := transport == "stdio"

	fallback := func() {
		if stdio {
			logger.SetOutput(io.Discard)
		} else {
			logger.SetOutput(os.Stderr)
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fallback()
		return
	}

	logDir := filepath.Join(homeDir, ".mcp-gsheets", "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fallback()
		return
	}

	logFile := filepath.Join(logDir, "mcp-gsheets.log")
	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fallback()
		return
	}

	debugLogFile.Store(file)
	logger.SetOutput(file)
	logger.WithField("level", logger.GetLevel().String()).Debug("Logging configured")
}

// performCleanup closes the log file on shutdown.
func performCleanup() {
	if file := debugLogFile.Load(); file != nil {
		// Silently close; in cleanup there is nowhere safe to log errors
		_ = file.Close()
	}
}

// startHTTPServer runs the streamable HTTP transport.
func startHTTPServer(ctx context.Context, cmd *cli.Command, mcpSrv *mcpserver.MCPServer, logger *logrus.Logger) error {
	port := cmd.String("port")
	endpointPath := cmd.String("endpoint-path")

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath(endpointPath),
		mcpserver.WithHeartbeatInterval(30 * time.Second),
		mcpserver.WithLogger(&logrusAdapter{logger: logger}),
	}

	httpServer := mcpserver.NewStreamableHTTPServer(mcpSrv, opts...)
	logger.Infof("Starting HTTP server on port %s with endpoint %s", port, endpointPath)
	return httpServer.Start(":" + port)
}

// logrusAdapter adapts logrus.Logger to the mcp-go util.Logger interface
type logrusAdapter struct {
	logger *logrus.Logger
}

func (l *logrusAdapter) Debugf(format string, args ...any) {
	l.logger.Debugf(format, args...)
}

func (l *logrusAdapter) Infof(format string, args ...any) {
	l.logger.Infof(format, args...)
}

func (l *logrusAdapter) Warnf(format string, args ...any) {
	l.logger.Warnf(format, args...)
}

func (l *logrusAdapter) Errorf(format string, args ...any) {
	l.logger.Errorf(format, args...)
}
