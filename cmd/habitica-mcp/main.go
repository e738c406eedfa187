package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/fatih/color"

	"github.com/takashabe/habitica-mcp/internal/config"
	"github.com/takashabe/habitica-mcp/internal/logging"
	"github.com/takashabe/habitica-mcp/internal/server"
	"github.com/takashabe/habitica-mcp/pkg/types"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("habitica-mcp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		transportType = fs.String("transport", "stdio", "Transport type: stdio or http")
		httpAddr      = fs.String("addr", ":8080", "HTTP address for the http transport")
		serverName    = fs.String("name", "habitica-mcp", "Server name")
		serverVersion = fs.String("version", "1.0.0", "Server version")
		listTools     = fs.Bool("list-tools", false, "Print the tool catalogue and exit")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	// 認証情報はネットワークに触れる前に確認
	env, err := config.Load()
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger := logging.New(stderr, env.LogLevel).With().Str("service", *serverName).Logger()

	mcpServer, err := server.NewHabiticaMCPServer(server.Config{
		ServerName:    *serverName,
		ServerVersion: *serverVersion,
		TransportType: *transportType,
		HTTPAddr:      *httpAddr,
		Env:           env,
		Logger:        logger,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to create MCP server")
		return 1
	}

	if *listTools {
		printTools(stdout, mcpServer.Tools())
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Info().Msg("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	// サーバー開始
	code := 0
	if err := mcpServer.Start(ctx); err != nil {
		logger.Error().Err(err).Msg("server failed")
		code = 1
	}

	// クリーンアップ
	if err := mcpServer.Stop(); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
	}

	logger.Info().Msg("server shutdown complete")
	return code
}

func printTools(w io.Writer, tools []types.Tool) {
	cyan := color.New(color.FgCyan)
	yellow := color.New(color.FgYellow)

	for _, t := range tools {
		cyan.Fprintf(w, "%-24s", t.Name)
		fmt.Fprintf(w, " %s\n", t.Description)

		if len(t.InputSchema.Properties) == 0 {
			continue
		}
		required := map[string]bool{}
		for _, r := range t.InputSchema.Required {
			required[r] = true
		}
		names := make([]string, 0, len(t.InputSchema.Properties))
		for name := range t.InputSchema.Properties {
			names = append(names, name)
		}
		sort.Strings(names)

		var parts []string
		for _, name := range names {
			arg := name + ":" + t.InputSchema.Properties[name].Type
			if required[name] {
				arg = yellow.Sprint(arg + "*")
			}
			parts = append(parts, arg)
		}
		fmt.Fprintf(w, "%-24s %s\n", "", strings.Join(parts, " "))
	}
}
