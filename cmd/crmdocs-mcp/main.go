// Command crmdocs-mcp is an MCP (Model Context Protocol) server that exposes
// quote and presentation rendering to AI assistants.
//
// # Installation
//
//	go install github.com/apogeu/crmdocs/cmd/crmdocs-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "crmdocs": {
//	      "command": "crmdocs-mcp",
//	      "env": {"CRMDOCS_DATABASE_DSN": "postgres://..."}
//	    }
//	  }
//	}
//
// Without a database only the inline tools work.
//
// # Available Tools
//
//   - render_quote_pdf: Render a stored or inline quote
//   - render_model_preview: Render the sample quote of a model
//   - render_presentation_pdf: Render a company or product presentation
//   - preview_quote_html: HTML preview of a quote
//   - generate_quote_content: Fill a model template from a draft
//   - currency_to_words: Spell a BRL amount
//   - parse_blocks: Classify body text into blocks
//   - render_template: Substitute placeholders
//   - html_to_markup: Convert editor HTML to body markup
//
// # Available Resources
//
//   - crmdocs://layout/quote : Default quote layout
//   - crmdocs://layout/presentation : Default presentation layout
//   - crmdocs://placeholders : Quote template placeholders
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/apogeu/crmdocs/internal/app"
	"github.com/apogeu/crmdocs/internal/config"
	"github.com/apogeu/crmdocs/internal/logger"
	"github.com/apogeu/crmdocs/mcp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "crmdocs-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	// stdout carries the protocol, so logs go to stderr through the console encoder.
	log, err := logger.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	server := mcp.NewServer(log)
	mcp.NewTools(a.Exporter).Register(server)
	mcp.RegisterResources(server)

	return server.Run(ctx)
}
