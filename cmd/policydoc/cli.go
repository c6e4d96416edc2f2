package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/policydoc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Records policydoc.RecordService
	Loader  policydoc.Loader
	Exports func(dir string) policydoc.ExportWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Import ImportCmd `cmd:"" help:"Import a document into the library"`
	List   ListCmd   `cmd:"" help:"List all imported documents"`
	Show   ShowCmd   `cmd:"" help:"Show a document, optionally filtered by a query"`
	Export ExportCmd `cmd:"" help:"Export a document as Markdown or HTML"`
	Delete DeleteCmd `cmd:"" help:"Delete a document from the library"`
	Serve  ServeCmd  `cmd:"" help:"Serve the library over HTTP"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	Name    string   `arg:"" help:"Record name"`
	Sources []string `arg:"" optional:"" help:"Files or URLs to import, merged in order (default: built-in platform)"`
	Force   bool     `short:"f" help:"Replace an existing record"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Name  string `arg:"" help:"Record name"`
	Query string `short:"q" help:"Only show sections and items matching this text"`
	Theme string `default:"light" enum:"light,dark" help:"Color theme (light, dark)"`
	Color bool   `help:"Force colored output"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Name   string `arg:"" help:"Record name"`
	Format string `short:"F" default:"markdown" enum:"markdown,html" help:"Export format (markdown, html)"`
	Out    string `short:"o" default:"." help:"Output directory"`
	Stdout bool   `help:"Write the export to stdout instead of a file"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Record name"`
	Force bool   `help:"Confirm deletion"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string `default:":8080" help:"Listen address"`
	BaseURL string `name:"base-url" help:"Page URL that section share links point at (default: request URL)"`
}
