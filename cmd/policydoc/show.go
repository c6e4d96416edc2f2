package main

import (
	"fmt"

	"github.com/fwojciec/policydoc"
	"github.com/fwojciec/policydoc/lipgloss"
	"github.com/muesli/termenv"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByName(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	var opts []lipgloss.Option
	if c.Color {
		opts = append(opts, lipgloss.WithColorProfile(termenv.TrueColor))
	}

	r := lipgloss.NewRenderer(deps.Stdout, lipgloss.Theme(c.Theme), opts...)
	return r.Render(rec.Document, c.Query)
}
