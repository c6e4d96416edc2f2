package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/policydoc"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	rec, err := deps.Records.FindRecordByName(deps.Ctx, c.Name)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	exp, err := policydoc.Export(rec.Document, policydoc.Format(c.Format))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	if c.Stdout {
		_, err := io.WriteString(deps.Stdout, exp.Body)
		return err
	}

	path, err := deps.Exports(c.Out).WriteExport(exp)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %q to %s\n", rec.Name, path)
	return nil
}
