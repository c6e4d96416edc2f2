package main

import (
	"fmt"

	"github.com/fwojciec/policydoc"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	recs, err := deps.Records.FindRecords(deps.Ctx, policydoc.RecordFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	if len(recs) == 0 {
		fmt.Fprintln(deps.Stdout, "No records found. Use 'policydoc import' to create one.")
		return nil
	}

	for _, r := range recs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s (%d sections)\n", r.ID, r.Name, r.Document.Title, len(r.Document.Sections))
	}

	return nil
}
