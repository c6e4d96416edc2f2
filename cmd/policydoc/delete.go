package main

import (
	"fmt"

	"github.com/fwojciec/policydoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return policydoc.Errorf(policydoc.EINVALID, "use --force to confirm deletion")
	}

	rec, err := deps.Records.FindRecordByName(deps.Ctx, c.Name)
	if policydoc.ErrorCode(err) == policydoc.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: record %q not found. Use 'policydoc list' to see available records.\n", c.Name)
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	if err := deps.Records.DeleteRecord(deps.Ctx, rec.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted record %q\n", rec.Name)
	return nil
}
