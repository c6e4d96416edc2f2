package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/policydoc"
	"github.com/fwojciec/policydoc/json"
	"github.com/fwojciec/policydoc/sqlite"
	"golang.org/x/sync/errgroup"
)

// BuiltinSource is the source recorded for the built-in platform document.
const BuiltinSource = "builtin"

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	doc, source, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	existing, err := deps.Records.FindRecordByName(deps.Ctx, c.Name)
	switch {
	case err == nil:
		return c.replace(deps, existing, doc, source)
	case policydoc.ErrorCode(err) != policydoc.ENOTFOUND:
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	rec := &policydoc.Record{Name: c.Name, Source: source, Document: doc}
	if err := deps.Records.CreateRecord(deps.Ctx, rec); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %q (%d sections)\n", rec.Name, len(doc.Sections))
	return nil
}

func (c *ImportCmd) replace(deps *Dependencies, existing *policydoc.Record, doc *policydoc.Document, source string) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: record %q already exists. Use --force to replace it.\n", c.Name)
		return policydoc.Errorf(policydoc.ECONFLICT, "record %q already exists", c.Name)
	}

	if existing.ContentHash == sqlite.ContentHash(doc) {
		fmt.Fprintf(deps.Stdout, "Record %q unchanged\n", existing.Name)
		return nil
	}

	rec, err := deps.Records.ReplaceRecord(deps.Ctx, existing.ID, doc, source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", policydoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Replaced %q (%d sections)\n", rec.Name, len(doc.Sections))
	return nil
}

// load loads every source concurrently and merges them in argument order.
// Without sources it returns the built-in platform document.
func (c *ImportCmd) load(deps *Dependencies) (*policydoc.Document, string, error) {
	if len(c.Sources) == 0 {
		return json.Platform(), BuiltinSource, nil
	}

	docs := make([]*policydoc.Document, len(c.Sources))
	g, ctx := errgroup.WithContext(deps.Ctx)
	for i, src := range c.Sources {
		g.Go(func() error {
			doc, err := deps.Loader.Load(ctx, src)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	doc, err := policydoc.Merge(docs...)
	if err != nil {
		return nil, "", err
	}
	return doc, strings.Join(c.Sources, ","), nil
}
