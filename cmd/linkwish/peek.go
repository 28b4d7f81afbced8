package main

import (
	"encoding/json"
	"fmt"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
	"golang.org/x/sync/errgroup"
)

// Run executes the peek command.
func (c *PeekCmd) Run(deps *Dependencies) error {
	outcomes := make([]*linkwish.ExtractionOutcome, len(c.URLs))
	errs := make([]error, len(c.URLs))

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(c.Concurrency)

	for i, url := range c.URLs {
		g.Go(func() error {
			outcomes[i], errs[i] = deps.Pipeline.Run(ctx, extract.Request{URL: url})
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i, url := range c.URLs {
		if errs[i] != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", url, linkwish.ErrorMessage(errs[i]))
			continue
		}
		if err := c.print(deps, url, outcomes[i]); err != nil {
			return err
		}
	}

	if failed == len(c.URLs) {
		return fmt.Errorf("all %d extractions failed", failed)
	}
	return nil
}

// print writes one extraction result to stdout.
func (c *PeekCmd) print(deps *Dependencies, url string, outcome *linkwish.ExtractionOutcome) error {
	if c.JSON {
		b, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(b))
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%s\n", outcome.CanonicalURL)
	fmt.Fprintf(deps.Stdout, "  title: %s\n", outcome.Record.Title)
	if outcome.Record.Price != "" {
		fmt.Fprintf(deps.Stdout, "  price: %s %s\n", outcome.Record.Price, outcome.Record.Currency)
	}
	fmt.Fprintf(deps.Stdout, "  strategy: %s (confidence %.2f, %d fields)\n",
		outcome.Strategy, outcome.Confidence, outcome.Record.FieldCount())
	return nil
}
