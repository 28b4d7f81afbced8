package main

import (
	"fmt"

	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	sanitized := linkwish.Sanitize(c.URL)

	outcome, err := deps.Pipeline.Run(deps.Ctx, extract.Request{URL: sanitized})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkwish.ErrorMessage(err))
		return err
	}

	entry := &linkwish.WishlistEntry{
		URL:          sanitized,
		CanonicalURL: outcome.CanonicalURL,
		Record:       *outcome.Record,
	}
	if err := deps.Wishlist.CreateEntry(deps.Ctx, entry); err != nil {
		if linkwish.ErrorCode(err) == linkwish.ECONFLICT {
			fmt.Fprintf(deps.Stderr, "already saved: %s\n", outcome.CanonicalURL)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", linkwish.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Saved %q (%s)\n", entry.Record.Title, entry.ID)
	return nil
}
