package main

import (
	"fmt"

	"github.com/linkwish/linkwish"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := linkwish.WishlistFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Site != "" {
		filter.SiteName = &c.Site
	}

	entries, err := deps.Wishlist.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkwish.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found. Use 'linkwish add' to save one.")
		return nil
	}

	for _, e := range entries {
		title := e.Record.Title
		if title == "" {
			title = e.CanonicalURL
		}
		line := fmt.Sprintf("%s  %s", e.ID, title)
		if e.Record.Price != "" {
			line += fmt.Sprintf("  %s %s", e.Record.Price, e.Record.Currency)
		}
		fmt.Fprintln(deps.Stdout, line)
	}

	return nil
}
