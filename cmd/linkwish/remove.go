package main

import (
	"fmt"

	"github.com/linkwish/linkwish"
)

// Run executes the remove command.
func (c *RemoveCmd) Run(deps *Dependencies) error {
	if err := deps.Wishlist.DeleteEntry(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", linkwish.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Removed %s\n", c.ID)
	return nil
}
