package gin

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/linkwish/linkwish"
	"github.com/linkwish/linkwish/extract"
)

// handleCreateEntry extracts metadata for a URL and saves it to the wishlist.
func (s *Server) handleCreateEntry(c *gin.Context) {
	req, ok := s.bindExtractRequest(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.requestTimeout)
	defer cancel()

	sanitized := linkwish.Sanitize(req.URL)
	outcome, err := s.pipeline.Run(ctx, extract.Request{URL: sanitized, RawHTML: req.RawHTML})
	if err != nil {
		writeError(c, err)
		return
	}

	entry := &linkwish.WishlistEntry{
		URL:          sanitized,
		CanonicalURL: outcome.CanonicalURL,
		Record:       *outcome.Record,
	}
	if err := s.wishlist.CreateEntry(ctx, entry); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// handleGetEntry returns one wishlist entry by ID.
func (s *Server) handleGetEntry(c *gin.Context) {
	entry, err := s.wishlist.FindEntryByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// handleListEntries returns wishlist entries, newest first. Supports
// site, limit and offset query parameters.
func (s *Server) handleListEntries(c *gin.Context) {
	var filter linkwish.WishlistFilter

	if site := c.Query("site"); site != "" {
		filter.SiteName = &site
	}
	var err error
	if filter.Limit, err = intQuery(c, "limit"); err != nil {
		writeError(c, err)
		return
	}
	if filter.Offset, err = intQuery(c, "offset"); err != nil {
		writeError(c, err)
		return
	}

	entries, err := s.wishlist.FindEntries(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	if entries == nil {
		entries = []*linkwish.WishlistEntry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// handleUpdateEntry applies a partial update to an entry.
func (s *Server) handleUpdateEntry(c *gin.Context) {
	var upd linkwish.WishlistUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		writeError(c, linkwish.Errorf(linkwish.EINVALID, "invalid request body"))
		return
	}

	entry, err := s.wishlist.UpdateEntry(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// handleDeleteEntry removes an entry.
func (s *Server) handleDeleteEntry(c *gin.Context) {
	if err := s.wishlist.DeleteEntry(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// intQuery parses a non-negative integer query parameter.
func intQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, linkwish.Errorf(linkwish.EINVALID, "%s must be a non-negative integer", name)
	}
	return n, nil
}
