// Package cannibal detects keyword cannibalization: keywords that several
// pages of the same site (or two compared pages) are optimized for.
// It crawls a site, extracts page text, ranks n-gram keywords per page,
// aggregates them across pages, and reports the keywords shared by two
// or more pages with their frequency and density.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, rod/).
package cannibal
