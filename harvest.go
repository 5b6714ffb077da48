// Package harvest crawls a blog's category listings, extracts each article
// into a normalized record, and stores the records deduplicated by title.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package harvest
