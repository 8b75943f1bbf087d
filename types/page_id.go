// Package types holds the small value types shared across the buffer pool,
// the page pool, and the paged file contract.
package types

// PageID identifies a page within a single file. It has no meaning across
// files — the same PageID in two different files refers to two different
// pages.
type PageID int32

// InvalidPageID is never a valid page number.
const InvalidPageID PageID = -1
