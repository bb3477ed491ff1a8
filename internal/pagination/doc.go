// Package pagination shapes a page of results into the {data, links, meta}
// collection payload returned by list endpoints.
//
// The same Config drives request handling (ClampPerPage) and output
// (link window size), so both sides agree on page bounds.
package pagination
