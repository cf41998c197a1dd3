package pagination

import "math"

// UnboundedPageSize is the page size used when a request does not specify one.
const UnboundedPageSize = math.MaxInt

// DefaultPageNumber is the zero-based page returned when a request does not specify one.
const DefaultPageNumber = 0
