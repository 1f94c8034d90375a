package docpath

import "errors"

// ErrSchemaLimitExceeded is returned when a document array exceeds
// Config.MaxArraySize during flattening (spec.md §4.E).
var ErrSchemaLimitExceeded = errors.New("docpath: schema limit exceeded")
