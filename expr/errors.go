package expr

import "errors"

// ErrInvalidExpression is returned when a CompareExpr/UpdateExpr tree
// references an unresolvable column/parameter, or when a leaf compare
// is asked to order two types that admit no shared ordering (spec.md
// §4.G "Predicate evaluation (columnar path)").
var ErrInvalidExpression = errors.New("expr: invalid expression")
