package operator

import (
	"fmt"
	"strings"

	"github.com/hugr-lab/doctable-go/types"
	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// AggKind is one columnar GROUP BY aggregate function (spec.md §4.H
// "Columnar GROUP BY algorithm").
type AggKind int

const (
	AggCountStar AggKind = iota
	AggCount
	AggCountDistinct
	AggSum
	AggAvg
	AggMin
	AggMax
)

// AggSpec names one aggregate to compute: Column is the source column
// name (ignored for AggCountStar); Alias is the output column name.
type AggSpec struct {
	Kind   AggKind
	Column string
	Alias  string
}

// ColumnarGroup implements the GROUP BY + aggregates operator (spec.md
// §4.H "Columnar GROUP BY algorithm"): it resolves key/aggregate
// columns by name (tolerating a leading "/", per the aggregation
// planner's column-alias convention), assigns each non-null-key row a
// group id in first-seen order, and then makes a single pass over the
// rows in which every aggregate's accumulator is updated, its step
// chosen by aggregate kind; there is no separate pass per aggregate.
type ColumnarGroup struct {
	base
	child      Operator
	keyColumns []string
	aggs       []AggSpec
}

// NewColumnarGroup builds a ColumnarGroup pulling rows from child.
func NewColumnarGroup(child Operator, keyColumns []string, aggs []AggSpec) *ColumnarGroup {
	return &ColumnarGroup{base: base{state: Created}, child: child, keyColumns: keyColumns, aggs: aggs}
}

// RequiredColumns returns the deduplicated set of column names the
// aggregation planner must project from its FullScan child: every
// GROUP BY key, every aggregate's source column, plus whatever
// WHERE-predicate keys the caller passes in (spec.md §4.H
// "Projection-aware scan").
func RequiredColumns(keyColumns []string, aggs []AggSpec, predicateKeys []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		name = strings.TrimPrefix(name, "/")
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}
	for _, k := range keyColumns {
		add(k)
	}
	for _, a := range aggs {
		if a.Column != "" {
			add(a.Column)
		}
	}
	for _, k := range predicateKeys {
		add(k)
	}
	return out
}

type aggAcc struct {
	spec     AggSpec
	colIdx   int
	srcType  types.ComplexLogicalType
	counts   []int64
	distinct []map[string]struct{}
	sums     []float64
	sumCnt   []int64
	mins     []value.Value
	minSet   []bool
	maxs     []value.Value
	maxSet   []bool
}

func (a *aggAcc) grow(n int) {
	for len(a.counts) < n {
		a.counts = append(a.counts, 0)
		a.distinct = append(a.distinct, make(map[string]struct{}))
		a.sums = append(a.sums, 0)
		a.sumCnt = append(a.sumCnt, 0)
		a.mins = append(a.mins, value.Value{})
		a.minSet = append(a.minSet, false)
		a.maxs = append(a.maxs, value.Value{})
		a.maxSet = append(a.maxSet, false)
	}
}

func (o *ColumnarGroup) Execute(ctx *PipelineContext) error {
	if err := o.requireCreatedOrSuspended(); err != nil {
		return err
	}
	if o.child == nil {
		return ErrMissingChild
	}
	o.state = Running

	keyIdx := make([]int, len(o.keyColumns))
	accs := make([]*aggAcc, len(o.aggs))
	resolved := false

	groupID := make(map[string]int)
	var groupKeys [][]value.Value

	for {
		if err := o.child.Execute(ctx); err != nil {
			return err
		}
		chunk := o.child.Chunk()
		if chunk != nil {
			if !resolved {
				names := chunk.ColumnNames()
				for i, k := range o.keyColumns {
					idx := resolveColumn(k, names)
					if idx < 0 {
						return fmt.Errorf("%w: group key %q", ErrUnknownColumn, k)
					}
					keyIdx[i] = idx
				}
				chunkTypes := chunk.Types()
				for i, a := range o.aggs {
					colIdx := -1
					var srcType types.ComplexLogicalType
					if a.Kind != AggCountStar {
						colIdx = resolveColumn(a.Column, names)
						if colIdx < 0 {
							return fmt.Errorf("%w: aggregate column %q", ErrUnknownColumn, a.Column)
						}
						srcType = chunkTypes[colIdx]
					}
					accs[i] = &aggAcc{spec: a, colIdx: colIdx, srcType: srcType}
				}
				resolved = true
			}

			for row := 0; row < chunk.Cardinality(); row++ {
				keyVals := make([]value.Value, len(keyIdx))
				nullKey := false
				var sb strings.Builder
				for ki, idx := range keyIdx {
					v := chunk.Column(idx).Value(row)
					keyVals[ki] = v
					if v.IsNull() {
						nullKey = true
						break
					}
					sb.WriteString(v.String())
					sb.WriteByte(0x1f)
				}
				if nullKey {
					continue
				}
				key := sb.String()
				gid, ok := groupID[key]
				if !ok {
					gid = len(groupID)
					groupID[key] = gid
					groupKeys = append(groupKeys, keyVals)
					for _, acc := range accs {
						acc.grow(gid + 1)
					}
				}
				for _, acc := range accs {
					acc.accumulate(chunk, row, gid)
				}
			}
		}
		if o.child.State() == Executed {
			break
		}
	}

	numGroups := len(groupID)
	outNames := append([]string(nil), o.keyColumns...)
	outTypes := make([]types.ComplexLogicalType, 0, len(o.keyColumns)+len(o.aggs))
	var keyTypes []types.ComplexLogicalType
	if numGroups > 0 {
		for i := range o.keyColumns {
			keyTypes = append(keyTypes, groupKeys[0][i].Type())
		}
	} else {
		for range o.keyColumns {
			keyTypes = append(keyTypes, types.Simple(types.STRING))
		}
	}
	outTypes = append(outTypes, keyTypes...)
	for i, a := range o.aggs {
		outNames = append(outNames, aggOutputName(a, i))
		outTypes = append(outTypes, aggOutputType(accs[i]))
	}

	out, err := vector.NewChunk(outNames, outTypes, numGroups)
	if err != nil {
		return err
	}
	if err := out.SetCardinality(numGroups); err != nil {
		return err
	}
	for gid := 0; gid < numGroups; gid++ {
		for ki := range o.keyColumns {
			if err := out.Column(ki).SetValue(gid, groupKeys[gid][ki]); err != nil {
				return err
			}
		}
		for ai, acc := range accs {
			v, err := acc.result(gid)
			if err != nil {
				return err
			}
			if err := out.Column(len(o.keyColumns)+ai).SetValue(gid, v); err != nil {
				return err
			}
		}
	}

	o.chunk = out
	o.state = Executed
	return nil
}

func (acc *aggAcc) accumulate(chunk *vector.DataChunk, row, gid int) {
	switch acc.spec.Kind {
	case AggCountStar:
		acc.counts[gid]++
	case AggCount:
		if v := chunk.Column(acc.colIdx).Value(row); !v.IsNull() {
			acc.counts[gid]++
		}
	case AggCountDistinct:
		if v := chunk.Column(acc.colIdx).Value(row); !v.IsNull() {
			acc.distinct[gid][v.String()] = struct{}{}
		}
	case AggSum, AggAvg:
		if v := chunk.Column(acc.colIdx).Value(row); !v.IsNull() {
			acc.sums[gid] += v.AsFloat64()
			acc.sumCnt[gid]++
		}
	case AggMin:
		v := chunk.Column(acc.colIdx).Value(row)
		if v.IsNull() {
			return
		}
		if !acc.minSet[gid] {
			acc.mins[gid], acc.minSet[gid] = v, true
			return
		}
		if ord, err := value.Compare(v, acc.mins[gid]); err == nil && ord == value.Less {
			acc.mins[gid] = v
		}
	case AggMax:
		v := chunk.Column(acc.colIdx).Value(row)
		if v.IsNull() {
			return
		}
		if !acc.maxSet[gid] {
			acc.maxs[gid], acc.maxSet[gid] = v, true
			return
		}
		if ord, err := value.Compare(v, acc.maxs[gid]); err == nil && ord == value.Greater {
			acc.maxs[gid] = v
		}
	}
}

func (acc *aggAcc) result(gid int) (value.Value, error) {
	switch acc.spec.Kind {
	case AggCountStar, AggCount:
		return value.NewInt64(acc.counts[gid]), nil
	case AggCountDistinct:
		return value.NewInt64(int64(len(acc.distinct[gid]))), nil
	case AggSum:
		return value.NewFloat64(acc.sums[gid]), nil
	case AggAvg:
		if acc.sumCnt[gid] == 0 {
			return value.Null(types.Simple(types.DOUBLE)), nil
		}
		return value.NewFloat64(acc.sums[gid] / float64(acc.sumCnt[gid])), nil
	case AggMin:
		if !acc.minSet[gid] {
			return value.Null(acc.srcType), nil
		}
		return acc.mins[gid], nil
	case AggMax:
		if !acc.maxSet[gid] {
			return value.Null(acc.srcType), nil
		}
		return acc.maxs[gid], nil
	default:
		return value.Value{}, fmt.Errorf("operator: unknown aggregate kind %d", acc.spec.Kind)
	}
}

func aggOutputName(a AggSpec, i int) string {
	if a.Alias != "" {
		return a.Alias
	}
	return fmt.Sprintf("agg_%d", i)
}

func aggOutputType(acc *aggAcc) types.ComplexLogicalType {
	switch acc.spec.Kind {
	case AggCountStar, AggCount, AggCountDistinct:
		return types.Simple(types.BIGINT)
	case AggSum, AggAvg:
		return types.Simple(types.DOUBLE)
	case AggMin, AggMax:
		return acc.srcType
	default:
		return types.Simple(types.DOUBLE)
	}
}

// resolveColumn matches name against names, tolerating a leading "/"
// on either side (spec.md §4.H "Resolve key columns and aggregate
// columns by matching their requested name to a column alias,
// tolerating a leading /").
func resolveColumn(name string, names []string) int {
	trimmed := strings.TrimPrefix(name, "/")
	for i, n := range names {
		if strings.TrimPrefix(n, "/") == trimmed {
			return i
		}
	}
	return -1
}
