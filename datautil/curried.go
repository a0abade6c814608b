package datautil

import (
	"github.com/Pure-Company/purefunc"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// curried holds a ready-made curried form of every operation in this
// package, keyed by name. Generic operations are instantiated for any, or
// float64 for the numeric ones. The values are immutable and safe to share.
var curried = make(map[string]*purefunc.Curried)

func register(name string, fn any, params ...string) {
	curried[name] = purefunc.MustCurry(fn,
		purefunc.WithName(name), purefunc.WithParams(params...))
}

func init() {
	// Paths.
	register("path", Path, "path", "data")
	register("pathOr", PathOr, "default", "path", "data")
	register("hasPath", HasPath, "path", "data")
	register("assocPath", AssocPath, "path", "value", "data")
	register("assocPathComplex", AssocPathComplex,
		"default", "defaultFn", "path", "data")
	register("dissocPath", DissocPath, "path", "data")
	register("dissocPathWarn", DissocPathWarn, "path", "data")

	// Lists.
	register("flatten", Flatten[any], "data")
	register("unnest", Unnest, "data")
	register("head", Head[any], "data")
	register("tail", Tail[any], "data")
	register("zip", Zip[any], "a", "b")
	register("zipObj", ZipObj[string, any], "keys", "values")
	register("difference", Difference[any], "a", "b")
	register("intersection", Intersection[any], "a", "b")
	register("symmetricDifference", SymmetricDifference[any], "a", "b")
	register("adjust", Adjust[any], "index", "fn", "data")

	// Grouping.
	register("groupBy", GroupBy[any], "fn", "data")
	register("groupKeys", GroupKeys, "keys", "data")
	register("groupWith", GroupWith[any], "fn", "data")
	register("nest", Nest, "pathKeys", "valueKey", "data")
	register("nestItem", NestItem, "pathKeys", "data")
	register("pluck", Pluck, "path", "data")
	register("pluckIf", PluckIf, "ifPath", "ifVals", "path", "data")

	// Folds.
	register("accumulate", Accumulate, "fn", "initial", "data")
	register("reduce", Reduce, "fn", "initial", "data")
	register("map", Map, "fn", "data")
	register("mapDict", MapDict, "fn", "data")
	register("pipe", Pipe, "fns", "data")

	// Numbers.
	register("add", Add[float64], "a", "b")
	register("inc", Inc[float64], "a")
	register("dec", Dec[float64], "a")
	register("clamp", Clamp[float64], "minimum", "maximum", "a")
	register("mean", Mean[float64], "data")
	register("median", Median[float64], "data")
	register("hardRound", HardRound, "decimals", "a")
	register("safeDivide", SafeDivide[float64], "denominator", "a")
	register("safeDivideDefault", SafeDivideDefault[float64],
		"defaultDenominator", "denominator", "a")

	register("mergeDeep", MergeDeep, "update", "data")
}

// Curried returns the curried form of the named operation.
//
// Example:
//
//	inc, _ := datautil.Curried("add")
//	inc = inc.MustCall(1).(*purefunc.Curried)
//	datautil.Map(inc, []any{1, 2, 3}) //=> [2 3 4], nil
func Curried(name string) (*purefunc.Curried, bool) {
	c, ok := curried[name]
	return c, ok
}

// Names returns the names of every curried operation in sorted order.
func Names() []string {
	names := maps.Keys(curried)
	slices.Sort(names)
	return names
}
