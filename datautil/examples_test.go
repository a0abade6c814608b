package datautil_test

import (
	"fmt"

	"github.com/Pure-Company/purefunc"
	"github.com/Pure-Company/purefunc/datautil"
)

func Example_nest() {
	data := []datautil.Record{
		{"x_1": "a", "x_2": "b", "output": "c"},
		{"x_1": "a", "x_2": "b", "output": "d"},
		{"x_1": "a", "x_2": "e", "output": "f"},
	}
	nested, _ := datautil.Nest([]string{"x_1", "x_2"}, "output", data)
	fmt.Println(nested)

	// Output:
	// map[a:map[b:[c d] e:[f]]]
}

func Example_curried() {
	pluckIf, _ := datautil.Curried("pluckIf")
	seniorNames := pluckIf.MustCall(
		purefunc.Named("ifPath", []string{"level"}),
		purefunc.Named("ifVals", []any{"senior"}),
		purefunc.Named("path", []string{"name"}),
	).(*purefunc.Curried)

	staff := []datautil.Record{
		{"name": "ann", "level": "senior"},
		{"name": "bob", "level": "junior"},
		{"name": "cy", "level": "senior"},
	}
	fmt.Println(seniorNames.MustCall(staff))

	// Output:
	// [ann cy]
}
