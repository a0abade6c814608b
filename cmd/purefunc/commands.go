package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Pure-Company/purefunc"
	"github.com/Pure-Company/purefunc/datafile"
	"github.com/Pure-Company/purefunc/datautil"
	"github.com/urfave/cli"
)

var outputFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "out",
		Usage: "write the result to this file instead of stdout",
	},
	cli.BoolFlag{
		Name:  "tee",
		Usage: "with --out, also write the result to stdout",
	},
}

var prettyFlag = cli.BoolFlag{
	Name:  "pretty",
	Usage: "indent the JSON output",
}

var csvToJSONCommand = cli.Command{
	Name:      "csv2json",
	Usage:     "Convert a CSV file to JSON.",
	ArgsUsage: "input.csv",
	Description: `
	Read a CSV file and write it as JSON. By default every row becomes an
	object keyed by the header and cell types are detected: integers, then
	true/false, then floats, with anything else kept as a string.`,
	Flags: append([]cli.Flag{
		cli.BoolFlag{
			Name:  "no_header",
			Usage: "treat the first row as data",
		},
		cli.BoolFlag{
			Name:  "keep_strings",
			Usage: "do not detect cell types",
		},
		cli.StringFlag{
			Name:  "return_type",
			Value: datafile.ListOfDicts.String(),
			Usage: "shape of the result {list_of_dicts, dict_of_lists, " +
				"list_of_row_lists, list_of_col_lists}",
		},
		cli.StringSliceFlag{
			Name: "cast",
			Usage: "cast a column, as <column>=<type> with type one " +
				"of {auto, string, int, float, bool}; may be " +
				"repeated",
		},
		cli.StringFlag{
			Name:  "comma",
			Value: ",",
			Usage: "field delimiter",
		},
		prettyFlag,
	}, outputFlags...),
	Action: actionDecorator(csvToJSON),
}

func csvToJSON(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "csv2json")
	}

	opts := datafile.CSVOptions{
		NoHeader:    ctx.Bool("no_header"),
		KeepStrings: ctx.Bool("keep_strings"),
	}

	rt, err := datafile.ParseReturnType(ctx.String("return_type"))
	if err != nil {
		return err
	}
	opts.ReturnType = rt

	opts.CastMap, err = parseCasts(ctx.StringSlice("cast"))
	if err != nil {
		return err
	}

	comma := []rune(ctx.String("comma"))
	if len(comma) != 1 {
		return fmt.Errorf("comma must be a single character, got %q",
			ctx.String("comma"))
	}
	opts.Comma = comma[0]

	data, err := datafile.ReadCSVFile(ctx.Args().First(), opts)
	if err != nil {
		return err
	}

	return writeOutput(ctx, func(w io.Writer) error {
		return datafile.WriteJSON(w, data, datafile.JSONOptions{
			Pretty: ctx.Bool("pretty"),
		})
	})
}

func parseCasts(pairs []string) (map[string]datafile.Cast, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	out := make(map[string]datafile.Cast, len(pairs))
	for _, pair := range pairs {
		col, name, ok := strings.Cut(pair, "=")
		if !ok || col == "" {
			return nil, fmt.Errorf("cast %q: expected <column>=<type>",
				pair)
		}
		c, err := datafile.ParseCast(name)
		if err != nil {
			return nil, fmt.Errorf("cast %q: %w", pair, err)
		}
		out[col] = c
	}
	return out, nil
}

var jsonToCSVCommand = cli.Command{
	Name:      "json2csv",
	Usage:     "Convert a JSON file to CSV.",
	ArgsUsage: "input.json",
	Description: `
	Read a JSON file holding a list of objects or a list of lists and write
	it as CSV. Objects are written under a header of the sorted union of
	their keys.`,
	Flags:  outputFlags,
	Action: actionDecorator(jsonToCSV),
}

func jsonToCSV(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "json2csv")
	}

	data, err := datafile.ReadJSONFile(ctx.Args().First())
	if err != nil {
		return err
	}

	return writeOutput(ctx, func(w io.Writer) error {
		return datafile.WriteCSV(w, data)
	})
}

var pathCommand = cli.Command{
	Name:      "path",
	Usage:     "Print the value at a path in a JSON object.",
	ArgsUsage: "input.json path",
	Description: `
	Print the value found by following the dot separated keys of path,
	such as "a.b.c", through a JSON object. It is an error if the path
	does not exist, unless --default is set.`,
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name: "default",
			Usage: "print this value if the path does not exist; it " +
				"is typed like a CSV cell",
		},
		prettyFlag,
	}, outputFlags...),
	Action: actionDecorator(pathValue),
}

func pathValue(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "path")
	}

	data, err := readInput(ctx.Args().First())
	if err != nil {
		return err
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("path needs a JSON object, got %T", data)
	}
	keys := datautil.SplitPath(ctx.Args().Get(1))

	var value any
	if ctx.IsSet("default") {
		def, err := datafile.CastAuto.Apply(ctx.String("default"))
		if err != nil {
			return err
		}
		value, err = callCurried("pathOr", def, keys, obj)
		if err != nil {
			return err
		}
	} else {
		value, err = callCurried("path", keys, obj)
		if err != nil {
			return err
		}
	}

	return writeOutput(ctx, func(w io.Writer) error {
		return datafile.WriteJSON(w, value, datafile.JSONOptions{
			Pretty: ctx.Bool("pretty"),
		})
	})
}

var pluckCommand = cli.Command{
	Name:      "pluck",
	Usage:     "Print the value at a path for every record.",
	ArgsUsage: "input path",
	Description: `
	Read a list of records from a CSV file or a JSON file holding a list of
	objects, and print the value at the dot separated path of each record
	as a JSON list. Records without the path give null.

	With --if_path and --if, only records whose value at if_path equals
	one of the --if values are plucked. The --if values are typed like CSV
	cells, so --if 1 matches both 1 and 1.0.`,
	Flags: append([]cli.Flag{
		cli.StringFlag{
			Name:  "if_path",
			Usage: "dot separated path of the value to filter on",
		},
		cli.StringSliceFlag{
			Name:  "if",
			Usage: "value to keep at if_path; may be repeated",
		},
		prettyFlag,
	}, outputFlags...),
	Action: actionDecorator(pluck),
}

func pluck(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "pluck")
	}

	data, err := readInput(ctx.Args().First())
	if err != nil {
		return err
	}
	records, err := datautil.Records(data)
	if err != nil {
		return err
	}
	keys := datautil.SplitPath(ctx.Args().Get(1))

	var values any
	if ctx.IsSet("if_path") {
		ifVals := make([]any, 0, len(ctx.StringSlice("if")))
		for _, s := range ctx.StringSlice("if") {
			v, err := datafile.CastAuto.Apply(s)
			if err != nil {
				return err
			}
			ifVals = append(ifVals, v)
		}
		if len(ifVals) == 0 {
			return errors.New("--if_path needs at least one --if value")
		}

		values, err = callCurried("pluckIf",
			purefunc.Named("ifPath", datautil.SplitPath(
				ctx.String("if_path"))),
			purefunc.Named("ifVals", ifVals),
			keys, records)
	} else {
		values, err = callCurried("pluck", keys, records)
	}
	if err != nil {
		return err
	}

	return writeOutput(ctx, func(w io.Writer) error {
		return datafile.WriteJSON(w, values, datafile.JSONOptions{
			Pretty: ctx.Bool("pretty"),
		})
	})
}

// callCurried calls the named datautil operation with args, which must
// saturate it.
func callCurried(name string, args ...any) (any, error) {
	fn, ok := datautil.Curried(name)
	if !ok {
		return nil, fmt.Errorf("unknown operation %q", name)
	}
	return fn.Call(args...)
}

// readInput reads a CSV file, by its .csv extension, or a JSON file.
func readInput(name string) (any, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return datafile.ReadCSVFile(name, datafile.CSVOptions{})
	}
	return datafile.ReadJSONFile(name)
}

// writeOutput runs write against stdout, or against the --out file and, with
// --tee, stdout as well.
func writeOutput(ctx *cli.Context, write func(io.Writer) error) error {
	stdout := datafile.WriteFunc(ctx.App.Writer.Write)

	name := ctx.String("out")
	if name == "" {
		if ctx.Bool("tee") {
			return errors.New("--tee needs --out")
		}
		return write(stdout)
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}

	w := datafile.WriteFunc(f.Write)
	if ctx.Bool("tee") {
		w = w.Tee(stdout)
	}

	if err := write(w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
