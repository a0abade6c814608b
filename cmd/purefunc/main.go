// Command purefunc converts and queries CSV and JSON data files.
package main

import (
	"fmt"
	"os"

	"github.com/Pure-Company/purefunc"
	"github.com/urfave/cli"
)

const version = "0.1.0"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[purefunc] %v\n", err)
	os.Exit(1)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "purefunc"
	app.Version = version
	app.Usage = "convert and query CSV and JSON data files"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "loglevel",
			Value: "warn",
			Usage: "logging level for all subsystems {trace, debug, " +
				"info, warn, error, critical, off}, or a comma " +
				"separated list of <subsystem>=<level> pairs " +
				"(PFNC, DUTL, DFIL)",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		return setupLoggers(ctx.App.ErrWriter, ctx.GlobalString("loglevel"))
	}
	app.Commands = []cli.Command{
		csvToJSONCommand,
		jsonToCSVCommand,
		pathCommand,
		pluckCommand,
	}

	return app
}

// actionDecorator runs a command as a timed thunk, so its duration is
// logged at info level under the PFNC subsystem.
func actionDecorator(f func(*cli.Context) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		thunk, err := purefunc.Thunkify(f,
			purefunc.WithName(ctx.Command.Name))
		if err != nil {
			return err
		}
		bound, err := thunk.Bind(ctx)
		if err != nil {
			return err
		}
		timer, err := purefunc.NewTimer(bound)
		if err != nil {
			return err
		}

		_, err = timer.Run()
		return err
	}
}
