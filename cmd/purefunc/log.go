package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Pure-Company/purefunc"
	"github.com/Pure-Company/purefunc/datafile"
	"github.com/Pure-Company/purefunc/datautil"
	"github.com/btcsuite/btclog"
)

// subLoggers maps each subsystem tag to the function that installs a logger
// for it.
var subLoggers = map[string]func(btclog.Logger){
	purefunc.Subsystem: purefunc.UseLogger,
	datautil.Subsystem: datautil.UseLogger,
	datafile.Subsystem: datafile.UseLogger,
}

// setupLoggers creates a logger for every subsystem writing to w and applies
// levels: a single level for all subsystems, a comma separated list of
// <subsystem>=<level> pairs, or both, such as "info,DFIL=debug".
func setupLoggers(w io.Writer, levels string) error {
	backend := btclog.NewBackend(w)
	loggers := make(map[string]btclog.Logger, len(subLoggers))
	for tag, use := range subLoggers {
		logger := backend.Logger(tag)
		loggers[tag] = logger
		use(logger)
	}

	for _, part := range strings.Split(levels, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		tag, level, ok := strings.Cut(part, "=")
		if !ok {
			lvl, ok := btclog.LevelFromString(part)
			if !ok {
				return fmt.Errorf("invalid log level %q", part)
			}
			for _, logger := range loggers {
				logger.SetLevel(lvl)
			}
			continue
		}

		logger, ok := loggers[strings.ToUpper(tag)]
		if !ok {
			return fmt.Errorf("unknown subsystem %q", tag)
		}
		lvl, ok := btclog.LevelFromString(level)
		if !ok {
			return fmt.Errorf("invalid log level %q for %s", level, tag)
		}
		logger.SetLevel(lvl)
	}

	return nil
}
