// Command cookiecheck asserts on cookies from a browser cookie
// store, an exported cookie file or a live endpoint, using
// expectation files and inline assertions.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

var version = "dev"

// errChecksFailed signals a completed run with failed
// expectations; the report has already been written.
var errChecksFailed = errors.New("one or more cookie expectations failed")

// Execute runs the CLI with args, writing reports to stdout and
// diagnostics to stderr.
func Execute(args []string, stdout, stderr io.Writer) error {
	app := cli.App{
		Name:      "cookiecheck",
		HelpName:  "cookiecheck",
		Usage:     "assert on HTTP cookies",
		Version:   version,
		UsageText: "cookiecheck <command> [arguments...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Commands: []cli.Command{
			{
				Name:      "check",
				Aliases:   []string{"c"},
				Usage:     "evaluate cookie expectations",
				UsageText: "cookiecheck check --jar cookies.txt --expect sid:secured:equals:true",
				Action:    check,
				Flags:     checkFlags,
			},
			{
				Name:      "validate",
				Aliases:   []string{"v"},
				Usage:     "validate expectation files",
				UsageText: "cookiecheck validate <file>...",
				Action:    validate,
			},
		},
	}
	return app.Run(args)
}

func main() {
	if err := Execute(os.Args, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "cookiecheck: %s\n", err.Error())
		}
		os.Exit(1)
	}
}
