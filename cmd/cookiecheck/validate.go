package main

import (
	"fmt"

	"github.com/urfave/cli"

	"digital.vasic.cookiematch/pkg/bank"
)

func validate(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("validate: at least one expectation file is required")
	}

	invalid := 0
	for _, path := range c.Args() {
		errs := bank.ValidateFile(path, nil)
		if len(errs) == 0 {
			fmt.Fprintf(c.App.Writer, "%s: ok\n", path)
			continue
		}
		invalid++
		for _, e := range errs {
			fmt.Fprintf(c.App.Writer, "%s: %s\n", path, e.Error())
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d files invalid", invalid, len(c.Args()))
	}
	return nil
}
