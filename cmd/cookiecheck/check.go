package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/urfave/cli"

	"digital.vasic.cookiematch/pkg/assertion"
	"digital.vasic.cookiematch/pkg/bank"
	"digital.vasic.cookiematch/pkg/httpclient"
	"digital.vasic.cookiematch/pkg/jar"
	"digital.vasic.cookiematch/pkg/logging"
	"digital.vasic.cookiematch/pkg/report"
	"digital.vasic.cookiematch/pkg/runner"
)

var checkFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "jar, j",
		Usage:  "cookie file to check (Netscape, JSON export or Firefox cookies.sqlite)",
		EnvVar: "COOKIECHECK_JAR",
	},
	cli.StringFlag{
		Name:  "jar-format",
		Usage: "cookie file format: auto, netscape, json or firefox",
		Value: "auto",
	},
	cli.StringFlag{
		Name:  "url, u",
		Usage: "capture the cookies set by this URL instead of reading a jar",
	},
	cli.StringFlag{
		Name:  "method, X",
		Usage: "request method for --url",
		Value: "GET",
	},
	cli.StringSliceFlag{
		Name:  "header, H",
		Usage: "request header for --url as 'Key: Value' (repeatable)",
	},
	cli.BoolFlag{
		Name:  "no-redirect",
		Usage: "do not follow redirects for --url",
	},
	cli.DurationFlag{
		Name:  "timeout",
		Usage: "request timeout for --url",
		Value: 30 * time.Second,
	},
	cli.StringFlag{
		Name:   "expectations, e",
		Usage:  "expectation file or directory (YAML or JSON)",
		EnvVar: "COOKIECHECK_EXPECTATIONS",
	},
	cli.StringSliceFlag{
		Name:  "expect",
		Usage: "inline assertion as cookie:field:type[:value] (repeatable)",
	},
	cli.StringFlag{
		Name:  "domain, d",
		Usage: "only match cookies for this domain",
	},
	cli.StringFlag{
		Name:  "format, f",
		Usage: "report format: text, json or markdown",
		Value: "text",
	},
	cli.BoolFlag{
		Name:  "fail-fast",
		Usage: "stop after the first failed expectation",
	},
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "list passed assertions and log debug output",
	},
	cli.StringFlag{
		Name:  "log-file",
		Usage: "also write JSON Lines logs to this file",
	},
}

func check(c *cli.Context) error {
	logger, err := newLogger(c)
	if err != nil {
		return err
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	expectations, err := loadExpectations(c, logger)
	if err != nil {
		return err
	}

	cookies, err := loadCookies(ctx, c, logger)
	if err != nil {
		return err
	}

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithDomain(c.String("domain")),
		runner.WithFailFast(c.Bool("fail-fast")),
	)
	outcomes, err := r.Run(ctx, expectations, cookies)
	if err != nil {
		return err
	}

	reporter, err := newReporter(c.String("format"), c.Bool("verbose"))
	if err != nil {
		return err
	}
	if err := reporter.Write(c.App.Writer, outcomes); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if !report.Summarize(outcomes).OK() {
		return errChecksFailed
	}
	return nil
}

func newLogger(c *cli.Context) (logging.Logger, error) {
	level := logging.LevelWarn
	if c.Bool("verbose") {
		level = logging.LevelDebug
	}
	console := logging.NewConsoleLoggerTo(c.App.ErrWriter, level)

	path := c.String("log-file")
	if path == "" {
		return console, nil
	}
	file, err := logging.NewJSONLogger(logging.LoggerConfig{
		OutputPath: path,
		Level:      logging.LevelDebug,
		Fields:     map[string]any{"command": "check"},
	})
	if err != nil {
		return nil, err
	}
	return logging.NewMultiLogger(console, file), nil
}

func newReporter(format string, verbose bool) (report.Reporter, error) {
	if format == "text" {
		return report.NewTextReporter(verbose), nil
	}
	return report.New(format)
}

// loadExpectations merges the expectation files with the inline
// --expect assertions. Inline assertions on a cookie that a file
// already covers are appended to that expectation.
func loadExpectations(c *cli.Context, logger logging.Logger) ([]*bank.Expectation, error) {
	b := bank.New(bank.WithLogger(logger))
	if path := c.String("expectations"); path != "" {
		if err := b.Load(path); err != nil {
			return nil, err
		}
	}

	for _, raw := range c.StringSlice("expect") {
		name, rest, ok := strings.Cut(raw, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf(
				"invalid --expect %q: want cookie:field:type[:value]", raw,
			)
		}
		def, err := assertion.ParseAssertionString(rest)
		if err != nil {
			return nil, fmt.Errorf("invalid --expect %q: %w", raw, err)
		}

		exp := bank.Expectation{Cookie: name}
		if existing, found := b.Get(name); found {
			exp = *existing
			exp.Assertions = append(
				append([]assertion.Definition(nil), existing.Assertions...), def,
			)
		} else {
			exp.Assertions = []assertion.Definition{def}
		}
		if err := b.Add(exp); err != nil {
			return nil, err
		}
	}

	if b.Count() == 0 {
		return nil, fmt.Errorf("no expectations: use --expectations or --expect")
	}
	return b.All(), nil
}

func loadCookies(ctx context.Context, c *cli.Context, logger logging.Logger) (*jar.Jar, error) {
	jarPath, url := c.String("jar"), c.String("url")
	switch {
	case jarPath != "" && url != "":
		return nil, fmt.Errorf("--jar and --url are mutually exclusive")
	case jarPath != "":
		format, err := jar.ParseFormat(c.String("jar-format"))
		if err != nil {
			return nil, err
		}
		return jar.NewLoader(jar.WithLogger(logger)).Load(jarPath, format)
	case url != "":
		return capture(ctx, c, url, logger)
	}
	return nil, fmt.Errorf("a cookie source is required: use --jar or --url")
}

func capture(ctx context.Context, c *cli.Context, url string, logger logging.Logger) (*jar.Jar, error) {
	opts := []httpclient.ClientOption{
		httpclient.WithMethod(c.String("method")),
		httpclient.WithTimeout(c.Duration("timeout")),
		httpclient.WithLogger(logger),
	}
	for _, h := range c.StringSlice("header") {
		key, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid --header %q: want 'Key: Value'", h)
		}
		opts = append(opts, httpclient.WithHeader(
			strings.TrimSpace(key), strings.TrimSpace(value),
		))
	}
	if c.Bool("no-redirect") {
		opts = append(opts, httpclient.WithoutRedirects())
	}

	result, err := httpclient.NewClient(opts...).Capture(ctx, url)
	if err != nil {
		return nil, err
	}
	return result.Jar(), nil
}
