package jar

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/logging"
)

const httpOnlyPrefix = "#HttpOnly_"

// LoadNetscape reads a Netscape cookies.txt file. Lines starting
// with # are skipped, except #HttpOnly_ which sets HttpOnly.
// Malformed lines are skipped with a warning. Expired cookies
// are kept so that expiry can be asserted on.
func (l *Loader) LoadNetscape(path string) ([]*cookie.Cookie, error) {
	f, err := l.fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open Netscape cookie file: %w", err)
	}
	defer f.Close()

	var cookies []*cookie.Cookie
	lineNo := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		httpOnly := false
		if strings.HasPrefix(line, httpOnlyPrefix) {
			httpOnly = true
			line = line[len(httpOnlyPrefix):]
		} else if strings.HasPrefix(line, "#") {
			continue
		}

		c, err := parseNetscapeLine(line)
		if err != nil {
			l.logger.Warn("skipping malformed Netscape cookie line",
				logging.StringField("path", path),
				logging.IntField("line", lineNo),
				logging.ErrorField(err),
			)
			continue
		}
		c.HttpOnly = httpOnly
		cookies = append(cookies, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read Netscape cookie file: %w", err)
	}
	return cookies, nil
}

// parseNetscapeLine parses the seven tab-separated columns:
// domain, include-subdomains, path, secure, expiry, name, value.
func parseNetscapeLine(line string) (*cookie.Cookie, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 7 {
		return nil, fmt.Errorf("expected 7 tab-separated fields, got %d", len(fields))
	}

	expiry, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry %q", fields[4])
	}

	c := cookie.New(fields[5], fields[6])
	c.Domain = fields[0]
	c.Path = fields[2]
	c.Secured = strings.EqualFold(fields[3], "TRUE")
	if expiry > 0 {
		c.ExpiryDate = time.Unix(expiry, 0).UTC()
	}
	return c, nil
}
