package jar

import (
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "modernc.org/sqlite"

	"digital.vasic.cookiematch/pkg/cookie"
)

// millisThreshold separates second from millisecond expiry
// values; newer Firefox profiles store milliseconds.
const millisThreshold = 1e11

// LoadFirefox reads every cookie from a Firefox cookies.sqlite
// database. It is opened immutable, so a profile locked by a
// running browser can still be read. The database is read from the OS
// filesystem regardless of the loader's afero filesystem, since
// the SQLite driver needs a real file.
func (l *Loader) LoadFirefox(dbPath string) ([]*cookie.Cookie, error) {
	dsn := fmt.Sprintf("file:%s?immutable=1", url.PathEscape(dbPath))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cannot open Firefox cookie database: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
        SELECT name, value, host, path, expiry, isSecure, isHttpOnly
        FROM moz_cookies
        ORDER BY host ASC, path DESC, name ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query Firefox cookies: %w", err)
	}
	defer rows.Close()

	var cookies []*cookie.Cookie
	for rows.Next() {
		var (
			name, value, host, path string
			expiry                  int64
			isSecure, isHttpOnly    int
		)
		if err := rows.Scan(&name, &value, &host, &path, &expiry, &isSecure, &isHttpOnly); err != nil {
			return nil, fmt.Errorf("failed to scan Firefox cookie row: %w", err)
		}

		c := cookie.New(name, value)
		c.Domain = host
		c.Path = path
		c.Secured = isSecure != 0
		c.HttpOnly = isHttpOnly != 0
		c.ExpiryDate = firefoxExpiry(expiry)
		cookies = append(cookies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate Firefox cookie rows: %w", err)
	}
	return cookies, nil
}

func firefoxExpiry(v int64) time.Time {
	switch {
	case v <= 0:
		return time.Time{}
	case v >= millisThreshold:
		return time.UnixMilli(v).UTC()
	default:
		return time.Unix(v, 0).UTC()
	}
}
