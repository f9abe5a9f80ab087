package jar

import (
	"bytes"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/logging"
)

const netscapeFixture = "# Netscape HTTP Cookie File\n" +
	"# comment line\n" +
	"\n" +
	".example.com\tTRUE\t/\tTRUE\t1893456000\tsid\tabc123\n" +
	"#HttpOnly_example.com\tFALSE\t/app\tFALSE\t0\ttoken\txyz\r\n" +
	"broken line without tabs\n" +
	"example.com\tFALSE\t/\tFALSE\tsoon\tbad\texpiry\n"

const jsonFixture = `[
  {"name": "sid", "value": "abc123", "domain": ".example.com", "path": "/",
   "secure": true, "httpOnly": true, "session": false,
   "expirationDate": 1893456000.5},
  {"name": "pref", "value": "dark", "domain": "example.com", "path": "/",
   "session": true, "expirationDate": 1893456000},
  {"value": "nameless"},
  {"name": "legacy", "value": "1", "comment": "old", "version": 1, "maxAge": 60}
]`

func memLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0644))
	}
	return NewLoader(WithFs(fs))
}

func TestLoadNetscape(t *testing.T) {
	var logs bytes.Buffer
	l := memLoader(t, map[string]string{"/cookies.txt": netscapeFixture})
	l.logger = logging.NewConsoleLoggerTo(&logs, logging.LevelDebug)

	cookies, err := l.LoadNetscape("/cookies.txt")
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	sid := cookies[0]
	assert.Equal(t, "sid", sid.Name)
	assert.Equal(t, "abc123", sid.Value)
	assert.Equal(t, ".example.com", sid.Domain)
	assert.True(t, sid.Secured)
	assert.False(t, sid.HttpOnly)
	assert.True(t, sid.ExpiryDate.Equal(time.Unix(1893456000, 0)))
	assert.Equal(t, cookie.Undefined, sid.MaxAge)

	token := cookies[1]
	assert.Equal(t, "/app", token.Path)
	assert.True(t, token.HttpOnly)
	assert.False(t, token.HasExpiryDate())

	assert.Contains(t, logs.String(), "line=6")
	assert.Contains(t, logs.String(), "line=7")
	assert.NotContains(t, logs.String(), "abc123")
}

func TestLoadNetscape_Missing(t *testing.T) {
	_, err := memLoader(t, nil).LoadNetscape("/nope.txt")
	assert.ErrorContains(t, err, "cannot open Netscape cookie file")
}

func TestLoadJSON(t *testing.T) {
	l := memLoader(t, map[string]string{"/cookies.json": jsonFixture})

	cookies, err := l.LoadJSON("/cookies.json")
	require.NoError(t, err)
	require.Len(t, cookies, 3)

	sid := cookies[0]
	assert.True(t, sid.Secured)
	assert.True(t, sid.HttpOnly)
	assert.True(t, sid.ExpiryDate.Equal(time.Unix(1893456000, 500_000_000)))

	assert.False(t, cookies[1].HasExpiryDate())

	legacy := cookies[2]
	assert.Equal(t, "old", legacy.Comment)
	assert.Equal(t, 1, legacy.Version)
	assert.Equal(t, 60, legacy.MaxAge)
}

func TestLoadJSON_Wrapped(t *testing.T) {
	l := memLoader(t, map[string]string{
		"/wrapped.json": `{"cookies": [{"name": "a", "value": "1"}]}`,
		"/object.json":  `{"name": "a"}`,
		"/broken.json":  `[{"name": `,
	})

	cookies, err := l.LoadJSON("/wrapped.json")
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "a", cookies[0].Name)

	_, err = l.LoadJSON("/object.json")
	assert.ErrorContains(t, err, "holds no cookie array")

	_, err = l.LoadJSON("/broken.json")
	assert.ErrorContains(t, err, "invalid JSON cookie file")

	_, err = l.LoadJSON("/missing.json")
	assert.ErrorContains(t, err, "cannot read JSON cookie file")
}

type firefoxRow struct {
	Name       string
	Value      string
	Host       string
	Path       string
	Expiry     int64
	IsSecure   int
	IsHttpOnly int
}

func createFirefoxFixture(t *testing.T, dir string, rows []firefoxRow) string {
	t.Helper()
	dbPath := filepath.Join(dir, "cookies.sqlite")
	db, err := sql.Open("sqlite", "file:"+url.PathEscape(dbPath))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE moz_cookies (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL,
        value TEXT NOT NULL,
        host TEXT NOT NULL,
        path TEXT NOT NULL DEFAULT '/',
        expiry INTEGER NOT NULL DEFAULT 0,
        isSecure INTEGER NOT NULL DEFAULT 0,
        isHttpOnly INTEGER NOT NULL DEFAULT 0
    )`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(
			`INSERT INTO moz_cookies (name, value, host, path, expiry, isSecure, isHttpOnly) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.Name, r.Value, r.Host, r.Path, r.Expiry, r.IsSecure, r.IsHttpOnly,
		)
		require.NoError(t, err)
	}
	return dbPath
}

func TestLoadFirefox(t *testing.T) {
	dbPath := createFirefoxFixture(t, t.TempDir(), []firefoxRow{
		{"sid", "abc123", ".example.com", "/", 1893456000, 1, 1},
		{"lang", "en", ".example.com", "/", 1893456000000, 0, 0},
		{"tmp", "x", "api.example.com", "/", 0, 0, 0},
	})

	cookies, err := NewLoader().LoadFirefox(dbPath)
	require.NoError(t, err)
	require.Len(t, cookies, 3)

	byName := map[string]*cookie.Cookie{}
	for _, c := range cookies {
		byName[c.Name] = c
	}
	assert.True(t, byName["sid"].Secured)
	assert.True(t, byName["sid"].HttpOnly)
	assert.True(t, byName["sid"].ExpiryDate.Equal(time.Unix(1893456000, 0)))
	assert.True(t, byName["lang"].ExpiryDate.Equal(time.Unix(1893456000, 0)))
	assert.False(t, byName["tmp"].HasExpiryDate())
}

func TestLoadFirefox_ReservedCharactersInPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "profile #1?default")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	dbPath := createFirefoxFixture(t, dir, []firefoxRow{
		{"sid", "abc123", ".example.com", "/", 1893456000, 1, 1},
	})

	cookies, err := NewLoader().LoadFirefox(dbPath)
	require.NoError(t, err)
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
}

func TestLoadFirefox_NoTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.sqlite")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE other (id INTEGER)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewLoader().LoadFirefox(dbPath)
	assert.ErrorContains(t, err, "failed to query Firefox cookies")
}

func TestDetectFormat(t *testing.T) {
	l := memLoader(t, map[string]string{
		"/cookies.txt":  netscapeFixture,
		"/cookies.json": "\n  " + jsonFixture,
		"/empty":        "",
	})
	require.NoError(t, l.fs.MkdirAll("/dir", 0755))

	format, err := l.DetectFormat("/cookies.txt")
	require.NoError(t, err)
	assert.Equal(t, FormatNetscape, format)

	format, err = l.DetectFormat("/cookies.json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = l.DetectFormat("/empty")
	assert.ErrorContains(t, err, "is empty")

	_, err = l.DetectFormat("/dir")
	assert.ErrorContains(t, err, "is a directory")

	_, err = l.DetectFormat("/missing")
	assert.ErrorContains(t, err, "cookie file not found")
}

func TestDetectFormat_Firefox(t *testing.T) {
	dbPath := createFirefoxFixture(t, t.TempDir(), nil)

	format, err := NewLoader().DetectFormat(dbPath)
	require.NoError(t, err)
	assert.Equal(t, FormatFirefox, format)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	dbPath := createFirefoxFixture(t, dir, []firefoxRow{
		{"sid", "abc123", ".example.com", "/", 1893456000, 1, 1},
	})

	j, err := Load(dbPath)
	require.NoError(t, err)
	assert.NotNil(t, j.Find("sid", "example.com"))

	l := memLoader(t, map[string]string{
		"/cookies.txt":  netscapeFixture,
		"/cookies.json": jsonFixture,
	})
	j, err = l.Load("/cookies.txt", FormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, 2, j.Len())

	j, err = l.Load("/cookies.json", FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, j.Len())

	_, err = l.Load("/cookies.json", Format(42))
	assert.ErrorContains(t, err, "unsupported cookie file format")

	_, err = l.Load("/missing.txt", FormatUnknown)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{
		"":        FormatUnknown,
		"auto":    FormatUnknown,
		"txt":     FormatNetscape,
		"json":    FormatJSON,
		"sqlite":  FormatFirefox,
		"firefox": FormatFirefox,
	}
	for name, expected := range tests {
		format, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, expected, format, name)
	}

	_, err := ParseFormat("chrome")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Format(42).String())
	assert.Equal(t, "netscape", FormatNetscape.String())
}
