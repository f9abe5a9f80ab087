package jar

import (
	"bytes"
	"fmt"
	"io"
)

// Format identifies a cookie store format.
type Format int

const (
	// FormatUnknown means the format could not be detected.
	FormatUnknown Format = iota
	// FormatNetscape is the tab-separated cookies.txt format.
	FormatNetscape
	// FormatJSON is a browser extension JSON export (an array of
	// objects with name, value, domain, expirationDate...).
	FormatJSON
	// FormatFirefox is the Firefox moz_cookies SQLite schema.
	FormatFirefox
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatNetscape:
		return "netscape"
	case FormatJSON:
		return "json"
	case FormatFirefox:
		return "firefox"
	default:
		return "unknown"
	}
}

// ParseFormat resolves a format name. "auto" and "" map to
// FormatUnknown, which asks the loader to detect the format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "", "auto":
		return FormatUnknown, nil
	case "netscape", "txt":
		return FormatNetscape, nil
	case "json":
		return FormatJSON, nil
	case "firefox", "sqlite":
		return FormatFirefox, nil
	}
	return FormatUnknown, fmt.Errorf("unknown cookie file format: %q", name)
}

// sqliteMagic is the first 16 bytes of any SQLite database file.
var sqliteMagic = []byte("SQLite format 3\x00")

// DetectFormat determines the cookie store format of the file at
// path: SQLite databases are Firefox stores, content starting
// with '[' or '{' is a JSON export and anything else is read as
// Netscape text.
func (l *Loader) DetectFormat(path string) (Format, error) {
	info, err := l.fs.Stat(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("cookie file not found: %s", path)
	}
	if info.IsDir() {
		return FormatUnknown, fmt.Errorf("%s is a directory, expected a cookie file", path)
	}
	if info.Size() == 0 {
		return FormatUnknown, fmt.Errorf("cookie file %s is empty", path)
	}

	f, err := l.fs.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("cannot open cookie file: %w", err)
	}
	defer f.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return FormatUnknown, fmt.Errorf("cannot read cookie file: %w", err)
	}
	head = head[:n]

	if bytes.HasPrefix(head, sqliteMagic) {
		return FormatFirefox, nil
	}
	trimmed := bytes.TrimLeft(head, " \t\r\n\xef\xbb\xbf")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return FormatJSON, nil
	}
	return FormatNetscape, nil
}
