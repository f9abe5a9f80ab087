package jar

import (
	"fmt"

	"github.com/spf13/afero"

	"digital.vasic.cookiematch/pkg/cookie"
	"digital.vasic.cookiematch/pkg/logging"
)

// Loader reads cookie stores into jars. Text formats go through
// an afero filesystem; Firefox databases are opened by path with
// the SQLite driver.
type Loader struct {
	fs     afero.Fs
	logger logging.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFs sets the filesystem used for text formats and format
// detection.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) {
		if fs != nil {
			l.fs = fs
		}
	}
}

// WithLogger sets the logger for skipped lines and load
// summaries.
func WithLogger(logger logging.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader creates a loader on the OS filesystem.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:     afero.NewOsFs(),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads path in the given format. FormatUnknown detects
// the format first.
func (l *Loader) Load(path string, format Format) (*Jar, error) {
	if format == FormatUnknown {
		detected, err := l.DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	var (
		cookies []*cookie.Cookie
		err     error
	)
	switch format {
	case FormatNetscape:
		cookies, err = l.LoadNetscape(path)
	case FormatJSON:
		cookies, err = l.LoadJSON(path)
	case FormatFirefox:
		cookies, err = l.LoadFirefox(path)
	default:
		return nil, fmt.Errorf("unsupported cookie file format: %s", format)
	}
	if err != nil {
		return nil, err
	}

	l.logger.Debug("loaded cookie jar",
		logging.StringField("path", path),
		logging.StringField("format", format.String()),
		logging.IntField("cookies", len(cookies)),
	)
	return New(cookies...), nil
}

// Load reads path from the OS filesystem, detecting its format.
func Load(path string) (*Jar, error) {
	return NewLoader().Load(path, FormatUnknown)
}
