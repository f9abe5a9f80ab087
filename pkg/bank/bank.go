// Package bank loads cookie expectations from YAML and JSON
// files and keeps them in load order.
package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"digital.vasic.cookiematch/pkg/logging"
)

// Bank manages expectations loaded from files, keyed by cookie
// name. Loading an expectation for a name that is already
// present replaces it in place.
type Bank struct {
	mu           sync.RWMutex
	expectations map[string]*Expectation
	order        []string
	sources      []string
	logger       logging.Logger
}

// Option configures a Bank.
type Option func(*Bank)

// WithLogger sets the logger used to report loaded files.
func WithLogger(l logging.Logger) Option {
	return func(b *Bank) {
		if l != nil {
			b.logger = l
		}
	}
}

// New creates a new empty Bank.
func New(opts ...Option) *Bank {
	b := &Bank{
		expectations: make(map[string]*Expectation),
		logger:       logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// readFile decodes an expectation file. JSON documents are
// valid YAML, so a single decoder serves both.
func readFile(path string) (*ExpectationFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expectation file %s: %w", path, err)
	}

	var file ExpectationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse expectation file %s: %w", path, err)
	}
	return &file, nil
}

// LoadFile loads expectations from a YAML or JSON file.
func (b *Bank) LoadFile(path string) error {
	file, err := readFile(path)
	if err != nil {
		return err
	}

	for i, exp := range file.Expectations {
		if exp.Cookie == "" {
			return fmt.Errorf(
				"expectation at index %d in %s has no cookie name",
				i, path,
			)
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range file.Expectations {
		exp := &file.Expectations[i]
		if _, exists := b.expectations[exp.Cookie]; !exists {
			b.order = append(b.order, exp.Cookie)
		}
		b.expectations[exp.Cookie] = exp
	}
	b.sources = append(b.sources, path)

	b.logger.Debug("loaded expectation file",
		logging.StringField("path", path),
		logging.IntField("expectations", len(file.Expectations)),
	)
	return nil
}

// LoadDir loads all .yaml, .yml and .json files from a
// directory in lexical order.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read expectation directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isExpectationFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		if err := b.LoadFile(filepath.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// Load loads path as a directory or a single file.
func (b *Bank) Load(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat expectations %s: %w", path, err)
	}
	if info.IsDir() {
		return b.LoadDir(path)
	}
	return b.LoadFile(path)
}

func isExpectationFile(name string) bool {
	switch filepath.Ext(name) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// Add registers an expectation directly, bypassing files.
func (b *Bank) Add(exp Expectation) error {
	if exp.Cookie == "" {
		return fmt.Errorf("expectation has no cookie name")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.expectations[exp.Cookie]; !exists {
		b.order = append(b.order, exp.Cookie)
	}
	b.expectations[exp.Cookie] = &exp
	return nil
}

// Get retrieves the expectation for a cookie name.
func (b *Bank) Get(cookie string) (*Expectation, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	exp, ok := b.expectations[cookie]
	return exp, ok
}

// All returns all expectations in the order their cookie names
// were first loaded.
func (b *Bank) All() []*Expectation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*Expectation, 0, len(b.order))
	for _, name := range b.order {
		result = append(result, b.expectations[name])
	}
	return result
}

// Count returns the number of loaded expectations.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.expectations)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
