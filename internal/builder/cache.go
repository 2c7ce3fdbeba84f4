package builder

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const CacheFile = "VSGenCache.toml"

// CacheEntry is one persisted configuration value.
type CacheEntry struct {
	Value string `toml:"value"`
	Doc   string `toml:"doc,omitempty"`
}

// Cache holds values persisted between configuration runs of a build tree.
type Cache struct {
	path    string
	Entries map[string]CacheEntry
	saved   string
}

// LoadCache reads the cache of buildDir. A missing file yields an empty cache.
func LoadCache(buildDir string) (*Cache, error) {
	c := &Cache{
		path:    filepath.Join(buildDir, CacheFile),
		Entries: make(map[string]CacheEntry),
	}

	data, err := os.ReadFile(c.path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}

	if err := toml.Unmarshal(data, &c.Entries); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return nil, errors.Newf("failed to parse %s:\n%s", c.path, derr.String())
		}
		return nil, errors.Wrapf(err, "failed to parse %s", c.path)
	}
	c.saved = string(data)
	return c, nil
}

func (c *Cache) Path() string { return c.path }

// Get returns the cached value of name.
func (c *Cache) Get(name string) (string, bool) {
	e, ok := c.Entries[name]
	return e.Value, ok
}

func (c *Cache) SetCacheEntry(name, value, doc string) {
	c.Entries[name] = CacheEntry{Value: value, Doc: doc}
}

// Save writes the cache if its contents changed. It returns a line diff of
// the change, empty when nothing was written.
func (c *Cache) Save() (string, error) {
	data, err := toml.Marshal(c.Entries)
	if err != nil {
		return "", err
	}
	text := string(data)
	if text == c.saved {
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return "", err
	}

	diff := lineDiff(c.saved, text)
	c.saved = text
	return diff, nil
}

// lineDiff renders the change from a to b as "+"/"-" prefixed lines.
func lineDiff(a, b string) string {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
