package i18n

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// Catalog is a Translator backed by an x/text message catalog. Lookups fall
// back through parent locales (es-MX, es-419, es) before giving up.
type Catalog struct {
	mu      sync.RWMutex
	builder *catalog.Builder
	known   map[language.Tag]map[string]struct{}
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		builder: catalog.NewBuilder(),
		known:   make(map[language.Tag]map[string]struct{}),
	}
}

// Set stores text for key in domain under locale.
func (c *Catalog) Set(locale, domain, key, text string) error {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	id := messageID(domain, key)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.builder.SetString(tag, id, strings.ReplaceAll(text, "%", "%%")); err != nil {
		return fmt.Errorf("i18n: set %s: %w", id, err)
	}
	if c.known[tag] == nil {
		c.known[tag] = make(map[string]struct{})
	}
	c.known[tag][id] = struct{}{}
	return nil
}

// Translate implements Translator.
func (c *Catalog) Translate(locale, domain, key string) (string, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return "", fmt.Errorf("i18n: locale %q: %w", locale, err)
	}
	id := messageID(domain, key)

	c.mu.RLock()
	defer c.mu.RUnlock()
	for current := tag; ; current = current.Parent() {
		if _, ok := c.known[current][id]; ok {
			return message.NewPrinter(current, message.Catalog(c.builder)).Sprintf(id), nil
		}
		if current == language.Und {
			break
		}
	}
	return "", fmt.Errorf("%w: %s (%s)", ErrMissingTranslation, id, locale)
}

// Locales returns the locales holding at least one message.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.known))
	for tag := range c.known {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}

// LoadCatalog parses a YAML or JSON document shaped as
// locale → domain → nested keys. Nested mappings are joined with dots, so
//
//	es:
//	  settings:
//	    labels:
//	      theme: Tema
//
// defines `labels.theme` in the `settings` domain.
func LoadCatalog(data []byte) (*Catalog, error) {
	var doc map[string]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("i18n: parse catalog: %w", err)
	}

	cat := NewCatalog()
	for locale, domains := range doc {
		for domain, tree := range domains {
			messages := map[string]string{}
			flatten("", tree, messages)
			for key, text := range messages {
				if err := cat.Set(locale, domain, key, text); err != nil {
					return nil, err
				}
			}
		}
	}
	return cat, nil
}

// LoadCatalogFS reads a catalog document from fsys.
func LoadCatalogFS(fsys fs.FS, path string) (*Catalog, error) {
	if fsys == nil {
		return nil, fmt.Errorf("i18n: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", path, err)
	}
	return LoadCatalog(data)
}

func flatten(prefix string, node any, dest map[string]string) {
	switch v := node.(type) {
	case map[string]any:
		for key, child := range v {
			flatten(joinKey(prefix, key), child, dest)
		}
	case nil:
	default:
		if prefix != "" {
			dest[prefix] = fmt.Sprint(v)
		}
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

func messageID(domain, key string) string {
	return domain + "/" + key
}
