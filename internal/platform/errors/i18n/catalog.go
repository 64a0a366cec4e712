// Package i18n provides internationalization support for error and rejection
// messages.
package i18n

import (
	"bytes"
	"strings"
	"sync"
	"text/template"

	i18ncatalog "github.com/louisbranch/knightfall/internal/platform/i18n/catalog"
)

// Code is a machine-readable error code (duplicated from errors package to avoid cycle).
type Code = string

const (
	// NamespaceErrors holds messages for platform error codes.
	NamespaceErrors = "errors"
	// NamespaceRules holds messages for rule-violation reason codes.
	NamespaceRules = "rules"
)

// Catalog maps error codes to message templates for a specific locale.
type Catalog struct {
	locale   string
	messages map[Code]string
}

var (
	catalogsMu sync.RWMutex
	// catalogs holds override and runtime-built catalogs by namespace/locale.
	catalogs = map[string]*Catalog{}
)

// GetCatalog returns the catalog for the given locale and namespace.
// Falls back to en-US if the locale is not found.
func GetCatalog(locale, namespace string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = i18ncatalog.BaseLocale
	}
	if c, ok := lookupCatalog(cacheKey(namespace, requested)); ok {
		return c
	}

	resolvedLocale, messages := i18ncatalog.Default().NamespaceMessagesWithFallback(requested, namespace)
	if c, ok := lookupCatalog(cacheKey(namespace, resolvedLocale)); ok {
		return c
	}
	return storeCatalogIfAbsent(cacheKey(namespace, resolvedLocale), NewCatalog(resolvedLocale, messages))
}

// Locale returns the locale of this catalog.
func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the message template with the given metadata.
// Falls back to the code itself if no template is found.
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	tmpl, ok := c.messages[code]
	if !ok {
		return code
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	t, err := template.New("msg").Parse(tmpl)
	if err != nil {
		return tmpl
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, metadata); err != nil {
		return tmpl
	}
	return buf.String()
}

// Has reports whether the catalog defines a message for code.
func (c *Catalog) Has(code Code) bool {
	_, ok := c.messages[code]
	return ok
}

// RegisterCatalog registers a catalog for the given locale and namespace.
// Intended for test setup.
func RegisterCatalog(locale, namespace string, cat *Catalog) {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	catalogs[cacheKey(namespace, locale)] = cat
}

// NewCatalog creates a new catalog with the given locale and messages.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	cloned := make(map[Code]string, len(messages))
	for key, value := range messages {
		cloned[key] = value
	}
	return &Catalog{
		locale:   locale,
		messages: cloned,
	}
}

func cacheKey(namespace, locale string) string {
	return strings.TrimSpace(namespace) + "/" + strings.TrimSpace(locale)
}

func lookupCatalog(key string) (*Catalog, bool) {
	catalogsMu.RLock()
	defer catalogsMu.RUnlock()
	cat, ok := catalogs[key]
	return cat, ok
}

func storeCatalogIfAbsent(key string, candidate *Catalog) *Catalog {
	catalogsMu.Lock()
	defer catalogsMu.Unlock()
	if existing, ok := catalogs[key]; ok {
		return existing
	}
	catalogs[key] = candidate
	return candidate
}
