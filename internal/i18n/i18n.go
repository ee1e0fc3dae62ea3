// Package i18n serves user-facing API messages from JSON catalogs, one file
// per locale named <locale>.json (e.g. en.json, zh_TW.json).
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
)

type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]string
	fallback string
}

var global atomic.Pointer[Catalog]

// Initialize loads every locale in dir and makes it the catalog T reads from.
func Initialize(dir, defaultLocale string) error {
	c := New(defaultLocale)
	if err := c.Load(dir); err != nil {
		return err
	}
	global.Store(c)
	return nil
}

func New(defaultLocale string) *Catalog {
	if defaultLocale == "" {
		defaultLocale = "en"
	}
	return &Catalog{
		messages: make(map[string]map[string]string),
		fallback: normalizeLocale(defaultLocale),
	}
}

// Load replaces the catalog with every *.json file in dir. The default locale
// must be among them.
func (c *Catalog) Load(dir string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("list locales in %s: %w", dir, err)
	}

	loaded := make(map[string]map[string]string, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read locale %s: %w", path, err)
		}
		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return fmt.Errorf("parse locale %s: %w", path, err)
		}
		loaded[normalizeLocale(strings.TrimSuffix(filepath.Base(path), ".json"))] = messages
	}

	if _, ok := loaded[c.fallback]; !ok {
		return fmt.Errorf("default locale %q not found in %s", c.fallback, dir)
	}

	c.mu.Lock()
	c.messages = loaded
	c.mu.Unlock()
	return nil
}

// T formats the message for key in locale. Unknown locales and keys fall back
// to the default locale, then to the key itself.
func (c *Catalog) T(locale, key string, args ...interface{}) string {
	c.mu.RLock()
	msg, ok := c.messages[normalizeLocale(locale)][key]
	if !ok {
		msg, ok = c.messages[c.fallback][key]
	}
	c.mu.RUnlock()

	switch {
	case !ok:
		return key
	case len(args) == 0:
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// T translates with the catalog loaded by Initialize, or returns key before that.
func T(locale, key string, args ...interface{}) string {
	if c := global.Load(); c != nil {
		return c.T(locale, key, args...)
	}
	return key
}

// normalizeLocale maps BCP 47 separators to the file naming, "zh-TW" -> "zh_TW".
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(locale, "-", "_")
}
