// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package i18n provides translated UI strings for the attendance screens.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

//go:embed locales
var localesFS embed.FS

// DefaultLanguage is used when no supported language matches.
const DefaultLanguage = "en"

// SupportedLanguages lists the UI languages we ship catalogs for.
// The first entry is the default.
var SupportedLanguages = []string{"en", "id"}

// Message represents a single translatable message.
type Message struct {
	ID          string `json:"id"`
	Message     string `json:"message"`
	Translation string `json:"translation"`
}

// MessageFile represents the structure of a messages JSON file.
type MessageFile struct {
	Language string    `json:"language"`
	Messages []Message `json:"messages"`
}

// Catalog holds translations for all supported languages.
type Catalog struct {
	translations map[string]map[string]string // lang -> key -> translation
	matcher      language.Matcher
	logger       *slog.Logger
}

var (
	mu      sync.RWMutex
	catalog *Catalog
)

// Init loads the embedded catalogs and makes them available through T.
func Init(logger *slog.Logger) error {
	c, err := NewCatalog(logger)
	if err != nil {
		return err
	}

	mu.Lock()
	catalog = c
	mu.Unlock()

	if logger != nil {
		logger.Info("i18n initialized", "languages", SupportedLanguages)
	}
	return nil
}

// NewCatalog loads the embedded catalogs.
func NewCatalog(logger *slog.Logger) (*Catalog, error) {
	c := &Catalog{
		translations: make(map[string]map[string]string, len(SupportedLanguages)),
		logger:       logger,
	}

	tags := make([]language.Tag, 0, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		tags = append(tags, language.MustParse(lang))
		if err := c.load(lang); err != nil {
			return nil, fmt.Errorf("loading language %s: %w", lang, err)
		}
	}
	c.matcher = language.NewMatcher(tags)

	return c, nil
}

func (c *Catalog) load(lang string) error {
	path := fmt.Sprintf("locales/%s/messages.json", lang)
	data, err := localesFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var msgFile MessageFile
	if err := json.Unmarshal(data, &msgFile); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	m := make(map[string]string, len(msgFile.Messages))
	for _, msg := range msgFile.Messages {
		m[msg.ID] = msg.Translation
	}
	c.translations[lang] = m

	if c.logger != nil {
		c.logger.Debug("loaded translations", "language", lang, "count", len(m))
	}
	return nil
}

// T translates key into lang, falling back to the default language and
// then to the key itself. Args are applied with fmt.Sprintf.
func (c *Catalog) T(lang, key string, args ...any) string {
	translation, ok := c.translations[lang][key]
	if !ok && lang != DefaultLanguage {
		translation, ok = c.translations[DefaultLanguage][key]
		if ok && c.logger != nil {
			c.logger.Debug("missing translation, using default", "key", key, "lang", lang)
		}
	}
	if !ok {
		return key
	}

	if len(args) > 0 {
		return fmt.Sprintf(translation, args...)
	}
	return translation
}

// Match returns the best supported language for an Accept-Language header
// or a bare language code.
func (c *Catalog) Match(acceptLang string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLang)
	if err != nil || len(tags) == 0 {
		tag, err := language.Parse(acceptLang)
		if err != nil {
			return DefaultLanguage
		}
		tags = []language.Tag{tag}
	}

	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(SupportedLanguages) {
		return DefaultLanguage
	}
	return SupportedLanguages[idx]
}

// Count returns the number of translations loaded for lang.
func (c *Catalog) Count(lang string) int {
	return len(c.translations[lang])
}

func current() *Catalog {
	mu.RLock()
	defer mu.RUnlock()
	return catalog
}

// T translates key using the catalog loaded by Init.
// Before Init it returns the key unchanged.
func T(lang, key string, args ...any) string {
	c := current()
	if c == nil {
		return key
	}
	return c.T(lang, key, args...)
}

// MatchLanguage finds the best matching supported language (e.g. "en", "id").
func MatchLanguage(acceptLang string) string {
	c := current()
	if c == nil {
		return DefaultLanguage
	}
	return c.Match(acceptLang)
}

// IsSupported checks if a language code has a catalog.
func IsSupported(lang string) bool {
	lang = strings.ToLower(lang)
	for _, supported := range SupportedLanguages {
		if supported == lang {
			return true
		}
	}
	return false
}

// TranslationCount returns the number of translations loaded for a language.
func TranslationCount(lang string) int {
	c := current()
	if c == nil {
		return 0
	}
	return c.Count(lang)
}
