package session

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/printmg/internal/config"
	"github.com/JaimeStill/printmg/internal/storage"
)

const preferencesKey = "preferences.toml"

// Theme is the color scheme of the interface.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts light or dark.
func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	default:
		return "", fmt.Errorf("unknown theme %q (must be light or dark)", s)
	}
}

// Preferences persist independently of the session and survive logout.
type Preferences struct {
	Language string `toml:"lang"`
	Theme    Theme  `toml:"theme"`
}

// PreferenceStore keeps Preferences on the durable backend.
type PreferenceStore struct {
	store    storage.System
	defaults Preferences
}

// NewPreferenceStore creates a preference store. lang is used until a
// language is chosen.
func NewPreferenceStore(store storage.System, lang string) *PreferenceStore {
	return &PreferenceStore{
		store:    store,
		defaults: Preferences{Language: lang, Theme: ThemeLight},
	}
}

// Load returns the stored preferences, filling unset values with defaults.
func (p *PreferenceStore) Load(ctx context.Context) (Preferences, error) {
	prefs := p.defaults

	data, err := p.store.Retrieve(ctx, preferencesKey)
	if errors.Is(err, storage.ErrNotFound) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("read preferences: %w", err)
	}

	var stored Preferences
	if err := toml.Unmarshal(data, &stored); err != nil {
		return prefs, fmt.Errorf("decode preferences: %w", err)
	}
	if slices.Contains(config.Locales, stored.Language) {
		prefs.Language = stored.Language
	}
	if t, err := ParseTheme(string(stored.Theme)); err == nil {
		prefs.Theme = t
	}

	return prefs, nil
}

// SetLanguage stores the interface language.
func (p *PreferenceStore) SetLanguage(ctx context.Context, lang string) error {
	if !slices.Contains(config.Locales, lang) {
		return fmt.Errorf("unsupported language %q (must be one of %v)", lang, config.Locales)
	}
	return p.update(ctx, func(prefs *Preferences) { prefs.Language = lang })
}

// SetTheme stores the color scheme.
func (p *PreferenceStore) SetTheme(ctx context.Context, theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	return p.update(ctx, func(prefs *Preferences) { prefs.Theme = theme })
}

func (p *PreferenceStore) update(ctx context.Context, apply func(*Preferences)) error {
	prefs, err := p.Load(ctx)
	if err != nil {
		prefs = p.defaults
	}
	apply(&prefs)

	data, err := toml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := p.store.Store(ctx, preferencesKey, data); err != nil {
		return fmt.Errorf("store preferences: %w", err)
	}
	return nil
}
