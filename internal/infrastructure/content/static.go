package content

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"rosmarino/internal/domain/menu"
)

//go:embed fallback.yaml
var fallbackData []byte

type fallbackFile struct {
	Locales map[string]struct {
		Categories []menu.Category `yaml:"categories"`
		Items      []menu.Item     `yaml:"items"`
	} `yaml:"locales"`
}

// StaticProvider serves the embedded fallback dataset. It is the terminal
// provider of the content chain and never fails once constructed.
type StaticProvider struct {
	defaultLocale string
	menus         map[string]*menu.Menu
	once          sync.Once
	loadErr       error
}

func NewStaticProvider(defaultLocale string) *StaticProvider {
	return &StaticProvider{defaultLocale: defaultLocale}
}

func (s *StaticProvider) Name() string {
	return "static"
}

// Fetch returns a copy of the embedded menu for the locale, falling back to
// the default locale for unknown ones. The embedded dataset is parsed once;
// a malformed dataset is a build defect and surfaces on first use.
func (s *StaticProvider) Fetch(ctx context.Context, locale string) (*menu.Menu, error) {
	s.once.Do(s.load)
	if s.loadErr != nil {
		return nil, s.loadErr
	}

	m, ok := s.menus[locale]
	if !ok {
		m, ok = s.menus[s.defaultLocale]
		if !ok {
			return nil, fmt.Errorf("fallback dataset has no locale %q", s.defaultLocale)
		}
	}
	return copyMenu(m), nil
}

func (s *StaticProvider) load() {
	var file fallbackFile
	if err := yaml.Unmarshal(fallbackData, &file); err != nil {
		s.loadErr = fmt.Errorf("failed to parse embedded fallback dataset: %w", err)
		return
	}
	if len(file.Locales) == 0 {
		s.loadErr = fmt.Errorf("embedded fallback dataset is empty")
		return
	}

	s.menus = make(map[string]*menu.Menu, len(file.Locales))
	for locale, data := range file.Locales {
		s.menus[locale] = &menu.Menu{
			Locale:     locale,
			Categories: data.Categories,
			Items:      data.Items,
		}
	}
}

func copyMenu(m *menu.Menu) *menu.Menu {
	out := &menu.Menu{
		Locale:     m.Locale,
		Categories: make([]menu.Category, len(m.Categories)),
		Items:      make([]menu.Item, len(m.Items)),
	}
	copy(out.Categories, m.Categories)
	for i, item := range m.Items {
		out.Items[i] = item
		if len(item.Allergens) > 0 {
			out.Items[i].Allergens = append([]string(nil), item.Allergens...)
		}
	}
	return out
}
