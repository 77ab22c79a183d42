// Package menu resolves localized menu content for page rendering. It never
// fails: content comes from the backend when reachable, from the embedded
// dataset otherwise.
package menu

import (
	"bytes"
	"context"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"golang.org/x/text/language"

	menudomain "rosmarino/internal/domain/menu"
	"rosmarino/internal/infrastructure/content"
	"rosmarino/internal/shared/logger"
)

// CategoryView is a category with its description rendered from markdown to
// sanitized HTML.
type CategoryView struct {
	menudomain.Category
	DescriptionHTML string `json:"description_html,omitempty"`
}

// ItemView is an item with its description rendered from markdown to
// sanitized HTML.
type ItemView struct {
	menudomain.Item
	DescriptionHTML string `json:"description_html,omitempty"`
}

// MenuView is the resolved menu for one locale, normalized for rendering:
// categories in display order, available items only.
type MenuView struct {
	Locale     string         `json:"locale"`
	Categories []CategoryView `json:"categories"`
	Items      []ItemView     `json:"items"`
}

// CategoryGroupView is a category with its items, for grouped rendering.
type CategoryGroupView struct {
	Category CategoryView `json:"category"`
	Items    []ItemView   `json:"items"`
}

// Service resolves menu content. Locale matching uses x/text; unsupported
// locales fall back to the default.
type Service struct {
	chain         *content.Chain
	matcher       language.Matcher
	locales       []string
	defaultLocale string
	markdown      goldmark.Markdown
	sanitizer     *bluemonday.Policy
	logger        logger.Interface
}

func NewService(chain *content.Chain, locales []string, defaultLocale string, log logger.Interface) *Service {
	tags := make([]language.Tag, 0, len(locales))
	supported := make([]string, 0, len(locales))
	for _, l := range locales {
		tag, err := language.Parse(l)
		if err != nil {
			log.Warnw("skipping unparseable locale", "locale", l, "error", err)
			continue
		}
		tags = append(tags, tag)
		supported = append(supported, l)
	}

	return &Service{
		chain:         chain,
		matcher:       language.NewMatcher(tags),
		locales:       supported,
		defaultLocale: defaultLocale,
		markdown:      goldmark.New(),
		sanitizer:     bluemonday.UGCPolicy(),
		logger:        log,
	}
}

// ResolveLocale maps a requested locale onto the supported set, falling back
// to the default for empty, unparseable, or unsupported values.
func (s *Service) ResolveLocale(requested string) string {
	if requested == "" {
		return s.defaultLocale
	}
	desired, err := language.Parse(requested)
	if err != nil {
		return s.defaultLocale
	}
	_, idx, conf := s.matcher.Match(desired)
	if conf == language.No {
		return s.defaultLocale
	}
	return s.locales[idx]
}

// GetMenu returns the normalized menu for the locale. It never returns an
// error: all fetch failures are absorbed by the provider chain.
func (s *Service) GetMenu(ctx context.Context, requestedLocale string) MenuView {
	locale := s.ResolveLocale(requestedLocale)
	resolved := s.chain.Resolve(ctx, locale).Normalized()

	view := MenuView{
		Locale:     locale,
		Categories: make([]CategoryView, 0, len(resolved.Categories)),
		Items:      make([]ItemView, 0, len(resolved.Items)),
	}
	for _, cat := range resolved.Categories {
		view.Categories = append(view.Categories, s.categoryView(cat))
	}
	for _, item := range resolved.Items {
		view.Items = append(view.Items, s.itemView(item))
	}
	return view
}

// GetMenuGrouped returns the menu grouped per category, in display order.
func (s *Service) GetMenuGrouped(ctx context.Context, requestedLocale string) []CategoryGroupView {
	locale := s.ResolveLocale(requestedLocale)
	groups := s.chain.Resolve(ctx, locale).GroupedByCategory()

	views := make([]CategoryGroupView, 0, len(groups))
	for _, group := range groups {
		view := CategoryGroupView{
			Category: s.categoryView(group.Category),
			Items:    make([]ItemView, 0, len(group.Items)),
		}
		for _, item := range group.Items {
			view.Items = append(view.Items, s.itemView(item))
		}
		views = append(views, view)
	}
	return views
}

func (s *Service) categoryView(cat menudomain.Category) CategoryView {
	return CategoryView{
		Category:        cat,
		DescriptionHTML: s.renderMarkdown(cat.Description),
	}
}

func (s *Service) itemView(item menudomain.Item) ItemView {
	return ItemView{
		Item:            item,
		DescriptionHTML: s.renderMarkdown(item.Description),
	}
}

// renderMarkdown converts backend rich text to HTML and sanitizes it. On a
// conversion failure the raw text is sanitized and returned as-is.
func (s *Service) renderMarkdown(text string) string {
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(text), &buf); err != nil {
		return s.sanitizer.Sanitize(text)
	}
	return s.sanitizer.Sanitize(buf.String())
}
