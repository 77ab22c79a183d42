// Package cms implements the HTTP client for the external content backend
// holding localized menu categories and items.
package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"rosmarino/internal/domain/menu"
	sharedConfig "rosmarino/internal/shared/config"
	"rosmarino/internal/shared/logger"
)

// Maximum response body size for the menu endpoint (1MB). A menu larger than
// this is treated as malformed.
const maxMenuResponseSize = 1 << 20

// categoryPayload mirrors the backend's category shape.
type categoryPayload struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// itemPayload mirrors the backend's item shape. The category relation comes
// back as a nested object and is flattened to its slug.
type itemPayload struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price"`
	Category    struct {
		Slug string `json:"slug"`
	} `json:"category"`
	Allergens []string `json:"allergens"`
	Available bool     `json:"available"`
	Special   bool     `json:"special"`
}

type menuPayload struct {
	Categories []categoryPayload `json:"categories"`
	Items      []itemPayload     `json:"items"`
}

// Client fetches menu content from the backend under a hard timeout.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Interface
}

func NewClient(cfg sharedConfig.CMSConfig, log logger.Interface) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout: cfg.FetchTimeout(),
		},
		logger: log,
	}
}

// Name identifies this provider in content-resolution logs.
func (c *Client) Name() string {
	return "cms"
}

// Fetch retrieves the menu for the given locale. Any transport error, non-200
// status, or malformed body is returned as an error; the caller is expected
// to fall back to the next content provider.
func (c *Client) Fetch(ctx context.Context, locale string) (*menu.Menu, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("content backend not configured")
	}

	endpoint := fmt.Sprintf("%s/api/menu?locale=%s", c.baseURL, url.QueryEscape(locale))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("menu request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("menu request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxMenuResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read menu response: %w", err)
	}

	var payload menuPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse menu response: %w", err)
	}
	if len(payload.Categories) == 0 {
		return nil, fmt.Errorf("menu response contains no categories")
	}

	return payload.toDomain(locale), nil
}

func (p *menuPayload) toDomain(locale string) *menu.Menu {
	m := &menu.Menu{
		Locale:     locale,
		Categories: make([]menu.Category, 0, len(p.Categories)),
		Items:      make([]menu.Item, 0, len(p.Items)),
	}
	for _, cat := range p.Categories {
		m.Categories = append(m.Categories, menu.Category{
			ID:          cat.ID,
			Title:       cat.Title,
			Slug:        cat.Slug,
			Description: cat.Description,
			Order:       cat.Order,
		})
	}
	for _, item := range p.Items {
		m.Items = append(m.Items, menu.Item{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			PriceCents:   item.PriceCents,
			CategorySlug: item.Category.Slug,
			Allergens:    item.Allergens,
			Available:    item.Available,
			Special:      item.Special,
		})
	}
	return m
}
