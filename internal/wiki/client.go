package wiki

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"wikigear/internal"
	"wikigear/internal/config"
)

const nextPageLabel = "next page"

type Client struct {
	cfg        config.Config
	baseURL    *url.URL
	httpClient *resty.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) (*Client, error) {
	if err := cfg.Require("WIKI_BASE_URL", cfg.WikiBaseURL); err != nil {
		return nil, err
	}
	baseURL, err := url.Parse(strings.TrimRight(cfg.WikiBaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse wiki base url: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimRight(cfg.WikiBaseURL, "/"))
	httpClient.SetTimeout(time.Duration(cfg.WikiTimeoutMs) * time.Millisecond)
	httpClient.SetHeader("User-Agent", cfg.WikiUserAgent)
	httpClient.SetHeader("Accept", "text/html")

	return &Client{
		cfg:        cfg,
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    NewRateLimiter(cfg.WikiRateLimitRPS),
	}, nil
}

// Resolve turns a wiki href into an absolute URL.
func (c *Client) Resolve(href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.baseURL.ResolveReference(ref).String()
}

// FetchPage downloads one page and parses it. There is a single attempt;
// callers decide whether a failure skips the item or aborts.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	res, err := c.httpClient.R().
		SetContext(ctx).
		Get(c.Resolve(pageURL))
	if err != nil {
		return nil, err
	}
	if res.IsError() {
		return nil, fmt.Errorf("wiki status %d for %s", res.StatusCode(), pageURL)
	}

	return goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
}

// CategoryLinks walks a category listing, following the "next page" link
// until it runs out, and returns every member link in page order.
func (c *Client) CategoryLinks(ctx context.Context, category internal.Category) ([]internal.ItemLink, error) {
	all := make([]internal.ItemLink, 0)
	seen := map[string]struct{}{}
	pageURL := c.Resolve("/wiki/Category:" + string(category))

	for pageURL != "" {
		if _, ok := seen[pageURL]; ok {
			slog.WarnContext(ctx, "category pagination loops back", "url", pageURL)
			break
		}
		seen[pageURL] = struct{}{}

		slog.InfoContext(ctx, "fetching category page", "url", pageURL)
		doc, err := c.FetchPage(ctx, pageURL)
		if err != nil {
			return nil, err
		}

		links, next, ok := ParseCategoryPage(doc)
		if !ok {
			slog.WarnContext(ctx, "mw-pages section not found", "url", pageURL)
			break
		}
		for _, link := range links {
			link.URL = c.Resolve(link.URL)
			all = append(all, link)
		}

		pageURL = ""
		if next != "" {
			pageURL = c.Resolve(next)
		}
	}

	return all, nil
}

// ParseCategoryPage reads the member anchors of div#mw-pages. The
// "next page" anchor is returned as next instead of as a member. ok is
// false when the page has no member section.
func ParseCategoryPage(doc *goquery.Document) (links []internal.ItemLink, next string, ok bool) {
	pages := doc.Find("div#mw-pages").First()
	if pages.Length() == 0 {
		return nil, "", false
	}

	links = []internal.ItemLink{}
	pages.Find("a").Each(func(_ int, a *goquery.Selection) {
		text := strings.TrimSpace(a.Text())
		href, hasHref := a.Attr("href")
		if strings.ToLower(text) == nextPageLabel {
			if next == "" && text == nextPageLabel && hasHref {
				next = href
			}
			return
		}
		if hasHref && href != "" {
			links = append(links, internal.ItemLink{Title: text, URL: href})
		}
	})
	return links, next, true
}
