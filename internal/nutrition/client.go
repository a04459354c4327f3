// ABOUTME: HTTP client for the kaloricketabulky.sk food database.
// ABOUTME: Search, per-portion nutrition detail, and unit option lookups.
package nutrition

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/obycajnypes/logly/internal/validate"
)

const (
	defaultBaseURL = "https://www.kaloricketabulky.sk"
	userAgent      = "Logly/1.0 (+https://logly.local)"

	maxSearchResults = 5
	maxRedirects     = 3
	requestTimeout   = 9 * time.Second
)

// ErrDetailUnavailable means the remote database has no usable detail
// record for the requested item; distinct from request failures.
var ErrDetailUnavailable = errors.New("food detail is unavailable for this item")

// FoodHit is one autocomplete search result.
type FoodHit struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
}

// FoodDetail is the nutrition breakdown for a given portion size.
// Kcal and protein are portion totals, not per-100g values.
type FoodDetail struct {
	FoodID   string  `json:"food_id"`
	Title    string  `json:"title"`
	Grams    float64 `json:"grams"`
	Kcal     float64 `json:"kcal"`
	Protein  float64 `json:"protein"`
	ImageURL string  `json:"image_url"`
}

// Client talks to the food database. A nil cache disables caching.
type Client struct {
	baseURL string
	httpc   *http.Client
	cache   *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the remote endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithCache attaches a lookup cache.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// NewClient builds a food database client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpc: &http.Client{
			Timeout: requestTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns up to five foodstuff matches for a query.
func (c *Client) Search(ctx context.Context, query string) ([]FoodHit, error) {
	q, err := validate.RequiredText("Search query", query)
	if err != nil {
		return nil, err
	}

	cacheKey := "search:" + strings.ToLower(q)
	if hits, ok := cacheGet[[]FoodHit](c.cache, cacheKey); ok {
		return hits, nil
	}

	endpoint := fmt.Sprintf("%s/autocomplete/foodstuff-activity-meal?query=%s&format=json",
		c.baseURL, url.QueryEscape(q))

	var response []struct {
		Clazz string `json:"clazz"`
		ID    any    `json:"id"`
		Title string `json:"title"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	hits := []FoodHit{}
	for _, item := range response {
		if len(hits) == maxSearchResults {
			break
		}
		id := stringify(item.ID)
		if item.Clazz != "foodstuff" || id == "" || item.Title == "" {
			continue
		}
		hits = append(hits, FoodHit{
			ID:       id,
			Title:    item.Title,
			ImageURL: c.thumbURL(id),
		})
	}

	cacheSet(c.cache, cacheKey, hits)
	return hits, nil
}

// Fetch returns the nutrition totals for a food at the given portion.
func (c *Client) Fetch(ctx context.Context, foodID string, grams float64) (*FoodDetail, error) {
	id, err := validate.RequiredText("Food ID", foodID)
	if err != nil {
		return nil, err
	}
	if grams <= 0 {
		return nil, &validate.Error{Field: "Grams", Detail: "must be greater than zero"}
	}

	cacheKey := fmt.Sprintf("detail:%s:%s", id, strconv.FormatFloat(grams, 'f', -1, 64))
	if detail, ok := cacheGet[*FoodDetail](c.cache, cacheKey); ok {
		return detail, nil
	}

	endpoint := fmt.Sprintf("%s/foodstuff/detail/%s/%s/0000000000000001?format=json",
		c.baseURL, url.PathEscape(id), url.PathEscape(strconv.FormatFloat(grams, 'f', -1, 64)))

	var response struct {
		Foodstuff *struct {
			Title   string `json:"title"`
			Energy  any    `json:"energy"`
			Protein any    `json:"protein"`
		} `json:"foodstuff"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}
	if response.Foodstuff == nil {
		return nil, ErrDetailUnavailable
	}

	title := strings.TrimSpace(response.Foodstuff.Title)
	if title == "" {
		return nil, ErrDetailUnavailable
	}

	detail := &FoodDetail{
		FoodID:   id,
		Title:    title,
		Grams:    grams,
		Kcal:     parseLocaleNumber(response.Foodstuff.Energy),
		Protein:  parseLocaleNumber(response.Foodstuff.Protein),
		ImageURL: c.thumbURL(id),
	}
	cacheSet(c.cache, cacheKey, detail)
	return detail, nil
}

// UnitOptions returns the distinct serving-unit labels for a food.
func (c *Client) UnitOptions(ctx context.Context, foodID string) ([]string, error) {
	id, err := validate.RequiredText("Food ID", foodID)
	if err != nil {
		return nil, err
	}

	cacheKey := "units:" + id
	if options, ok := cacheGet[[]string](c.cache, cacheKey); ok {
		return options, nil
	}

	endpoint := fmt.Sprintf("%s/foodstuff/detail/form/%s?format=json&default=true",
		c.baseURL, url.PathEscape(id))

	var response struct {
		UnitOptions []struct {
			Title string `json:"title"`
		} `json:"unitOptions"`
	}
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	options := []string{}
	seen := make(map[string]struct{})
	for _, item := range response.UnitOptions {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		key := strings.ToLower(title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		options = append(options, title)
	}

	cacheSet(c.cache, cacheKey, options)
	return options, nil
}

func (c *Client) thumbURL(foodID string) string {
	return fmt.Sprintf("%s/file/image/thumb/foodstuff/%s", c.baseURL, url.PathEscape(foodID))
}

// getJSON performs a GET and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build food request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", defaultBaseURL+"/")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("food database request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("food database request failed (%d)", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("food database returned invalid JSON: %w", err)
	}
	return nil
}

// parseLocaleNumber accepts numbers the food database sends either as
// JSON numbers or as locale-formatted strings like "1 234,5".
func parseLocaleNumber(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case string:
		normalized := strings.ReplaceAll(strings.TrimSpace(v), " ", "")
		normalized = strings.ReplaceAll(normalized, " ", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")
		parsed, err := strconv.ParseFloat(normalized, 64)
		if err != nil {
			return 0
		}
		return parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// stringify renders the mixed string/number ids the API sends.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
