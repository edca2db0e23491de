// Package publisher manages posts through the WordPress REST API: create,
// update, slug lookup, and category/tag resolution.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jpillora/backoff"
	"github.com/rs/zerolog"
)

const (
	maxRetries = 2
	retryDelay = 2 * time.Second

	apiPath          = "/wp-json/wp/v2"
	taxonomyPageSize = 100

	lookupTimeout = 10 * time.Second
)

// PublishError carries a human-readable cause. Authentication and not-found
// failures are raised immediately; everything else only after retries.
type PublishError struct {
	msg string
}

func (e *PublishError) Error() string { return e.msg }

func publishErrorf(format string, args ...any) *PublishError {
	return &PublishError{msg: fmt.Sprintf(format, args...)}
}

// Config holds the WordPress connection settings.
type Config struct {
	SiteURL     string
	Username    string
	AppPassword string
	// Optional server Basic auth layered in front of the API credential.
	BasicAuthUser string
	BasicAuthPass string
}

// PostParams describes a post to create.
type PostParams struct {
	Title           string
	Content         string
	Slug            string
	Status          string
	CategoryID      int
	TagIDs          []int
	MetaDescription string
}

// UpdateParams describes an update to an existing post.
type UpdateParams struct {
	Title           string
	Content         string
	Status          string
	MetaDescription string
}

// PostResult is the outcome of one publish attempt.
type PostResult struct {
	PostID  int
	EditURL string
	ViewURL string
	Status  string
	Action  string // "created" or "updated"
}

type postResponse struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
	Link   string `json:"link"`
}

type term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Publisher talks to one WordPress site. Category and tag catalogs are
// fetched once per instance and memoized.
type Publisher struct {
	siteURL string
	apiURL  string
	client  *http.Client
	creds   []Credential
	log     zerolog.Logger
	sleep   func(time.Duration)

	categories map[string]int
	tags       map[string]int
}

// New creates a Publisher. A nil client gets a default with a timeout.
func New(cfg Config, client *http.Client, log zerolog.Logger) (*Publisher, error) {
	if cfg.SiteURL == "" || cfg.AppPassword == "" {
		return nil, errors.New("config must include site_url and app_password")
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	var creds []Credential
	if cfg.BasicAuthUser != "" && cfg.BasicAuthPass != "" {
		creds = append(creds, transportCredential{username: cfg.BasicAuthUser, password: cfg.BasicAuthPass})
	}
	creds = append(creds, apiCredential{username: cfg.Username, password: cfg.AppPassword})

	siteURL := strings.TrimRight(cfg.SiteURL, "/")
	return &Publisher{
		siteURL: siteURL,
		apiURL:  siteURL + apiPath,
		client:  client,
		creds:   creds,
		log:     log,
		sleep:   time.Sleep,
	}, nil
}

func (p *Publisher) doRequest(ctx context.Context, method, url string, payload any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cred := range p.creds {
		cred.Apply(req)
	}
	return p.client.Do(req)
}

// TestConnection checks the identity endpoint. Never returns an error; any
// failure reads as false.
func (p *Publisher) TestConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	resp, err := p.doRequest(ctx, http.MethodGet, p.apiURL+"/users/me", nil)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// FindPostBySlug looks up an existing post by slug across all statuses.
// Transport errors read as "not found".
func (p *Publisher) FindPostBySlug(ctx context.Context, slug string) (int, bool) {
	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	resp, err := p.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/posts?slug=%s&status=any", p.apiURL, slug), nil)
	if err != nil {
		return 0, false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, false
	}

	var posts []postResponse
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return 0, false
	}
	if len(posts) == 0 {
		return 0, false
	}
	return posts[0].ID, true
}

// CreatePost creates a new post with retry.
func (p *Publisher) CreatePost(ctx context.Context, params PostParams) (*PostResult, error) {
	payload := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"slug":    params.Slug,
		"status":  params.Status,
	}
	if params.CategoryID != 0 {
		payload["categories"] = []int{params.CategoryID}
	}
	if len(params.TagIDs) > 0 {
		payload["tags"] = params.TagIDs
	}
	if params.MetaDescription != "" {
		payload["meta"] = map[string]string{"_yoast_wpseo_metadesc": params.MetaDescription}
	}

	return p.withRetry(func() (*PostResult, error, bool) {
		resp, err := p.doRequest(ctx, http.MethodPost, p.apiURL+"/posts", payload)
		if err != nil {
			return nil, err, true
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusCreated:
			return p.decodeResult(resp, "created")
		case http.StatusUnauthorized:
			return nil, publishErrorf("wordpress auth failed: invalid credentials"), false
		case http.StatusForbidden:
			return nil, publishErrorf("wordpress auth failed: insufficient permissions"), false
		default:
			return nil, httpError(resp), true
		}
	}, "wordpress post failed")
}

// UpdatePost updates an existing post with retry.
func (p *Publisher) UpdatePost(ctx context.Context, postID int, params UpdateParams) (*PostResult, error) {
	payload := map[string]any{
		"title":   params.Title,
		"content": params.Content,
		"status":  params.Status,
	}
	if params.MetaDescription != "" {
		payload["meta"] = map[string]string{"_yoast_wpseo_metadesc": params.MetaDescription}
	}

	return p.withRetry(func() (*PostResult, error, bool) {
		resp, err := p.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/posts/%d", p.apiURL, postID), payload)
		if err != nil {
			return nil, err, true
		}
		defer resp.Body.Close()

		switch resp.StatusCode {
		case http.StatusOK:
			return p.decodeResult(resp, "updated")
		case http.StatusUnauthorized:
			return nil, publishErrorf("wordpress auth failed: invalid credentials"), false
		case http.StatusNotFound:
			return nil, publishErrorf("wordpress post not found: %d", postID), false
		default:
			return nil, httpError(resp), true
		}
	}, "wordpress update failed")
}

// withRetry runs attempt up to maxRetries times with a fixed inter-attempt
// delay. A non-retryable error is raised immediately.
func (p *Publisher) withRetry(attempt func() (*PostResult, error, bool), failMsg string) (*PostResult, error) {
	boff := &backoff.Backoff{Min: retryDelay, Max: retryDelay}

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		result, err, retryable := attempt()
		if err == nil {
			return result, nil
		}
		if !retryable {
			return nil, err
		}
		lastErr = err
		p.log.Warn().Err(err).Int("attempt", i+1).Msg("wordpress request failed")
		if i < maxRetries-1 {
			p.sleep(boff.Duration())
		}
	}
	return nil, publishErrorf("%s: %v", failMsg, lastErr)
}

func (p *Publisher) decodeResult(resp *http.Response, action string) (*PostResult, error, bool) {
	var post postResponse
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return nil, err, true
	}
	return &PostResult{
		PostID:  post.ID,
		EditURL: fmt.Sprintf("%s/wp-admin/post.php?post=%d&action=edit", p.siteURL, post.ID),
		ViewURL: post.Link,
		Status:  post.Status,
		Action:  action,
	}, nil, false
}

func httpError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
}

// GetCategoryID resolves a category name through the memoized catalog. An
// unknown name is not an error.
func (p *Publisher) GetCategoryID(ctx context.Context, name string) (int, bool) {
	if p.categories == nil {
		p.categories = p.fetchTerms(ctx, p.apiURL+"/categories")
	}
	id, ok := p.categories[name]
	return id, ok
}

// GetTagIDs resolves tag names; names absent from the catalog are silently
// dropped.
func (p *Publisher) GetTagIDs(ctx context.Context, names []string) []int {
	if p.tags == nil {
		p.tags = p.fetchTerms(ctx, p.apiURL+"/tags")
	}
	var ids []int
	for _, name := range names {
		if id, ok := p.tags[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// fetchTerms loads one generously sized page of a taxonomy. Failures cache
// an empty catalog for the lifetime of this instance.
func (p *Publisher) fetchTerms(ctx context.Context, url string) map[string]int {
	catalog := map[string]int{}

	ctx, cancel := context.WithTimeout(ctx, lookupTimeout)
	defer cancel()

	resp, err := p.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s?per_page=%d", url, taxonomyPageSize), nil)
	if err != nil {
		return catalog
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return catalog
	}

	var terms []term
	if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
		return catalog
	}
	for _, t := range terms {
		catalog[t.Name] = t.ID
	}
	return catalog
}
