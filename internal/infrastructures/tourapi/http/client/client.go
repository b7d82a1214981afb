package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	derr "github.com/qamar62/st-booking/internal/domain/errors"
	"github.com/qamar62/st-booking/internal/domain/models"
	"github.com/qamar62/st-booking/internal/domain/ports"
	"github.com/qamar62/st-booking/internal/infrastructures/tourapi/dto"
	"github.com/qamar62/st-booking/internal/infrastructures/tourapi/mappers"
	"go.uber.org/zap"
)

// cacheSkew is subtracted from the token lifetime before caching so a cached
// token is never returned moments before the upstream rejects it.
const cacheSkew = 30 * time.Second

type Client struct {
	tokenURL   string
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	cache      ports.TokenCache
	log        *zap.Logger
}

func NewClient(tokenURL, baseURL, username, password string, timeout time.Duration, cache ports.TokenCache, log *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		tokenURL:   strings.TrimSpace(tokenURL),
		baseURL:    strings.TrimSpace(baseURL),
		username:   username,
		password:   password,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log,
	}
}

// GetToken exchanges the fixed credential pair for a bearer token. A single
// attempt per call; any non-200 response is terminal for that call.
func (c *Client) GetToken(ctx context.Context) (models.Token, error) {
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, c.username)
		if err == nil && cached.Access != "" {
			return cached, nil
		}
		if err != nil && !errors.Is(err, derr.ErrTokenNotCached) {
			c.log.Warn("token cache read failed", zap.Error(err))
		}
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return models.Token{}, fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return models.Token{}, err
		}
		return models.Token{}, fmt.Errorf("%w: do request: %v", derr.ErrTokenUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Token{}, fmt.Errorf("%w: unexpected status: %s", derr.ErrTokenUnavailable, resp.Status)
	}

	var payload dto.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.Token{}, fmt.Errorf("%w: decode response: %v", derr.ErrTokenUnavailable, err)
	}
	if strings.TrimSpace(payload.Access) == "" {
		return models.Token{}, fmt.Errorf("%w: empty access token", derr.ErrTokenUnavailable)
	}

	token := models.Token{
		Access:    payload.Access,
		ExpiresAt: tokenExpiry(payload.Access),
	}

	if c.cache != nil && !token.ExpiresAt.IsZero() {
		if ttl := time.Until(token.ExpiresAt) - cacheSkew; ttl > 0 {
			if err := c.cache.Set(ctx, c.username, token, ttl); err != nil {
				c.log.Warn("token cache write failed", zap.Error(err))
			}
		}
	}

	return token, nil
}

// ListTours fetches the full tour list. Failures degrade to an empty list
// with the error reported here at its origin; when the token exchange fails
// no tours request is attempted at all.
func (c *Client) ListTours(ctx context.Context) []models.Tour {
	token, err := c.GetToken(ctx)
	if err != nil {
		c.log.Error("failed to get access token", zap.Error(err))
		return []models.Tour{}
	}

	items, err := c.fetchTours(ctx, token.Access)
	if err != nil {
		c.log.Error("failed to fetch tours", zap.Error(err))
		return []models.Tour{}
	}

	return mappers.MapTours(items)
}

func (c *Client) fetchTours(ctx context.Context, access string) ([]dto.TourItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create tours request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+access)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: do request: %v", derr.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status: %s", derr.ErrSourceUnavailable, resp.Status)
	}

	var items []dto.TourItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", derr.ErrSourceUnavailable, err)
	}

	return items, nil
}

// tokenExpiry reads the exp claim without verifying the signature; the
// upstream signed the token, we only need its lifetime for caching.
func tokenExpiry(raw string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
