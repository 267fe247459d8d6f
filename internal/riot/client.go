package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	neturl "net/url"
	"sync"
	"time"

	"valorant-mmr/internal/config"
	"valorant-mmr/internal/constants"

	"github.com/valyala/fasthttp"
)

// ErrPlayerNotFound is returned when the alias lookup yields no account.
var ErrPlayerNotFound = errors.New("player not found")

// clientPlatform is the static base64 platform blob the pd endpoints
// expect on every request.
const clientPlatform = "ew0KCSJwbGF0Zm9ybVR5cGUiOiAiUEMiLA0KCSJwbGF0Zm9ybU9TIjogIldpbmRvd3MiLA0KCSJwbGF0Zm9ybU9TVmVyc2lvbiI6ICIxMC4wLjE5MDQyLjEuMjU2LjY0Yml0IiwNCgkicGxhdGZvcm1DaGlwc2V0IjogIlVua25vd24iDQp9"

// fallbackClientVersion is used when valorant-api.com is unreachable.
const fallbackClientVersion = "release-10.00-shipping-9-2555555"

var shardByRegion = map[string]string{
	"latam": "na",
	"br":    "na",
	"na":    "na",
	"pbe":   "pbe",
	"eu":    "eu",
	"ap":    "ap",
	"kr":    "kr",
}

// Shard maps a player region to the pd shard hosting its data. Unknown
// regions fall back to na.
func Shard(region string) string {
	if shard, ok := shardByRegion[region]; ok {
		return shard
	}
	return "na"
}

// Client talks to the Riot private and public endpoints that back the
// rank history service: identity lookup, geo, the MMR record and the
// paginated competitive update log. The access/id token pair comes from
// configuration; session management is the caller's problem.
type Client struct {
	accessToken string
	idToken     string
	client      *fasthttp.Client

	mu          sync.Mutex
	entitlement string
	version     string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		accessToken: cfg.RiotAccessToken,
		idToken:     cfg.RiotIDToken,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// ClientVersion returns the current game client version, cached after
// the first successful lookup. Failures degrade to a pinned fallback so
// a flaky third-party endpoint never blocks a report.
func (c *Client) ClientVersion(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.version != "" {
		return c.version
	}

	resp, err := do[versionResponse](ctx, c, fasthttp.MethodGet, "https://valorant-api.com/v1/version", nil, nil)
	if err != nil || resp.Data.RiotClientVersion == "" {
		return fallbackClientVersion
	}
	c.version = resp.Data.RiotClientVersion
	return c.version
}

// EntitlementToken exchanges the access token for an entitlements JWT,
// cached for the client's lifetime.
func (c *Client) EntitlementToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entitlement != "" {
		return c.entitlement, nil
	}

	headers := map[string]string{
		"Authorization": "Bearer " + c.accessToken,
		"Content-Type":  "application/json",
	}
	resp, err := do[entitlementResponse](ctx, c, fasthttp.MethodPost, "https://entitlements.auth.riotgames.com/api/token/v1", map[string]any{}, headers)
	if err != nil {
		return "", fmt.Errorf("entitlement exchange: %w", err)
	}
	if resp.EntitlementsToken == "" {
		return "", errors.New("entitlement exchange: empty token")
	}
	c.entitlement = resp.EntitlementsToken
	return c.entitlement, nil
}

// PlayerRegion resolves the live region affinity for the configured
// account via the geo endpoint.
func (c *Client) PlayerRegion(ctx context.Context) (string, error) {
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}
	body := map[string]string{"id_token": c.idToken}
	resp, err := do[geoResponse](ctx, c, fasthttp.MethodPut, "https://riot-geo.pas.si.riotgames.com/pas/v1/product/valorant", body, headers)
	if err != nil {
		return "", fmt.Errorf("geo lookup: %w", err)
	}
	if resp.Affinities.Live == "" {
		return "", errors.New("geo lookup: no live affinity")
	}
	return resp.Affinities.Live, nil
}

// ResolvePUUID looks up a player's puuid and canonical name/tag by Riot
// ID through the alias endpoint.
func (c *Client) ResolvePUUID(ctx context.Context, name, tag string) (*Alias, error) {
	url := fmt.Sprintf("https://api.account.riotgames.com/aliases/v1/aliases?gameName=%s&tagLine=%s",
		neturl.QueryEscape(name), neturl.QueryEscape(tag))
	headers := map[string]string{
		"Authorization": "Bearer " + c.accessToken,
		"Content-Type":  "application/json",
	}
	aliases, err := do[aliasResponse](ctx, c, fasthttp.MethodGet, url, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("alias lookup: %w", err)
	}
	if len(*aliases) == 0 {
		return nil, ErrPlayerNotFound
	}
	return &(*aliases)[0], nil
}

// PlayerMMR fetches the full season-keyed rating record for a player.
func (c *Client) PlayerMMR(ctx context.Context, shard, puuid string) (*PlayerMMRResponse, error) {
	headers, err := c.pdHeaders(ctx)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("https://pd.%s.a.pvp.net/mmr/v1/players/%s", shard, puuid)
	resp, err := do[PlayerMMRResponse](ctx, c, fasthttp.MethodGet, url, nil, headers)
	if err != nil {
		return nil, fmt.Errorf("mmr fetch: %w", err)
	}
	return resp, nil
}

// CompetitiveUpdates pages through the match-level rating change log,
// most recent first, until limit entries or a short page. The upstream
// truncates the log, so this is best effort by design.
func (c *Client) CompetitiveUpdates(ctx context.Context, shard, puuid string, limit int) ([]CompetitiveUpdate, error) {
	headers, err := c.pdHeaders(ctx)
	if err != nil {
		return nil, err
	}

	var all []CompetitiveUpdate
	page := constants.UpdatePageSize
	for start := 0; start < limit; start += page {
		url := fmt.Sprintf("https://pd.%s.a.pvp.net/mmr/v1/players/%s/competitiveupdates?startIndex=%d&endIndex=%d",
			shard, puuid, start, start+page)
		resp, err := do[competitiveUpdatesResponse](ctx, c, fasthttp.MethodGet, url, nil, headers)
		if err != nil {
			if len(all) > 0 {
				// Partial history is still usable; the aggregator copes.
				return all, nil
			}
			return nil, fmt.Errorf("competitive updates fetch: %w", err)
		}
		all = append(all, resp.Matches...)
		if len(resp.Matches) < page {
			break
		}
	}
	return all, nil
}

func (c *Client) pdHeaders(ctx context.Context) (map[string]string, error) {
	entitlement, err := c.EntitlementToken(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"X-Riot-ClientPlatform":    clientPlatform,
		"X-Riot-ClientVersion":     c.ClientVersion(ctx),
		"X-Riot-Entitlements-JWT":  entitlement,
		"Authorization":            "Bearer " + c.accessToken,
	}, nil
}

func do[T any](ctx context.Context, client *Client, method, url string, body any, headers map[string]string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(method)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req.SetBody(payload)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("API error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
