package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"

	"github.com/valyala/fasthttp"
)

// Client talks to the Brawl-Track API. Every call is a single request with no
// retry.
type Client struct {
	baseURL string
	client  *fasthttp.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		client: &fasthttp.Client{
			// Tags travel percent-encoded ("%232PP") and must reach the API as sent.
			DisablePathNormalizing: true,
			MaxConnsPerHost:        100,
			ReadTimeout:            10 * time.Second,
			WriteTimeout:           10 * time.Second,
			MaxIdleConnDuration:    1 * time.Minute,
		},
	}
}

func (c *Client) GetBrawlers(ctx context.Context) (*BrawlersResponse, error) {
	return doRequest[BrawlersResponse](ctx, c, fasthttp.MethodGet, "/api/brawlers", "", nil)
}

func (c *Client) GetRotation(ctx context.Context) ([]EventSlotData, error) {
	resp, err := doRequest[[]EventSlotData](ctx, c, fasthttp.MethodGet, "/api/events/rotation", "", nil)
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func (c *Client) GetPlayer(ctx context.Context, tag, token string) (*PlayerData, error) {
	return doRequest[PlayerData](ctx, c, fasthttp.MethodGet, "/api/players/"+url.PathEscape(tag), token, nil)
}

func (c *Client) GetBattleLog(ctx context.Context, tag, token string) (*BattleLogResponse, error) {
	return doRequest[BattleLogResponse](ctx, c, fasthttp.MethodGet, "/api/players/"+url.PathEscape(tag)+"/battlelog", token, nil)
}

func (c *Client) GetClub(ctx context.Context, tag, token string) (*ClubData, error) {
	return doRequest[ClubData](ctx, c, fasthttp.MethodGet, "/api/clubs/"+url.PathEscape(tag), token, nil)
}

// GetHistory returns the archived trophy snapshots of a player. brawlerID 0
// selects the account-wide series.
func (c *Client) GetHistory(ctx context.Context, tag string, brawlerID int, token string) ([]HistoryPointData, error) {
	path := "/api/players/" + url.PathEscape(tag) + "/history"
	if brawlerID != 0 {
		path += "?brawler=" + strconv.Itoa(brawlerID)
	}
	resp, err := doRequest[[]HistoryPointData](ctx, c, fasthttp.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return *resp, nil
}

func (c *Client) GetMe(ctx context.Context, token string) (*AccountData, error) {
	return doRequest[AccountData](ctx, c, fasthttp.MethodGet, "/api/me", token, nil)
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	return doRequest[AuthResponse](ctx, c, fasthttp.MethodPost, "/api/auth/login", "", Credentials{Username: username, Password: password})
}

func (c *Client) Register(ctx context.Context, username, password string) (*AuthResponse, error) {
	return doRequest[AuthResponse](ctx, c, fasthttp.MethodPost, "/api/auth/register", "", Credentials{Username: username, Password: password})
}

func doRequest[T any](ctx context.Context, client *Client, method, path, token string, body any) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(client.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		req.Header.SetContentType("application/json")
		req.SetBody(payload)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("request %s %s: %w", method, path, err)
		}
	} else {
		if err := client.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("request %s %s: %w", method, path, err)
		}
	}

	if status := resp.StatusCode(); status < 200 || status > 299 {
		var errBody ErrorResponse
		_ = json.Unmarshal(resp.Body(), &errBody)
		return nil, &APIError{Status: status, Message: errBody.Message}
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return &result, nil
}
