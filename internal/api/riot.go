package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"league-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

// StatusError is returned for any non-2xx upstream response. Callers use the
// status code to classify the failure and to forward the upstream's verdict
// (e.g. not-found) to the browser client unchanged.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("riot api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("riot api: status %d: %s", e.StatusCode, e.Message)
}

// riotError is the error envelope the Riot API wraps failures in.
type riotError struct {
	Status struct {
		Message    string `json:"message"`
		StatusCode int    `json:"status_code"`
	} `json:"status"`
}

type RiotClient struct {
	apiKey string
	client *fasthttp.Client
}

func NewRiotClient(cfg *config.Config) *RiotClient {
	return &RiotClient{
		apiKey: cfg.RiotAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// AccountByRiotID resolves a gameName#tagLine pair on the continental routing
// host into the stable account record.
func (c *RiotClient) AccountByRiotID(ctx context.Context, routingHost, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf("https://%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		routingHost, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, u)
}

func (c *RiotClient) SummonerByPUUID(ctx context.Context, platformHost, puuid string) (*Summoner, error) {
	u := fmt.Sprintf("https://%s/lol/summoner/v4/summoners/by-puuid/%s", platformHost, url.PathEscape(puuid))
	return doRequest[Summoner](ctx, c, u)
}

func (c *RiotClient) LeagueEntries(ctx context.Context, platformHost, puuid string) ([]LeagueEntry, error) {
	u := fmt.Sprintf("https://%s/lol/league/v4/entries/by-puuid/%s", platformHost, url.PathEscape(puuid))
	entries, err := doRequest[[]LeagueEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *entries, nil
}

func (c *RiotClient) ChampionMasteries(ctx context.Context, platformHost, puuid string) ([]MasteryEntry, error) {
	u := fmt.Sprintf("https://%s/lol/champion-mastery/v4/champion-masteries/by-puuid/%s", platformHost, url.PathEscape(puuid))
	masteries, err := doRequest[[]MasteryEntry](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *masteries, nil
}

func (c *RiotClient) ActiveGame(ctx context.Context, platformHost, puuid string) (*ActiveGame, error) {
	u := fmt.Sprintf("https://%s/lol/spectator/v5/active-games/by-summoner/%s", platformHost, url.PathEscape(puuid))
	return doRequest[ActiveGame](ctx, c, u)
}

// MatchIDs lists up to count recent match ids, most recent first. queueID 0
// means no queue filter.
func (c *RiotClient) MatchIDs(ctx context.Context, routingHost, puuid string, count, queueID int) ([]string, error) {
	u := fmt.Sprintf("https://%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d", routingHost, url.PathEscape(puuid), count)
	if queueID != 0 {
		u += fmt.Sprintf("&queue=%d", queueID)
	}
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

func (c *RiotClient) Match(ctx context.Context, routingHost, matchID string) (*MatchDetail, error) {
	u := fmt.Sprintf("https://%s/lol/match/v5/matches/%s", routingHost, url.PathEscape(matchID))
	return doRequest[MatchDetail](ctx, c, u)
}

func doRequest[T any](ctx context.Context, client *RiotClient, url string) (*T, error) {
	body, err := doGet(ctx, client.client, url, client.apiKey)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// doGet issues the request and returns the raw body, mapping non-2xx to a
// StatusError carrying the upstream message when one is present.
func doGet(ctx context.Context, client *fasthttp.Client, url, apiKey string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	if apiKey != "" {
		req.Header.Set("X-Riot-Token", apiKey)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode()}
		var envelope riotError
		if json.Unmarshal(resp.Body(), &envelope) == nil {
			statusErr.Message = envelope.Status.Message
		}
		return nil, statusErr
	}

	// fasthttp reuses response buffers after release
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
