package api

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
)

const dataDragonBaseURL = "https://ddragon.leagueoflegends.com"

// DDragonClient fetches version metadata from the public Data Dragon CDN.
// Consumed by the presentation layer only; no credential required.
type DDragonClient struct {
	client *fasthttp.Client
}

func NewDDragonClient() *DDragonClient {
	return &DDragonClient{
		client: &fasthttp.Client{
			MaxConnsPerHost:     10,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// Versions returns the published game-data versions, newest first.
func (c *DDragonClient) Versions(ctx context.Context) ([]string, error) {
	body, err := doGet(ctx, c.client, fmt.Sprintf("%s/api/versions.json", dataDragonBaseURL), "")
	if err != nil {
		return nil, err
	}

	var versions []string
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, err
	}
	return versions, nil
}
