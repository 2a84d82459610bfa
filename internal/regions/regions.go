// Package regions holds the static routing table from a platform region code
// to the Riot API hosts serving it. Separated from the services to avoid
// import cycles.
package regions

import (
	"errors"
	"strings"
)

// Route carries the two hosts every aggregation is parameterized by: the
// platform host (summoner, league, mastery, spectator endpoints) and the
// continental routing host (account and match endpoints).
type Route struct {
	Platform string
	Routing  string
}

var ErrUnsupportedRegion = errors.New("unsupported region")

const (
	americas = "americas.api.riotgames.com"
	asia     = "asia.api.riotgames.com"
	europe   = "europe.api.riotgames.com"
	sea      = "sea.api.riotgames.com"
)

var routes = map[string]Route{
	"br1":  {"br1.api.riotgames.com", americas},
	"la1":  {"la1.api.riotgames.com", americas},
	"la2":  {"la2.api.riotgames.com", americas},
	"na1":  {"na1.api.riotgames.com", americas},
	"oc1":  {"oc1.api.riotgames.com", americas},
	"jp1":  {"jp1.api.riotgames.com", asia},
	"kr":   {"kr.api.riotgames.com", asia},
	"eun1": {"eun1.api.riotgames.com", europe},
	"euw1": {"euw1.api.riotgames.com", europe},
	"ru":   {"ru.api.riotgames.com", europe},
	"tr1":  {"tr1.api.riotgames.com", europe},
	"ph2":  {"ph2.api.riotgames.com", sea},
	"sg2":  {"sg2.api.riotgames.com", sea},
	"th2":  {"th2.api.riotgames.com", sea},
	"tw2":  {"tw2.api.riotgames.com", sea},
	"vn2":  {"vn2.api.riotgames.com", sea},
}

// Resolve maps a region code to its hosts. The code is case-insensitive.
// Every supported code maps to exactly one platform and one routing host;
// anything else is a caller-input error.
func Resolve(region string) (Route, error) {
	route, ok := routes[strings.ToLower(strings.TrimSpace(region))]
	if !ok {
		return Route{}, ErrUnsupportedRegion
	}
	return route, nil
}

// Supported returns the region codes in the routing table.
func Supported() []string {
	codes := make([]string, 0, len(routes))
	for code := range routes {
		codes = append(codes, code)
	}
	return codes
}
