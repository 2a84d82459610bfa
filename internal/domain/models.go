package domain

import (
	"time"
)

// Profile is the consolidated answer for one Riot ID lookup: the account and
// summoner records merged with whatever ranked and mastery data was
// available. Built fresh per request, never persisted.
type Profile struct {
	PUUID         string         `json:"uniqueId"`
	DisplayName   string         `json:"displayName"` // gameName#tagLine
	SummonerLevel int64          `json:"summonerLevel"`
	ProfileIconID int            `json:"profileIconId"`
	Ranked        []RankedEntry  `json:"ranked"`
	Mastery       []MasteryEntry `json:"mastery"`
}

// RankedEntry queue types.
const (
	QueueSoloDuo = "SOLO_DUO"
	QueueFlex    = "FLEX"
)

type RankedEntry struct {
	QueueType    string  `json:"queueType"`
	Tier         string  `json:"tier"`
	Division     string  `json:"division"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
}

type MasteryEntry struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
}

// LiveGameStatus is a tagged variant: when InGame is false every other field
// is absent. Produced fresh on every request.
type LiveGameStatus struct {
	InGame          bool              `json:"inGame"`
	GameMode        string            `json:"gameMode,omitempty"`
	GameType        string            `json:"gameType,omitempty"`
	QueueID         int               `json:"queueId,omitempty"`
	ElapsedSeconds  int64             `json:"elapsedSeconds,omitempty"`
	StartTimestamp  int64             `json:"startTimestamp,omitempty"`
	MapID           int               `json:"mapId,omitempty"`
	Participants    []LiveParticipant `json:"participants,omitempty"`
	BannedChampions []LiveBan         `json:"bannedChampions,omitempty"`
}

type LiveParticipant struct {
	PUUID       string    `json:"uniqueId"`
	ChampionID  int       `json:"championId"`
	TeamID      int       `json:"teamId"`
	DisplayName string    `json:"displayName"`
	SpellIDs    [2]int    `json:"spellIds"`
	Perks       LivePerks `json:"perks"`
}

type LivePerks struct {
	PerkIDs      []int64 `json:"perkIds"`
	PerkStyle    int64   `json:"perkStyle"`
	PerkSubStyle int64   `json:"perkSubStyle"`
}

type LiveBan struct {
	ChampionID int `json:"championId"`
	TeamID     int `json:"teamId"`
	PickTurn   int `json:"pickTurn"`
}

// MatchHistory is the response for one history lookup. Summary aggregates
// the requesting player's records across RecentGames.
type MatchHistory struct {
	Mode        string         `json:"mode"`
	Summary     HistorySummary `json:"summary"`
	RecentGames []MatchSummary `json:"recentGames"`
}

type HistorySummary struct {
	Games   int     `json:"games"`
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	WinRate float64 `json:"winRate"`
}

// MatchSummary is one completed, non-remake game. DurationSeconds is always
// at least the remake threshold.
type MatchSummary struct {
	MatchID         string                  `json:"matchId"`
	DurationSeconds int64                   `json:"durationSeconds"`
	GameMode        string                  `json:"gameMode"`
	QueueID         int                     `json:"queueId"`
	Label           string                  `json:"label"`
	StartTimestamp  int64                   `json:"startTimestamp"`
	EndTimestamp    int64                   `json:"endTimestamp"`
	Teams           map[int]ObjectiveCounts `json:"teams"`
	Players         []PlayerMatchRecord     `json:"players"`
}

type ObjectiveCounts struct {
	Dragon     int `json:"dragon"`
	Baron      int `json:"baron"`
	RiftHerald int `json:"riftHerald"`
	VoidGrubs  int `json:"voidGrubs"`
	Tower      int `json:"tower"`
}

// PlayerMatchRecord is one normalized participant: Riot ID display name,
// the six item slots split from the trinket, and combat/vision stats passed
// through unchanged.
type PlayerMatchRecord struct {
	PUUID             string `json:"uniqueId"`
	DisplayName       string `json:"displayName"`
	ChampionID        int    `json:"championId"`
	ChampionName      string `json:"championName"`
	TeamID            int    `json:"teamId"`
	TeamPosition      string `json:"teamPosition"`
	Win               bool   `json:"win"`
	Kills             int    `json:"kills"`
	Deaths            int    `json:"deaths"`
	Assists           int    `json:"assists"`
	ChampLevel        int    `json:"champLevel"`
	CreepScore        int    `json:"creepScore"`
	VisionScore       int    `json:"visionScore"`
	GoldEarned        int    `json:"goldEarned"`
	DamageToChampions int    `json:"damageToChampions"`
	DamageTaken       int    `json:"damageTaken"`
	Items             [6]int `json:"items"`
	Trinket           int    `json:"trinket"`
	SpellIDs          [2]int `json:"spellIds"`
}

// RecentSearch is one row of the search log backing the search-box
// suggestions. One row per (region, puuid).
type RecentSearch struct {
	ID            string    `json:"id"`
	Region        string    `json:"region"`
	GameName      string    `json:"gameName"`
	TagLine       string    `json:"tagLine"`
	PUUID         string    `json:"uniqueId"`
	ProfileIconID int       `json:"profileIconId"`
	SummonerLevel int64     `json:"summonerLevel"`
	SearchedAt    time.Time `json:"searchedAt"`
}

// WinRate returns wins/(wins+losses), and 0 for an empty record so the ratio
// never reaches the caller as NaN.
func WinRate(wins, losses int) float64 {
	total := wins + losses
	if total == 0 {
		return 0
	}
	return float64(wins) / float64(total)
}
