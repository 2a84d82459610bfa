package api

// Account is the account-v1 record. PUUID is stable across renames and is the
// join key for every other endpoint.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int64  `json:"summonerLevel"`
}

type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

type MasteryEntry struct {
	ChampionID     int64 `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int   `json:"championPoints"`
	LastPlayTime   int64 `json:"lastPlayTime"`
}

// ActiveGame is the spectator-v5 active game record.
type ActiveGame struct {
	GameID            int64                   `json:"gameId"`
	MapID             int                     `json:"mapId"`
	GameMode          string                  `json:"gameMode"`
	GameType          string                  `json:"gameType"`
	GameQueueConfigID int                     `json:"gameQueueConfigId"`
	GameStartTime     int64                   `json:"gameStartTime"`
	GameLength        int64                   `json:"gameLength"`
	PlatformID        string                  `json:"platformId"`
	Participants      []ActiveGameParticipant `json:"participants"`
	BannedChampions   []BannedChampion        `json:"bannedChampions"`
}

type ActiveGameParticipant struct {
	PUUID         string          `json:"puuid"`
	TeamID        int             `json:"teamId"`
	Spell1ID      int             `json:"spell1Id"`
	Spell2ID      int             `json:"spell2Id"`
	ChampionID    int             `json:"championId"`
	ProfileIconID int64           `json:"profileIconId"`
	RiotID        string          `json:"riotId"`
	Bot           bool            `json:"bot"`
	Perks         ActiveGamePerks `json:"perks"`
}

type ActiveGamePerks struct {
	PerkIDs      []int64 `json:"perkIds"`
	PerkStyle    int64   `json:"perkStyle"`
	PerkSubStyle int64   `json:"perkSubStyle"`
}

type BannedChampion struct {
	PickTurn   int `json:"pickTurn"`
	ChampionID int `json:"championId"`
	TeamID     int `json:"teamId"`
}

// MatchDetail is the match-v5 record, trimmed to the fields the aggregator
// consumes.
type MatchDetail struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation       int64              `json:"gameCreation"`
	GameDuration       int64              `json:"gameDuration"`
	GameStartTimestamp int64              `json:"gameStartTimestamp"`
	GameEndTimestamp   int64              `json:"gameEndTimestamp"`
	GameMode           string             `json:"gameMode"`
	GameType           string             `json:"gameType"`
	MapID              int                `json:"mapId"`
	QueueID            int                `json:"queueId"`
	Participants       []MatchParticipant `json:"participants"`
	Teams              []MatchTeam        `json:"teams"`
}

type MatchParticipant struct {
	PUUID          string `json:"puuid"`
	SummonerName   string `json:"summonerName,omitempty"`
	RiotIDGameName string `json:"riotIdGameName,omitempty"`
	RiotIDTagline  string `json:"riotIdTagline,omitempty"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"`
	Win            bool   `json:"win"`

	Kills                int `json:"kills"`
	Deaths               int `json:"deaths"`
	Assists              int `json:"assists"`
	ChampLevel           int `json:"champLevel"`
	TotalMinionsKilled   int `json:"totalMinionsKilled"`
	NeutralMinionsKilled int `json:"neutralMinionsKilled"`
	VisionScore          int `json:"visionScore"`
	GoldEarned           int `json:"goldEarned"`

	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	TotalDamageTaken            int `json:"totalDamageTaken"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"` // trinket

	Summoner1ID int `json:"summoner1Id"`
	Summoner2ID int `json:"summoner2Id"`
}

type MatchTeam struct {
	TeamID     int             `json:"teamId"`
	Win        bool            `json:"win"`
	Objectives MatchObjectives `json:"objectives"`
}

// MatchObjectives: any objective type the upstream omits decodes to the zero
// value, which the aggregator surfaces as a count of 0.
type MatchObjectives struct {
	Baron      Objective `json:"baron"`
	Dragon     Objective `json:"dragon"`
	Horde      Objective `json:"horde"` // void grubs
	RiftHerald Objective `json:"riftHerald"`
	Tower      Objective `json:"tower"`
}

type Objective struct {
	First bool `json:"first"`
	Kills int  `json:"kills"`
}
