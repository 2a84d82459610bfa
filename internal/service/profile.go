package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"league-tracker/internal/api"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/regions"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RiotAPI is the upstream surface the aggregators consume.
type RiotAPI interface {
	AccountByRiotID(ctx context.Context, routingHost, gameName, tagLine string) (*api.Account, error)
	SummonerByPUUID(ctx context.Context, platformHost, puuid string) (*api.Summoner, error)
	LeagueEntries(ctx context.Context, platformHost, puuid string) ([]api.LeagueEntry, error)
	ChampionMasteries(ctx context.Context, platformHost, puuid string) ([]api.MasteryEntry, error)
	ActiveGame(ctx context.Context, platformHost, puuid string) (*api.ActiveGame, error)
	MatchIDs(ctx context.Context, routingHost, puuid string, count, queueID int) ([]string, error)
	Match(ctx context.Context, routingHost, matchID string) (*api.MatchDetail, error)
}

// SearchLog records successful profile lookups for the suggestion box.
type SearchLog interface {
	Record(ctx context.Context, s domain.RecentSearch) error
}

type ProfileService struct {
	riot     RiotAPI
	searches SearchLog
	logger   zerolog.Logger
}

func NewProfileService(riot RiotAPI, searches SearchLog, logger zerolog.Logger) *ProfileService {
	return &ProfileService{riot: riot, searches: searches, logger: logger}
}

// GetProfile runs the dependent-fetch chain for one Riot ID. Account and
// summoner are required; ranked and mastery degrade to empty lists so a
// player without ranked data still resolves.
func (s *ProfileService) GetProfile(ctx context.Context, region, gameName, tagLine string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	route, err := regions.Resolve(region)
	if err != nil {
		return nil, err
	}

	gameName, err = url.QueryUnescape(gameName)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape name: %w", err)
	}
	tagLine, err = url.QueryUnescape(tagLine)
	if err != nil {
		return nil, fmt.Errorf("failed to unescape tag: %w", err)
	}

	s.logger.Info().Str("region", region).Str("name", gameName).Str("tag", tagLine).Msg("getting profile")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	account, err := s.riot.AccountByRiotID(apiCtx, route.Routing, gameName, tagLine)
	if err != nil {
		s.logger.Error().Err(err).Str("name", gameName).Str("tag", tagLine).Msg("failed to fetch account")
		return nil, fmt.Errorf("failed to fetch account: %w", err)
	}
	if account.PUUID == "" {
		s.logger.Error().Str("name", gameName).Str("tag", tagLine).Msg("account response missing puuid")
		return nil, fmt.Errorf("account not found for %s#%s", gameName, tagLine)
	}

	summoner, err := s.riot.SummonerByPUUID(apiCtx, route.Platform, account.PUUID)
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", account.PUUID).Msg("failed to fetch summoner")
		return nil, fmt.Errorf("failed to fetch summoner: %w", err)
	}

	// Ranked and mastery are independent of each other and both optional:
	// a failure on either is absorbed, never surfaced.
	var ranked []domain.RankedEntry
	var mastery []domain.MasteryEntry

	g := new(errgroup.Group)
	g.Go(func() error {
		entries, err := s.riot.LeagueEntries(apiCtx, route.Platform, account.PUUID)
		if err != nil {
			s.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("ranked entries unavailable, continuing without")
			return nil
		}
		ranked = toRankedEntries(entries)
		return nil
	})
	g.Go(func() error {
		entries, err := s.riot.ChampionMasteries(apiCtx, route.Platform, account.PUUID)
		if err != nil {
			s.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("mastery entries unavailable, continuing without")
			return nil
		}
		if len(entries) > constants.MasteryLimit {
			entries = entries[:constants.MasteryLimit]
		}
		mastery = toMasteryEntries(entries)
		return nil
	})
	_ = g.Wait()

	profile := &domain.Profile{
		PUUID:         account.PUUID,
		DisplayName:   account.GameName + "#" + account.TagLine,
		SummonerLevel: summoner.SummonerLevel,
		ProfileIconID: summoner.ProfileIconID,
		Ranked:        ranked,
		Mastery:       mastery,
	}

	s.recordSearch(ctx, region, account, summoner)

	s.logger.Info().Str("puuid", profile.PUUID).Int("ranked", len(ranked)).Int("mastery", len(mastery)).Msg("profile assembled")
	return profile, nil
}

// GetLiveStatus reports whether the player is currently in a game. Upstream
// failures, 404 included, all map to not-in-game: the caller cannot act on
// the difference.
func (s *ProfileService) GetLiveStatus(ctx context.Context, region, puuid string) (*domain.LiveGameStatus, error) {
	route, err := regions.Resolve(region)
	if err != nil {
		return nil, err
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	game, err := s.riot.ActiveGame(apiCtx, route.Platform, puuid)
	if err != nil {
		s.logger.Debug().Err(err).Str("puuid", puuid).Msg("no active game")
		return &domain.LiveGameStatus{InGame: false}, nil
	}

	status := &domain.LiveGameStatus{
		InGame:         true,
		GameMode:       game.GameMode,
		GameType:       game.GameType,
		QueueID:        game.GameQueueConfigID,
		ElapsedSeconds: game.GameLength,
		StartTimestamp: game.GameStartTime,
		MapID:          game.MapID,
	}

	for _, p := range game.Participants {
		status.Participants = append(status.Participants, domain.LiveParticipant{
			PUUID:       p.PUUID,
			ChampionID:  p.ChampionID,
			TeamID:      p.TeamID,
			DisplayName: p.RiotID,
			SpellIDs:    [2]int{p.Spell1ID, p.Spell2ID},
			Perks: domain.LivePerks{
				PerkIDs:      p.Perks.PerkIDs,
				PerkStyle:    p.Perks.PerkStyle,
				PerkSubStyle: p.Perks.PerkSubStyle,
			},
		})
	}
	for _, b := range game.BannedChampions {
		status.BannedChampions = append(status.BannedChampions, domain.LiveBan{
			ChampionID: b.ChampionID,
			TeamID:     b.TeamID,
			PickTurn:   b.PickTurn,
		})
	}

	return status, nil
}

func (s *ProfileService) recordSearch(ctx context.Context, region string, account *api.Account, summoner *api.Summoner) {
	if s.searches == nil {
		return
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	err := s.searches.Record(dbCtx, domain.RecentSearch{
		Region:        region,
		GameName:      account.GameName,
		TagLine:       account.TagLine,
		PUUID:         account.PUUID,
		ProfileIconID: summoner.ProfileIconID,
		SummonerLevel: summoner.SummonerLevel,
		SearchedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", account.PUUID).Msg("failed to record search")
	}
}

func toRankedEntries(entries []api.LeagueEntry) []domain.RankedEntry {
	var ranked []domain.RankedEntry
	for _, e := range entries {
		var queueType string
		switch e.QueueType {
		case "RANKED_SOLO_5x5":
			queueType = domain.QueueSoloDuo
		case "RANKED_FLEX_SR":
			queueType = domain.QueueFlex
		default:
			continue
		}
		ranked = append(ranked, domain.RankedEntry{
			QueueType:    queueType,
			Tier:         e.Tier,
			Division:     e.Rank,
			LeaguePoints: e.LeaguePoints,
			Wins:         e.Wins,
			Losses:       e.Losses,
			WinRate:      domain.WinRate(e.Wins, e.Losses),
		})
	}
	return ranked
}

func toMasteryEntries(entries []api.MasteryEntry) []domain.MasteryEntry {
	var mastery []domain.MasteryEntry
	for _, e := range entries {
		mastery = append(mastery, domain.MasteryEntry{
			ChampionID:     e.ChampionID,
			ChampionLevel:  e.ChampionLevel,
			ChampionPoints: e.ChampionPoints,
		})
	}
	return mastery
}
