package service

import (
	"context"
	"fmt"

	"league-tracker/internal/api"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/queues"
	"league-tracker/internal/regions"

	"github.com/rs/zerolog"
)

type MatchService struct {
	riot   RiotAPI
	logger zerolog.Logger
}

func NewMatchService(riot RiotAPI, logger zerolog.Logger) *MatchService {
	return &MatchService{riot: riot, logger: logger}
}

// GetHistory fetches and enriches the player's recent matches. The id list is
// required; each detail fetch is optional and skipped on failure so one bad
// match id never blanks the whole history. Remakes are dropped, upstream
// order (most recent first) is preserved.
func (s *MatchService) GetHistory(ctx context.Context, region, puuid, mode string) (*domain.MatchHistory, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	route, err := regions.Resolve(region)
	if err != nil {
		return nil, err
	}

	queueID, filtered := queues.QueueID(mode)
	if !filtered {
		queueID = 0
	}

	s.logger.Info().Str("region", region).Str("puuid", puuid).Str("mode", mode).Int("queue", queueID).Msg("getting match history")

	idCtx, idCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	ids, err := s.riot.MatchIDs(idCtx, route.Routing, puuid, constants.MatchPageSize, queueID)
	idCancel()
	if err != nil {
		s.logger.Error().Err(err).Str("puuid", puuid).Msg("failed to fetch match ids")
		return nil, fmt.Errorf("failed to fetch match ids: %w", err)
	}

	history := &domain.MatchHistory{Mode: mode, RecentGames: []domain.MatchSummary{}}
	if len(ids) == 0 {
		return history, nil
	}

	for _, id := range ids {
		detailCtx, detailCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		match, err := s.riot.Match(detailCtx, route.Routing, id)
		detailCancel()
		if err != nil {
			s.logger.Warn().Err(err).Str("match_id", id).Msg("skipping match, detail fetch failed")
			continue
		}

		if match.Info.GameDuration < constants.RemakeThresholdSeconds {
			s.logger.Debug().Str("match_id", id).Int64("duration", match.Info.GameDuration).Msg("skipping remake")
			continue
		}

		history.RecentGames = append(history.RecentGames, buildMatchSummary(match))
	}

	history.Summary = summarizeFor(history.RecentGames, puuid)

	s.logger.Info().Str("puuid", puuid).Int("ids", len(ids)).Int("games", len(history.RecentGames)).Msg("match history assembled")
	return history, nil
}

func buildMatchSummary(match *api.MatchDetail) domain.MatchSummary {
	summary := domain.MatchSummary{
		MatchID:         match.Metadata.MatchID,
		DurationSeconds: match.Info.GameDuration,
		GameMode:        match.Info.GameMode,
		QueueID:         match.Info.QueueID,
		Label:           queues.Label(match.Info.QueueID, match.Info.GameMode),
		StartTimestamp:  match.Info.GameStartTimestamp,
		EndTimestamp:    endTimestamp(match.Info),
		Teams:           make(map[int]domain.ObjectiveCounts, len(match.Info.Teams)),
	}

	for _, team := range match.Info.Teams {
		summary.Teams[team.TeamID] = domain.ObjectiveCounts{
			Dragon:     team.Objectives.Dragon.Kills,
			Baron:      team.Objectives.Baron.Kills,
			RiftHerald: team.Objectives.RiftHerald.Kills,
			VoidGrubs:  team.Objectives.Horde.Kills,
			Tower:      team.Objectives.Tower.Kills,
		}
	}

	for _, p := range match.Info.Participants {
		summary.Players = append(summary.Players, domain.PlayerMatchRecord{
			PUUID:             p.PUUID,
			DisplayName:       displayName(p),
			ChampionID:        p.ChampionID,
			ChampionName:      p.ChampionName,
			TeamID:            p.TeamID,
			TeamPosition:      p.TeamPosition,
			Win:               p.Win,
			Kills:             p.Kills,
			Deaths:            p.Deaths,
			Assists:           p.Assists,
			ChampLevel:        p.ChampLevel,
			CreepScore:        p.TotalMinionsKilled + p.NeutralMinionsKilled,
			VisionScore:       p.VisionScore,
			GoldEarned:        p.GoldEarned,
			DamageToChampions: p.TotalDamageDealtToChampions,
			DamageTaken:       p.TotalDamageTaken,
			Items:             [6]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5},
			Trinket:           p.Item6,
			SpellIDs:          [2]int{p.Summoner1ID, p.Summoner2ID},
		})
	}

	return summary
}

// endTimestamp prefers the explicit end marker; older records omit it, so
// fall back to start plus duration.
func endTimestamp(info api.MatchInfo) int64 {
	if info.GameEndTimestamp > 0 {
		return info.GameEndTimestamp
	}
	return info.GameStartTimestamp + info.GameDuration*1000
}

// displayName builds gameName#tagLine, falling back to the legacy summoner
// name, then to "Unknown".
func displayName(p api.MatchParticipant) string {
	if p.RiotIDGameName != "" {
		return p.RiotIDGameName + "#" + p.RiotIDTagline
	}
	if p.SummonerName != "" {
		return p.SummonerName
	}
	return "Unknown"
}

// summarizeFor aggregates the requesting player's records across the
// returned set.
func summarizeFor(games []domain.MatchSummary, puuid string) domain.HistorySummary {
	var found, wins int
	for _, game := range games {
		for _, p := range game.Players {
			if p.PUUID != puuid {
				continue
			}
			found++
			if p.Win {
				wins++
			}
			break
		}
	}
	return domain.HistorySummary{
		Games:   found,
		Wins:    wins,
		Losses:  found - wins,
		WinRate: domain.WinRate(wins, found-wins),
	}
}
