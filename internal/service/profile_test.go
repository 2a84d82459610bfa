package service_test

import (
	"context"
	"errors"
	"testing"

	"league-tracker/internal/api"
	"league-tracker/internal/domain"
	"league-tracker/internal/regions"
	"league-tracker/internal/service"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNotStubbed = errors.New("not stubbed")

// stubRiot implements service.RiotAPI with per-call overrides so each test
// only wires the endpoints it cares about.
type stubRiot struct {
	account   func(gameName, tagLine string) (*api.Account, error)
	summoner  func(puuid string) (*api.Summoner, error)
	league    func(puuid string) ([]api.LeagueEntry, error)
	masteries func(puuid string) ([]api.MasteryEntry, error)
	active    func(puuid string) (*api.ActiveGame, error)
	matchIDs  func(puuid string, count, queueID int) ([]string, error)
	match     func(matchID string) (*api.MatchDetail, error)
}

func (s *stubRiot) AccountByRiotID(_ context.Context, _, gameName, tagLine string) (*api.Account, error) {
	if s.account == nil {
		return nil, errNotStubbed
	}
	return s.account(gameName, tagLine)
}

func (s *stubRiot) SummonerByPUUID(_ context.Context, _, puuid string) (*api.Summoner, error) {
	if s.summoner == nil {
		return nil, errNotStubbed
	}
	return s.summoner(puuid)
}

func (s *stubRiot) LeagueEntries(_ context.Context, _, puuid string) ([]api.LeagueEntry, error) {
	if s.league == nil {
		return nil, errNotStubbed
	}
	return s.league(puuid)
}

func (s *stubRiot) ChampionMasteries(_ context.Context, _, puuid string) ([]api.MasteryEntry, error) {
	if s.masteries == nil {
		return nil, errNotStubbed
	}
	return s.masteries(puuid)
}

func (s *stubRiot) ActiveGame(_ context.Context, _, puuid string) (*api.ActiveGame, error) {
	if s.active == nil {
		return nil, errNotStubbed
	}
	return s.active(puuid)
}

func (s *stubRiot) MatchIDs(_ context.Context, _, puuid string, count, queueID int) ([]string, error) {
	if s.matchIDs == nil {
		return nil, errNotStubbed
	}
	return s.matchIDs(puuid, count, queueID)
}

func (s *stubRiot) Match(_ context.Context, _, matchID string) (*api.MatchDetail, error) {
	if s.match == nil {
		return nil, errNotStubbed
	}
	return s.match(matchID)
}

type stubSearchLog struct {
	recorded []domain.RecentSearch
	err      error
}

func (s *stubSearchLog) Record(_ context.Context, search domain.RecentSearch) error {
	if s.err != nil {
		return s.err
	}
	s.recorded = append(s.recorded, search)
	return nil
}

func happyRiot() *stubRiot {
	return &stubRiot{
		account: func(gameName, tagLine string) (*api.Account, error) {
			return &api.Account{PUUID: "abc123", GameName: gameName, TagLine: tagLine}, nil
		},
		summoner: func(puuid string) (*api.Summoner, error) {
			return &api.Summoner{PUUID: puuid, SummonerLevel: 150, ProfileIconID: 42}, nil
		},
		league: func(string) ([]api.LeagueEntry, error) {
			return []api.LeagueEntry{
				{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", LeaguePoints: 54, Wins: 30, Losses: 20},
				{QueueType: "RANKED_FLEX_SR", Tier: "SILVER", Rank: "I", LeaguePoints: 10, Wins: 5, Losses: 15},
			}, nil
		},
		masteries: func(string) ([]api.MasteryEntry, error) {
			return []api.MasteryEntry{
				{ChampionID: 1, ChampionLevel: 7, ChampionPoints: 700},
				{ChampionID: 2, ChampionLevel: 6, ChampionPoints: 600},
			}, nil
		},
	}
}

func TestGetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("assembles the full profile", func(t *testing.T) {
		searches := &stubSearchLog{}
		svc := service.NewProfileService(happyRiot(), searches, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)

		assert.Equal(t, "abc123", profile.PUUID)
		assert.Equal(t, "Foo#NA1", profile.DisplayName)
		assert.Equal(t, int64(150), profile.SummonerLevel)
		assert.Equal(t, 42, profile.ProfileIconID)

		require.Len(t, profile.Ranked, 2)
		assert.Equal(t, domain.QueueSoloDuo, profile.Ranked[0].QueueType)
		assert.Equal(t, "GOLD", profile.Ranked[0].Tier)
		assert.Equal(t, "II", profile.Ranked[0].Division)
		assert.InDelta(t, 0.6, profile.Ranked[0].WinRate, 1e-9)
		assert.Equal(t, domain.QueueFlex, profile.Ranked[1].QueueType)

		require.Len(t, profile.Mastery, 2)
		assert.Equal(t, int64(1), profile.Mastery[0].ChampionID)

		require.Len(t, searches.recorded, 1)
		assert.Equal(t, "na1", searches.recorded[0].Region)
		assert.Equal(t, "abc123", searches.recorded[0].PUUID)
	})

	t.Run("rejects unsupported regions before any fetch", func(t *testing.T) {
		svc := service.NewProfileService(&stubRiot{}, nil, zerolog.Nop())

		_, err := svc.GetProfile(ctx, "americas", "Foo", "NA1")
		assert.ErrorIs(t, err, regions.ErrUnsupportedRegion)
	})

	t.Run("propagates account failures", func(t *testing.T) {
		riot := happyRiot()
		riot.account = func(string, string) (*api.Account, error) {
			return nil, &api.StatusError{StatusCode: 404, Message: "Data not found"}
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		_, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		var statusErr *api.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 404, statusErr.StatusCode)
	})

	t.Run("rejects an account response without a puuid", func(t *testing.T) {
		riot := happyRiot()
		riot.account = func(gameName, tagLine string) (*api.Account, error) {
			return &api.Account{GameName: gameName, TagLine: tagLine}, nil
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		_, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		assert.Error(t, err)
	})

	t.Run("propagates summoner failures", func(t *testing.T) {
		riot := happyRiot()
		riot.summoner = func(string) (*api.Summoner, error) {
			return nil, &api.StatusError{StatusCode: 503, Message: "Service unavailable"}
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		_, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		var statusErr *api.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, 503, statusErr.StatusCode)
	})

	t.Run("degrades to empty ranked on league failure", func(t *testing.T) {
		riot := happyRiot()
		riot.league = func(string) ([]api.LeagueEntry, error) {
			return nil, &api.StatusError{StatusCode: 500, Message: "Internal server error"}
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)
		assert.Empty(t, profile.Ranked)
		assert.Len(t, profile.Mastery, 2)
	})

	t.Run("degrades to empty mastery on mastery failure", func(t *testing.T) {
		riot := happyRiot()
		riot.masteries = func(string) ([]api.MasteryEntry, error) {
			return nil, errors.New("timeout")
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)
		assert.Empty(t, profile.Mastery)
		assert.Len(t, profile.Ranked, 2)
	})

	t.Run("keeps only the top five masteries", func(t *testing.T) {
		riot := happyRiot()
		riot.masteries = func(string) ([]api.MasteryEntry, error) {
			entries := make([]api.MasteryEntry, 7)
			for i := range entries {
				entries[i] = api.MasteryEntry{ChampionID: int64(i + 1), ChampionPoints: 700 - i*100}
			}
			return entries, nil
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)
		require.Len(t, profile.Mastery, 5)
		assert.Equal(t, int64(1), profile.Mastery[0].ChampionID)
		assert.Equal(t, int64(5), profile.Mastery[4].ChampionID)
	})

	t.Run("drops ranked entries from other queues", func(t *testing.T) {
		riot := happyRiot()
		riot.league = func(string) ([]api.LeagueEntry, error) {
			return []api.LeagueEntry{
				{QueueType: "RANKED_TFT", Tier: "GOLD", Rank: "I"},
				{QueueType: "RANKED_SOLO_5x5", Tier: "GOLD", Rank: "II", Wins: 1, Losses: 1},
			}, nil
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)
		require.Len(t, profile.Ranked, 1)
		assert.Equal(t, domain.QueueSoloDuo, profile.Ranked[0].QueueType)
	})

	t.Run("decodes escaped names", func(t *testing.T) {
		var gotName string
		riot := happyRiot()
		base := riot.account
		riot.account = func(gameName, tagLine string) (*api.Account, error) {
			gotName = gameName
			return base(gameName, tagLine)
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		_, err := svc.GetProfile(ctx, "na1", "Hide%20on%20bush", "KR1")
		require.NoError(t, err)
		assert.Equal(t, "Hide on bush", gotName)
	})

	t.Run("survives a failing search log", func(t *testing.T) {
		searches := &stubSearchLog{err: errors.New("disk full")}
		svc := service.NewProfileService(happyRiot(), searches, zerolog.Nop())

		profile, err := svc.GetProfile(ctx, "na1", "Foo", "NA1")
		require.NoError(t, err)
		assert.Equal(t, "abc123", profile.PUUID)
	})
}

func TestGetLiveStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("maps an active game", func(t *testing.T) {
		riot := &stubRiot{
			active: func(puuid string) (*api.ActiveGame, error) {
				return &api.ActiveGame{
					GameMode:          "CLASSIC",
					GameType:          "MATCHED",
					GameQueueConfigID: 420,
					GameLength:        600,
					GameStartTime:     1700000000000,
					MapID:             11,
					Participants: []api.ActiveGameParticipant{
						{PUUID: puuid, ChampionID: 103, TeamID: 100, RiotID: "Foo#NA1", Spell1ID: 4, Spell2ID: 14,
							Perks: api.ActiveGamePerks{PerkIDs: []int64{8112}, PerkStyle: 8100, PerkSubStyle: 8300}},
					},
					BannedChampions: []api.BannedChampion{{ChampionID: 157, TeamID: 200, PickTurn: 1}},
				}, nil
			},
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		status, err := svc.GetLiveStatus(ctx, "na1", "abc123")
		require.NoError(t, err)
		assert.True(t, status.InGame)
		assert.Equal(t, "CLASSIC", status.GameMode)
		assert.Equal(t, 420, status.QueueID)
		assert.Equal(t, int64(600), status.ElapsedSeconds)
		require.Len(t, status.Participants, 1)
		assert.Equal(t, "Foo#NA1", status.Participants[0].DisplayName)
		assert.Equal(t, [2]int{4, 14}, status.Participants[0].SpellIDs)
		require.Len(t, status.BannedChampions, 1)
		assert.Equal(t, 157, status.BannedChampions[0].ChampionID)
	})

	t.Run("reports not in game on a 404", func(t *testing.T) {
		riot := &stubRiot{
			active: func(string) (*api.ActiveGame, error) {
				return nil, &api.StatusError{StatusCode: 404, Message: "Data not found"}
			},
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		status, err := svc.GetLiveStatus(ctx, "na1", "abc123")
		require.NoError(t, err)
		assert.False(t, status.InGame)
		assert.Empty(t, status.Participants)
	})

	t.Run("reports not in game on any upstream failure", func(t *testing.T) {
		riot := &stubRiot{
			active: func(string) (*api.ActiveGame, error) {
				return nil, errors.New("connection refused")
			},
		}
		svc := service.NewProfileService(riot, nil, zerolog.Nop())

		status, err := svc.GetLiveStatus(ctx, "na1", "abc123")
		require.NoError(t, err)
		assert.False(t, status.InGame)
	})

	t.Run("rejects unsupported regions", func(t *testing.T) {
		svc := service.NewProfileService(&stubRiot{}, nil, zerolog.Nop())

		_, err := svc.GetLiveStatus(ctx, "mars1", "abc123")
		assert.ErrorIs(t, err, regions.ErrUnsupportedRegion)
	})
}
