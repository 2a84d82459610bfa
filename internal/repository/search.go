package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"league-tracker/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

// SearchRepository is the log of successful profile lookups backing the
// search-box suggestions. It never feeds the aggregation pipeline.
type SearchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSearchRepository(db *sql.DB, logger zerolog.Logger) *SearchRepository {
	return &SearchRepository{db: db, logger: logger}
}

// Record upserts one search. A repeat lookup of the same player in the same
// region refreshes the timestamp and keeps the original row id.
func (r *SearchRepository) Record(ctx context.Context, s domain.RecentSearch) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate search id: %w", err)
	}

	if s.SearchedAt.IsZero() {
		s.SearchedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recent_searches (id, region, game_name, tag_line, puuid, profile_icon_id, summoner_level, searched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (region, puuid) DO UPDATE SET
			game_name = excluded.game_name,
			tag_line = excluded.tag_line,
			profile_icon_id = excluded.profile_icon_id,
			summoner_level = excluded.summoner_level,
			searched_at = excluded.searched_at`,
		id, s.Region, s.GameName, s.TagLine, s.PUUID, s.ProfileIconID, s.SummonerLevel, s.SearchedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("puuid", s.PUUID).Msg("failed to record search")
		return fmt.Errorf("failed to record search: %w", err)
	}

	return nil
}

// Recent returns the newest searches first.
func (r *SearchRepository) Recent(ctx context.Context, limit int) ([]domain.RecentSearch, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, region, game_name, tag_line, puuid, profile_icon_id, summoner_level, searched_at
		FROM recent_searches
		ORDER BY searched_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent searches: %w", err)
	}
	defer rows.Close()

	var searches []domain.RecentSearch
	for rows.Next() {
		var s domain.RecentSearch
		if err := rows.Scan(&s.ID, &s.Region, &s.GameName, &s.TagLine, &s.PUUID, &s.ProfileIconID, &s.SummonerLevel, &s.SearchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent search: %w", err)
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}
