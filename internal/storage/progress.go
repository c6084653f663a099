package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// AddCoins adds amount to the wallet and returns the new balance.
func (s *Store) AddCoins(ctx context.Context, amount int) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wallet (id, coins) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET coins = coins + excluded.coins`,
		amount,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add coins: %w", err)
	}

	var balance int
	if err := tx.QueryRowContext(ctx, "SELECT coins FROM wallet WHERE id = 1").Scan(&balance); err != nil {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit coins: %w", err)
	}
	return balance, nil
}

// Coins returns the wallet balance.
func (s *Store) Coins(ctx context.Context) (int, error) {
	var balance int
	err := s.db.QueryRowContext(ctx, "SELECT coins FROM wallet WHERE id = 1").Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read balance: %w", err)
	}
	return balance, nil
}

// UnlockAchievement records an achievement. It returns true the first time.
func (s *Store) UnlockAchievement(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO achievements (id) VALUES (?)", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n == 1, nil
}

// Achievement is an unlocked achievement.
type Achievement struct {
	ID         string
	UnlockedAt time.Time
}

// Achievements lists unlocked achievements in unlock order.
func (s *Store) Achievements(ctx context.Context) ([]Achievement, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, unlocked_at FROM achievements ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		var a Achievement
		var at any
		if err := rows.Scan(&a.ID, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.UnlockedAt = parseTime(at)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelResult is the best result on one adventure level.
type LevelResult struct {
	LevelID   string
	BestScore int
	Stars     int
	Clears    int
}

// SaveLevelResult keeps the best score and stars per adventure level.
func (s *Store) SaveLevelResult(ctx context.Context, levelID string, score, stars int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO level_progress (level_id, best_score, stars, clears) VALUES (?, ?, ?, 1)
		 ON CONFLICT(level_id) DO UPDATE SET
			best_score = MAX(best_score, excluded.best_score),
			stars = MAX(stars, excluded.stars),
			clears = clears + 1,
			updated_at = CURRENT_TIMESTAMP`,
		levelID, score, stars,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level result: %w", err)
	}
	return nil
}

// LevelResults returns progress for every cleared level, keyed by level id.
func (s *Store) LevelResults(ctx context.Context) (map[string]LevelResult, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT level_id, best_score, stars, clears FROM level_progress")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level progress: %w", err)
	}
	defer rows.Close()

	out := make(map[string]LevelResult)
	for rows.Next() {
		var r LevelResult
		if err := rows.Scan(&r.LevelID, &r.BestScore, &r.Stars, &r.Clears); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out[r.LevelID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
