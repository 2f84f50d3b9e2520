package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/voice-agent/internal/types"
)

// maxHistoryEntries caps how many generation entries are kept per handle.
const maxHistoryEntries = 100

// HistoryEntry is one stored generation run.
type HistoryEntry struct {
	ID           uuid.UUID               `json:"id"`
	Handle       string                  `json:"handle"`
	PostURL      string                  `json:"post_url,omitempty"`
	OriginalPost *types.Post             `json:"original_post,omitempty"`
	Proposals    []types.ContentProposal `json:"proposals"`
	ResearchID   string                  `json:"research_id,omitempty"`
	Prompt       string                  `json:"prompt,omitempty"`
	Preview      string                  `json:"preview"`
	CreatedAt    time.Time               `json:"created_at"`
}

// SaveGeneration stores a generation run and prunes old entries beyond the
// per-handle cap.
func (db *DB) SaveGeneration(ctx context.Context, entry HistoryEntry) (uuid.UUID, error) {
	proposalsJSON, err := json.Marshal(entry.Proposals)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal proposals: %w", err)
	}

	var originalJSON []byte
	if entry.OriginalPost != nil {
		originalJSON, err = json.Marshal(entry.OriginalPost)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to marshal original post: %w", err)
		}
	}

	preview := entry.Preview
	if preview == "" {
		preview = generatePreview(entry.Proposals)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO generation_history (handle, post_url, original_post, proposals, research_id, prompt, preview)
		 VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), $7)
		 RETURNING id`,
		entry.Handle, entry.PostURL, string(originalJSON), proposalsJSON, entry.ResearchID, entry.Prompt, preview,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save generation: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`DELETE FROM generation_history
		 WHERE handle = $1 AND id NOT IN (
			SELECT id FROM generation_history
			WHERE handle = $1
			ORDER BY created_at DESC
			LIMIT $2
		 )`,
		entry.Handle, maxHistoryEntries,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to prune generation history: %w", err)
	}
	return id, nil
}

// ListGenerations returns up to limit generation entries, newest first. An
// empty handle lists across all handles.
func (db *DB) ListGenerations(ctx context.Context, handle string, limit int) ([]HistoryEntry, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, handle, COALESCE(post_url, ''), original_post, proposals,
		        COALESCE(research_id, ''), COALESCE(prompt, ''), COALESCE(preview, ''), created_at
		 FROM generation_history
		 WHERE ($1 = '' OR handle = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		handle, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read generations: %w", err)
	}
	return entries, nil
}

// GetGeneration returns a single entry, or nil when not found.
func (db *DB) GetGeneration(ctx context.Context, id uuid.UUID) (*HistoryEntry, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, handle, COALESCE(post_url, ''), original_post, proposals,
		        COALESCE(research_id, ''), COALESCE(prompt, ''), COALESCE(preview, ''), created_at
		 FROM generation_history
		 WHERE id = $1`,
		id,
	)
	entry, err := scanHistoryEntry(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// DeleteGeneration removes an entry, reporting whether it existed.
func (db *DB) DeleteGeneration(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM generation_history WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete generation: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ClearGenerations removes all entries for a handle and returns the count.
func (db *DB) ClearGenerations(ctx context.Context, handle string) (int64, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM generation_history WHERE handle = $1`, handle)
	if err != nil {
		return 0, fmt.Errorf("failed to clear generation history: %w", err)
	}
	return tag.RowsAffected(), nil
}

// SaveHealthReport stores a profile health report.
func (db *DB) SaveHealthReport(ctx context.Context, handle string, report any) (uuid.UUID, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal health report: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO health_reports (handle, report) VALUES ($1, $2) RETURNING id`,
		handle, reportJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save health report: %w", err)
	}
	return id, nil
}

// LatestHealthReport returns the most recent health report JSON for a handle,
// or nil when none exists.
func (db *DB) LatestHealthReport(ctx context.Context, handle string) ([]byte, error) {
	var report []byte
	err := db.pool.QueryRow(ctx,
		`SELECT report FROM health_reports WHERE handle = $1 ORDER BY created_at DESC LIMIT 1`,
		handle,
	).Scan(&report)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get health report: %w", err)
	}
	return report, nil
}

func scanHistoryEntry(row pgx.Row) (HistoryEntry, error) {
	var entry HistoryEntry
	var originalJSON, proposalsJSON []byte
	err := row.Scan(&entry.ID, &entry.Handle, &entry.PostURL, &originalJSON, &proposalsJSON,
		&entry.ResearchID, &entry.Prompt, &entry.Preview, &entry.CreatedAt)
	if err != nil {
		return HistoryEntry{}, err
	}
	if len(originalJSON) > 0 {
		if err := json.Unmarshal(originalJSON, &entry.OriginalPost); err != nil {
			return HistoryEntry{}, fmt.Errorf("failed to decode original post: %w", err)
		}
	}
	if len(proposalsJSON) > 0 {
		if err := json.Unmarshal(proposalsJSON, &entry.Proposals); err != nil {
			return HistoryEntry{}, fmt.Errorf("failed to decode proposals: %w", err)
		}
	}
	return entry, nil
}

// generatePreview builds a short preview line from the first proposal.
func generatePreview(proposals []types.ContentProposal) string {
	if len(proposals) == 0 {
		return ""
	}
	texts := proposals[0].Texts()
	if len(texts) == 0 {
		return ""
	}
	preview := texts[0]
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}
	return preview
}
