package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RollRecord is one resolved action roll, kept for balance analysis and
// dispute audit. Corrupt rolls are recorded truthfully here; the table
// is server-side only and never rendered to the player.
type RollRecord struct {
	ID         int64
	CampaignID int64
	Turn       int
	ActionType string
	ActorName  string
	Faces      []int32
	FinalFace  int
	Outcome    string
	Corrupt    bool
	Cost       int
	CreatedAt  time.Time
}

// RollAuditRepository provides roll audit persistence operations.
type RollAuditRepository struct {
	db *pgxpool.Pool
}

// NewRollAuditRepository creates a RollAuditRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewRollAuditRepository(db *pgxpool.Pool) *RollAuditRepository {
	return &RollAuditRepository{db: db}
}

// Record inserts one roll record.
//
// Precondition: rec.CampaignID must reference an existing campaign;
// rec.Faces must be non-empty.
// Postcondition: Returns the record's assigned ID or a non-nil error.
func (r *RollAuditRepository) Record(ctx context.Context, rec RollRecord) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO roll_audit
			(campaign_id, turn, action_type, actor_name, faces, final_face, outcome, corrupt, cost)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`,
		rec.CampaignID, rec.Turn, rec.ActionType, rec.ActorName,
		rec.Faces, rec.FinalFace, rec.Outcome, rec.Corrupt, rec.Cost,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting roll record: %w", err)
	}
	return id, nil
}

// ListByCampaign returns the campaign's rolls, newest first, up to limit.
//
// Precondition: campaignID must be > 0; limit must be >= 1.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *RollAuditRepository) ListByCampaign(ctx context.Context, campaignID int64, limit int) ([]RollRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, campaign_id, turn, action_type, actor_name, faces, final_face, outcome, corrupt, cost, created_at
		FROM roll_audit WHERE campaign_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		campaignID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing roll records: %w", err)
	}
	defer rows.Close()

	records := make([]RollRecord, 0, limit)
	for rows.Next() {
		var rec RollRecord
		if err := rows.Scan(
			&rec.ID, &rec.CampaignID, &rec.Turn, &rec.ActionType, &rec.ActorName,
			&rec.Faces, &rec.FinalFace, &rec.Outcome, &rec.Corrupt, &rec.Cost, &rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning roll record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CorruptionTotal sums the money stolen from a campaign by corrupted
// rolls, for post-game reveal.
func (r *RollAuditRepository) CorruptionTotal(ctx context.Context, campaignID int64) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(cost), 0) FROM roll_audit
		WHERE campaign_id = $1 AND corrupt`,
		campaignID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing corrupt rolls: %w", err)
	}
	return total, nil
}
