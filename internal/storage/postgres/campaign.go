package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/charter/internal/game/world"
)

// ErrCampaignNotFound is returned when a campaign lookup yields no results.
var ErrCampaignNotFound = errors.New("campaign not found")

// ErrCampaignNameTaken is returned when creating a campaign with a name already used by the account.
var ErrCampaignNameTaken = errors.New("campaign name already taken")

// Campaign is a saved game: one account's run of one scenario. The
// world state itself lives in a JSONB snapshot column and is only
// written at turn boundaries, never mid-action.
type Campaign struct {
	ID        int64
	AccountID int64
	Name      string
	Scenario  string
	Turn      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CampaignRepository provides campaign persistence operations.
type CampaignRepository struct {
	db *pgxpool.Pool
}

// NewCampaignRepository creates a CampaignRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create inserts a new campaign with its opening snapshot.
//
// Precondition: accountID must reference an existing account; name and
// scenario must be non-empty.
// Postcondition: Returns the created Campaign with ID set, or
// ErrCampaignNameTaken on a duplicate (account_id, name) pair.
func (r *CampaignRepository) Create(ctx context.Context, accountID int64, name, scenario string, snap world.Snapshot) (*Campaign, error) {
	state, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshalling snapshot: %w", err)
	}

	var c Campaign
	err = r.db.QueryRow(ctx, `
		INSERT INTO campaigns (account_id, name, scenario, turn, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, account_id, name, scenario, turn, created_at, updated_at`,
		accountID, name, scenario, snap.Turn, state,
	).Scan(&c.ID, &c.AccountID, &c.Name, &c.Scenario, &c.Turn, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrCampaignNameTaken
		}
		return nil, fmt.Errorf("inserting campaign: %w", err)
	}
	return &c, nil
}

// ListByAccount returns all campaigns for the given account, ordered by created_at.
//
// Precondition: accountID must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CampaignRepository) ListByAccount(ctx context.Context, accountID int64) ([]*Campaign, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, account_id, name, scenario, turn, created_at, updated_at
		FROM campaigns WHERE account_id = $1 ORDER BY created_at ASC`,
		accountID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := make([]*Campaign, 0)
	for rows.Next() {
		var c Campaign
		if err := rows.Scan(&c.ID, &c.AccountID, &c.Name, &c.Scenario, &c.Turn, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning campaign row: %w", err)
		}
		campaigns = append(campaigns, &c)
	}
	return campaigns, rows.Err()
}

// Load retrieves a campaign and its stored world snapshot.
//
// Precondition: id must be > 0.
// Postcondition: Returns the Campaign and Snapshot, or ErrCampaignNotFound.
func (r *CampaignRepository) Load(ctx context.Context, id int64) (*Campaign, world.Snapshot, error) {
	var (
		c     Campaign
		state []byte
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, account_id, name, scenario, turn, state, created_at, updated_at
		FROM campaigns WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.AccountID, &c.Name, &c.Scenario, &c.Turn, &state, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, world.Snapshot{}, ErrCampaignNotFound
		}
		return nil, world.Snapshot{}, fmt.Errorf("querying campaign: %w", err)
	}

	var snap world.Snapshot
	if err := json.Unmarshal(state, &snap); err != nil {
		return nil, world.Snapshot{}, fmt.Errorf("unmarshalling snapshot: %w", err)
	}
	return &c, snap, nil
}

// SaveSnapshot persists a turn-boundary snapshot for the campaign.
//
// Precondition: id must be > 0; snap must have been taken with no
// action ongoing (the session layer checks the tracker before calling).
// Postcondition: Returns nil on success, ErrCampaignNotFound if no row updated.
func (r *CampaignRepository) SaveSnapshot(ctx context.Context, id int64, snap world.Snapshot) error {
	state, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE campaigns SET turn = $2, state = $3, updated_at = NOW()
		WHERE id = $1`,
		id, snap.Turn, state,
	)
	if err != nil {
		return fmt.Errorf("saving campaign snapshot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}

// Delete removes a campaign and, via cascade, its roll audit rows.
//
// Precondition: id must be > 0.
// Postcondition: Returns nil on success, ErrCampaignNotFound if no row deleted.
func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCampaignNotFound
	}
	return nil
}
