package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/scox/internal/game/character"
)

// ErrCharacterNotFound is returned when a character lookup yields no rows.
var ErrCharacterNotFound = errors.New("character not found")

// ErrCharacterNameTaken is returned when creating a character whose name
// is already in use.
var ErrCharacterNameTaken = errors.New("character name already taken")

// Summary is a lightweight listing row without the full snapshot payload.
type Summary struct {
	ID        uuid.UUID
	Name      string
	Nature    string
	Level     int
	CreatedAt time.Time
}

// CharacterRepository persists full character object-graph snapshots. The
// graph is stored as a JSONB document; identity columns are duplicated
// for listing and lookup without decoding.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the
// given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// Create inserts a new character, assigning it a fresh ID.
//
// Precondition: c.Name must be non-empty.
// Postcondition: c.ID is set on success; returns ErrCharacterNameTaken on
// duplicate name.
func (r *CharacterRepository) Create(ctx context.Context, c *character.Character) error {
	c.ID = uuid.New()
	snapshot, err := c.Snapshot()
	if err != nil {
		c.ID = uuid.Nil
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO characters (id, name, nature, level, snapshot)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, string(c.Profile.Nature), c.Level, snapshot,
	)
	if err != nil {
		c.ID = uuid.Nil
		if isDuplicateKeyError(err) {
			return ErrCharacterNameTaken
		}
		return fmt.Errorf("inserting character: %w", err)
	}
	return nil
}

// GetByID retrieves and reconstructs a character by its primary key.
//
// Postcondition: the returned character's skill graph is relinked.
func (r *CharacterRepository) GetByID(ctx context.Context, id uuid.UUID) (*character.Character, error) {
	var snapshot []byte
	err := r.db.QueryRow(ctx,
		`SELECT snapshot FROM characters WHERE id = $1`, id,
	).Scan(&snapshot)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}

	c, err := character.FromSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// List returns summaries of all stored characters, oldest first.
func (r *CharacterRepository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, nature, level, created_at
		FROM characters ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.Nature, &s.Level, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// UpdateSnapshot re-serializes and persists an edited character.
//
// Precondition: c.ID must reference a stored character.
// Postcondition: returns ErrCharacterNotFound when no row was updated.
func (r *CharacterRepository) UpdateSnapshot(ctx context.Context, c *character.Character) error {
	snapshot, err := c.Snapshot()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, `
		UPDATE characters SET level = $2, snapshot = $3, updated_at = NOW()
		WHERE id = $1`,
		c.ID, c.Level, snapshot,
	)
	if err != nil {
		return fmt.Errorf("updating character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// Delete removes a stored character.
//
// Postcondition: returns ErrCharacterNotFound when no row was deleted.
func (r *CharacterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}
	return nil
}

// isDuplicateKeyError reports whether err is a PostgreSQL unique
// violation (SQLSTATE 23505).
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
