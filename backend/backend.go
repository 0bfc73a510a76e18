// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FahryJean/Mapso/auth"
	"github.com/FahryJean/Mapso/db"
	"github.com/FahryJean/Mapso/factions"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/submission"
)

var (
	ErrNoCurrentTurn        = errors.New("no current turn")
	ErrTurnNotOpen          = errors.New("turn is not open for submissions")
	ErrTurnNotLockable      = errors.New("only an open turn can be locked")
	ErrUnknownFaction       = errors.New("unknown faction")
	ErrIncompleteSubmission = errors.New("submission payload is incomplete")
)

// DefaultTurnLength is how long a freshly published turn stays open.
const DefaultTurnLength = 72 * time.Hour

// DefaultLogTurns bounds the public turn log when no limit is given.
const DefaultLogTurns = 10

// Service is the storage-backed game backend. It implements rpc.Service, so
// the presentation handlers cannot tell it apart from a remote backend.
type Service struct {
	db         *sql.DB
	dialect    db.Dialect
	passcode   string
	turnLength time.Duration
	now        func() time.Time
}

type Option func(*Service)

// WithClock injects the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithTurnLength overrides how long new turns stay open.
func WithTurnLength(d time.Duration) Option {
	return func(s *Service) { s.turnLength = d }
}

func New(conn *sql.DB, dialect db.Dialect, passcode string, opts ...Option) *Service {
	s := &Service{
		db:         conn,
		dialect:    dialect,
		passcode:   passcode,
		turnLength: DefaultTurnLength,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ rpc.Service = (*Service)(nil)

func (s *Service) bind(query string) string {
	return db.Rebind(s.dialect, query)
}

// EnsureSeeded opens turn 1 and seeds the faction table on first run.
// Safe to call on every start.
func (s *Service) EnsureSeeded(ctx context.Context) error {
	var turns int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM game_turn`).Scan(&turns); err != nil {
		return fmt.Errorf("count turns: %w", err)
	}
	if turns == 0 {
		now := s.now()
		_, err := s.db.ExecContext(ctx, s.bind(`
			INSERT INTO game_turn (turn_number, phase, closes_at, created_at)
			VALUES (?, ?, ?, ?)
		`), 1, models.PhaseOpen, now.Add(s.turnLength), now)
		if err != nil {
			return fmt.Errorf("open first turn: %w", err)
		}
		slog.Info("opened first turn")
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faction`).Scan(&count); err != nil {
		return fmt.Errorf("count factions: %w", err)
	}
	if count == 0 {
		for _, f := range factions.Default {
			_, err := s.db.ExecContext(ctx, s.bind(`
				INSERT INTO faction (id, display_name) VALUES (?, ?)
			`), f.ID, f.DisplayName)
			if err != nil {
				return fmt.Errorf("seed faction %s: %w", f.ID, err)
			}
		}
		slog.Info("seeded default factions", "count", len(factions.Default))
	}
	return nil
}

func (s *Service) currentTurn(ctx context.Context) (number int, phase string, closesAt time.Time, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT turn_number, phase, closes_at
		FROM game_turn
		ORDER BY turn_number DESC
		LIMIT 1
	`).Scan(&number, &phase, &closesAt)
	if err == sql.ErrNoRows {
		return 0, "", time.Time{}, ErrNoCurrentTurn
	}
	if err != nil {
		return 0, "", time.Time{}, fmt.Errorf("query current turn: %w", err)
	}
	return number, phase, closesAt, nil
}

func (s *Service) checkPasscode(passcode string) error {
	return auth.ValidatePasscode(passcode, s.passcode)
}

func (s *Service) factionExists(ctx context.Context, factionID string) error {
	var exists bool
	err := s.db.QueryRowContext(ctx, s.bind(`
		SELECT EXISTS(SELECT 1 FROM faction WHERE id = ?)
	`), factionID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("query faction: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownFaction, factionID)
	}
	return nil
}

func (s *Service) TurnStatus(ctx context.Context) (models.TurnStatus, error) {
	number, phase, closesAt, err := s.currentTurn(ctx)
	if err != nil {
		return models.TurnStatus{}, err
	}

	var submitted int
	err = s.db.QueryRowContext(ctx, s.bind(`
		SELECT COUNT(DISTINCT faction_id) FROM submission WHERE turn_number = ?
	`), number).Scan(&submitted)
	if err != nil {
		return models.TurnStatus{}, fmt.Errorf("count submissions: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM faction`).Scan(&total); err != nil {
		return models.TurnStatus{}, fmt.Errorf("count factions: %w", err)
	}

	return models.TurnStatus{
		TurnNumber:     number,
		Phase:          phase,
		SubmittedCount: submitted,
		FactionCount:   total,
		ClosesAt:       closesAt,
	}, nil
}

func (s *Service) SubmitTurn(ctx context.Context, factionID, passcode string, payload models.SubmissionPayload) error {
	if err := s.checkPasscode(passcode); err != nil {
		return err
	}

	number, phase, _, err := s.currentTurn(ctx)
	if err != nil {
		return err
	}
	if phase != models.PhaseOpen {
		return ErrTurnNotOpen
	}
	if err := s.factionExists(ctx, factionID); err != nil {
		return err
	}
	if errs := submission.Validate(payload); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteSubmission, strings.Join(errs, " "))
	}

	raw, err := json.Marshal(submission.Normalize(payload))
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	// seq breaks submitted_at ties so the newest row always sorts first
	now := s.now()
	_, err = s.db.ExecContext(ctx, s.bind(`
		INSERT INTO submission (id, seq, turn_number, faction_id, payload, submitted_at, updated_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM submission), ?, ?, ?, ?, ?)
	`), uuid.NewString(), number, factionID, string(raw), now, now)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	slog.Info("submission recorded", "turn", number, "faction_id", factionID)
	return nil
}

func (s *Service) AdminListSubmissions(ctx context.Context, passcode string) ([]models.Submission, error) {
	if err := s.checkPasscode(passcode); err != nil {
		return nil, err
	}
	number, _, _, err := s.currentTurn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT id, turn_number, faction_id, payload, submitted_at, updated_at
		FROM submission
		WHERE turn_number = ?
		ORDER BY faction_id, seq DESC
	`), number)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		var sub models.Submission
		var raw string
		if err := rows.Scan(&sub.ID, &sub.TurnNumber, &sub.FactionID, &raw, &sub.SubmittedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &sub.Payload); err != nil {
			slog.Warn("skipping submission with malformed payload", "id", sub.ID, "error", err)
			continue
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Service) AdminListResolutions(ctx context.Context, passcode string) ([]models.FactionResolution, error) {
	if err := s.checkPasscode(passcode); err != nil {
		return nil, err
	}
	number, _, _, err := s.currentTurn(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolutionsForTurn(ctx, number)
}

func (s *Service) resolutionsForTurn(ctx context.Context, number int) ([]models.FactionResolution, error) {
	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT faction_id, event_outcome, improvement_result, improvement_notes, campaign_outcome
		FROM resolution
		WHERE turn_number = ?
		ORDER BY faction_id
	`), number)
	if err != nil {
		return nil, fmt.Errorf("query resolutions: %w", err)
	}
	defer rows.Close()

	var out []models.FactionResolution
	for rows.Next() {
		var fr models.FactionResolution
		err := rows.Scan(&fr.FactionID, &fr.Resolution.EventOutcome, &fr.Resolution.ImprovementResult,
			&fr.Resolution.ImprovementNotes, &fr.Resolution.CampaignOutcome)
		if err != nil {
			return nil, fmt.Errorf("scan resolution: %w", err)
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

func (s *Service) AdminSaveResolution(ctx context.Context, passcode, factionID string, resolution models.Resolution) error {
	if err := s.checkPasscode(passcode); err != nil {
		return err
	}
	number, _, _, err := s.currentTurn(ctx)
	if err != nil {
		return err
	}
	if err := s.factionExists(ctx, factionID); err != nil {
		return err
	}

	// ON CONFLICT upsert works on both sqlite and postgres.
	_, err = s.db.ExecContext(ctx, s.bind(`
		INSERT INTO resolution (turn_number, faction_id, event_outcome, improvement_result, improvement_notes, campaign_outcome, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (turn_number, faction_id) DO UPDATE SET
			event_outcome = excluded.event_outcome,
			improvement_result = excluded.improvement_result,
			improvement_notes = excluded.improvement_notes,
			campaign_outcome = excluded.campaign_outcome,
			resolved_at = excluded.resolved_at
	`), number, factionID, resolution.EventOutcome, resolution.ImprovementResult,
		resolution.ImprovementNotes, resolution.CampaignOutcome, s.now())
	if err != nil {
		return fmt.Errorf("save resolution: %w", err)
	}

	slog.Info("resolution saved", "turn", number, "faction_id", factionID)
	return nil
}

func (s *Service) AdminLockTurn(ctx context.Context, passcode string) error {
	if err := s.checkPasscode(passcode); err != nil {
		return err
	}
	number, phase, _, err := s.currentTurn(ctx)
	if err != nil {
		return err
	}
	if phase != models.PhaseOpen {
		return ErrTurnNotLockable
	}

	_, err = s.db.ExecContext(ctx, s.bind(`
		UPDATE game_turn SET phase = ? WHERE turn_number = ?
	`), models.PhaseLocked, number)
	if err != nil {
		return fmt.Errorf("lock turn: %w", err)
	}

	slog.Info("turn locked", "turn", number)
	return nil
}

func (s *Service) AdminPublishNextTurn(ctx context.Context, passcode string) error {
	if err := s.checkPasscode(passcode); err != nil {
		return err
	}
	number, _, _, err := s.currentTurn(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.bind(`
		UPDATE game_turn SET phase = ? WHERE turn_number = ?
	`), models.PhaseResolved, number); err != nil {
		return fmt.Errorf("resolve turn: %w", err)
	}

	now := s.now()
	if _, err := tx.ExecContext(ctx, s.bind(`
		INSERT INTO game_turn (turn_number, phase, closes_at, created_at)
		VALUES (?, ?, ?, ?)
	`), number+1, models.PhaseOpen, now.Add(s.turnLength), now); err != nil {
		return fmt.Errorf("open next turn: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit publish: %w", err)
	}

	slog.Info("next turn published", "resolved_turn", number, "new_turn", number+1)
	return nil
}

func (s *Service) PublicTurnLog(ctx context.Context, limitTurns int) ([]models.TurnLogEntry, error) {
	if limitTurns <= 0 {
		limitTurns = DefaultLogTurns
	}
	number, _, _, err := s.currentTurn(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, s.bind(`
		SELECT r.turn_number, r.faction_id, r.event_outcome, r.improvement_result, r.improvement_notes, r.campaign_outcome
		FROM resolution r
		JOIN game_turn t ON t.turn_number = r.turn_number
		WHERE t.phase = ? AND r.turn_number > ?
		ORDER BY r.turn_number DESC, r.faction_id
	`), models.PhaseResolved, number-limitTurns-1)
	if err != nil {
		return nil, fmt.Errorf("query turn log: %w", err)
	}
	defer rows.Close()

	var entries []models.TurnLogEntry
	for rows.Next() {
		var e models.TurnLogEntry
		err := rows.Scan(&e.TurnNumber, &e.FactionID, &e.Resolution.EventOutcome,
			&e.Resolution.ImprovementResult, &e.Resolution.ImprovementNotes, &e.Resolution.CampaignOutcome)
		if err != nil {
			return nil, fmt.Errorf("scan turn log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Service) ListFactions(ctx context.Context) ([]models.Faction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, display_name FROM faction ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("query factions: %w", err)
	}
	defer rows.Close()

	var out []models.Faction
	for rows.Next() {
		var f models.Faction
		if err := rows.Scan(&f.ID, &f.DisplayName); err != nil {
			return nil, fmt.Errorf("scan faction: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
