package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rehabstats/emgcore/internal/emg/session"
	"github.com/rehabstats/emgcore/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", id))

	var s Session
	err = r.db.QueryRow(
		ctx,
		`SELECT id, patient_id, therapist, notes, created_at
			FROM emg_session WHERE id = $1;`,
		id,
	).Scan(&s.ID, &s.PatientID, &s.Therapist, &s.Notes, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, session.ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

// ListContractions returns the session's contraction records grouped
// per muscle channel, the shape the scoring pipeline consumes.
func (r *Repo) ListContractions(ctx context.Context, sessionID string) (_ map[string][]session.ContractionRecord, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.listContractions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	rows, err := r.db.Query(
		ctx,
		`SELECT channel, start_time, duration_ms, peak_amplitude
			FROM contraction WHERE session_id = $1
			ORDER BY channel, start_time;`,
		sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	channels := make(map[string][]session.ContractionRecord)
	for rows.Next() {
		var c session.ContractionRecord
		if err := rows.Scan(&c.Channel, &c.StartTime, &c.DurationMs, &c.PeakAmplitude); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		channels[c.Channel] = append(channels[c.Channel], c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("channels", len(channels)))
	return channels, nil
}

// GetConfig returns the latest configuration revision of a session.
// Configurations are immutable: every edit inserts a new revision.
func (r *Repo) GetConfig(ctx context.Context, sessionID string) (_ session.Config, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.getConfig")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	var raw []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT config FROM session_config
			WHERE session_id = $1
			ORDER BY revision DESC LIMIT 1;`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// sessions start out with the clinical defaults
			return session.NewConfig(sessionID), nil
		}
		return session.Config{}, err
	}

	var cfg session.Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return session.Config{}, fmt.Errorf("unmarshal session config: %w", err)
	}
	return cfg, nil
}

// SaveConfig stores a new configuration revision and returns its number.
func (r *Repo) SaveConfig(ctx context.Context, cfg session.Config) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.saveConfig")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", cfg.SessionID))

	raw, err := json.Marshal(cfg)
	if err != nil {
		return 0, fmt.Errorf("marshal session config: %w", err)
	}

	var revision int
	err = r.db.QueryRow(
		ctx,
		`INSERT INTO session_config (session_id, revision, config, created_at)
			VALUES (
				$1,
				COALESCE((SELECT MAX(revision) FROM session_config WHERE session_id = $1), 0) + 1,
				$2,
				NOW()
			)
			RETURNING revision;`,
		cfg.SessionID, raw,
	).Scan(&revision)
	if err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int("config.revision", revision))
	return revision, nil
}

// SaveScore replaces the stored score of a session wholesale.
func (r *Repo) SaveScore(ctx context.Context, sessionID string, score session.Score) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.saveScore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	raw, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("marshal session score: %w", err)
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO session_score (session_id, score, calculated_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (session_id)
			DO UPDATE SET score = $2, calculated_at = $3;`,
		sessionID, raw, score.CalculatedAt,
	)
	return err
}

// GetScore returns the latest stored score of a session.
func (r *Repo) GetScore(ctx context.Context, sessionID string) (_ session.Score, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.emg.sessions.getScore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("session.id", sessionID))

	var raw []byte
	err = r.db.QueryRow(
		ctx,
		`SELECT score FROM session_score WHERE session_id = $1;`,
		sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return session.Score{}, session.ErrScoreNotFound
		}
		return session.Score{}, err
	}

	var score session.Score
	if err := json.Unmarshal(raw, &score); err != nil {
		return session.Score{}, fmt.Errorf("unmarshal session score: %w", err)
	}
	return score, nil
}
