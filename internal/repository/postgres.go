package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"eventplanner/internal/model"
)

// PlannerRepository logs searches and venue feedback to PostgreSQL.
type PlannerRepository struct {
	db *sqlx.DB
}

// NewPlannerRepository connects to PostgreSQL.
func NewPlannerRepository(dsn string, maxConn, maxIdleConn int) (*PlannerRepository, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PlannerRepository{db: db}, nil
}

// Close closes the database connection
func (r *PlannerRepository) Close() error {
	return r.db.Close()
}

// LogSearch records one pipeline run: the slot snapshot it searched
// with, the venues it returned and how long it took.
func (r *PlannerRepository) LogSearch(ctx context.Context, sessionID string, slots *model.PreferenceSlots, resultCount int, venueIDs []string, responseTimeMs int) error {
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return fmt.Errorf("failed to marshal slots: %w", err)
	}

	query := `
		INSERT INTO planner_search_logs (session_id, slots, result_count, returned_venue_ids, response_time_ms)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.db.ExecContext(ctx, query, sessionID, slotsJSON, resultCount, pq.Array(venueIDs), responseTimeMs)
	if err != nil {
		return fmt.Errorf("failed to log search: %w", err)
	}
	return nil
}

// LogFeedback records a user action on a recommended venue.
func (r *PlannerRepository) LogFeedback(ctx context.Context, sessionID, venueID, action string) error {
	query := `
		INSERT INTO planner_feedback (session_id, venue_id, action)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.ExecContext(ctx, query, sessionID, venueID, action)
	if err != nil {
		return fmt.Errorf("failed to log feedback: %w", err)
	}
	return nil
}
