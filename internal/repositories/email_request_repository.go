package repositories

import (
	"context"
	"database/sql"
	"fmt"

	intconfig "ridesboard/internal/config"
	intdb "ridesboard/internal/db"
	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
)

// EmailRequestRepository stores ride requests ingested from e-mail.
type EmailRequestRepository struct {
	DB *sql.DB
}

func (r EmailRequestRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// List returns all requests, newest first.
func (r EmailRequestRepository) List(ctx context.Context) ([]models.EmailRideRequest, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	rows, err := db.QueryContext(ctx, `
		SELECT id, subject, body, sender_name, sender_email, detected_origin, detected_destination,
		       COALESCE(detected_time,''), received_at
		FROM email_ride_requests
		ORDER BY received_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query email requests: %w", err)
	}
	defer rows.Close()

	out := []models.EmailRideRequest{}
	for rows.Next() {
		var e models.EmailRideRequest
		if err := rows.Scan(&e.ID, &e.Subject, &e.Body, &e.SenderName, &e.SenderEmail,
			&e.DetectedOrigin, &e.DetectedDestination, &e.DetectedTime, &e.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan email request: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EmailRequestRepository) Create(ctx context.Context, e models.EmailRideRequest) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO email_ride_requests (id, subject, body, sender_name, sender_email,
			detected_origin, detected_destination, detected_time, received_at)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		e.ID, e.Subject, e.Body, e.SenderName, e.SenderEmail,
		e.DetectedOrigin, e.DetectedDestination, intdb.NullIfEmpty(e.DetectedTime), e.ReceivedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert email request: %w", err)
	}
	return nil
}
