package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	intconfig "ridesboard/internal/config"
	intdb "ridesboard/internal/db"
	"ridesboard/internal/domain"
	"ridesboard/internal/domain/models"
	"ridesboard/internal/utils"

	"github.com/go-sql-driver/mysql"
)

const mysqlDuplicateKey = 1062

// RideRepository wraps DB access for the rides table.
type RideRepository struct {
	DB *sql.DB
}

func (r RideRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const rideColumns = `id, owner_id, kind, poster_name, origin, destination, ride_time, seats, phone,
	ride_date, is_recurring, COALESCE(recurring_days,''), COALESCE(notes,''), created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRide(s rowScanner) (models.Ride, error) {
	var (
		ride      models.Ride
		kind      string
		recurring bool
		days      string
		createdAt time.Time
	)
	if err := s.Scan(&ride.ID, &ride.OwnerID, &kind, &ride.PosterName, &ride.Origin, &ride.Destination,
		&ride.Time, &ride.SeatCount, &ride.Phone, &ride.Date, &recurring, &days, &ride.Notes, &createdAt); err != nil {
		return models.Ride{}, err
	}
	ride.Kind = models.RideKind(kind)
	ride.IsRecurring = recurring
	if recurring {
		ride.RecurringWeekdays = utils.SplitWeekdays(days)
	}
	if !createdAt.IsZero() {
		ride.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	}
	return ride, nil
}

// List returns every stored ride, oldest first.
func (r RideRepository) List(ctx context.Context) ([]models.Ride, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}
	rows, err := db.QueryContext(ctx, `SELECT `+rideColumns+` FROM rides ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("query rides: %w", err)
	}
	defer rows.Close()

	out := []models.Ride{}
	for rows.Next() {
		ride, err := scanRide(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ride: %w", err)
		}
		out = append(out, ride)
	}
	return out, rows.Err()
}

func (r RideRepository) GetByID(ctx context.Context, id string) (models.Ride, error) {
	db := r.db()
	if db == nil {
		return models.Ride{}, domain.InternalError{Msg: "database not connected"}
	}
	ride, err := scanRide(db.QueryRowContext(ctx, `SELECT `+rideColumns+` FROM rides WHERE id=? LIMIT 1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Ride{}, domain.NotFoundError{Resource: "ride", Err: err}
		}
		return models.Ride{}, fmt.Errorf("get ride %s: %w", id, err)
	}
	return ride, nil
}

// Create inserts a ride whose id and owner were already assigned.
func (r RideRepository) Create(ctx context.Context, ride models.Ride) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	var days any
	if ride.IsRecurring {
		days = utils.JoinWeekdays(ride.RecurringWeekdays)
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO rides (id, owner_id, kind, poster_name, origin, destination, ride_time, seats, phone,
			ride_date, is_recurring, recurring_days, notes, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		ride.ID, ride.OwnerID, string(ride.Kind), ride.PosterName, ride.Origin, ride.Destination,
		ride.Time, ride.SeatCount, ride.Phone, ride.Date, ride.IsRecurring, days,
		intdb.NullIfEmpty(ride.Notes), time.Now().UTC(),
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateKey {
			return domain.ConflictError{Resource: "ride", Msg: "id already exists", Err: err}
		}
		return fmt.Errorf("insert ride: %w", err)
	}
	return nil
}

func (r RideRepository) Delete(ctx context.Context, id string) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM rides WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete ride: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "ride"}
	}
	return nil
}
