//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestHotel(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	hotelID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx, "INSERT INTO hotels (id, name) VALUES ($1, $2)", hotelID, name)
	require.NoError(t, err)

	return hotelID
}

// CreateTestRoom inserts a room with its policy record and returns the room ID.
func CreateTestRoom(t *testing.T, db DBLike, hotelID uuid.UUID, maxReserveDays, maxReserveAdvanceDays int) uuid.UUID {
	t.Helper()

	detailsID := uuid.New()
	roomID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO room_details (id, max_reserve_days, max_reserve_advance_days) VALUES ($1, $2, $3)",
		detailsID, maxReserveDays, maxReserveAdvanceDays)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO rooms (id, hotel_id, room_details_id) VALUES ($1, $2, $3)",
		roomID, hotelID, detailsID)
	require.NoError(t, err)

	return roomID
}

func CreateTestReservation(t *testing.T, db DBLike, roomID uuid.UUID, guestEmail, startDate, endDate, status string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO reservations (id, room_id, guest_email, start_date, end_date, create_date, status) VALUES ($1, $2, $3, $4::date, $5::date, CURRENT_DATE, $6)",
		reservationID, roomID, guestEmail, startDate, endDate, status)
	require.NoError(t, err)

	return reservationID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
