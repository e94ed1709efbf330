package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Repository struct{ conn *pgx.Conn }

func NewRepository(conn *pgx.Conn) *Repository {
	return &Repository{conn: conn}
}

// BookingFilter narrows the admin history listing. Empty fields match
// everything.
type BookingFilter struct {
	Status    string
	DateFrom  string
	DateTo    string
	StudentID string
}

const bookingColumns = `id, to_char(booking_date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
       user_name, user_email, COALESCE(student_id, ''), number_of_players, game_id, COALESCE(special_requests, ''), status, created_at`

func scanBooking(row interface{ Scan(dest ...any) error }) (Booking, error) {
	var booking Booking
	err := row.Scan(
		&booking.ID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.UserName,
		&booking.UserEmail,
		&booking.StudentID,
		&booking.NumberOfPlayers,
		&booking.GameID,
		&booking.SpecialRequests,
		&booking.Status,
		&booking.CreatedAt,
	)
	return booking, err
}

func (r *Repository) GetBookingByID(ctx context.Context, id string) (Booking, error) {
	sql := `
			SELECT ` + bookingColumns + `
			FROM gaming_area.booking
			WHERE id=$1;
		`

	booking, err := scanBooking(r.conn.QueryRow(ctx, sql, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, ErrBookingNotFound
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to fetch booking with id %v: %w", id, err)
	}

	return booking, nil
}

func (r *Repository) GetConfirmedBookingsForDate(ctx context.Context, date string) ([]Booking, error) {
	sql := `
            SELECT ` + bookingColumns + `
            FROM gaming_area.booking
            WHERE booking_date=$1 AND status='confirmed'
            ORDER BY start_time;
        `

	rows, err := r.conn.Query(ctx, sql, date)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for date %v: %w", date, err)
	}

	defer rows.Close()

	return collectBookings(rows)
}

func (r *Repository) GetConfirmedBookingsForUserInRange(ctx context.Context, userEmail, studentID, from, to string) ([]Booking, error) {
	sql := `
            SELECT ` + bookingColumns + `
            FROM gaming_area.booking
            WHERE (user_email=$1 OR student_id=$2)
              AND status='confirmed'
              AND booking_date BETWEEN $3 AND $4
            ORDER BY booking_date, start_time;
        `

	rows, err := r.conn.Query(ctx, sql, userEmail, studentID, from, to)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings for user '%v': %w", userEmail, err)
	}

	defer rows.Close()

	return collectBookings(rows)
}

func (r *Repository) InsertBooking(ctx context.Context, booking Booking) (Booking, error) {
	sql := `
			INSERT INTO gaming_area.booking(
			id, booking_date, start_time, end_time, user_name, user_email, student_id,
			number_of_players, game_id, special_requests, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING created_at;
		`

	booking.ID = uuid.NewString()
	booking.Status = StatusConfirmed

	err := r.conn.QueryRow(ctx, sql,
		booking.ID,
		booking.BookingDate,
		booking.StartTime,
		booking.EndTime,
		booking.UserName,
		booking.UserEmail,
		booking.StudentID,
		booking.NumberOfPlayers,
		booking.GameID,
		booking.SpecialRequests,
		booking.Status,
	).Scan(&booking.CreatedAt)

	// 23P01: rejected by the no-overlap exclusion constraint, meaning a
	// concurrent writer confirmed an overlapping booking first.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23P01" {
		return Booking{}, fmt.Errorf("%w: %s-%s on %s", ErrSlotConflict, booking.StartTime, booking.EndTime, booking.BookingDate)
	}

	if err != nil {
		return Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	return booking, nil
}

func (r *Repository) SetBookingStatus(ctx context.Context, id string, status string) error {
	sql := `
            UPDATE gaming_area.booking
            SET status=$1, updated_at=now()
            WHERE id=$2;
        `

	tag, err := r.conn.Exec(ctx, sql, status, id)

	if err != nil {
		return fmt.Errorf("failed to update booking '%v' status: %w", id, err)
	}

	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}

	return err
}

func (r *Repository) ListBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	sql := `SELECT ` + bookingColumns + ` FROM gaming_area.booking WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		sql += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if filter.DateFrom != "" {
		args = append(args, filter.DateFrom)
		sql += fmt.Sprintf(" AND booking_date >= $%d", len(args))
	}
	if filter.DateTo != "" {
		args = append(args, filter.DateTo)
		sql += fmt.Sprintf(" AND booking_date <= $%d", len(args))
	}
	if filter.StudentID != "" {
		args = append(args, filter.StudentID)
		sql += fmt.Sprintf(" AND student_id=$%d", len(args))
	}

	sql += " ORDER BY booking_date, start_time;"

	rows, err := r.conn.Query(ctx, sql, args...)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows pgx.Rows) ([]Booking, error) {
	var bookings []Booking

	for rows.Next() {
		booking, err := scanBooking(rows)

		if err != nil {
			return nil, fmt.Errorf("error scanning booking row: %w", err)
		}

		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings rows: %w", err)
	}

	return bookings, nil
}
