package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"roomBooker/internal/config"
	"roomBooker/internal/lib/date"
	"roomBooker/internal/models"
	"roomBooker/internal/storage"

	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

const (
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
)

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	return Open(connStr, dbCfg.MaxOpenConns)
}

// Open connects to dsn and verifies the connection.
func Open(dsn string, maxOpenConns int) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

// Migrate creates the tables, constraints and indexes if they do not exist.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	const op = "storage.postgres.GetRoom"

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM rooms
		WHERE id = $1`

	room, err := scanRoom(s.DB.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (s *Storage) ListRoomBookingsAfter(ctx context.Context, roomID int64, day date.Date) ([]models.Booking, error) {
	const op = "storage.postgres.ListRoomBookingsAfter"

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND kind = $2 AND check_in > $3
		ORDER BY check_in ASC, id ASC`

	rows, err := s.DB.QueryContext(ctx, query, roomID, models.KindRoom, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (s *Storage) InTx(ctx context.Context, fn func(tx storage.Tx) error) error {
	const op = "storage.postgres.InTx"

	sqlTx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer sqlTx.Rollback()

	if err = fn(&tx{tx: sqlTx}); err != nil {
		return err
	}

	if err = sqlTx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", op, mapError(err))
	}

	return nil
}

type tx struct {
	tx *sql.Tx
}

func (t *tx) LockRoom(ctx context.Context, roomID int64) (*models.Room, error) {
	const op = "storage.postgres.LockRoom"

	query := `
		SELECT id, name, owner_id, created_at, updated_at
		FROM rooms
		WHERE id = $1
		FOR UPDATE`

	room, err := scanRoom(t.tx.QueryRowContext(ctx, query, roomID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrRoomNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (t *tx) FindOverlapping(ctx context.Context, roomID int64, checkIn, checkOut date.Date) ([]models.Booking, error) {
	const op = "storage.postgres.FindOverlapping"

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND kind = $2 AND check_in <= $3 AND check_out >= $4`

	rows, err := t.tx.QueryContext(ctx, query, roomID, models.KindRoom, checkOut, checkIn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return bookings, nil
}

func (t *tx) InsertBooking(ctx context.Context, b *models.Booking) error {
	const op = "storage.postgres.InsertBooking"

	query := `
		INSERT INTO bookings (kind, user_id, room_id, experience_id, check_in, check_out, experience_time, guests)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`

	err := t.tx.QueryRowContext(ctx, query,
		b.Kind,
		b.UserID,
		b.RoomID,
		b.ExperienceID,
		b.CheckIn,
		b.CheckOut,
		b.ExperienceTime,
		b.Guests,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapError(err))
	}

	return nil
}

const bookingColumns = `id, kind, user_id, room_id, experience_id, check_in, check_out, experience_time, guests, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRoom(row rowScanner) (*models.Room, error) {
	var room models.Room

	err := row.Scan(
		&room.ID,
		&room.Name,
		&room.OwnerID,
		&room.CreatedAt,
		&room.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	var bookings []models.Booking

	for rows.Next() {
		var (
			b              models.Booking
			roomID         sql.NullInt64
			experienceID   sql.NullInt64
			checkIn        sql.Null[date.Date]
			checkOut       sql.Null[date.Date]
			experienceTime sql.NullTime
		)

		err := rows.Scan(
			&b.ID,
			&b.Kind,
			&b.UserID,
			&roomID,
			&experienceID,
			&checkIn,
			&checkOut,
			&experienceTime,
			&b.Guests,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}

		if roomID.Valid {
			b.RoomID = &roomID.Int64
		}
		if experienceID.Valid {
			b.ExperienceID = &experienceID.Int64
		}
		if checkIn.Valid {
			b.CheckIn = &checkIn.V
		}
		if checkOut.Valid {
			b.CheckOut = &checkOut.V
		}
		if experienceTime.Valid {
			b.ExperienceTime = &experienceTime.Time
		}

		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

func mapError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case codeExclusionViolation:
		return fmt.Errorf("%w: %s", storage.ErrBookingConflict, pqErr.Constraint)
	case codeForeignKeyViolation:
		switch pqErr.Constraint {
		case "bookings_user_id_fkey":
			return storage.ErrUserNotFound
		case "bookings_room_id_fkey":
			return storage.ErrRoomNotFound
		}
	}

	return err
}
