package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"

	"github.com/ayush/social-media-api/internal/models"
)

// DB is the subset of pgxpool.Pool the store uses. Declared so tests can
// substitute a mock pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore issues parameterized SQL against the account and message
// tables. It holds no business rules: a missing row is (nil, nil), and any
// driver fault is logged here and returned for the caller to collapse into
// absence.
type PostgresStore struct {
	db  DB
	log logrus.FieldLogger
}

func NewPostgresStore(db DB, log logrus.FieldLogger) *PostgresStore {
	return &PostgresStore{db: db, log: log}
}

// Migrate creates the account and message tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS account (
			account_id SERIAL PRIMARY KEY,
			username   VARCHAR(255) UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create account table: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS message (
			message_id        SERIAL PRIMARY KEY,
			posted_by         INTEGER NOT NULL REFERENCES account(account_id),
			message_text      VARCHAR(255) NOT NULL,
			time_posted_epoch BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create message table: %w", err)
	}
	return nil
}

// fault logs a driver error and wraps it with the failing operation. No-row
// results never reach here.
func (s *PostgresStore) fault(op string, err error) error {
	s.log.WithError(err).Error(op)
	return fmt.Errorf("%s: %w", op, err)
}

func (s *PostgresStore) InsertAccount(ctx context.Context, username, password string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(ctx,
		`INSERT INTO account (username, password)
		 VALUES ($1, $2)
		 RETURNING account_id, username, password`,
		username, password,
	).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		return nil, s.fault("insert account", err)
	}
	return &a, nil
}

func (s *PostgresStore) FindAccountByID(ctx context.Context, id int) (*models.Account, error) {
	return s.findAccount(ctx,
		`SELECT account_id, username, password FROM account WHERE account_id = $1`, id)
}

func (s *PostgresStore) FindAccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.findAccount(ctx,
		`SELECT account_id, username, password FROM account WHERE username = $1`, username)
}

// FindAccountByCredentials does an exact-match lookup on both columns. The
// password column holds the literal registered string, so the comparison
// happens in SQL.
func (s *PostgresStore) FindAccountByCredentials(ctx context.Context, username, password string) (*models.Account, error) {
	return s.findAccount(ctx,
		`SELECT account_id, username, password FROM account WHERE username = $1 AND password = $2`,
		username, password)
}

func (s *PostgresStore) findAccount(ctx context.Context, sql string, args ...any) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.Username, &a.Password)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("find account", err)
	}
	return &a, nil
}

func (s *PostgresStore) InsertMessage(ctx context.Context, postedBy int, text string, epoch int64) (*models.Message, error) {
	var m models.Message
	err := s.db.QueryRow(ctx,
		`INSERT INTO message (posted_by, message_text, time_posted_epoch)
		 VALUES ($1, $2, $3)
		 RETURNING message_id, posted_by, message_text, time_posted_epoch`,
		postedBy, text, epoch,
	).Scan(&m.ID, &m.PostedBy, &m.Text, &m.TimePostedEpoch)
	if err != nil {
		return nil, s.fault("insert message", err)
	}
	return &m, nil
}

func (s *PostgresStore) FindMessageByID(ctx context.Context, id int) (*models.Message, error) {
	var m models.Message
	err := s.db.QueryRow(ctx,
		`SELECT message_id, posted_by, message_text, time_posted_epoch
		 FROM message WHERE message_id = $1`, id,
	).Scan(&m.ID, &m.PostedBy, &m.Text, &m.TimePostedEpoch)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("find message", err)
	}
	return &m, nil
}

// DeleteMessageByID removes the row and returns it as confirmation. A nil
// result means no row matched.
func (s *PostgresStore) DeleteMessageByID(ctx context.Context, id int) (*models.Message, error) {
	var m models.Message
	err := s.db.QueryRow(ctx,
		`DELETE FROM message WHERE message_id = $1
		 RETURNING message_id, posted_by, message_text, time_posted_epoch`, id,
	).Scan(&m.ID, &m.PostedBy, &m.Text, &m.TimePostedEpoch)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("delete message", err)
	}
	return &m, nil
}

// UpdateMessageText replaces the text of an existing message and returns the
// updated row, or nil if the id does not exist.
func (s *PostgresStore) UpdateMessageText(ctx context.Context, id int, newText string) (*models.Message, error) {
	var m models.Message
	err := s.db.QueryRow(ctx,
		`UPDATE message SET message_text = $2 WHERE message_id = $1
		 RETURNING message_id, posted_by, message_text, time_posted_epoch`,
		id, newText,
	).Scan(&m.ID, &m.PostedBy, &m.Text, &m.TimePostedEpoch)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fault("update message", err)
	}
	return &m, nil
}

func (s *PostgresStore) ListAllMessages(ctx context.Context) ([]models.Message, error) {
	return s.listMessages(ctx,
		`SELECT message_id, posted_by, message_text, time_posted_epoch
		 FROM message ORDER BY message_id`)
}

func (s *PostgresStore) ListMessagesByAccountID(ctx context.Context, id int) ([]models.Message, error) {
	return s.listMessages(ctx,
		`SELECT message_id, posted_by, message_text, time_posted_epoch
		 FROM message WHERE posted_by = $1 ORDER BY message_id`, id)
}

func (s *PostgresStore) listMessages(ctx context.Context, sql string, args ...any) ([]models.Message, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, s.fault("list messages", err)
	}
	defer rows.Close()

	var msgs []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.PostedBy, &m.Text, &m.TimePostedEpoch); err != nil {
			return nil, s.fault("scan message", err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, s.fault("list messages", err)
	}
	return msgs, nil
}
