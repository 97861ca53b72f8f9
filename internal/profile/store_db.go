package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	pgUniqueCode = "23505"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (Profile, bool, error) {
	var p Profile
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT user_id, name, email, phone
			FROM profiles
			WHERE user_id = $1
		`, userID).Scan(&p.UserID, &p.Name, &p.Email, &p.Phone)
	})

	if err == sql.ErrNoRows {
		return Profile{}, false, nil
	}
	if err != nil {
		return Profile{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) UpsertProfile(ctx context.Context, p Profile) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO profiles (user_id, name, email, phone)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id) DO UPDATE
			SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone
		`, p.UserID, p.Name, p.Email, p.Phone)
		return err
	})
}

func (s *PostgresStore) ListAddresses(ctx context.Context, userID string) ([]Address, error) {
	var out []Address

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, label, line1, line2, city, state, postal_code, country, is_default, created_at
			FROM addresses
			WHERE user_id = $1
			ORDER BY created_at ASC
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Address, 0, 4)
		for rows.Next() {
			var a Address
			if err := rows.Scan(&a.ID, &a.Label, &a.Line1, &a.Line2, &a.City, &a.State,
				&a.PostalCode, &a.Country, &a.Default, &a.CreatedAt); err != nil {
				return err
			}
			out = append(out, a)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) AddAddress(ctx context.Context, userID string, a Address) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		var existing int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM addresses WHERE user_id = $1
		`, userID).Scan(&existing); err != nil {
			return err
		}

		isDefault := a.Default || existing == 0

		if isDefault {
			if _, err := tx.ExecContext(ctx, `
				UPDATE addresses SET is_default = FALSE WHERE user_id = $1
			`, userID); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO addresses (id, user_id, label, line1, line2, city, state, postal_code, country, is_default, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, a.ID, userID, a.Label, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country, isDefault, a.CreatedAt); err != nil {
			if isUniqueViolation(err) {
				return errors.New("address id already exists")
			}
			return err
		}

		return tx.Commit()
	})
}

func (s *PostgresStore) UpdateAddress(ctx context.Context, userID string, a Address) (bool, error) {
	var found bool
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE addresses
			SET label = $3, line1 = $4, line2 = $5, city = $6, state = $7, postal_code = $8, country = $9
			WHERE id = $1 AND user_id = $2
		`, a.ID, userID, a.Label, a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		found = n > 0
		return err
	})
	return found, err
}

func (s *PostgresStore) DeleteAddress(ctx context.Context, userID, addressID string) (bool, error) {
	var found bool
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		var wasDefault bool
		err = tx.QueryRowContext(ctx, `
			DELETE FROM addresses
			WHERE id = $1 AND user_id = $2
			RETURNING is_default
		`, addressID, userID).Scan(&wasDefault)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = true

		if wasDefault {
			if _, err := tx.ExecContext(ctx, `
				UPDATE addresses SET is_default = TRUE
				WHERE id = (
					SELECT id FROM addresses
					WHERE user_id = $1
					ORDER BY created_at ASC
					LIMIT 1
				)
			`, userID); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
	return found, err
}

func (s *PostgresStore) SetDefaultAddress(ctx context.Context, userID, addressID string) (bool, error) {
	var found bool
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		res, err := tx.ExecContext(ctx, `
			UPDATE addresses SET is_default = (id = $2)
			WHERE user_id = $1
			  AND EXISTS (SELECT 1 FROM addresses WHERE id = $2 AND user_id = $1)
		`, userID, addressID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		found = n > 0

		return tx.Commit()
	})
	return found, err
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueCode
}
