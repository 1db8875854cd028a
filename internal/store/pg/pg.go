// Package pg backs the client/user directory with Postgres via pgx.
package pg

import (
	"context"
	"errors"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tokengate/authcore/internal/store"
	migrations "github.com/tokengate/authcore/migrations/postgres"
)

type Directory struct{ pool *pgxpool.Pool }

func New(ctx context.Context, dsn string) (*Directory, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 8
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	return &Directory{pool: pool}, nil
}

func (d *Directory) Ping(ctx context.Context) error { return d.pool.Ping(ctx) }

// Migrate applies the embedded schema files in lexical order. Statements
// are idempotent, so re-running on startup is safe.
func (d *Directory) Migrate(ctx context.Context) error {
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		sql, err := migrations.FS.ReadFile(name)
		if err != nil {
			return err
		}
		if _, err := d.pool.Exec(ctx, string(sql)); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the underlying pool (idempotent).
func (d *Directory) Close() {
	if d != nil && d.pool != nil {
		d.pool.Close()
	}
}

func (d *Directory) Client(ctx context.Context, clientID string) (*store.Client, error) {
	const q = `
		SELECT id, secret_hash, COALESCE(redirect_uri, ''), grant_types, jwt_key, enabled
		FROM oauth_clients WHERE id = $1`

	var c store.Client
	err := d.pool.QueryRow(ctx, q, clientID).Scan(
		&c.ID, &c.SecretHash, &c.RedirectURI, &c.GrantTypes, &c.JWTKey, &c.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (d *Directory) UserByID(ctx context.Context, id string) (*store.User, error) {
	return d.user(ctx, `WHERE id = $1`, id)
}

func (d *Directory) UserByUsername(ctx context.Context, username string) (*store.User, error) {
	return d.user(ctx, `WHERE username = $1`, username)
}

func (d *Directory) UserByCustomToken(ctx context.Context, token string) (*store.User, error) {
	return d.user(ctx, `
		WHERE id = (SELECT user_id FROM custom_tokens
		            WHERE token = $1 AND (expires_at IS NULL OR expires_at > now()))`, token)
}

func (d *Directory) UserByAssertion(ctx context.Context, assertion string) (*store.User, error) {
	return d.user(ctx, `
		WHERE id = (SELECT user_id FROM saml_assertions
		            WHERE assertion = $1 AND (expires_at IS NULL OR expires_at > now()))`, assertion)
}

func (d *Directory) user(ctx context.Context, where string, arg any) (*store.User, error) {
	q := `
		SELECT id, username, password_hash, COALESCE(email, ''), COALESCE(name, ''), enabled
		FROM users ` + where

	var u store.User
	err := d.pool.QueryRow(ctx, q, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Name, &u.Enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
