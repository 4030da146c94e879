package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"pangate/internal/plugin/models"
	"pangate/pkg/secrets"
)

const (
	pqCheckViolation  = "23514"
	pqUniqueViolation = "23505"
)

// PostgresStore persists plugins in the plugins table. The credential
// invariant is enforced by the table's CHECK constraint.
type PostgresStore struct {
	db     *sql.DB
	sealer *secrets.Sealer
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*PostgresStore)

// WithSealer encrypts password and api_key at rest.
func WithSealer(sealer *secrets.Sealer) PostgresOption {
	return func(s *PostgresStore) {
		s.sealer = sealer
	}
}

// NewPostgres constructs a PostgreSQL-backed plugin store.
func NewPostgres(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

const pluginColumns = `id, uid, name, provider, service, username, password, api_key, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin is required")
	}
	password, apiKey, err := s.seal(p)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO plugins (` + pluginColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		p.ID,
		p.UID,
		p.Name,
		string(p.Provider),
		string(p.Service),
		nullIfEmpty(p.Username),
		nullIfEmpty(password),
		nullIfEmpty(apiKey),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create plugin: %w", translate(err))
	}
	return nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin is required")
	}
	password, apiKey, err := s.seal(p)
	if err != nil {
		return err
	}
	query := `
		UPDATE plugins SET
			name = $2,
			provider = $3,
			service = $4,
			username = $5,
			password = $6,
			api_key = $7,
			updated_at = $8
		WHERE uid = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		p.UID,
		p.Name,
		string(p.Provider),
		string(p.Service),
		nullIfEmpty(p.Username),
		nullIfEmpty(password),
		nullIfEmpty(apiKey),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update plugin: %w", translate(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update plugin rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FindByUID(ctx context.Context, uid string) (*models.Plugin, error) {
	query := `SELECT ` + pluginColumns + ` FROM plugins WHERE uid = $1`
	p, err := s.scan(s.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find plugin by uid: %w", err)
	}
	return p, nil
}

// List returns plugins ordered by creation time. An empty service lists all.
func (s *PostgresStore) List(ctx context.Context, service models.Service) ([]*models.Plugin, error) {
	query := `
		SELECT ` + pluginColumns + `
		FROM plugins
		WHERE ($1::text = '' OR service = $1::text)
		ORDER BY created_at, uid
	`
	rows, err := s.db.QueryContext(ctx, query, string(service))
	if err != nil {
		return nil, fmt.Errorf("list plugins: %w", err)
	}
	defer rows.Close()

	var out []*models.Plugin
	for rows.Next() {
		p, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plugin: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plugins: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) DeleteByUID(ctx context.Context, uid string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM plugins WHERE uid = $1`, uid)
	if err != nil {
		return fmt.Errorf("delete plugin: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plugin rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scan(row rowScanner) (*models.Plugin, error) {
	var (
		p                          models.Plugin
		provider, service          string
		username, password, apiKey sql.NullString
	)
	if err := row.Scan(
		&p.ID,
		&p.UID,
		&p.Name,
		&provider,
		&service,
		&username,
		&password,
		&apiKey,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Provider = models.Provider(provider)
	p.Service = models.Service(service)
	p.Username = username.String

	var err error
	if p.Password, err = s.sealer.Open(password.String); err != nil {
		return nil, fmt.Errorf("open password: %w", err)
	}
	if p.APIKey, err = s.sealer.Open(apiKey.String); err != nil {
		return nil, fmt.Errorf("open api key: %w", err)
	}
	return &p, nil
}

func (s *PostgresStore) seal(p *models.Plugin) (password, apiKey string, err error) {
	if password, err = s.sealer.Seal(p.Password); err != nil {
		return "", "", fmt.Errorf("seal password: %w", err)
	}
	if apiKey, err = s.sealer.Seal(p.APIKey); err != nil {
		return "", "", fmt.Errorf("seal api key: %w", err)
	}
	return password, apiKey, nil
}

// translate maps constraint violations to store sentinels.
func translate(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch pqErr.Code {
	case pqCheckViolation:
		if pqErr.Constraint == models.CredentialsConstraint {
			return ErrCredentialsRequired
		}
	case pqUniqueViolation:
		return ErrConflict
	}
	return err
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
