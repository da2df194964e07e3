package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/barstock-api/internal/domain"
	"github.com/jhoicas/barstock-api/internal/domain/entity"
	"github.com/jhoicas/barstock-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Los reemplazos de accesos y capacidades son transaccionales, por eso necesita el pool.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, password_hash, name, superuser, status, created_at, updated_at`

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.Superuser, user.Status,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// FindByEmail obtiene un usuario por email (ya normalizado a minúsculas).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.one(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepo) one(ctx context.Context, query, arg string) (*entity.User, error) {
	var u entity.User
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Superuser, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ListAccess accesos del usuario agrupados por restaurante.
func (r *UserRepo) ListAccess(ctx context.Context, userID string) ([]*entity.UserAccess, error) {
	query := `
		SELECT tenant_id, location_id FROM user_access
		WHERE user_id = $1 ORDER BY tenant_id, location_id`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user access: %w", err)
	}
	defer rows.Close()
	var list []*entity.UserAccess
	byTenant := map[string]*entity.UserAccess{}
	for rows.Next() {
		var tenantID, locationID string
		if err := rows.Scan(&tenantID, &locationID); err != nil {
			return nil, fmt.Errorf("scan user access: %w", err)
		}
		a, ok := byTenant[tenantID]
		if !ok {
			a = &entity.UserAccess{UserID: userID, TenantID: tenantID}
			byTenant[tenantID] = a
			list = append(list, a)
		}
		a.LocationIDs = append(a.LocationIDs, locationID)
	}
	return list, rows.Err()
}

// SetAccess reemplaza los bares habilitados del usuario en un restaurante.
func (r *UserRepo) SetAccess(ctx context.Context, access *entity.UserAccess) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_access WHERE user_id = $1 AND tenant_id = $2`,
			access.UserID, access.TenantID); err != nil {
			return classify(err, "clear user access")
		}
		for _, loc := range access.LocationIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_access (user_id, tenant_id, location_id) VALUES ($1, $2, $3)`,
				access.UserID, access.TenantID, loc); err != nil {
				return classify(err, "insert user access")
			}
		}
		return nil
	})
}

// Capabilities capacidades guardadas del usuario.
func (r *UserRepo) Capabilities(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT capability FROM user_capabilities WHERE user_id = $1 ORDER BY capability`, userID)
	if err != nil {
		return nil, fmt.Errorf("list capabilities: %w", err)
	}
	defer rows.Close()
	var caps []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan capability: %w", err)
		}
		caps = append(caps, c)
	}
	return caps, rows.Err()
}

// SetCapabilities reemplaza las capacidades del usuario.
func (r *UserRepo) SetCapabilities(ctx context.Context, userID string, caps []string) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_capabilities WHERE user_id = $1`, userID); err != nil {
			return classify(err, "clear capabilities")
		}
		for _, c := range caps {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_capabilities (user_id, capability) VALUES ($1, $2)`, userID, c); err != nil {
				return classify(err, "insert capability")
			}
		}
		return nil
	})
}
