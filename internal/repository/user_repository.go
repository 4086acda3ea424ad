package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/hmsdev/hotel-frontdesk/internal/model"
)

// UserRepo persists application user accounts. Password hashing happens in
// the handler; the repository only ever sees bcrypt hashes.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// ErrUserNotFound is returned when no user with the given key exists.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when a create or update collides with an
// existing username.
var ErrUsernameExists = errors.New("username already exists")

const userColumns = `id, username, password_hash, name, role, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ? LIMIT 1`, id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? LIMIT 1`, username))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Create inserts a new user and populates the generated ID. The username
// is stored lowercased.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, name, role) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Name, u.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUsernameExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// Update rewrites a user's username, name and role. An empty newHash
// leaves the stored password untouched.
func (r *UserRepo) Update(ctx context.Context, u *model.User, newHash string) error {
	u.Username = strings.ToLower(strings.TrimSpace(u.Username))
	var (
		res sql.Result
		err error
	)
	if newHash != "" {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET username = ?, password_hash = ?, name = ?, role = ? WHERE id = ?`,
			u.Username, newHash, u.Name, u.Role, u.ID)
	} else {
		res, err = r.db.ExecContext(ctx,
			`UPDATE users SET username = ?, name = ?, role = ? WHERE id = ?`,
			u.Username, u.Name, u.Role, u.ID)
	}
	if err != nil {
		if isDuplicateKey(err) {
			return ErrUsernameExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM users WHERE id = ?`, u.ID).Scan(&one); err == sql.ErrNoRows {
			return ErrUserNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a user by ID.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
