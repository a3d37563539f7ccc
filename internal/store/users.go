package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserExists 用户已存在
	ErrUserExists = errors.New("user already exists")
)

// UserSeed 用户种子文件中的一项
type UserSeed struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type usersFile struct {
	Users []UserSeed `json:"users"`
}

// CreateUser 新建用户（bcrypt 哈希）
func (s *Store) CreateUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return fmt.Errorf("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
		ON CONFLICT(username) DO NOTHING
	`, username, string(hash))
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserExists
	}
	return nil
}

// SetPassword 创建用户或重置密码
func (s *Store) SetPassword(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (username, password_hash) VALUES (?, ?)
		ON CONFLICT(username) DO UPDATE SET password_hash = excluded.password_hash
	`, strings.TrimSpace(username), string(hash))
	if err != nil {
		return fmt.Errorf("failed to set password: %w", err)
	}
	return nil
}

// Authenticate 校验用户名与密码
func (s *Store) Authenticate(ctx context.Context, username, password string) error {
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT password_hash FROM users WHERE username = ?`, strings.TrimSpace(username),
	).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInvalidCredentials
	}
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// CountUsers 用户数量
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

// SeedUsersFromFile 从 JSON 文件（{"users":[{"username","password"}]}）导入尚不存在的用户；
// 文件不存在时返回 0
func (s *Store) SeedUsersFromFile(ctx context.Context, path string) (int, error) {
	if path == "" {
		return 0, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read users file: %w", err)
	}

	var f usersFile
	if err := json.Unmarshal(data, &f); err != nil {
		return 0, fmt.Errorf("failed to parse users file: %w", err)
	}

	created := 0
	for _, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			continue
		}
		err := s.CreateUser(ctx, u.Username, u.Password)
		switch {
		case err == nil:
			created++
		case errors.Is(err, ErrUserExists):
		default:
			return created, err
		}
	}
	return created, nil
}
