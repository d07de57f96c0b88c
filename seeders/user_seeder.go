package seeders

import (
	"context"
	"fmt"

	"maintenance-system/pkg/constants"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	name     string
	email    string
	password string
	role     string
}

var defaultUsers = []seedUser{
	{"Administrator", "admin@example.com", "admin123", constants.RoleAdmin},
	{"Mike Johnson", "mike@example.com", "password", constants.RoleTechnician},
	{"Sarah Lee", "sarah@example.com", "password", constants.RoleTechnician},
	{"Tom Harris", "tom@example.com", "password", constants.RoleManager},
}

func seedUsers(ctx context.Context, db *pgxpool.Pool) error {
	for _, u := range defaultUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.email, err)
		}

		_, err = db.Exec(ctx,
			`INSERT INTO users (name, email, password_hash, role)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (email) DO NOTHING`,
			u.name, u.email, string(hash), u.role,
		)
		if err != nil {
			return fmt.Errorf("insert user %s: %w", u.email, err)
		}
	}
	return nil
}
