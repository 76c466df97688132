package seeds

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type account struct {
	username string
	email    string
	password string
}

// Demo accounts inserted when the signups table is empty, so a fresh
// deployment has something to sign in with.
var demoAccounts = []account{
	{username: "demo", email: "demo@example.com", password: "demo1234"},
	{username: "alex", email: "alex@example.com", password: "alex1234"},
	{username: "sam", email: "sam@example.com", password: "sam12345"},
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	log.Println("[seed] inserting demo accounts")

	for _, acc := range demoAccounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(acc.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", acc.username, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO signups (username, email, password_hash)
			 VALUES ($1, $2, $3)
			 ON CONFLICT DO NOTHING`,
			acc.username, acc.email, string(hash),
		); err != nil {
			return fmt.Errorf("insert demo account %s: %w", acc.username, err)
		}
	}

	log.Println("[seed] seeding complete")
	return nil
}
