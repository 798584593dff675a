package main

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"blogcore/config"
	"blogcore/internal/domain/entity"
	"blogcore/pkg/helpers"
)

// Seeds a demo author plus a few posts so the listing endpoints have
// something to return on a fresh database.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	hash, err := helpers.HashPassword("password123")
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var authorID string
	err = db.QueryRow(`
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (lower(email)) DO UPDATE SET first_name = EXCLUDED.first_name
		RETURNING id
	`, "Demo", "Author", "demo@example.com", hash).Scan(&authorID)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=demo@example.com password=password123\n", authorID)

	posts := []struct {
		title string
		state entity.BlogState
		words int
	}{
		{"Getting Started with Go Modules", entity.StatePublished, 350},
		{"Understanding Context Cancellation", entity.StatePublished, 800},
		{"Draft Notes on Generics", entity.StateDraft, 120},
	}

	for _, p := range posts {
		body := strings.TrimSpace(strings.Repeat("lorem ", p.words))
		_, err := db.Exec(`
			INSERT INTO blogs (title, description, tags, body, author_id, state, reading_time)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, p.title, "seeded post", []string{"go", "demo"}, body, authorID, p.state, entity.ReadingTime(body))
		if err != nil {
			log.Fatalf("failed to seed blog %q: %v", p.title, err)
		}
		fmt.Printf("seeded blog: %s (%s)\n", p.title, p.state)
	}
}
