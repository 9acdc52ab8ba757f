package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped successfully")

	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("Data seeded successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Usage: go run main.go [drop|up|seed]")
		os.Exit(1)
	}
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`DROP TABLE IF EXISTS registrations CASCADE`,
		`DROP TABLE IF EXISTS activities CASCADE`,
		`DROP TABLE IF EXISTS users CASCADE`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
		fmt.Printf("  Dropped: %s\n", query)
	}

	return nil
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(80) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			real_name VARCHAR(100) NOT NULL,
			phone VARCHAR(20) NOT NULL DEFAULT '',
			avatar VARCHAR(255) NOT NULL DEFAULT '',
			role VARCHAR(20) NOT NULL DEFAULT 'volunteer',
			volunteer_hours DOUBLE PRECISION NOT NULL DEFAULT 0
				CHECK (volunteer_hours >= 0),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,

		// current_participants is only ever written by the registration
		// transactions; the CHECK backs up the conditional-update guard.
		`CREATE TABLE IF NOT EXISTS activities (
			id BIGSERIAL PRIMARY KEY,
			title VARCHAR(200) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			location VARCHAR(200) NOT NULL,
			start_time TIMESTAMPTZ NOT NULL,
			end_time TIMESTAMPTZ NOT NULL,
			max_participants INTEGER NOT NULL DEFAULT 50
				CHECK (max_participants > 0),
			current_participants INTEGER NOT NULL DEFAULT 0
				CHECK (current_participants >= 0 AND current_participants <= max_participants),
			status VARCHAR(20) NOT NULL DEFAULT 'active',
			category VARCHAR(50) NOT NULL DEFAULT '',
			volunteer_hours DOUBLE PRECISION NOT NULL DEFAULT 0
				CHECK (volunteer_hours >= 0),
			requirements TEXT NOT NULL DEFAULT '',
			contact_person VARCHAR(50) NOT NULL DEFAULT '',
			contact_phone VARCHAR(20) NOT NULL DEFAULT '',
			image_url VARCHAR(255) NOT NULL DEFAULT '',
			created_by BIGINT NOT NULL REFERENCES users(id),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			CHECK (start_time < end_time)
		)`,

		// The unique pair constraint is the authoritative duplicate guard:
		// one registration row per (user, activity), in any status.
		`CREATE TABLE IF NOT EXISTS registrations (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id),
			activity_id BIGINT NOT NULL REFERENCES activities(id),
			status VARCHAR(20) NOT NULL DEFAULT 'registered',
			registration_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			check_in_time TIMESTAMPTZ,
			completion_time TIMESTAMPTZ,
			notes TEXT NOT NULL DEFAULT '',
			rating INTEGER CHECK (rating BETWEEN 1 AND 5),
			feedback TEXT NOT NULL DEFAULT '',
			UNIQUE (user_id, activity_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_registrations_user_id ON registrations(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_registrations_activity_id ON registrations(activity_id)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_status ON activities(status)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_category ON activities(category)`,
		`CREATE INDEX IF NOT EXISTS idx_activities_created_at ON activities(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := conn.Exec(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w\nQuery: %s", err, query)
		}
		fmt.Printf("  Created: %s\n", summarize(query))
	}

	return nil
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	// Demo organizer account, password "changeme" (bcrypt, cost 12)
	query := `
		INSERT INTO users (username, email, password_hash, real_name, role) VALUES
		('organizer', 'organizer@example.com',
		 '$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW',
		 'Demo Organizer', 'organizer')
		ON CONFLICT (username) DO NOTHING
	`
	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	fmt.Println("  Seeded demo organizer")

	query = `
		INSERT INTO activities (title, description, location, start_time, end_time,
		                        max_participants, category, volunteer_hours, created_by)
		SELECT 'Park Cleanup', 'Help clean up the riverside park.', 'Riverside Park',
		       NOW() + INTERVAL '7 days', NOW() + INTERVAL '7 days 3 hours',
		       30, 'environment', 3.0, id
		FROM users WHERE username = 'organizer'
		ON CONFLICT DO NOTHING
	`
	if _, err := conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}
	fmt.Println("  Seeded demo activity")

	return nil
}

func summarize(query string) string {
	if len(query) > 50 {
		return query[:50] + "..."
	}
	return query
}
