package main

import (
	"log"
	"os"

	"studybuddy-be/internal/model"
	"studybuddy-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Resource{},
		&model.Chunk{},
		&model.ChunkEmbedding{},
		&model.StudyPlan{},
		&model.StudySession{},
		&model.Card{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Views (convenience surface for ad-hoc SQL)
	log.Println("Step 3: Creating Views...")

	postMigrationSQL := []string{
		`CREATE OR REPLACE VIEW semantic_searchable_chunks AS
		 SELECT c.id AS chunk_id, c.content, c.chunk_index, ce.embedding_value AS embedding, r.user_id
		 FROM chunks c
		 JOIN chunk_embeddings ce ON c.id = ce.chunk_id
		 JOIN resources r ON c.resource_id = r.id
		 WHERE c.deleted_at IS NULL AND r.deleted_at IS NULL;`,

		`CREATE OR REPLACE VIEW due_cards AS
		 SELECT id AS card_id, user_id, front, due_date, easiness, repetitions, last_reviewed_at
		 FROM cards
		 WHERE deleted_at IS NULL
		 ORDER BY (last_reviewed_at IS NULL) DESC, easiness ASC, due_date ASC;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
