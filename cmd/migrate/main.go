package main

import (
	"log"
	"os"

	"clinical-curation-be/internal/model"
	"clinical-curation-be/pkg/database"

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

	// 3. Pre-Migration: Extensions
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.Feature{},
		&model.FeatureVersion{},
		&model.ActiveBinding{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Constraints & Views
	log.Println("Step 3: Creating Constraints and Views...")

	postMigrationSQL := []string{
		// Ledger rows follow their feature out of the catalog.
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_registry_feature_versions_feature') THEN
		     ALTER TABLE registry_feature_versions
		       ADD CONSTRAINT fk_registry_feature_versions_feature
		       FOREIGN KEY (feature_id) REFERENCES registry_features(id) ON DELETE CASCADE;
		   END IF;
		 END $$;`,
		`DO $$ BEGIN
		   IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_registry_active_bindings_feature') THEN
		     ALTER TABLE registry_active_bindings
		       ADD CONSTRAINT fk_registry_active_bindings_feature
		       FOREIGN KEY (feature_id) REFERENCES registry_features(id) ON DELETE CASCADE;
		   END IF;
		 END $$;`,

		// View: registry_lineage (one row per materialized table)
		`CREATE OR REPLACE VIEW registry_lineage AS
		 SELECT f.id AS feature_id, f.feature_name, v.version, v.table_name, v.is_live, v.registered_at
		 FROM registry_features f
		 JOIN registry_feature_versions v ON f.id = v.feature_id
		 ORDER BY f.feature_name, v.version;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
