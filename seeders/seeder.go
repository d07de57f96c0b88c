package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsers creates the default admin plus a pair of technicians. Existing
// emails are left untouched so the seeder stays re-runnable.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding users...")

	if err := seedUsers(ctx, db); err != nil {
		log.Fatalf("failed to seed users: %v", err)
	}
	log.Println("users seeded")
}

// SeedWorkshop creates the demo teams and equipment park.
func SeedWorkshop(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("seeding teams and equipment...")

	if err := seedTeams(ctx, db); err != nil {
		log.Fatalf("failed to seed teams: %v", err)
	}
	if err := seedEquipment(ctx, db); err != nil {
		log.Fatalf("failed to seed equipment: %v", err)
	}
	log.Println("teams and equipment seeded")
}
