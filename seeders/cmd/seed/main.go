package main

import (
	"flag"
	"log"

	"maintenance-system/pkg/config"
	"maintenance-system/pkg/database/postgresql"
	"maintenance-system/seeders"
)

func main() {
	runUsers := flag.Bool("users", false, "seed the default admin and technician accounts")
	runWorkshop := flag.Bool("workshop", false, "seed demo teams and equipment")
	runAll := flag.Bool("all", false, "run every seeder")

	flag.Parse()

	if !*runUsers && !*runWorkshop && !*runAll {
		log.Println("no seeder selected")
		flag.PrintDefaults()
		return
	}

	cfg := config.New()
	db := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer db.Close()

	if err := postgresql.RunMigrations(cfg.Postgres.DSN, "migrations"); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}

	if *runAll || *runUsers {
		seeders.SeedUsers(db)
	}
	if *runAll || *runWorkshop {
		seeders.SeedWorkshop(db)
	}

	log.Println("seeding finished")
}
