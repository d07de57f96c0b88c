package seeders

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type seedTeam struct {
	name       string
	department string
	icon       string
}

var defaultTeams = []seedTeam{
	{"Mechanics", "Maintenance", "wrench"},
	{"Electricians", "Maintenance", "zap"},
	{"IT Support", "IT", "monitor"},
}

type seedEquipmentRow struct {
	name       string
	code       string
	location   string
	department string
	status     string
}

var defaultEquipment = []seedEquipmentRow{
	{"Conveyor Belt A", "CONV-001", "Hall 1", "Production", "operational"},
	{"Hydraulic Press", "PRESS-001", "Hall 1", "Production", "operational"},
	{"CNC Mill", "CNC-001", "Hall 2", "Production", "maintenance"},
	{"Forklift 3", "FORK-003", "Warehouse", "Logistics", "operational"},
	{"Compressor B", "COMP-002", "Basement", "Facilities", "down"},
}

func seedTeams(ctx context.Context, db *pgxpool.Pool) error {
	for _, t := range defaultTeams {
		_, err := db.Exec(ctx,
			`INSERT INTO teams (name, department, icon)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO NOTHING`,
			t.name, t.department, t.icon,
		)
		if err != nil {
			return fmt.Errorf("insert team %s: %w", t.name, err)
		}
	}
	return nil
}

func seedEquipment(ctx context.Context, db *pgxpool.Pool) error {
	for _, e := range defaultEquipment {
		_, err := db.Exec(ctx,
			`INSERT INTO equipments (name, code, location, department, status)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (code) DO NOTHING`,
			e.name, e.code, e.location, e.department, e.status,
		)
		if err != nil {
			return fmt.Errorf("insert equipment %s: %w", e.code, err)
		}
	}
	return nil
}
