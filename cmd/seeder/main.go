package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fieldpoint/academy/internal/attendance"
	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/config"
	"github.com/fieldpoint/academy/internal/database"
	"github.com/fieldpoint/academy/internal/roster"
)

const attendanceDays = 30

var firstNames = []string{"Anna", "Ben", "Cara", "Dan", "Ella", "Finn", "Grace", "Hugo", "Iris", "Jack", "Kaia", "Liam", "Maya", "Noah", "Olive", "Pete"}
var lastNames = []string{"Able", "Baker", "Cole", "Dunn", "Evans", "Ford", "Grant", "Hale", "Irwin", "Jones", "Keane", "Lowe", "Marsh", "Nash", "Orr", "Price"}

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	rosterStore := roster.New(db)
	attendanceStore := attendance.New(db)
	startTime := time.Now()

	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %s", err)
	}
	admin, err := rosterStore.CreateUser(roster.UserInfo{
		Name:  "Seed Admin",
		Email: "admin@seed.local",
		Role:  roster.RoleAdmin,
	}, hash)
	if err != nil {
		log.Fatalf("Failed to create seed admin: %s", err)
	}
	coach, err := rosterStore.CreateUser(roster.UserInfo{
		Name:  "Seed Coach",
		Email: "coach@seed.local",
		Role:  roster.RoleCoach,
	}, hash)
	if err != nil {
		log.Fatalf("Failed to create seed coach: %s", err)
	}
	log.Info("Created seed staff", "admin", admin.ID, "coach", coach.ID)

	for i, name := range []string{"Goalkeeper", "Defender", "Midfielder", "Striker"} {
		if _, err := rosterStore.CreatePosition(roster.Position{Name: name, SortOrder: i + 1}); err != nil {
			log.Fatalf("Failed to create position %s: %s", name, err)
		}
	}

	var teamIDs []string
	for _, name := range []string{"U10 Green", "U12 Red", "U14 Blue"} {
		team, err := rosterStore.CreateTeam(roster.Team{
			Name:        name,
			MainCoachID: &coach.ID,
			CoachIDs:    []string{coach.ID},
		})
		if err != nil {
			log.Fatalf("Failed to create team %s: %s", name, err)
		}
		teamIDs = append(teamIDs, team.ID)
	}

	var playerIDs []string
	for i := range firstNames {
		dob := fmt.Sprintf("%d-0%d-1%d", 2010+rand.Intn(5), 1+rand.Intn(9), rand.Intn(9))
		var teamID *string
		if i%5 != 4 { // every fifth player stays unassigned
			teamID = &teamIDs[i%len(teamIDs)]
		}
		player, err := rosterStore.CreatePlayer(roster.Player{
			FirstName: firstNames[i],
			LastName:  lastNames[i],
			DOB:       dob,
			TeamID:    teamID,
		})
		if err != nil {
			log.Fatalf("Failed to create player: %s", err)
		}
		playerIDs = append(playerIDs, player.ID)
	}
	log.Info("Created seed roster", "teams", len(teamIDs), "players", len(playerIDs))

	for day := 0; day < attendanceDays; day++ {
		date := time.Now().AddDate(0, 0, -day).Format("2006-01-02")
		var entries []attendance.Entry
		for _, id := range playerIDs {
			if rand.Intn(100) < 70 { // roughly 70% turnout
				entries = append(entries, attendance.Entry{PlayerID: id, Points: 1 + rand.Intn(5)})
			}
		}
		if len(entries) == 0 {
			continue
		}
		if err := attendanceStore.SaveDay(date, entries, coach.ID); err != nil {
			log.Fatalf("Failed to save attendance for %s: %s", date, err)
		}
	}

	log.Info("Successfully seeded demo data.", "duration", time.Since(startTime))
}
