package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fieldpoint/academy/internal/auth"
	"github.com/fieldpoint/academy/internal/database"
	"github.com/fieldpoint/academy/internal/roster"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	attendanceDate string
	analyticsFrom  string
	analyticsTo    string
	analyticsTeam  string
	exportOut      string
)

func init() {
	attendanceCmd.Flags().StringVar(&attendanceDate, "date", "", "Date to fetch (yyyy-mm-dd)")
	attendanceCmd.MarkFlagRequired("date")
	analyticsCmd.Flags().StringVar(&analyticsFrom, "from", "", "Start date (yyyy-mm-dd)")
	analyticsCmd.Flags().StringVar(&analyticsTo, "to", "", "End date (yyyy-mm-dd)")
	analyticsCmd.Flags().StringVar(&analyticsTeam, "team", "", "Team id to filter by")
	exportCmd.Flags().StringVar(&exportOut, "out", "academy.snapshot", "Output file for the snapshot")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(attendanceCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(createAdminCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and print a session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := json.Marshal(map[string]string{"email": args[0], "password": args[1]})
		if err != nil {
			return err
		}
		resp, err := http.Post(host+"/login", "application/json", bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to make request: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response body: %w", err)
		}
		fmt.Printf("Status Code: %d\n", resp.StatusCode)
		fmt.Println(string(body))
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "List the teams in the roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/teams")
	},
}

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Show the attendance records for a date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/attendance?date=" + attendanceDate)
	},
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show attendance analytics, optionally filtered",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(fmt.Sprintf("/attendance/analytics?from=%s&to=%s&teamId=%s", analyticsFrom, analyticsTo, analyticsTeam))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download a full snapshot of the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := doGet("/admin/export")
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return fmt.Errorf("export failed with status %d: %s", resp.StatusCode, body)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}
		if err := os.WriteFile(exportOut, data, 0o600); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		fmt.Printf("Wrote %d bytes to %s\n", len(data), exportOut)
		return nil
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

// loadDBConfig reads only the database settings. Bootstrap has to work on a
// fresh host before the rest of the server environment is configured.
func loadDBConfig() (dbName, primaryURL, authToken string, err error) {
	godotenv.Load()
	dbName = os.Getenv("DB_NAME")
	if dbName == "" {
		return "", "", "", fmt.Errorf("required environment variable DB_NAME is not set")
	}
	return dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), nil
}

// createAdminCmd writes directly to the database so the first admin account
// can be created before any login is possible.
var createAdminCmd = &cobra.Command{
	Use:   "create-admin <name> <email> <password>",
	Short: "Create an admin account directly in the database",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbName, primaryURL, authToken, err := loadDBConfig()
		if err != nil {
			return err
		}
		db, dbTeardown, err := database.InitDB(dbName, primaryURL, authToken, "./migrations")
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer dbTeardown()

		hash, err := auth.HashPassword(args[2])
		if err != nil {
			return err
		}
		user, err := roster.New(db).CreateUser(roster.UserInfo{
			Name:  args[0],
			Email: args[1],
			Role:  roster.RoleAdmin,
		}, hash)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		fmt.Printf("Created admin %s (%s)\n", user.Name, user.ID)
		return nil
	},
}

func doGet(endpoint string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, host+endpoint, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := doGet(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
