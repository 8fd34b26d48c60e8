package main

import (
	"fmt"
	"os"
	"strings"

	"hotel-management/hotel"
)

func main() {
	cfg := hotel.LoadConfig()

	// Clean up any existing database files
	fmt.Println("Cleaning up existing database files...")
	dbFiles := []string{cfg.DBPath, cfg.DBPath + "-shm", cfg.DBPath + "-wal"}
	for _, file := range dbFiles {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}
	fmt.Println("Database cleanup complete.")

	manager, err := hotel.NewHotelManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()

	types := []string{
		"SINGLE", "SINGLE", "SINGLE", "SINGLE",
		"DOUBLE", "DOUBLE", "DOUBLE",
		"SUITE", "SUITE",
		"PENTHOUSE",
	}
	rates := []float64{
		50, 50, 55, 60,
		80, 85, 90,
		150, 175,
		400,
	}

	fmt.Printf("Registering %d rooms...\n", len(types))
	rooms, err := manager.RegisterRooms(types, rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error registering rooms: %v\n", err)
		os.Exit(1)
	}

	guests := []struct {
		name       string
		email      string
		nationalID string
		vip        bool
		password   string
	}{
		{"Ana Garcia", "ana@example.com", "11111111A", false, "ana-pass"},
		{"Luis Martinez", "luis@example.com", "22222222B", false, "luis-pass"},
		{"Marta Lopez", "marta@example.com", "33333333C", true, "marta-pass"},
	}

	fmt.Printf("Registering %d guests...\n", len(guests))
	successCount := 0
	errorCount := 0
	for _, g := range guests {
		fmt.Printf("Registering: %s... ", g.name)
		guest, err := manager.RegisterGuest(g.name, g.email, g.nationalID, g.vip, g.password)
		if err != nil {
			fmt.Printf("ERROR - %v\n", err)
			errorCount++
			continue
		}
		fmt.Printf("SUCCESS (ID: %d)\n", guest.ID)
		successCount++
	}

	fmt.Printf("\nSeed complete!\n")
	fmt.Printf("Rooms registered: %d\n", len(rooms))
	fmt.Printf("Guests registered: %d\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	fmt.Println("\nRooms:")
	fmt.Printf("%-8s %-15s %s\n", "Room", "Type", "Base rate")
	fmt.Println(strings.Repeat("-", 35))
	for _, room := range rooms {
		fmt.Printf("#%-7d %-15s %.2f\n", room.Number, room.Type, room.BaseRate)
	}
}
