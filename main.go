package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"hotel-management/hotel"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const dateLayout = "2006-01-02"

// readPassword securely reads a password with masking
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	fmt.Println() // Add newline after password input
	return strings.TrimSpace(string(bytePassword)), nil
}

// authenticateGuest prompts for and verifies a guest's credentials
func authenticateGuest(mgr *hotel.HotelManager, guestID int) error {
	password, err := readPassword("Enter your password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	return mgr.AuthenticateGuest(guestID, password)
}

func main() {
	root := &cobra.Command{
		Use:          "hotel",
		Short:        "Hotel reservation management shell",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell()
		},
	}
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell() error {
	cfg := hotel.LoadConfig()
	manager, err := hotel.NewHotelManager(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer manager.Close()

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Welcome to %s", cfg.Name)
	if cfg.Address != "" {
		fmt.Printf(", %s", cfg.Address)
	}
	if cfg.Phone != "" {
		fmt.Printf(" (%s)", cfg.Phone)
	}
	fmt.Println()
	fmt.Println("Available commands:")
	fmt.Println("  Rooms: add room, add rooms, list rooms")
	fmt.Println("  Guests: add guest, list guests, reset password")
	fmt.Println("  Bookings: book, list reservations")
	fmt.Println("  System: exit")

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}
		cmd := strings.TrimSpace(scanner.Text())

		switch cmd {
		case "add room":
			handleAddRoom(scanner, manager)
		case "add rooms":
			handleAddRooms(scanner, manager)
		case "add guest":
			handleAddGuest(scanner, manager)
		case "book":
			handleBook(scanner, manager)
		case "list rooms":
			handleListRooms(manager)
		case "list reservations":
			handleListReservations(manager)
		case "list guests":
			handleListGuests(manager)
		case "reset password":
			handleResetPassword(scanner, manager)
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Unknown command. Type one of the available commands listed above.")
		}
	}
	return nil
}

func handleAddRoom(sc *bufio.Scanner, mgr *hotel.HotelManager) {
	fmt.Print("Room type (e.g. SINGLE, DOUBLE, SUITE): ")
	if !sc.Scan() {
		return
	}
	roomType := strings.TrimSpace(sc.Text())

	fmt.Print("Base nightly rate: ")
	if !sc.Scan() {
		return
	}
	rateStr := strings.TrimSpace(sc.Text())
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		fmt.Printf("Invalid rate: %s\n", rateStr)
		return
	}

	room, err := mgr.RegisterRoom(roomType, rate)
	if err != nil {
		fmt.Printf("Error adding room: %v\n", err)
		return
	}
	fmt.Printf("Added room #%d (%s, %.2f/night)\n", room.Number, room.Type, room.BaseRate)
}

func handleAddRooms(sc *bufio.Scanner, mgr *hotel.HotelManager) {
	fmt.Print("Room types (comma-separated): ")
	if !sc.Scan() {
		return
	}
	var types []string
	for _, t := range strings.Split(sc.Text(), ",") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}

	fmt.Print("Base rates (comma-separated, same order): ")
	if !sc.Scan() {
		return
	}
	var rates []float64
	for _, r := range strings.Split(sc.Text(), ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		rate, err := strconv.ParseFloat(r, 64)
		if err != nil {
			fmt.Printf("Invalid rate: %s\n", r)
			return
		}
		rates = append(rates, rate)
	}

	if len(types) != len(rates) {
		fmt.Printf("Warning: %d types and %d rates; extra entries are ignored.\n", len(types), len(rates))
	}

	rooms, err := mgr.RegisterRooms(types, rates)
	if err != nil {
		fmt.Printf("Error adding rooms: %v\n", err)
		return
	}
	fmt.Printf("Added %d room(s):\n", len(rooms))
	for _, room := range rooms {
		fmt.Printf("  #%d %s %.2f/night\n", room.Number, room.Type, room.BaseRate)
	}
}

func handleAddGuest(sc *bufio.Scanner, mgr *hotel.HotelManager) {
	fmt.Print("Name: ")
	if !sc.Scan() {
		return
	}
	name := strings.TrimSpace(sc.Text())

	fmt.Print("Email: ")
	if !sc.Scan() {
		return
	}
	email := strings.TrimSpace(sc.Text())

	fmt.Print("National ID: ")
	if !sc.Scan() {
		return
	}
	nationalID := strings.TrimSpace(sc.Text())

	fmt.Print("VIP? (y/N): ")
	if !sc.Scan() {
		return
	}
	vip := strings.EqualFold(strings.TrimSpace(sc.Text()), "y")

	password, err := readPassword(fmt.Sprintf("Enter password for %s: ", name))
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if password == "" {
		fmt.Println("Error: Password cannot be empty")
		return
	}

	guest, err := mgr.RegisterGuest(name, email, nationalID, vip, password)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Printf("Added guest '%s' with ID %d\n", guest.Name, guest.ID)
}

func handleBook(sc *bufio.Scanner, mgr *hotel.HotelManager) {
	fmt.Print("Guest ID: ")
	if !sc.Scan() {
		return
	}
	guestIDStr := strings.TrimSpace(sc.Text())
	guestID, err := strconv.Atoi(guestIDStr)
	if err != nil {
		fmt.Printf("Invalid guest ID: %s\n", guestIDStr)
		return
	}

	// Authenticate the guest before booking on their behalf.
	if err := authenticateGuest(mgr, guestID); err != nil {
		fmt.Printf("Authentication failed: %v\n", err)
		return
	}

	fmt.Print("Room type: ")
	if !sc.Scan() {
		return
	}
	roomType := strings.TrimSpace(sc.Text())

	checkIn, ok := promptDate(sc, "Check-in (YYYY-MM-DD): ")
	if !ok {
		return
	}
	checkOut, ok := promptDate(sc, "Check-out (YYYY-MM-DD): ")
	if !ok {
		return
	}

	result, err := mgr.ReserveRoom(guestID, roomType, checkIn, checkOut)
	if err != nil {
		fmt.Printf("Error saving booking: %v\n", err)
		return
	}

	switch result.Outcome {
	case hotel.Booked:
		if result.PromotedToVIP {
			if guest, ok := mgr.Guest(guestID); ok {
				fmt.Printf("Guest %s is now VIP\n", guest.Name)
			}
		}
		fmt.Printf("Booking confirmed: room #%d (reservation #%d)\n", result.RoomNumber, result.ReservationID)
	case hotel.NoRoomsInHotel:
		fmt.Println("There are no rooms registered in the hotel.")
	case hotel.GuestNotFound:
		fmt.Printf("No guest with ID %d.\n", guestID)
	case hotel.InvalidDateRange:
		fmt.Println("Check-in date must be before the check-out date.")
	case hotel.NoRoomAvailableForType:
		fmt.Printf("No available rooms of type %s.\n", strings.ToUpper(roomType))
	}
}

func promptDate(sc *bufio.Scanner, prompt string) (time.Time, bool) {
	fmt.Print(prompt)
	if !sc.Scan() {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(sc.Text())
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		fmt.Printf("Invalid date: %s\n", raw)
		return time.Time{}, false
	}
	return date, true
}

func handleListRooms(mgr *hotel.HotelManager) {
	rooms := mgr.AvailableRooms()
	if len(rooms) == 0 {
		fmt.Println("No rooms available.")
		return
	}

	fmt.Printf("%-8s %-15s %s\n", "Room", "Type", "Base rate")
	fmt.Println(strings.Repeat("-", 35))
	for _, room := range rooms {
		fmt.Printf("#%-7d %-15s %.2f\n", room.Number, room.Type, room.BaseRate)
	}
}

func handleListReservations(mgr *hotel.HotelManager) {
	byRoom := mgr.ReservationsByRoom()
	if len(byRoom) == 0 {
		fmt.Println("No rooms in the hotel.")
		return
	}

	// Room numbers are contiguous from 1, so walk them in order even though
	// the ledger map itself is unordered.
	total := 0
	for _, room := range mgr.Rooms() {
		fmt.Printf("Room #%d\n", room.Number)
		for _, res := range byRoom[room.Number] {
			guestName := fmt.Sprintf("guest %d", res.GuestID)
			if guest, ok := mgr.Guest(res.GuestID); ok {
				guestName = guest.Name
			}
			fmt.Printf("  Reservation #%d - %s, %s to %s\n",
				res.ID, guestName, res.CheckIn.Format(dateLayout), res.CheckOut.Format(dateLayout))
			total++
		}
	}
	if total == 0 {
		fmt.Println("No reservations recorded.")
	}
}

func handleListGuests(mgr *hotel.HotelManager) {
	guests := mgr.Guests()
	if len(guests) == 0 {
		fmt.Println("No guests registered.")
		return
	}

	fmt.Printf("%-5s %-25s %-25s %-15s %s\n", "ID", "Name", "Email", "National ID", "VIP")
	fmt.Println(strings.Repeat("-", 80))
	for _, guest := range guests {
		vipStr := "No"
		if guest.VIP {
			vipStr = "Yes"
		}
		fmt.Printf("%-5d %-25s %-25s %-15s %s\n",
			guest.ID, truncateString(guest.Name, 25), truncateString(guest.Email, 25), guest.NationalID, vipStr)
	}
}

func handleResetPassword(sc *bufio.Scanner, mgr *hotel.HotelManager) {
	fmt.Print("Guest ID: ")
	if !sc.Scan() {
		return
	}
	guestIDStr := strings.TrimSpace(sc.Text())
	guestID, err := strconv.Atoi(guestIDStr)
	if err != nil {
		fmt.Printf("Invalid guest ID: %s\n", guestIDStr)
		return
	}

	guest, ok := mgr.Guest(guestID)
	if !ok {
		fmt.Printf("Error: Guest with ID %d not found\n", guestID)
		return
	}

	newPassword, err := readPassword(fmt.Sprintf("Enter new password for %s (ID: %d): ", guest.Name, guestID))
	if err != nil {
		fmt.Printf("Error reading password: %v\n", err)
		return
	}
	if newPassword == "" {
		fmt.Println("Error: Password cannot be empty")
		return
	}

	if err := mgr.ResetGuestPassword(guestID, newPassword); err != nil {
		fmt.Printf("Error resetting password: %v\n", err)
		return
	}
	fmt.Printf("Password successfully reset for %s (ID: %d)\n", guest.Name, guestID)
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
