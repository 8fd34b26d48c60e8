package hotel

import (
	"path/filepath"
	"testing"
	"time"
)

func tempDB(t *testing.T) *Database {
	t.Helper()
	dir := t.TempDir()
	db, err := NewDatabase(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("new db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRoomRoundTrip(t *testing.T) {
	db := tempDB(t)

	if err := db.SaveRoom(Room{Number: 1, Type: "SINGLE", BaseRate: 50, Available: true}); err != nil {
		t.Fatalf("save room: %v", err)
	}
	if err := db.SaveRoom(Room{Number: 2, Type: "SUITE", BaseRate: 150, Available: true}); err != nil {
		t.Fatalf("save room: %v", err)
	}
	if err := db.SetRoomAvailable(2, false); err != nil {
		t.Fatalf("set available: %v", err)
	}

	rooms, err := db.LoadRooms()
	if err != nil {
		t.Fatalf("load rooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("want 2 rooms, got %d", len(rooms))
	}
	if rooms[0].Type != "SINGLE" || rooms[0].BaseRate != 50 || !rooms[0].Available {
		t.Fatalf("room 1 wrong: %+v", rooms[0])
	}
	if rooms[1].Available {
		t.Fatalf("room 2 availability flip not persisted")
	}
}

func TestGuestRoundTrip(t *testing.T) {
	db := tempDB(t)

	guest := Guest{ID: 1, Name: "Ana", Email: "a@x.com", NationalID: "111", VIP: false}
	if err := db.SaveGuest(guest, "hash-1"); err != nil {
		t.Fatalf("save guest: %v", err)
	}
	if err := db.SetGuestVIP(1, true); err != nil {
		t.Fatalf("set vip: %v", err)
	}

	guests, err := db.LoadGuests()
	if err != nil {
		t.Fatalf("load guests: %v", err)
	}
	if len(guests) != 1 {
		t.Fatalf("want 1 guest, got %d", len(guests))
	}
	if guests[0].Name != "Ana" || !guests[0].VIP {
		t.Fatalf("guest wrong: %+v", guests[0])
	}

	hash, err := db.GuestPasswordHash(1)
	if err != nil {
		t.Fatalf("password hash: %v", err)
	}
	if hash != "hash-1" {
		t.Fatalf("want hash-1, got %q", hash)
	}
}

func TestGuestPasswordUpdates(t *testing.T) {
	db := tempDB(t)

	if err := db.SaveGuest(Guest{ID: 1, Name: "Ana"}, ""); err != nil {
		t.Fatalf("save guest: %v", err)
	}
	if err := db.SetGuestPassword(1, "hash-2"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	hash, err := db.GuestPasswordHash(1)
	if err != nil {
		t.Fatalf("password hash: %v", err)
	}
	if hash != "hash-2" {
		t.Fatalf("want hash-2, got %q", hash)
	}

	if err := db.SetGuestPassword(99, "hash"); err == nil {
		t.Fatalf("expected error setting password for missing guest")
	}
	if _, err := db.GuestPasswordHash(99); err == nil {
		t.Fatalf("expected error fetching hash for missing guest")
	}
}

func TestReservationRoundTrip(t *testing.T) {
	db := tempDB(t)

	if err := db.SaveRoom(Room{Number: 1, Type: "SINGLE", BaseRate: 50, Available: true}); err != nil {
		t.Fatalf("save room: %v", err)
	}
	if err := db.SaveGuest(Guest{ID: 1, Name: "Ana"}, ""); err != nil {
		t.Fatalf("save guest: %v", err)
	}

	checkIn := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)
	res := Reservation{ID: 1, RoomNumber: 1, GuestID: 1, CheckIn: checkIn, CheckOut: checkOut}
	if err := db.SaveReservation(res); err != nil {
		t.Fatalf("save reservation: %v", err)
	}

	loaded, err := db.LoadReservations()
	if err != nil {
		t.Fatalf("load reservations: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("want 1 reservation, got %d", len(loaded))
	}
	got := loaded[0]
	if got.RoomNumber != 1 || got.GuestID != 1 {
		t.Fatalf("reservation wrong: %+v", got)
	}
	if !got.CheckIn.Equal(checkIn) || !got.CheckOut.Equal(checkOut) {
		t.Fatalf("dates not preserved: %v to %v", got.CheckIn, got.CheckOut)
	}
}

func TestEmptyDatabaseLoads(t *testing.T) {
	db := tempDB(t)

	rooms, err := db.LoadRooms()
	if err != nil {
		t.Fatalf("load rooms: %v", err)
	}
	guests, err := db.LoadGuests()
	if err != nil {
		t.Fatalf("load guests: %v", err)
	}
	reservations, err := db.LoadReservations()
	if err != nil {
		t.Fatalf("load reservations: %v", err)
	}
	if len(rooms)+len(guests)+len(reservations) != 0 {
		t.Fatalf("fresh database should be empty")
	}
}
