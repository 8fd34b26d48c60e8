package hotel

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		DBPath:     filepath.Join(t.TempDir(), "hotel.db"),
		Name:       "Test Hotel",
		BcryptCost: bcrypt.MinCost,
	}
}

func newManager(t *testing.T, cfg Config) *HotelManager {
	t.Helper()
	mgr, err := NewHotelManager(cfg)
	if err != nil {
		t.Fatalf("mgr: %v", err)
	}
	t.Cleanup(func() { mgr.Close() })
	return mgr
}

func TestManagerWriteThroughRestart(t *testing.T) {
	cfg := testConfig(t)

	mgr := newManager(t, cfg)
	if _, err := mgr.RegisterRooms([]string{"SINGLE", "SINGLE", "DOUBLE"}, []float64{50, 60, 80}); err != nil {
		t.Fatalf("register rooms: %v", err)
	}
	guest, err := mgr.RegisterGuest("Ana", "a@x.com", "111", false, "secret")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}

	in, out := nights(1, 3)
	result, err := mgr.ReserveRoom(guest.ID, "single", in, out)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if result.Outcome != Booked || result.RoomNumber != 1 {
		t.Fatalf("want room 1 booked, got %s room %d", result.Outcome, result.RoomNumber)
	}
	mgr.Close()

	// Reopen against the same file: state and counters must survive.
	mgr2 := newManager(t, cfg)
	room1, ok := mgr2.Room(1)
	if !ok || room1.Available {
		t.Fatalf("room 1 should be restored unavailable, got %+v", room1)
	}
	if _, ok := mgr2.Guest(guest.ID); !ok {
		t.Fatalf("guest should be restored")
	}
	ledger := mgr2.ReservationsByRoom()
	if len(ledger[1]) != 1 || ledger[1][0].ID != result.ReservationID {
		t.Fatalf("reservation should be restored: %+v", ledger[1])
	}

	// A new booking of the same type must skip the consumed room and
	// continue the reservation numbering.
	result2, err := mgr2.ReserveRoom(guest.ID, "SINGLE", in, out)
	if err != nil {
		t.Fatalf("reserve after restart: %v", err)
	}
	if result2.Outcome != Booked || result2.RoomNumber != 2 {
		t.Fatalf("want room 2 booked, got %s room %d", result2.Outcome, result2.RoomNumber)
	}
	if result2.ReservationID != result.ReservationID+1 {
		t.Fatalf("reservation counter should resume, got %d after %d", result2.ReservationID, result.ReservationID)
	}
}

func TestManagerFailedBookingWritesNothing(t *testing.T) {
	cfg := testConfig(t)

	mgr := newManager(t, cfg)
	if _, err := mgr.RegisterRoom("SINGLE", 50); err != nil {
		t.Fatalf("register room: %v", err)
	}
	in, out := nights(1, 2)
	result, err := mgr.ReserveRoom(42, "SINGLE", in, out)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if result.Outcome != GuestNotFound {
		t.Fatalf("want GUEST_NOT_FOUND, got %s", result.Outcome)
	}
	mgr.Close()

	mgr2 := newManager(t, cfg)
	if len(mgr2.ReservationsByRoom()[1]) != 0 {
		t.Fatalf("failed booking must not persist a reservation")
	}
	if room, _ := mgr2.Room(1); !room.Available {
		t.Fatalf("failed booking must not flip availability")
	}
}

func TestManagerVIPPersistence(t *testing.T) {
	cfg := testConfig(t)

	mgr := newManager(t, cfg)
	types := make([]string, 5)
	rates := make([]float64, 5)
	for i := range types {
		types[i] = "SINGLE"
		rates[i] = 50
	}
	if _, err := mgr.RegisterRooms(types, rates); err != nil {
		t.Fatalf("register rooms: %v", err)
	}
	guest, err := mgr.RegisterGuest("Ana", "a@x.com", "111", false, "secret")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}

	var promoted bool
	for i := 0; i < 5; i++ {
		in, out := nights(-7*(i+1), 2)
		result, err := mgr.ReserveRoom(guest.ID, "SINGLE", in, out)
		if err != nil {
			t.Fatalf("reserve %d: %v", i+1, err)
		}
		if result.Outcome != Booked {
			t.Fatalf("booking %d failed: %s", i+1, result.Outcome)
		}
		promoted = promoted || result.PromotedToVIP
	}
	if !promoted {
		t.Fatalf("fifth booking should promote the guest")
	}
	mgr.Close()

	mgr2 := newManager(t, cfg)
	g, ok := mgr2.Guest(guest.ID)
	if !ok || !g.VIP {
		t.Fatalf("VIP promotion should survive a restart, got %+v", g)
	}
}

func TestAuthenticateGuest(t *testing.T) {
	mgr := newManager(t, testConfig(t))
	guest, err := mgr.RegisterGuest("Ana", "a@x.com", "111", false, "secret")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}

	if err := mgr.AuthenticateGuest(guest.ID, "secret"); err != nil {
		t.Fatalf("valid password rejected: %v", err)
	}
	if err := mgr.AuthenticateGuest(guest.ID, "wrong"); err == nil {
		t.Fatalf("invalid password accepted")
	}
	if err := mgr.AuthenticateGuest(99, "secret"); err == nil {
		t.Fatalf("unknown guest accepted")
	}
}

func TestResetGuestPassword(t *testing.T) {
	mgr := newManager(t, testConfig(t))
	guest, err := mgr.RegisterGuest("Ana", "a@x.com", "111", false, "old")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}

	if err := mgr.ResetGuestPassword(guest.ID, "new"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if err := mgr.AuthenticateGuest(guest.ID, "old"); err == nil {
		t.Fatalf("old password should no longer work")
	}
	if err := mgr.AuthenticateGuest(guest.ID, "new"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := mgr.ResetGuestPassword(99, "x"); err == nil {
		t.Fatalf("expected error resetting password for missing guest")
	}
}

func TestGuestWithoutPassword(t *testing.T) {
	mgr := newManager(t, testConfig(t))
	guest, err := mgr.RegisterGuest("Walk-in", "w@x.com", "444", false, "")
	if err != nil {
		t.Fatalf("register guest: %v", err)
	}
	if err := mgr.AuthenticateGuest(guest.ID, ""); err == nil {
		t.Fatalf("guest without a password must not authenticate")
	}
}
