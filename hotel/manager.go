package hotel

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// HotelManager is a thin façade over the in-memory Hotel aggregate and its
// SQLite mirror, keeping CLI code simple. Every decision is made by the
// aggregate; the manager only writes the results through to the database.
type HotelManager struct {
	hotel      *Hotel
	db         *Database
	bcryptCost int
}

// NewHotelManager opens (or creates) the SQLite database at cfg.DBPath and
// primes the aggregate with any persisted state.
func NewHotelManager(cfg Config) (*HotelManager, error) {
	db, err := NewDatabase(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	h := New(cfg.Name, cfg.Address, cfg.Phone)
	rooms, err := db.LoadRooms()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load rooms: %w", err)
	}
	guests, err := db.LoadGuests()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load guests: %w", err)
	}
	reservations, err := db.LoadReservations()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("load reservations: %w", err)
	}
	h.restore(rooms, guests, reservations)

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &HotelManager{hotel: h, db: db, bcryptCost: cost}, nil
}

// Close closes the underlying database.
func (hm *HotelManager) Close() error { return hm.db.Close() }

// ------------------ Room helpers ------------------

func (hm *HotelManager) RegisterRoom(roomType string, baseRate float64) (Room, error) {
	room := hm.hotel.RegisterRoom(roomType, baseRate)
	if err := hm.db.SaveRoom(room); err != nil {
		return Room{}, err
	}
	return room, nil
}

// RegisterRooms registers one room per type/rate pair; mismatched lengths
// truncate to the shorter slice.
func (hm *HotelManager) RegisterRooms(types []string, rates []float64) ([]Room, error) {
	rooms := hm.hotel.RegisterRooms(types, rates)
	for _, room := range rooms {
		if err := hm.db.SaveRoom(room); err != nil {
			return rooms, err
		}
	}
	return rooms, nil
}

func (hm *HotelManager) AvailableRooms() []Room       { return hm.hotel.AvailableRooms() }
func (hm *HotelManager) Rooms() []Room                { return hm.hotel.Rooms() }
func (hm *HotelManager) Room(number int) (Room, bool) { return hm.hotel.Room(number) }

// ------------------ Guest helpers ------------------

// RegisterGuest registers a guest and stores a bcrypt hash of password for
// later CLI authentication. An empty password leaves the guest without one.
func (hm *HotelManager) RegisterGuest(name, email, nationalID string, vip bool, password string) (Guest, error) {
	hash := ""
	if password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), hm.bcryptCost)
		if err != nil {
			return Guest{}, fmt.Errorf("hash password: %w", err)
		}
		hash = string(hashed)
	}

	guest := hm.hotel.RegisterGuest(name, email, nationalID, vip)
	if err := hm.db.SaveGuest(guest, hash); err != nil {
		return Guest{}, err
	}
	return guest, nil
}

func (hm *HotelManager) Guests() []Guest            { return hm.hotel.Guests() }
func (hm *HotelManager) Guest(id int) (Guest, bool) { return hm.hotel.Guest(id) }

// AuthenticateGuest verifies a guest's password against the stored hash.
func (hm *HotelManager) AuthenticateGuest(id int, password string) error {
	hash, err := hm.db.GuestPasswordHash(id)
	if err != nil {
		return err
	}
	if hash == "" {
		return fmt.Errorf("guest %d has no password set", id)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("invalid password for guest %d", id)
	}
	return nil
}

// ResetGuestPassword replaces a guest's password.
func (hm *HotelManager) ResetGuestPassword(id int, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hm.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return hm.db.SetGuestPassword(id, string(hashed))
}

// ------------------ Booking ------------------

// ReserveRoom runs the reservation engine and mirrors a successful booking
// (reservation row, availability flip, VIP promotion) into the database.
func (hm *HotelManager) ReserveRoom(guestID int, roomType string, checkIn, checkOut time.Time) (BookingResult, error) {
	result := hm.hotel.ReserveRoom(guestID, roomType, checkIn, checkOut)
	if result.Outcome != Booked {
		return result, nil
	}

	res := Reservation{
		ID:         result.ReservationID,
		RoomNumber: result.RoomNumber,
		GuestID:    guestID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	}
	if err := hm.db.SaveReservation(res); err != nil {
		return result, err
	}
	if err := hm.db.SetRoomAvailable(result.RoomNumber, false); err != nil {
		return result, err
	}
	if result.PromotedToVIP {
		if err := hm.db.SetGuestVIP(guestID, true); err != nil {
			return result, err
		}
	}
	return result, nil
}

// ReservationsByRoom returns the full ledger keyed by room number.
func (hm *HotelManager) ReservationsByRoom() map[int][]Reservation {
	return hm.hotel.ReservationsByRoom()
}
