package hotel

import (
	"strings"
	"sync"
	"time"
)

// vipThreshold is the number of trailing-12-month reservations a guest must
// exceed to be promoted to VIP.
const vipThreshold = 3

// Hotel is the in-memory aggregate: room registry, guest registry, and the
// reservation ledger keyed by room number. Every exported operation takes the
// single mutex, so one Hotel value can be shared by concurrent callers without
// the check-then-act race between the availability scan and the commit.
type Hotel struct {
	mu sync.Mutex

	Name    string
	Address string
	Phone   string

	rooms              []*Room
	guests             map[int]*Guest
	reservationsByRoom map[int][]*Reservation

	nextGuestID       int
	nextReservationID int
}

// New creates an empty hotel.
func New(name, address, phone string) *Hotel {
	return &Hotel{
		Name:               name,
		Address:            address,
		Phone:              phone,
		guests:             make(map[int]*Guest),
		reservationsByRoom: make(map[int][]*Reservation),
		nextGuestID:        1,
		nextReservationID:  1,
	}
}

// ------------------ Room registry ------------------

// RegisterRoom adds a room with the next sequential number and an empty
// reservation list. The type label is upper-cased for matching; the rate is
// stored as given, unvalidated.
func (h *Hotel) RegisterRoom(roomType string, baseRate float64) Room {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.registerRoomLocked(roomType, baseRate)
}

func (h *Hotel) registerRoomLocked(roomType string, baseRate float64) *Room {
	room := &Room{
		Number:    len(h.rooms) + 1,
		Type:      strings.ToUpper(roomType),
		BaseRate:  baseRate,
		Available: true,
	}
	h.rooms = append(h.rooms, room)
	h.reservationsByRoom[room.Number] = []*Reservation{}
	return room
}

// RegisterRooms registers one room per type/rate pair. Mismatched slice
// lengths truncate to the shorter input.
func (h *Hotel) RegisterRooms(types []string, rates []float64) []Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := len(types)
	if len(rates) < n {
		n = len(rates)
	}
	rooms := make([]Room, 0, n)
	for i := 0; i < n; i++ {
		rooms = append(rooms, *h.registerRoomLocked(types[i], rates[i]))
	}
	return rooms
}

// AvailableRooms returns the rooms still available, in registration order.
func (h *Hotel) AvailableRooms() []Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []Room
	for _, room := range h.rooms {
		if room.Available {
			out = append(out, *room)
		}
	}
	return out
}

// Rooms returns every registered room in registration order.
func (h *Hotel) Rooms() []Room {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Room, 0, len(h.rooms))
	for _, room := range h.rooms {
		out = append(out, *room)
	}
	return out
}

// Room looks up a room by number.
func (h *Hotel) Room(number int) (Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, room := range h.rooms {
		if room.Number == number {
			return *room, true
		}
	}
	return Room{}, false
}

// ------------------ Guest registry ------------------

// RegisterGuest adds a guest with the next sequential ID. The VIP flag may be
// pre-seeded by the caller. Duplicate emails or national IDs are accepted.
func (h *Hotel) RegisterGuest(name, email, nationalID string, vip bool) Guest {
	h.mu.Lock()
	defer h.mu.Unlock()

	guest := &Guest{
		ID:         h.nextGuestID,
		Name:       name,
		Email:      email,
		NationalID: nationalID,
		VIP:        vip,
	}
	h.guests[guest.ID] = guest
	h.nextGuestID++
	return *guest
}

// Guests returns all guests in registration order.
func (h *Hotel) Guests() []Guest {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Guest, 0, len(h.guests))
	for id := 1; id < h.nextGuestID; id++ {
		if guest, ok := h.guests[id]; ok {
			out = append(out, *guest)
		}
	}
	return out
}

// Guest looks up a guest by ID.
func (h *Hotel) Guest(id int) (Guest, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	guest, ok := h.guests[id]
	if !ok {
		return Guest{}, false
	}
	return *guest, true
}

// ------------------ Reservation ledger ------------------

// ReservationsByRoom returns the full ledger keyed by room number, each
// room's reservations in booking order. Map iteration order is unspecified.
func (h *Hotel) ReservationsByRoom() map[int][]Reservation {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[int][]Reservation, len(h.reservationsByRoom))
	for number, list := range h.reservationsByRoom {
		copies := make([]Reservation, 0, len(list))
		for _, res := range list {
			copies = append(copies, *res)
		}
		out[number] = copies
	}
	return out
}

// recentReservationsLocked counts the guest's reservations whose start date is
// strictly after since, scanning every room's list.
func (h *Hotel) recentReservationsLocked(guestID int, since time.Time) int {
	count := 0
	for _, list := range h.reservationsByRoom {
		for _, res := range list {
			if res.GuestID == guestID && res.CheckIn.After(since) {
				count++
			}
		}
	}
	return count
}

// ------------------ Reservation engine ------------------

// ReserveRoom validates the request, allocates the first available room of
// the requested type (case-insensitive), evaluates the guest's VIP promotion,
// and commits the reservation together with the room's availability flip.
//
// The checks run in a fixed order, each returning its own outcome: no rooms
// registered, unknown guest, check-in not strictly before check-out, then no
// available room of the type. The promotion count is taken before the new
// reservation is recorded, so the triggering booking is excluded from it.
func (h *Hotel) ReserveRoom(guestID int, roomType string, checkIn, checkOut time.Time) BookingResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.rooms) == 0 {
		return BookingResult{Outcome: NoRoomsInHotel}
	}
	guest, ok := h.guests[guestID]
	if !ok {
		return BookingResult{Outcome: GuestNotFound}
	}
	if !checkIn.Before(checkOut) {
		return BookingResult{Outcome: InvalidDateRange}
	}

	wanted := strings.ToUpper(roomType)
	for _, room := range h.rooms {
		if room.Type != wanted || !room.Available {
			continue
		}

		promoted := false
		since := time.Now().AddDate(-1, 0, 0)
		if h.recentReservationsLocked(guestID, since) > vipThreshold && !guest.VIP {
			guest.VIP = true
			promoted = true
		}

		res := &Reservation{
			ID:         h.nextReservationID,
			RoomNumber: room.Number,
			GuestID:    guestID,
			CheckIn:    checkIn,
			CheckOut:   checkOut,
		}
		h.nextReservationID++
		h.reservationsByRoom[room.Number] = append(h.reservationsByRoom[room.Number], res)
		room.Available = false

		return BookingResult{
			Outcome:       Booked,
			RoomNumber:    room.Number,
			ReservationID: res.ID,
			PromotedToVIP: promoted,
		}
	}
	return BookingResult{Outcome: NoRoomAvailableForType}
}

// ------------------ State restore ------------------

// restore primes the aggregate from persisted state. Counters resume past the
// highest restored identity. Reservations must reference restored rooms.
func (h *Hotel) restore(rooms []Room, guests []Guest, reservations []Reservation) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.rooms = h.rooms[:0]
	h.guests = make(map[int]*Guest, len(guests))
	h.reservationsByRoom = make(map[int][]*Reservation, len(rooms))
	h.nextGuestID = 1
	h.nextReservationID = 1

	for i := range rooms {
		room := rooms[i]
		h.rooms = append(h.rooms, &room)
		h.reservationsByRoom[room.Number] = []*Reservation{}
	}
	for i := range guests {
		guest := guests[i]
		h.guests[guest.ID] = &guest
		if guest.ID >= h.nextGuestID {
			h.nextGuestID = guest.ID + 1
		}
	}
	for i := range reservations {
		res := reservations[i]
		h.reservationsByRoom[res.RoomNumber] = append(h.reservationsByRoom[res.RoomNumber], &res)
		if res.ID >= h.nextReservationID {
			h.nextReservationID = res.ID + 1
		}
	}
}
