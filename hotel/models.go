package hotel

import "time"

// Room represents a single bookable room. Numbers are assigned sequentially
// starting at 1 and never reused. Type is stored upper-cased because it is the
// sole matching key during allocation.
type Room struct {
	Number    int     `json:"number"`
	Type      string  `json:"type"`
	BaseRate  float64 `json:"base_rate"`
	Available bool    `json:"available"`
}

// Guest represents a registered guest. VIP is the only mutable field; the
// reservation engine flips it as a loyalty promotion side effect.
type Guest struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
	VIP        bool   `json:"vip"`
}

// Reservation binds a guest to a room for a date range. Immutable once
// created; CheckIn is always strictly before CheckOut.
type Reservation struct {
	ID         int       `json:"id"`
	RoomNumber int       `json:"room_number"`
	GuestID    int       `json:"guest_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
}

// Outcome is the discriminated result of a booking attempt.
type Outcome int

const (
	Booked Outcome = iota
	NoRoomsInHotel
	GuestNotFound
	InvalidDateRange
	NoRoomAvailableForType
)

// String yields the caller-facing outcome code.
func (o Outcome) String() string {
	switch o {
	case Booked:
		return "BOOKED"
	case NoRoomsInHotel:
		return "NO_ROOMS_IN_HOTEL"
	case GuestNotFound:
		return "GUEST_NOT_FOUND"
	case InvalidDateRange:
		return "INVALID_DATE_RANGE"
	case NoRoomAvailableForType:
		return "NO_ROOM_AVAILABLE_FOR_TYPE"
	default:
		return "UNKNOWN"
	}
}

// BookingResult carries the outcome of ReserveRoom. RoomNumber and
// ReservationID are set only when Outcome is Booked. PromotedToVIP reports
// whether this booking triggered the guest's loyalty promotion.
type BookingResult struct {
	Outcome       Outcome
	RoomNumber    int
	ReservationID int
	PromotedToVIP bool
}
