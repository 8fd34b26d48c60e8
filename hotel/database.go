package hotel

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Database mirrors the in-memory hotel state into SQLite so it survives
// between runs. It never makes booking decisions; the aggregate does, and the
// manager writes the results through.
type Database struct {
	db *sql.DB

	addRoomStmt        *sql.Stmt
	addGuestStmt       *sql.Stmt
	addReservationStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	// Enable busy_timeout and foreign keys.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	for _, stmt := range []*sql.Stmt{d.addRoomStmt, d.addGuestStmt, d.addReservationStmt} {
		if stmt != nil {
			stmt.Close()
		}
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	// WAL improves write concurrency.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Identities come from the aggregate's counters, so the tables carry
	// plain INTEGER PRIMARY KEY columns without AUTOINCREMENT.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
            number INTEGER PRIMARY KEY,
            type TEXT NOT NULL,
            base_rate REAL NOT NULL,
            available BOOLEAN NOT NULL DEFAULT 1
        );`,
		`CREATE TABLE IF NOT EXISTS guests (
            id INTEGER PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT NOT NULL,
            national_id TEXT NOT NULL,
            vip BOOLEAN NOT NULL DEFAULT 0,
            password_hash TEXT NOT NULL DEFAULT ''
        );`,
		`CREATE TABLE IF NOT EXISTS reservations (
            id INTEGER PRIMARY KEY,
            room_number INTEGER NOT NULL REFERENCES rooms(number),
            guest_id INTEGER NOT NULL REFERENCES guests(id),
            check_in DATETIME NOT NULL,
            check_out DATETIME NOT NULL
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addRoomStmt, err = d.db.Prepare(`INSERT INTO rooms(number,type,base_rate,available) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if d.addGuestStmt, err = d.db.Prepare(`INSERT INTO guests(id,name,email,national_id,vip,password_hash) VALUES(?,?,?,?,?,?)`); err != nil {
		return err
	}
	if d.addReservationStmt, err = d.db.Prepare(`INSERT INTO reservations(id,room_number,guest_id,check_in,check_out) VALUES(?,?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write-through helpers
// ---------------------------------------------------------------------------

func (d *Database) SaveRoom(room Room) error {
	_, err := d.addRoomStmt.Exec(room.Number, room.Type, room.BaseRate, room.Available)
	if err != nil {
		return fmt.Errorf("save room %d: %w", room.Number, err)
	}
	return nil
}

func (d *Database) SaveGuest(guest Guest, passwordHash string) error {
	_, err := d.addGuestStmt.Exec(guest.ID, guest.Name, guest.Email, guest.NationalID, guest.VIP, passwordHash)
	if err != nil {
		return fmt.Errorf("save guest %d: %w", guest.ID, err)
	}
	return nil
}

func (d *Database) SaveReservation(res Reservation) error {
	_, err := d.addReservationStmt.Exec(res.ID, res.RoomNumber, res.GuestID, res.CheckIn, res.CheckOut)
	if err != nil {
		return fmt.Errorf("save reservation %d: %w", res.ID, err)
	}
	return nil
}

// SetRoomAvailable mirrors an availability flip decided by the engine.
func (d *Database) SetRoomAvailable(number int, available bool) error {
	_, err := d.db.Exec(`UPDATE rooms SET available=? WHERE number=?`, available, number)
	return err
}

// SetGuestVIP mirrors a loyalty promotion decided by the engine.
func (d *Database) SetGuestVIP(id int, vip bool) error {
	_, err := d.db.Exec(`UPDATE guests SET vip=? WHERE id=?`, vip, id)
	return err
}

// SetGuestPassword replaces a guest's stored password hash.
func (d *Database) SetGuestPassword(id int, passwordHash string) error {
	res, err := d.db.Exec(`UPDATE guests SET password_hash=? WHERE id=?`, passwordHash, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("guest %d does not exist", id)
	}
	return nil
}

// GuestPasswordHash fetches a guest's stored password hash.
func (d *Database) GuestPasswordHash(id int) (string, error) {
	var hash string
	err := d.db.QueryRow(`SELECT password_hash FROM guests WHERE id=?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("guest %d does not exist", id)
	}
	if err != nil {
		return "", err
	}
	return hash, nil
}

// ---------------------------------------------------------------------------
// State loading
// ---------------------------------------------------------------------------

// LoadRooms returns every persisted room in number order.
func (d *Database) LoadRooms() ([]Room, error) {
	rows, err := d.db.Query(`SELECT number,type,base_rate,available FROM rooms ORDER BY number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []Room
	for rows.Next() {
		var r Room
		if err := rows.Scan(&r.Number, &r.Type, &r.BaseRate, &r.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// LoadGuests returns every persisted guest in ID order.
func (d *Database) LoadGuests() ([]Guest, error) {
	rows, err := d.db.Query(`SELECT id,name,email,national_id,vip FROM guests ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guests []Guest
	for rows.Next() {
		var g Guest
		if err := rows.Scan(&g.ID, &g.Name, &g.Email, &g.NationalID, &g.VIP); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

// LoadReservations returns every persisted reservation in booking order.
func (d *Database) LoadReservations() ([]Reservation, error) {
	rows, err := d.db.Query(`SELECT id,room_number,guest_id,check_in,check_out FROM reservations ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []Reservation
	for rows.Next() {
		var res Reservation
		if err := rows.Scan(&res.ID, &res.RoomNumber, &res.GuestID, &res.CheckIn, &res.CheckOut); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}
