package presence

import "sync"

// Conn is the slice of socket.io's connection surface the presence table
// needs. go-socket.io's socketio.Conn satisfies it; tests use fakes.
type Conn interface {
	ID() string
	Emit(event string, args ...interface{})
}

// Table maps user emails to their live socket connection. A user has at
// most one entry: a second join overwrites the first, so a user connected
// from two devices loses routability on the earlier connection. Entries
// only disappear on a clean disconnect or process restart; there is no
// heartbeat or staleness detection.
//
// The reverse index (connection id -> email) makes disconnect cleanup O(1)
// instead of a scan over every entry.
type Table struct {
	mu      sync.RWMutex
	byEmail map[string]Conn
	byConn  map[string]string
}

func NewTable() *Table {
	return &Table{
		byEmail: make(map[string]Conn),
		byConn:  make(map[string]string),
	}
}

// Register binds email to conn, silently replacing any prior binding for
// the same email. Last connection wins.
func (t *Table) Register(email string, conn Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.byEmail[email]; ok {
		delete(t.byConn, prev.ID())
	}
	t.byEmail[email] = conn
	t.byConn[conn.ID()] = email
}

// Lookup returns the connection currently bound to email, if any.
func (t *Table) Lookup(email string) (Conn, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	conn, ok := t.byEmail[email]
	return conn, ok
}

// Unregister removes whichever entry is bound to conn and reports the
// email it was bound to. A handle that was already overwritten by a newer
// connection is not bound anymore, so this is a no-op for it.
func (t *Table) Unregister(conn Conn) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	email, ok := t.byConn[conn.ID()]
	if !ok {
		return "", false
	}
	// Guard against the id being rebound since: only drop the forward
	// entry when it still points at this handle.
	if cur, found := t.byEmail[email]; found && cur.ID() == conn.ID() {
		delete(t.byEmail, email)
	}
	delete(t.byConn, conn.ID())
	return email, true
}

// Online returns the emails of all currently connected users.
func (t *Table) Online() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := make([]string, 0, len(t.byEmail))
	for email := range t.byEmail {
		users = append(users, email)
	}
	return users
}

// IsOnline reports whether email has a live connection.
func (t *Table) IsOnline(email string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.byEmail[email]
	return ok
}

// Len returns the number of connected users.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.byEmail)
}
