package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	id     string
	events []string
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Emit(event string, args ...interface{}) {
	f.events = append(f.events, event)
}

func TestRegisterAndLookup(t *testing.T) {
	table := NewTable()
	conn := &fakeConn{id: "s1"}

	table.Register("a@x.com", conn)

	got, ok := table.Lookup("a@x.com")
	assert.True(t, ok)
	assert.Equal(t, "s1", got.ID())
	assert.True(t, table.IsOnline("a@x.com"))
	assert.Equal(t, 1, table.Len())
}

func TestLookupUnknownUser(t *testing.T) {
	table := NewTable()

	_, ok := table.Lookup("nobody@x.com")
	assert.False(t, ok)
	assert.False(t, table.IsOnline("nobody@x.com"))
}

func TestSecondJoinOverwritesFirst(t *testing.T) {
	table := NewTable()
	h1 := &fakeConn{id: "s1"}
	h2 := &fakeConn{id: "s2"}

	table.Register("a@x.com", h1)
	table.Register("a@x.com", h2)

	got, ok := table.Lookup("a@x.com")
	assert.True(t, ok)
	assert.Equal(t, "s2", got.ID())
	assert.Equal(t, 1, table.Len())
}

func TestUnregisterRemovesBinding(t *testing.T) {
	table := NewTable()
	conn := &fakeConn{id: "s1"}

	table.Register("a@x.com", conn)
	email, ok := table.Unregister(conn)

	assert.True(t, ok)
	assert.Equal(t, "a@x.com", email)
	assert.False(t, table.IsOnline("a@x.com"))
	assert.Equal(t, 0, table.Len())
}

func TestUnregisterStaleHandleIsNoOp(t *testing.T) {
	table := NewTable()
	h1 := &fakeConn{id: "s1"}
	h2 := &fakeConn{id: "s2"}

	// h1 was overwritten by h2; its late disconnect must not evict h2
	table.Register("a@x.com", h1)
	table.Register("a@x.com", h2)

	email, ok := table.Unregister(h1)
	assert.False(t, ok)
	assert.Equal(t, "", email)

	got, found := table.Lookup("a@x.com")
	assert.True(t, found)
	assert.Equal(t, "s2", got.ID())
}

func TestOnline(t *testing.T) {
	table := NewTable()
	table.Register("a@x.com", &fakeConn{id: "s1"})
	table.Register("b@x.com", &fakeConn{id: "s2"})

	online := table.Online()
	assert.Len(t, online, 2)
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, online)
}
