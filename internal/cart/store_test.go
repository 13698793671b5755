package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	saved   map[string]Cart
	deleted []string
	failing bool
}

func newMemPersister() *memPersister { return &memPersister{saved: map[string]Cart{}} }

func (m *memPersister) SaveCart(_ context.Context, sid string, c *Cart) error {
	if m.failing {
		return errors.New("storage down")
	}
	cp := Cart{Items: c.Snapshot()}
	m.saved[sid] = cp
	return nil
}

func (m *memPersister) LoadCart(_ context.Context, sid string) (*Cart, bool, error) {
	if m.failing {
		return nil, false, errors.New("storage down")
	}
	c, ok := m.saved[sid]
	if !ok {
		return nil, false, nil
	}
	return &c, true, nil
}

func (m *memPersister) DeleteCart(_ context.Context, sid string) error {
	m.deleted = append(m.deleted, sid)
	delete(m.saved, sid)
	return nil
}

func TestStorePersistsAfterEveryMutation(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := NewStore(p)

	require.NoError(t, s.Mutate(ctx, "sess", func(c *Cart) error {
		return c.AddItem(hoodie, "M", 2)
	}))
	require.Len(t, p.saved["sess"].Items, 1)

	require.NoError(t, s.Mutate(ctx, "sess", func(c *Cart) error {
		c.Clear()
		return nil
	}))
	assert.Len(t, p.saved["sess"].Items, 0)
}

func TestStoreLoadsOnFirstTouch(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.saved["sess"] = Cart{Items: []LineItem{{ProductID: "1", Size: "M", UnitPrice: 4999, Discount: 30, Quantity: 2}}}

	s := NewStore(p)
	c := s.Get(ctx, "sess")
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 6999, c.Subtotal())
}

// A failed write never surfaces; in-memory state stays authoritative.
func TestStoreTolerantOfStorageFailure(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	p.failing = true
	s := NewStore(p)

	require.NoError(t, s.Mutate(ctx, "sess", func(c *Cart) error {
		return c.AddItem(hoodie, "M", 1)
	}))
	assert.Equal(t, 1, s.Get(ctx, "sess").TotalItems())
}

func TestStoreWorksWithoutPersister(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.Mutate(ctx, "sess", func(c *Cart) error {
		return c.AddItem(tee, "S", 1)
	}))
	assert.Equal(t, 1, s.Get(ctx, "sess").Len())
}

func TestStoreDrop(t *testing.T) {
	ctx := context.Background()
	p := newMemPersister()
	s := NewStore(p)

	require.NoError(t, s.Mutate(ctx, "sess", func(c *Cart) error {
		return c.AddItem(tee, "S", 1)
	}))
	s.Drop(ctx, "sess")

	assert.Equal(t, 0, s.Get(ctx, "sess").Len())
	assert.Contains(t, p.deleted, "sess")
}

func TestStoreIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)
	require.NoError(t, s.Mutate(ctx, "a", func(c *Cart) error { return c.AddItem(hoodie, "M", 1) }))
	require.NoError(t, s.Mutate(ctx, "b", func(c *Cart) error { return c.AddItem(tee, "S", 3) }))

	assert.Equal(t, 1, s.Get(ctx, "a").TotalItems())
	assert.Equal(t, 3, s.Get(ctx, "b").TotalItems())
}
