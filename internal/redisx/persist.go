package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futurewear/storefront/internal/auth"
	"github.com/futurewear/storefront/internal/cart"
	"github.com/redis/go-redis/v9"
)

// Persister stores session cart/user blobs as JSON under well-known keys.
// Implements cart.Persister and auth.Persister. Blobs carry no schema
// version; anything that fails to decode reads as absent.
type Persister struct{ RDB *redis.Client }

func (p *Persister) SaveCart(ctx context.Context, sessionID string, c *cart.Cart) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return p.RDB.Set(ctx, fmt.Sprintf(KeyCart, sessionID), b, TTLSession).Err()
}

func (p *Persister) LoadCart(ctx context.Context, sessionID string) (*cart.Cart, bool, error) {
	b, err := p.RDB.Get(ctx, fmt.Sprintf(KeyCart, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var c cart.Cart
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, false, nil // stale/unreadable blob reads as absent
	}
	return &c, true, nil
}

func (p *Persister) DeleteCart(ctx context.Context, sessionID string) error {
	return p.RDB.Del(ctx, fmt.Sprintf(KeyCart, sessionID)).Err()
}

func (p *Persister) SaveUser(ctx context.Context, sessionID string, u auth.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return p.RDB.Set(ctx, fmt.Sprintf(KeyUser, sessionID), b, TTLSession).Err()
}

func (p *Persister) LoadUser(ctx context.Context, sessionID string) (auth.User, bool, error) {
	b, err := p.RDB.Get(ctx, fmt.Sprintf(KeyUser, sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return auth.User{}, false, nil
	}
	if err != nil {
		return auth.User{}, false, err
	}
	var u auth.User
	if err := json.Unmarshal(b, &u); err != nil {
		return auth.User{}, false, nil
	}
	return u, true, nil
}

func (p *Persister) DeleteUser(ctx context.Context, sessionID string) error {
	return p.RDB.Del(ctx, fmt.Sprintf(KeyUser, sessionID)).Err()
}
