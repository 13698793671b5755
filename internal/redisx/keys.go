package redisx

import "time"

const (
	// Session cart blob: cart:{session_id} -> JSON cart
	KeyCart = "cart:%s"

	// Session user blob: user:{session_id} -> JSON user
	KeyUser = "user:%s"

	// Order status cache: order_status:{order_id} -> {"status":"..."}
	KeyOrderStatus = "order_status:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	// Session blobs are a cache of the in-memory state, not the source of
	// record, so they may expire.
	TTLSession     = 7 * 24 * time.Hour
	TTLStatusCache = 5 * time.Minute
	TTLDedup       = 48 * time.Hour
)
