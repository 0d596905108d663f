// Package cachestore implements a namespaced cache store over a key-value
// backend, meant as the storage layer of a higher-level caching middleware.
//
// Components:
//   - Provider: byte store with TTL, KEYS and SCAN (Redis; Ristretto and
//     BigCache for in-process use).
//   - Codec[V]: (de)serializes V <-> []byte. JSON by default, so entries stay
//     readable by other cacheman adapters sharing the same Redis.
//   - Namespace: every backing key is prefix+key ("cacheman:" by default).
//
// Keys are not escaped. Del("user:*") deletes every entry whose key starts
// with "user:"; glob characters in keys given to Set/Get are stored as-is.
// Use EscapePattern when a literal delete is required.
//
// TTL:
//
//	store.Set(ctx, k, v, 0)                      // DefaultTTL (60s unless configured)
//	store.Set(ctx, k, v, 5*time.Minute)          // explicit
//	store.Set(ctx, k, v, cachestore.NoExpiration) // never expires
//
// Scanning a namespace:
//
//	var cursor uint64
//	for {
//	    page, err := store.Scan(ctx, cursor, 100)
//	    if err != nil { ... }
//	    handle(page.Entries)
//	    if cursor = page.Cursor; cursor == 0 {
//	        break
//	    }
//	}
package cachestore
