// Package catalog provides an HTTP client for the remote product catalog.
//
// # Overview
//
// The catalog is a plain REST service exposing two read-only resources:
//
//   - GET {base}/products: JSON array; only its length is used
//   - GET {base}/products/{id}: JSON object decoded into Product
//
// The client layers three behaviours on top of net/http: a per-URL response
// cache, bounded retries with exponential backoff, and typed failures.
//
// # Client Usage
//
//	client, err := catalog.NewClient("https://fakestoreapi.com",
//		catalog.WithLogger(log),
//		catalog.WithMetrics(catalog.NewMetrics(registry)),
//	)
//	if err != nil {
//		return fmt.Errorf("init catalog client: %w", err)
//	}
//
//	count, err := client.FetchProductsCount(ctx)
//	product, err := client.FetchProduct(ctx, 3)
//
// # Request Handling
//
// Every GET first consults the cache. A fresh entry is returned without any
// network traffic. On a miss the request runs as a series of attempts:
//
//   - each attempt has its own 12 second deadline (WithTimeout)
//   - a transport error, a non-2xx status, or a body that is not valid JSON
//     fails the attempt
//   - up to 2 retries follow (WithRetries), waiting base*2^n before retry n
//     with base 300ms (WithRetryBase): 600ms, then 1.2s
//   - when every attempt fails the error wraps ErrRequestFailed and the last
//     cause (a *StatusError for HTTP failures)
//
// Concurrent misses for the same URL share one in-flight request. A caller
// whose context ends returns early; the shared request keeps running for the
// others, bounded by the per-attempt timeout.
//
// # Caching
//
// Successful bodies are stored as raw JSON keyed by the full request URL.
// Entries are fresh for 60 seconds (WithCacheTTL) and are evicted lazily the
// next time they are looked up after expiring. There is no size bound. Each
// Client owns its cache; there is no package-level state. Tests inject a
// clock through WithClock.
//
// # Error Handling
//
//   - ErrInvalidArgument: FetchProduct called with id < 1, no I/O performed
//   - ErrMalformedResponse: product payload is not a JSON object
//   - ErrRequestFailed: all attempts failed
//
// Use errors.Is to classify and errors.As to extract *StatusError.
//
// FetchProductsCount never reports ErrMalformedResponse: a listing that is not
// an array simply counts as zero products.
//
// # Observability
//
// Attempts, cache lookups, retries and latency are exported through Metrics
// when one is attached. The transport is wrapped with otelhttp so requests
// join any trace carried by the context.
package catalog
