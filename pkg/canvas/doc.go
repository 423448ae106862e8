// Package canvas provides types and helpers for working with the Canvas LMS
// REST API.
//
// # Overview
//
// The canvas package defines the domain types (e.g., Course, User, Enrollment,
// Module, QuizSubmission), the request DTOs and their form serialization, the
// configuration context store, pagination, errors, response caching, and
// request interceptors. A concrete client over these types is provided by the
// canvasclient package, which wires configuration, transport, and
// authentication. Most consumers should import canvasclient to construct a
// client and then work with the typed resources exposed here.
//
// # Configuration contexts
//
// ContextStore holds named configuration contexts, each carrying a base URL,
// credentials, account ID, API version, and timeout. Accessors take a context
// name where the empty string means "the current context":
//
//	store := canvas.NewContextStore()
//	_ = store.SetBaseURL("", "https://canvas.example.edu")
//	store.SetAPIKey("", "my-api-key")
//
// AutoDetect populates a context from CANVAS_* environment variables.
//
// # Pagination
//
// Canvas paginates list responses through Link response headers. Page and
// PageIterator follow the server's next links sequentially:
//
//	it := canvas.NewPageIterator(ctx, fetcher, "/api/v1/courses")
//	for it.HasNext() {
//	  course, err := it.Next()
//	  if err != nil { break }
//	  _ = course
//	}
//
// # Errors
//
// Non-2xx responses are represented by the single APIError type; callers
// branch on the status code, with IsNotFound, IsUnauthorized, and IsForbidden
// covering the common cases. Configuration problems surface as ConfigError
// before any network call.
//
// # Caching and interceptors
//
// The package ships an optional response cache (in-memory or NATS KV, built
// through CacheBuilder or NewCacheFromConfig) with a CachingPolicy deciding
// which requests are cacheable, and an InterceptorChain for request/response
// hooks such as logging, custom headers, rate limiting, and metrics.
package canvas
