// Package canvasclient provides the primary entry point for constructing a
// Canvas LMS REST API client.
//
// It layers configuration contexts, HTTP transport, authentication, and
// pagination on top of the resource types defined in the canvas package. Most
// applications should import canvasclient to build a client, then use the
// returned Client to access resource-specific clients, for example Courses(),
// Users(), Enrollments(), etc.
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/edukit-io/canvas-client/pkg/canvasclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // Minimal: a base URL and an API key.
//	  cli, err := canvasclient.NewWithAPIKey(ctx, "https://canvas.example.edu", "my-api-key")
//	  if err != nil { log.Fatal(err) }
//
//	  courses, err := cli.Courses().List(ctx, nil)
//	  if err != nil { log.Fatal(err) }
//	  _ = courses
//	}
//
// # Configuration contexts
//
// For applications talking to several Canvas instances (or the same instance
// with different credentials), build a canvas.ContextStore, configure one
// named context per instance, and pass the store to New. Each context carries
// its own base URL, credentials, account ID, and API version; switching
// contexts never leaks settings between them.
//
//	store := canvas.NewContextStore()
//	_ = store.SetBaseURL("school", "https://canvas.school.edu")
//	store.SetAPIKey("school", "key-1")
//	cli, err := canvasclient.New(ctx, store, "school", nil)
//
// # Authentication
//
// Two modes are supported. API key mode (the default) sends a static token as
// the bearer credential. OAuth mode stores a token set per context and
// refreshes the access token automatically when it is within five minutes of
// expiry; see NewWithOAuthTokens and the store's UseOAuth.
//
// # Environment
//
// NewFromEnvironment reads CANVAS_BASE_URL, CANVAS_API_KEY and related
// CANVAS_* variables into a fresh context, which suits short-lived tools and
// CI jobs.
package canvasclient
