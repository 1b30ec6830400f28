// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - WordStore, PronunciationStore, StageWordStore: per-entity operations
//     (internal/http/stores.go), combined as VocabularyStore
//   - WordSaver, WordLister: import and export (internal/cli)
//   - WordEnricher, StageExpirer: background task access (internal/tasks)
//
// ## External Service Interfaces
//
//   - Client: dictionary lookups (internal/dictionary/client.go)
//
// ## Background Work
//
//   - TaskQueue: enqueue and inspect tasks (internal/http/stores.go)
//   - Enqueuer: used by the stage expiry scheduler (internal/scheduler)
//
// # Adding a New Dictionary Provider
//
//  1. Implement Client in internal/dictionary/
//
//     type WiktionaryClient struct {
//         httpClient *http.Client
//     }
//
//     func (c *WiktionaryClient) Lookup(ctx context.Context, word string) (*LookupResult, error)
//     func (c *WiktionaryClient) Name() string
//
//     var _ Client = (*WiktionaryClient)(nil)
//
//  2. Configure in entrypoint.go
//
// # Adding a New Child Entity
//
// A new entity owned by Word follows the Pronunciation layout:
//
//  1. Add the type in internal/entities/ with a WordID column and no JSON
//     field for it, plus a Collection on Word.
//
//  2. Add repository methods in internal/database/vocabulary/ that check the
//     owning word inside the same transaction, and extend DeleteWord's cascade.
//
//  3. Add the interface slice to internal/http/stores.go and a compile-time
//     check here.
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
