// Package services holds the feed core: the account directory
// (AccountService), the session manager (SessionService) and the feed
// engine (FeedService). Every mutating operation validates its input before
// touching state and persists through the store before it returns, so a
// failed call leaves nothing changed.
//
// The services are not safe for concurrent use; the presentation layer
// drives them from a single goroutine.
package services
