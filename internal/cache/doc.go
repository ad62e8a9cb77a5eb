// Package cache holds search results between the message that presented
// them and the button press that picks one.
//
// The Store is owned by the conversation layer and injected into
// handlers; nothing else in the process keeps result-set state. Entries
// live for a configured TTL and the store is capped, so a long-running
// bot cannot accumulate history without bound.
package cache
