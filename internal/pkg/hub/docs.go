// Package hub implements the in-process topic fan-out behind live order notifications.
//
// A Hub maps topic names to the subscribers currently attached to them and hands every
// published payload to each of those subscribers without waiting for them:
//
//   - Subscribe is idempotent per (topic, subscriber) pair
//   - subscribers are removed by Unsubscribe, automatically when their Done channel
//     closes, or by EvictSlow after too many consecutive drops
//   - Publish is at-most-once: no buffering for absent subscribers, no replay, no retry
//   - a subscriber that is full, closed or panicking loses that message; the others
//     are unaffected and the publisher never sees the failure
//
// Topic lookups on the publish path are lock-free and each topic has its own lock, so
// traffic on one topic never waits for subscription changes on another.
package hub
