// Package transcript implements the transcript retrieval service.
//
// Service resolves video IDs, consults the cache tiers (in-memory, optionally
// Redis), fetches from the upstream on a miss, and formats cues with
// [MM:SS] timestamps. MemoryCache is the always-on first tier.
package transcript
