// Package catalog wraps raw Web API objects (tracks, albums, artists,
// playlists, shows, episodes, users and categories) in stateful values that
// remember what has already been fetched and only go back to the network for
// the fields that are still missing.
//
// Two generic building blocks carry the behaviour for every kind. Entity holds
// the fields of one object and knows which completeness tiers ("simplified",
// "full", and for tracks "link", "audioFeatures" and "audioAnalysis") are
// satisfied. Collection is an ordered registry of entities of one kind which
// keeps duplicates in its order (a playlist may contain the same track twice)
// while storing every id exactly once. Collections resolve missing data in
// bulk, 50 ids per request, so aggregate getters cost a handful of requests
// rather than one per member.
//
// The package never performs HTTP itself. Every network operation receives a
// value implementing the narrow interface it needs from Client; the spotify
// package provides the production implementation. Errors returned by the
// client are passed through unchanged.
package catalog
