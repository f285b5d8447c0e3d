// Package models defines the TaskHub entities: profiles, tasks, auth users
// and sessions, in the JSON shape they take in durable storage.
package models
