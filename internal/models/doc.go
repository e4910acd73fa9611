// Package models defines the data model for the scrobble submission queue.
package models
