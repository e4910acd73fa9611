// Package cache implements the per-user queue of plays awaiting submission.
//
// Each user owns one XML file on disk. A Cache loads it on construction,
// validates every candidate before accepting it, and rewrites the whole file
// after every mutation. The file is deleted outright when the queue empties.
//
// A Cache is not safe for concurrent use and assumes it is the only owner of
// its file; there is no cross-process coordination.
package cache
