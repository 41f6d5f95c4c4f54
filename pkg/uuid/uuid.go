// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the identifier generators used across the catalog.

Two flavours are exposed:

  - New: time-ordered UUIDv7 for accounts and request correlation ids, friendly
    to B-tree indexes.
  - Random: UUIDv4 for book copies, whose ids must not reveal creation order or
    be guessable from a neighbouring copy.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Random generates a new random UUIDv4 string.
func Random() string {
	return uuid.NewString()
}

// # Parsing

// Valid reports whether s is a well-formed UUID of any version.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
