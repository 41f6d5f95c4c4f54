// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pointer helps fill the optional (nullable) fields of catalog inputs.
package pointer

// To returns a pointer to a copy of v, e.g. pointer.To(authorID) for book.Input.AuthorID.
func To[T any](v T) *T {
	return &v
}
