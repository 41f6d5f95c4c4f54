// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// Counter computes catalog-wide counts.
type Counter interface {

	// CountAll returns every home page count; titlePrefix is matched case-sensitively.
	CountAll(context context.Context, titlePrefix string) (*Counts, error)
}

// VisitStore tracks page visits per browsing session.
type VisitStore interface {

	// Hit records a visit for sessionID and returns the number of earlier visits.
	Hit(context context.Context, sessionID string) (int64, error)
}
