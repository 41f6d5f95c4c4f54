// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
)

// Service assembles the home page summary.
type Service struct {
	counter     Counter
	visits      VisitStore
	titlePrefix string
	logger      *slog.Logger
}

// NewService constructs a catalog [Service] counting titles that start with titlePrefix.
func NewService(counter Counter, visits VisitStore, titlePrefix string, logger *slog.Logger) *Service {
	return &Service{counter: counter, visits: visits, titlePrefix: titlePrefix, logger: logger}
}

/*
Summary returns the catalog counts and the session's visit count.

Description: The visit count is the value before this request; the stored
counter ends one higher. Without a session the count is 0 and nothing is
stored. A session store outage degrades to 0 rather than failing the page.
*/
func (service *Service) Summary(context context.Context, sessionID string) (*Summary, error) {
	counts, err := service.counter.CountAll(context, service.titlePrefix)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Counts: *counts}
	if sessionID == "" {
		return summary, nil
	}

	visits, err := service.visits.Hit(context, sessionID)
	if err != nil {
		service.logger.Warn("visit_counter_unavailable", slog.Any("error", err))
		return summary, nil
	}

	summary.Visits = visits
	return summary, nil
}
