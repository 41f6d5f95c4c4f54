// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog serves the library home page: a snapshot of catalog counts
and a per-session visit counter.
*/
package catalog

// Counts is a point-in-time snapshot of the catalog.
type Counts struct {
	Books              int    `json:"num_books"`
	Authors            int    `json:"num_authors"`
	Instances          int    `json:"num_instances"`
	AvailableInstances int    `json:"num_instances_available"`
	Genres             int    `json:"num_genres"`
	TitlePrefix        string `json:"title_prefix"`
	TitlesWithPrefix   int    `json:"num_books_with_prefix"`
}

// Summary is the home page payload.
type Summary struct {
	Counts
	Visits int64 `json:"num_visits"`
}
