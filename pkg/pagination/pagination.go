// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for API list endpoints.
//
// # Overview
//
// Every catalog listing has a fixed page size chosen by the endpoint, so only the
// 1-indexed page number is read from the query string. The resulting metadata
// carries enough information for clients to render next/previous links.
package pagination

import (
	"math"
	"net/http"
	"strconv"

	"github.com/taibuivan/locallibrary/internal/platform/apperr"
)

const (
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// QueryParam is the query string key carrying the page number.
	QueryParam = "page"
)

// ErrInvalidPage is returned for a page number that is malformed or past the last page.
var ErrInvalidPage = apperr.NotFound("Page")

// Params holds the requested page and the endpoint's fixed page size.
type Params struct {
	Page  int
	Limit int
}

// Offset returns the SQL OFFSET value derived from [Page] and [Limit].
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Check rejects a page that lies beyond the last page for total items.
//
// The first page is always valid, even for an empty listing.
func (p Params) Check(total int) error {
	if p.Page == DefaultPage {
		return nil
	}
	if p.Page > TotalPages(total, p.Limit) {
		return ErrInvalidPage
	}
	return nil
}

// Meta is the pagination metadata included in API list responses.
type Meta struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
	IsPaginated bool `json:"is_paginated"`
}

// NewMeta constructs pagination metadata for a response.
func NewMeta(page, limit, total int) Meta {
	totalPages := TotalPages(total, limit)

	return Meta{
		Page:        page,
		Limit:       limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
		IsPaginated: totalPages > 1,
	}
}

// TotalPages returns ceil(total/limit), or 0 for an empty set.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// FromRequest parses the "page" query parameter for an endpoint with the given page size.
//
// A missing parameter selects the first page. A non-numeric or non-positive value, or
// one whose offset would overflow an int, is rejected with [ErrInvalidPage].
func FromRequest(r *http.Request, limit int) (Params, error) {
	raw := r.URL.Query().Get(QueryParam)
	if raw == "" {
		return Params{Page: DefaultPage, Limit: limit}, nil
	}

	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return Params{}, ErrInvalidPage
	}
	if limit > 0 && page-1 > math.MaxInt/limit {
		return Params{}, ErrInvalidPage
	}

	return Params{Page: page, Limit: limit}, nil
}
