// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	jsoniter "github.com/json-iterator/go"

	"github.com/taibuivan/locallibrary/internal/core/author"
	"github.com/taibuivan/locallibrary/internal/core/book"
	"github.com/taibuivan/locallibrary/internal/core/loan"
	"github.com/taibuivan/locallibrary/internal/core/reference"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/internal/users/auth"
	"github.com/taibuivan/locallibrary/pkg/date"
	"github.com/taibuivan/locallibrary/pkg/pointer"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// # Fixture Schema

// Fixture is the on-disk seed document. Records refer to each other by
// name (genres, languages), key (authors) or username (borrowers), never by id.
type Fixture struct {
	Genres    []string         `json:"genres"`
	Languages []string         `json:"languages"`
	Authors   []AuthorFixture  `json:"authors"`
	Accounts  []AccountFixture `json:"accounts"`
	Books     []BookFixture    `json:"books"`
}

type AuthorFixture struct {
	Key         string    `json:"key"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth date.Date `json:"date_of_birth"`
	DateOfDeath date.Date `json:"date_of_death"`
}

type AccountFixture struct {
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	Password    string       `json:"password"`
	Role        sec.UserRole `json:"role"`
	Permissions []string     `json:"permissions"`
}

type BookFixture struct {
	Title    string        `json:"title"`
	Summary  string        `json:"summary"`
	ISBN     string        `json:"isbn"`
	Author   string        `json:"author"`
	Language string        `json:"language"`
	Genres   []string      `json:"genres"`
	Copies   []CopyFixture `json:"copies"`
}

type CopyFixture struct {
	Imprint  string      `json:"imprint"`
	Status   loan.Status `json:"status"`
	DueBack  date.Date   `json:"due_back"`
	Borrower string      `json:"borrower"`
}

// DecodeFixture reads a fixture document.
func DecodeFixture(reader io.Reader) (*Fixture, error) {
	var fixture Fixture
	if err := json.NewDecoder(reader).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("seed: decode fixture: %w", err)
	}
	return &fixture, nil
}

// # Loader

type termCreator interface {
	Create(context context.Context, input reference.Input) (*reference.Term, error)
}

type authorCreator interface {
	Create(context context.Context, input author.Input) (*author.Author, error)
}

type bookCreator interface {
	Create(context context.Context, input book.Input) (*book.Book, error)
}

type copyCreator interface {
	Create(context context.Context, input loan.Input) (*loan.BookInstance, error)
}

type accountCreator interface {
	CreateAccount(context context.Context, input auth.AccountInput) (*auth.Account, error)
}

// Loader writes a [Fixture] through the domain services so every record
// passes the same validation as an API write.
type Loader struct {
	Genres    termCreator
	Languages termCreator
	Authors   authorCreator
	Books     bookCreator
	Copies    copyCreator
	Accounts  accountCreator
	Logger    *slog.Logger
}

// Report counts what a load created.
type Report struct {
	Genres    int
	Languages int
	Authors   int
	Accounts  int
	Books     int
	Copies    int
}

/*
Load creates every record of fixture in dependency order.

Description: Reference terms and authors come first, then accounts, then
books and finally their copies. The first failure aborts the load.

Returns:
  - Report: How many records of each kind were created
  - error: A service error annotated with the offending record
*/
func (loader *Loader) Load(context context.Context, fixture *Fixture) (Report, error) {
	var report Report

	genreIDs := make(map[string]int64, len(fixture.Genres))
	for _, name := range fixture.Genres {
		term, err := loader.Genres.Create(context, reference.Input{Name: name})
		if err != nil {
			return report, fmt.Errorf("genre %q: %w", name, err)
		}
		genreIDs[name] = term.ID
		report.Genres++
	}

	languageIDs := make(map[string]int64, len(fixture.Languages))
	for _, name := range fixture.Languages {
		term, err := loader.Languages.Create(context, reference.Input{Name: name})
		if err != nil {
			return report, fmt.Errorf("language %q: %w", name, err)
		}
		languageIDs[name] = term.ID
		report.Languages++
	}

	authorIDs := make(map[string]int64, len(fixture.Authors))
	for _, entry := range fixture.Authors {
		created, err := loader.Authors.Create(context, author.Input{
			FirstName:   entry.FirstName,
			LastName:    entry.LastName,
			DateOfBirth: entry.DateOfBirth,
			DateOfDeath: entry.DateOfDeath,
		})
		if err != nil {
			return report, fmt.Errorf("author %q: %w", entry.Key, err)
		}
		authorIDs[entry.Key] = created.ID
		report.Authors++
	}

	accountIDs := make(map[string]string, len(fixture.Accounts))
	for _, entry := range fixture.Accounts {
		account, err := loader.Accounts.CreateAccount(context, auth.AccountInput{
			Username:    entry.Username,
			Email:       entry.Email,
			Password:    entry.Password,
			Role:        entry.Role,
			Permissions: entry.Permissions,
		})
		if err != nil {
			return report, fmt.Errorf("account %q: %w", entry.Username, err)
		}
		accountIDs[entry.Username] = account.ID
		report.Accounts++
	}

	for _, entry := range fixture.Books {
		input := book.Input{Title: entry.Title, Summary: entry.Summary, ISBN: entry.ISBN}

		if entry.Author != "" {
			id, ok := authorIDs[entry.Author]
			if !ok {
				return report, fmt.Errorf("book %q: unknown author %q", entry.Title, entry.Author)
			}
			input.AuthorID = pointer.To(id)
		}
		if entry.Language != "" {
			id, ok := languageIDs[entry.Language]
			if !ok {
				return report, fmt.Errorf("book %q: unknown language %q", entry.Title, entry.Language)
			}
			input.LanguageID = pointer.To(id)
		}
		for _, genre := range entry.Genres {
			id, ok := genreIDs[genre]
			if !ok {
				return report, fmt.Errorf("book %q: unknown genre %q", entry.Title, genre)
			}
			input.GenreIDs = append(input.GenreIDs, id)
		}

		created, err := loader.Books.Create(context, input)
		if err != nil {
			return report, fmt.Errorf("book %q: %w", entry.Title, err)
		}
		report.Books++

		for _, instance := range entry.Copies {
			copyInput := loan.Input{
				BookID:  created.ID,
				Imprint: instance.Imprint,
				DueBack: instance.DueBack,
				Status:  instance.Status,
			}
			if instance.Borrower != "" {
				id, ok := accountIDs[instance.Borrower]
				if !ok {
					return report, fmt.Errorf("copy of %q: unknown borrower %q", entry.Title, instance.Borrower)
				}
				copyInput.BorrowerID = pointer.To(id)
			}

			if _, err := loader.Copies.Create(context, copyInput); err != nil {
				return report, fmt.Errorf("copy of %q: %w", entry.Title, err)
			}
			report.Copies++
		}
	}

	loader.Logger.Info("fixture_loaded",
		slog.Int("genres", report.Genres),
		slog.Int("languages", report.Languages),
		slog.Int("authors", report.Authors),
		slog.Int("accounts", report.Accounts),
		slog.Int("books", report.Books),
		slog.Int("copies", report.Copies),
	)
	return report, nil
}
