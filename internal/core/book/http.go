// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package book

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/crud"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

// ListURL is the books collection path.
const ListURL = "/catalog/books/"

// DetailURL is the path of a single book.
func DetailURL(book *Book) string {
	return fmt.Sprintf("%s%d/", ListURL, book.ID)
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public listing on /catalog/books.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listBooks)
	router.Get("/{id}", handler.getBook)
}

// RegisterWriteRoutes mounts the gated writes on /catalog/book.
func (handler *Handler) RegisterWriteRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	crud.Mount[Book, Input](router, gatekeeper, crud.Resource[Book]{
		Entity:    sec.EntityBook,
		Label:     ResourceName,
		ListURL:   ListURL,
		DetailURL: DetailURL,
	}, handler.service)
}

func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request, constants.BookPageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	books, meta, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, books, meta)
}

func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", ResourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}
