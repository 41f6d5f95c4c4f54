// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/constants"
	"github.com/taibuivan/locallibrary/internal/platform/crud"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/pkg/pagination"
)

// Handler serves the public listing and the gated writes of one taxonomy.
type Handler struct {
	service *Service
}

// NewHandler constructs a [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListURL is the collection path, e.g. "/catalog/genres/".
func (handler *Handler) ListURL() string {
	return "/catalog/" + handler.service.Kind().Plural() + "/"
}

// DetailURL is the path of a single term.
func (handler *Handler) DetailURL(term *Term) string {
	return fmt.Sprintf("%s%d/", handler.ListURL(), term.ID)
}

// RegisterRoutes mounts GET / and GET /{id} on the plural path.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/{id}", handler.detail)
}

// RegisterWriteRoutes mounts create/update/delete on the singular path.
func (handler *Handler) RegisterWriteRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	crud.Mount[Term, Input](router, gatekeeper, crud.Resource[Term]{
		Entity:    string(handler.service.Kind()),
		Label:     handler.service.Kind().Label(),
		ListURL:   handler.ListURL(),
		DetailURL: handler.DetailURL,
	}, handler.service)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request, constants.ReferencePageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	terms, meta, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, terms, meta)
}

func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.IntID(request, "id", handler.service.Kind().Label())
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
