// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package loan

import (
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

// AllBorrowedURL is where a successful renewal redirects.
const AllBorrowedURL = "/catalog/all-borrowed/"

// Handler serves the borrowing views and the renewal workflow.
type Handler struct {
	service *Service
}

// NewHandler constructs a loan [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the borrowed-book listings on the /catalog router.
func (handler *Handler) RegisterRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	router.With(gatekeeper.Require(sec.ActionViewMyLoans)).Get("/mybooks", handler.myLoans)
	router.With(gatekeeper.Require(sec.ActionViewAllLoans)).Get("/all-borrowed", handler.allLoans)
}

// RegisterRenewRoutes mounts GET/POST /{id}/renew on the /catalog/book router.
func (handler *Handler) RegisterRenewRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	renew := gatekeeper.Require(sec.ActionRenew)
	router.With(renew).Get("/{id}/renew", handler.renewForm)
	router.With(renew).Post("/{id}/renew", handler.renew)
}

// RegisterWriteRoutes mounts POST /create on the /catalog/bookinstance router.
func (handler *Handler) RegisterWriteRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	crud.MountCreate[BookInstance, Input](router, gatekeeper, crud.Resource[BookInstance]{
		Entity:  sec.EntityBookInstance,
		Label:   ResourceName,
		ListURL: AllBorrowedURL,
		DetailURL: func(instance *BookInstance) string {
			return "/catalog/book/" + instance.ID + "/renew/"
		},
	}, handler.service)
}

func (handler *Handler) myLoans(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := pagination.FromRequest(request, constants.MyLoansPageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instances, meta, err := handler.service.MyLoans(request.Context(), userID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, instances, meta)
}

func (handler *Handler) allLoans(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request, constants.AllLoansPageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	instances, meta, err := handler.service.AllLoans(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Paginated(writer, instances, meta)
}

func (handler *Handler) renewForm(writer http.ResponseWriter, request *http.Request) {
	form, err := handler.service.RenewForm(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, form)
}

func (handler *Handler) renew(writer http.ResponseWriter, request *http.Request) {
	var input RenewalRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	instance, err := handler.service.Renew(request.Context(), requestutil.ID(request, "id"), input.RenewalDate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.SeeOther(writer, AllBorrowedURL, instance)
}
