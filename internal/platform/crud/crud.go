// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package crud mounts the permission-gated create, update and delete endpoints
shared by every catalog entity.

Each entity supplies a [Resource] describing its name and URLs plus a service
implementing the write operations. The package then registers:

	POST        /create/          gated on catalog.add_<entity>
	POST | PUT  /{id}/update/     gated on catalog.change_<entity>
	POST | DELETE /{id}/delete/   gated on catalog.delete_<entity>

Successful writes answer 303 See Other: create and update point at the
entity's detail URL (and carry the entity in the body), delete points at the
entity's list URL.
*/
package crud

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Contracts

// Creator persists a new entity built from input I.
type Creator[T any, I any] interface {
	Create(ctx context.Context, input I) (*T, error)
}

// Updater replaces the editable fields of an existing entity.
type Updater[T any, I any] interface {
	Update(ctx context.Context, id int64, input I) (*T, error)
}

// Deleter removes an entity by id.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// Service is the full write surface of an entity.
type Service[T any, I any] interface {
	Creator[T, I]
	Updater[T, I]
	Deleter
}

// Resource describes how an entity is named and addressed.
type Resource[T any] struct {
	// Entity is the permission codename suffix, e.g. "author".
	Entity string

	// Label names the entity in not-found errors, e.g. "Author".
	Label string

	// ListURL is where a successful delete redirects.
	ListURL string

	// DetailURL returns where a successful create or update redirects.
	DetailURL func(*T) string
}

// # Mounting

// Mount registers create, update and delete routes for service on router.
func Mount[T any, I any](router chi.Router, gatekeeper *middleware.Gatekeeper, resource Resource[T], service Service[T, I]) {
	MountCreate[T, I](router, gatekeeper, resource, service)

	update := gatekeeper.Require(sec.EntityAction(sec.CapChange, resource.Entity))
	router.With(update).Post("/{id}/update", updateHandler[T, I](resource, service))
	router.With(update).Put("/{id}/update", updateHandler[T, I](resource, service))

	remove := gatekeeper.Require(sec.EntityAction(sec.CapDelete, resource.Entity))
	router.With(remove).Post("/{id}/delete", deleteHandler[T](resource, service))
	router.With(remove).Delete("/{id}/delete", deleteHandler[T](resource, service))
}

// MountCreate registers only the create route, for entities that are not edited through the API.
func MountCreate[T any, I any](router chi.Router, gatekeeper *middleware.Gatekeeper, resource Resource[T], creator Creator[T, I]) {
	create := gatekeeper.Require(sec.EntityAction(sec.CapAdd, resource.Entity))
	router.With(create).Post("/create", createHandler[T, I](resource, creator))
}

// # Handlers

func createHandler[T any, I any](resource Resource[T], creator Creator[T, I]) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		var input I
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := creator.Create(request.Context(), input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), resource.Entity+"_created",
			slog.String("location", resource.DetailURL(entity)),
		)
		respond.SeeOther(writer, resource.DetailURL(entity), entity)
	}
}

func updateHandler[T any, I any](resource Resource[T], updater Updater[T, I]) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntID(request, "id", resource.Label)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		var input I
		if err := requestutil.DecodeJSON(request, &input); err != nil {
			respond.Error(writer, request, err)
			return
		}

		entity, err := updater.Update(request.Context(), id, input)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), resource.Entity+"_updated",
			slog.Int64("id", id),
		)
		respond.SeeOther(writer, resource.DetailURL(entity), entity)
	}
}

func deleteHandler[T any](resource Resource[T], deleter Deleter) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		id, err := requestutil.IntID(request, "id", resource.Label)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		if err := deleter.Delete(request.Context(), id); err != nil {
			respond.Error(writer, request, err)
			return
		}

		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), resource.Entity+"_deleted",
			slog.Int64("id", id),
		)
		respond.SeeOther(writer, resource.ListURL, nil)
	}
}
