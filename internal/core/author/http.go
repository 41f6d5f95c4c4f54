package author

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

const ListURL = "/catalog/authors/"

func DetailURL(author *Author) string {
	return fmt.Sprintf("%s%d/", ListURL, author.ID)
}

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public listing on /catalog/authors.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listAuthors)
	router.Get("/{id}", handler.getAuthor)
}

// RegisterWriteRoutes mounts the create form and the gated writes on /catalog/author.
func (handler *Handler) RegisterWriteRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	router.With(gatekeeper.Require(sec.EntityAction(sec.CapAdd, sec.EntityAuthor))).Get("/create", handler.createForm)

	crud.Mount[Author, Input](router, gatekeeper, crud.Resource[Author]{
		Entity:    sec.EntityAuthor,
		Label:     ResourceName,
		ListURL:   ListURL,
		DetailURL: DetailURL,
	}, handler.service)
}

func (handler *Handler) listAuthors(writer http.ResponseWriter, request *http.Request) {
	page, err := pagination.FromRequest(request, constants.AuthorPageSize)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	authors, meta, err := handler.service.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, authors, meta)
}

func (handler *Handler) getAuthor(writer http.ResponseWriter, request *http.Request) {
	authorID, err := requestutil.IntID(request, "id", ResourceName)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	detail, err := handler.service.Detail(request.Context(), authorID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, detail)
}

func (handler *Handler) createForm(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, handler.service.Initial())
}
