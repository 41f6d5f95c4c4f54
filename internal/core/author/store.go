package author

import "context"

type Repository interface {
	List(context context.Context, limit, offset int) ([]*Author, int, error)
	FindByID(context context.Context, id int64) (*Author, error)
	Create(context context.Context, author *Author) error
	Update(context context.Context, author *Author) error

	// Delete removes the author and clears the author of their books.
	Delete(context context.Context, id int64) error
}
