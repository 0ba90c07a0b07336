package repositories

import (
	"errors"

	"github.com/zoii/goblog/models"
)

// Expected failures, handled at the route boundary and turned into flash
// messages or redirects rather than 5xx responses.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateTitle = errors.New("title already taken")
	ErrUserNotFound   = errors.New("user not found")
	ErrBadPassword    = errors.New("password mismatch")
	ErrNotFound       = errors.New("record not found")
)

// UserRepository owns account creation and credential verification.
type UserRepository interface {
	// Register persists a new user with a bcrypt password hash.
	// Fails with ErrDuplicateEmail when the exact email already exists.
	Register(name, email, rawPassword string) (*models.User, error)
	// Authenticate looks the user up by exact email and verifies the
	// password. Returns ErrUserNotFound or ErrBadPassword.
	Authenticate(email, rawPassword string) (*models.User, error)
	ByID(id uint) (*models.User, error)
}

// PostFields is the set of attributes an edit may replace. The owning
// author id and the publish date are deliberately absent.
type PostFields struct {
	Title    string
	Subtitle string
	Author   string
	Body     string
	ImgURL   string
}

// PostRepository provides explicit query methods over blog posts; there is
// no implicit object graph navigation from users to their posts.
type PostRepository interface {
	All() ([]models.Post, error)
	ByID(id uint) (*models.Post, error)
	ByAuthor(authorID uint) ([]models.Post, error)
	// Create assigns the publish date from the current calendar day.
	// Fails with ErrDuplicateTitle on a title collision.
	Create(author *models.User, title, subtitle, body, imgURL string) (*models.Post, error)
	Update(id uint, fields PostFields) (*models.Post, error)
	// Delete removes the post and its comments in one transaction.
	Delete(id uint) error
}

// CommentRepository creates and lists comments. Editing and deleting
// individual comments is intentionally unsupported.
type CommentRepository interface {
	ForPost(postID uint) ([]models.Comment, error)
	Create(postID uint, author *models.User, text string) (*models.Comment, error)
}
