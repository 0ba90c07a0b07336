package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/zoii/goblog/models"
)

// publishDateLayout renders the publish date the way the site displays it.
const publishDateLayout = "January 02, 2006"

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a PostRepository backed by gorm.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) All() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) ByAuthor(authorID uint) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Where("author_id = ?", authorID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Create(author *models.User, title, subtitle, body, imgURL string) (*models.Post, error) {
	post := models.Post{
		AuthorID: author.ID,
		Author:   author.Name,
		Title:    title,
		Subtitle: subtitle,
		Date:     time.Now().Format(publishDateLayout),
		Body:     body,
		ImgURL:   imgURL,
	}
	if err := r.db.Create(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(id uint, fields PostFields) (*models.Post, error) {
	post, err := r.ByID(id)
	if err != nil {
		return nil, err
	}

	post.Title = fields.Title
	post.Subtitle = fields.Subtitle
	post.Author = fields.Author
	post.Body = fields.Body
	post.ImgURL = fields.ImgURL
	// AuthorID and Date are never touched by an edit.

	if err := r.db.Save(post).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTitle
		}
		return nil, err
	}
	return post, nil
}

func (r *postRepository) Delete(id uint) error {
	post, err := r.ByID(id)
	if err != nil {
		return err
	}
	// Cascade policy: the post's comments go with it, atomically.
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(post).Error
	})
}
