package repositories

import (
	"gorm.io/gorm"

	"github.com/zoii/goblog/models"
)

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a CommentRepository backed by gorm.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) ForPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	// Author is loaded for the display name and the avatar email.
	if err := r.db.Preload("Author").Where("blog_post_id = ?", postID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Create(postID uint, author *models.User, text string) (*models.Comment, error) {
	comment := models.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Text:     text,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	comment.Author = *author
	return &comment, nil
}
