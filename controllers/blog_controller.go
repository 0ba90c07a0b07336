package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zoii/goblog/middleware"
	"github.com/zoii/goblog/repositories"
	"github.com/zoii/goblog/utils"
)

// BlogController serves the post pages: listing, detail with comments, and
// the authenticated create/edit/delete flows.
type BlogController struct {
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	sessions *utils.SessionStore
}

// NewBlogController creates a BlogController.
func NewBlogController(posts repositories.PostRepository, comments repositories.CommentRepository, sessions *utils.SessionStore) *BlogController {
	return &BlogController{posts: posts, comments: comments, sessions: sessions}
}

type postForm struct {
	Title    string `form:"title" binding:"required"`
	Subtitle string `form:"subtitle" binding:"required"`
	ImgURL   string `form:"img_url" binding:"required,url"`
	Body     string `form:"body" binding:"required"`
	Author   string `form:"author"`
}

type commentForm struct {
	Comment string `form:"comment" binding:"required"`
}

// Index lists all posts.
func (b *BlogController) Index(ctx *gin.Context) {
	posts, err := b.posts.All()
	if err != nil {
		utils.Sugar.Errorw("failed to list posts", "error", err)
		renderError(ctx, b.sessions, http.StatusInternalServerError, "Could not load posts.")
		return
	}
	render(ctx, b.sessions, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// ShowPost renders a post with its comments and the comment form.
func (b *BlogController) ShowPost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}
	post, err := b.posts.ByID(id)
	if err != nil {
		b.postError(ctx, err)
		return
	}
	comments, err := b.comments.ForPost(post.ID)
	if err != nil {
		utils.Sugar.Errorw("failed to load comments", "post_id", post.ID, "error", err)
		renderError(ctx, b.sessions, http.StatusInternalServerError, "Could not load comments.")
		return
	}
	render(ctx, b.sessions, http.StatusOK, "post.html", gin.H{"Post": post, "Comments": comments})
}

// AddComment appends a comment to a post. Unauthenticated submitters are
// redirected to the login page and nothing is written.
func (b *BlogController) AddComment(ctx *gin.Context) {
	user, ok := middleware.UserFrom(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	id, parsed := parseID(ctx)
	if !parsed {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}
	post, err := b.posts.ByID(id)
	if err != nil {
		b.postError(ctx, err)
		return
	}

	var form commentForm
	if err := ctx.ShouldBind(&form); err != nil {
		b.sessions.Flash(ctx, "Comment cannot be empty.", "error")
		ctx.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
		return
	}

	text := utils.Sanitize(strings.TrimSpace(form.Comment))
	if text == "" {
		b.sessions.Flash(ctx, "Comment cannot be empty.", "error")
		ctx.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
		return
	}

	if _, err := b.comments.Create(post.ID, user, text); err != nil {
		utils.Sugar.Errorw("failed to create comment", "post_id", post.ID, "error", err)
		renderError(ctx, b.sessions, http.StatusInternalServerError, "Could not save your comment.")
		return
	}
	ctx.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
}

// NewPost renders the empty post form.
func (b *BlogController) NewPost(ctx *gin.Context) {
	render(ctx, b.sessions, http.StatusOK, "make-post.html", gin.H{"Editing": false})
}

// CreatePost persists a new post owned by the logged-in user.
func (b *BlogController) CreatePost(ctx *gin.Context) {
	user, _ := middleware.UserFrom(ctx)

	var form postForm
	if err := ctx.ShouldBind(&form); err != nil {
		b.sessions.Flash(ctx, "All fields are required and the image must be a URL.", "error")
		ctx.Redirect(http.StatusFound, "/new-post")
		return
	}

	title := strings.TrimSpace(form.Title)
	body := utils.Sanitize(form.Body)

	_, err := b.posts.Create(user, title, strings.TrimSpace(form.Subtitle), body, strings.TrimSpace(form.ImgURL))
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			b.sessions.Flash(ctx, "A post with that title already exists.", "error")
			ctx.Redirect(http.StatusFound, "/new-post")
			return
		}
		utils.Sugar.Errorw("failed to create post", "title", title, "error", err)
		renderError(ctx, b.sessions, http.StatusInternalServerError, "Could not save your post.")
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// EditPost renders the post form pre-filled for editing.
func (b *BlogController) EditPost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}
	post, err := b.posts.ByID(id)
	if err != nil {
		b.postError(ctx, err)
		return
	}
	render(ctx, b.sessions, http.StatusOK, "make-post.html", gin.H{"Editing": true, "Post": post})
}

// UpdatePost replaces the editable fields of a post. Ownership and the
// publish date are left untouched.
func (b *BlogController) UpdatePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}

	var form postForm
	if err := ctx.ShouldBind(&form); err != nil {
		b.sessions.Flash(ctx, "All fields are required and the image must be a URL.", "error")
		ctx.Redirect(http.StatusFound, "/edit-post/"+strconv.Itoa(int(id)))
		return
	}

	post, err := b.posts.Update(id, repositories.PostFields{
		Title:    strings.TrimSpace(form.Title),
		Subtitle: strings.TrimSpace(form.Subtitle),
		Author:   strings.TrimSpace(form.Author),
		Body:     utils.Sanitize(form.Body),
		ImgURL:   strings.TrimSpace(form.ImgURL),
	})
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateTitle) {
			b.sessions.Flash(ctx, "A post with that title already exists.", "error")
			ctx.Redirect(http.StatusFound, "/edit-post/"+strconv.Itoa(int(id)))
			return
		}
		b.postError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/post/"+strconv.Itoa(int(post.ID)))
}

// DeletePost removes a post and its comments.
func (b *BlogController) DeletePost(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}
	if err := b.posts.Delete(id); err != nil {
		b.postError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusFound, "/")
}

// About renders the about page.
func (b *BlogController) About(ctx *gin.Context) {
	render(ctx, b.sessions, http.StatusOK, "about.html", nil)
}

// Contact renders the contact page.
func (b *BlogController) Contact(ctx *gin.Context) {
	render(ctx, b.sessions, http.StatusOK, "contact.html", nil)
}

func (b *BlogController) postError(ctx *gin.Context, err error) {
	if errors.Is(err, repositories.ErrNotFound) {
		renderError(ctx, b.sessions, http.StatusNotFound, "Post not found.")
		return
	}
	utils.Sugar.Errorw("post lookup failed", "error", err)
	renderError(ctx, b.sessions, http.StatusInternalServerError, "Something went wrong.")
}

func parseID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
