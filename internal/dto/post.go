package dto

import (
	"time"

	"github.com/wallfeed/wallfeed/internal/model"
)

// CreatePostRequest is the non-file part of the multipart post form.
// ExistingImages lets the client keep previously uploaded filenames.
type CreatePostRequest struct {
	Text           string   `form:"text" binding:"required"`
	ExistingImages []string `form:"existingImages"`
}

// UpdatePostRequest carries a partial post update. Nil text is left
// untouched.
type UpdatePostRequest struct {
	Text           *string  `form:"text"`
	ExistingImages []string `form:"existingImages"`
}

type PostResponse struct {
	ID        uint         `json:"id"`
	Text      string       `json:"text"`
	Images    []string     `json:"images"`
	Author    UserSnapshot `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// NewPostResponse builds the outward view of a post with its author
// snapshot attached.
func NewPostResponse(p *model.Post) *PostResponse {
	images := p.Images
	if images == nil {
		images = model.ImageList{}
	}
	return &PostResponse{
		ID:        p.ID,
		Text:      p.Text,
		Images:    images,
		Author:    *NewUserSnapshot(&p.Author),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
