package models

import "time"

// Post represents a blog post stored in MongoDB. Comments are embedded in
// arrival order and never referenced outside their parent document; Likes
// holds the ids of users who currently like the post.
type Post struct {
	ID             string    `json:"id" bson:"id"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	Content        string    `json:"content" bson:"content"`
	Thumbnail      string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
	Language       string    `json:"language,omitempty" bson:"language,omitempty"`
	Genre          string    `json:"genre,omitempty" bson:"genre,omitempty"`
	Author         string    `json:"author" bson:"author"`
	AuthorID       string    `json:"authorId" bson:"author_id"`
	AuthorUsername string    `json:"authorUsername" bson:"author_username"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty" bson:"updated_at,omitempty"`
	Likes          []string  `json:"likes" bson:"likes"`
	Comments       []Comment `json:"comments" bson:"comments"`
}

// Comment is embedded in its parent post.
type Comment struct {
	ID             string    `json:"id" bson:"id"`
	Author         string    `json:"author" bson:"author"`
	AuthorID       string    `json:"authorId,omitempty" bson:"author_id,omitempty"`
	AuthorUsername string    `json:"authorUsername,omitempty" bson:"author_username,omitempty"`
	Text           string    `json:"text" bson:"text"`
	CreatedAt      time.Time `json:"createdAt" bson:"created_at"`
}

// CreatePostRequest defines the body for creating a new post. The id,
// timestamps and like/comment collections are assigned server-side.
type CreatePostRequest struct {
	Title          string `json:"title" validate:"required"`
	Description    string `json:"description"`
	Content        string `json:"content" validate:"required"`
	Thumbnail      string `json:"thumbnail"`
	Language       string `json:"language"`
	Genre          string `json:"genre"`
	Author         string `json:"author"`
	AuthorID       string `json:"authorId"`
	AuthorUsername string `json:"authorUsername"`
}

// UpdatePostRequest defines the body for updating an existing post.
type UpdatePostRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Content     string `json:"content" validate:"required"`
	Thumbnail   string `json:"thumbnail"`
	Language    string `json:"language"`
	Genre       string `json:"genre"`
}

// LikeRequest is the body of POST /api/posts/:id/like.
type LikeRequest struct {
	ViewerID string `json:"viewerId" validate:"required"`
}

// CreateCommentRequest wraps the comment payload of
// POST /api/posts/:id/comments.
type CreateCommentRequest struct {
	Comment CommentPayload `json:"comment" validate:"required"`
}

// CommentPayload carries the client-supplied comment fields. ID and
// CreatedAt are assigned server-side when absent.
type CommentPayload struct {
	ID             string     `json:"id"`
	Author         string     `json:"author"`
	AuthorID       string     `json:"authorId"`
	AuthorUsername string     `json:"authorUsername"`
	Text           string     `json:"text" validate:"required"`
	CreatedAt      *time.Time `json:"createdAt"`
}
