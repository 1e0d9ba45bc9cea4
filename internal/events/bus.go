// Package events carries comment-created notifications from the
// content service to live subscribers. The snapshot read path does
// not go through here.
package events

import (
	"context"
	"time"
)

// Event announces one newly created comment.
type Event struct {
	ID        string    `json:"id"`
	PostID    int64     `json:"post_id"`
	CommentID int64     `json:"comment_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Bus is a per-post publish/subscribe channel. Subscribe returns a
// receive channel and a cancel func; after cancel the channel is
// closed and no more events arrive.
type Bus interface {
	Publish(ctx context.Context, ev Event) error
	Subscribe(ctx context.Context, postID int64) (<-chan Event, func())
}
