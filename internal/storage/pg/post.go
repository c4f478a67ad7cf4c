package pg

import (
	"context"
	"fmt"
	"net/http"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

func (s *Storage) CreatePost(ctx context.Context, data domain.PostCreationData, bodyHtml string) (*domain.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var post domain.Post
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (topic_id, author_id, body, body_html)
		VALUES ($1, $2, $3, $4)
		RETURNING id, topic_id, body, body_html, created_at
	`, data.TopicId, data.Author, data.Body, bodyHtml).Scan(
		&post.Id, &post.TopicId, &post.Body, &post.BodyHtml, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	post.Author = domain.Actor{Id: data.Author}

	if _, err = tx.ExecContext(ctx, `
		UPDATE topics SET post_count = post_count + 1, last_post_at = now() WHERE id = $1
	`, data.TopicId); err != nil {
		return nil, fmt.Errorf("failed to bump topic: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE messageboards SET last_activity = now()
		WHERE id = (SELECT board_id FROM topics WHERE id = $1)
	`, data.TopicId); err != nil {
		return nil, fmt.Errorf("failed to bump board activity: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit post: %w", err)
	}
	return &post, nil
}

func (s *Storage) PostsByTopic(ctx context.Context, topicId domain.TopicId, page, perPage int) ([]domain.Post, error) {
	offset := (page - 1) * perPage
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.topic_id, p.body, p.body_html, p.created_at, p.edited_at,
		       u.id, u.email, u.name, u.moderator
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.topic_id = $1
		ORDER BY p.created_at, p.id
		LIMIT $2 OFFSET $3
	`, topicId, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.TopicId, &p.Body, &p.BodyHtml, &p.CreatedAt, &p.EditedAt,
			&p.Author.Id, &p.Author.Email, &p.Author.Name, &p.Author.Moderator); err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// PostsByUser fetches the user's last N posts across all boards,
// newest first.
func (s *Storage) PostsByUser(ctx context.Context, userId domain.UserId, limit int) ([]domain.Post, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.topic_id, t.board_id, p.body, p.body_html, p.created_at, p.edited_at,
		       u.id, u.email, u.name, u.moderator
		FROM posts p
		JOIN topics t ON t.id = p.topic_id
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $1 AND NOT t.private
		ORDER BY p.created_at DESC
		LIMIT $2
	`, userId, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user posts: %w", err)
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.Id, &p.TopicId, &p.BoardId, &p.Body, &p.BodyHtml, &p.CreatedAt, &p.EditedAt,
			&p.Author.Id, &p.Author.Email, &p.Author.Name, &p.Author.Moderator); err != nil {
			return nil, fmt.Errorf("failed to scan user post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (s *Storage) DeletePost(ctx context.Context, topicId domain.TopicId, postId domain.PostId) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE topic_id = $1 AND id = $2`, topicId, postId)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &apperr.StatusError{Message: fmt.Sprintf("post %d not found", postId), Code: http.StatusNotFound}
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE topics SET post_count = post_count - 1 WHERE id = $1
	`, topicId); err != nil {
		return fmt.Errorf("failed to decrement post count: %w", err)
	}

	return tx.Commit()
}
