package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/boardkit/boardkit/internal/apperr"
	"github.com/boardkit/boardkit/internal/domain"
)

// CreateTopic inserts the topic, its participant list (for private
// topics) and the opening post in one transaction.
func (s *Storage) CreateTopic(ctx context.Context, data domain.TopicCreationData, firstPostHtml string) (*domain.Topic, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback()

	var topic domain.Topic
	err = tx.QueryRowContext(ctx, `
		INSERT INTO topics (board_id, title, author_id, private)
		VALUES ($1, $2, $3, $4)
		RETURNING id, board_id, title, sticky, locked, private, created_at, last_post_at, post_count
	`, data.BoardId, data.Title, data.Author, data.Private).Scan(
		&topic.Id, &topic.BoardId, &topic.Title, &topic.Sticky, &topic.Locked,
		&topic.Private, &topic.CreatedAt, &topic.LastPostAt, &topic.PostCount)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic: %w", err)
	}
	topic.Author = domain.Actor{Id: data.Author}

	if data.Private {
		participants := data.Participants
		// the author is always a participant
		if !slices.Contains(participants, data.Author) {
			participants = append(participants, data.Author)
		}
		for _, userId := range participants {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO topic_participants (topic_id, user_id) VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, topic.Id, userId); err != nil {
				return nil, fmt.Errorf("failed to add participant: %w", err)
			}
		}
		topic.Participants = participants
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO posts (topic_id, author_id, body, body_html)
		VALUES ($1, $2, $3, $4)
	`, topic.Id, data.Author, data.FirstPost.Body, firstPostHtml); err != nil {
		return nil, fmt.Errorf("failed to create opening post: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE topics SET post_count = 1, last_post_at = now() WHERE id = $1
	`, topic.Id); err != nil {
		return nil, fmt.Errorf("failed to update topic counters: %w", err)
	}

	if _, err = tx.ExecContext(ctx, `
		UPDATE messageboards SET last_activity = now() WHERE id = $1
	`, data.BoardId); err != nil {
		return nil, fmt.Errorf("failed to bump board activity: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit topic: %w", err)
	}
	topic.PostCount = 1
	return &topic, nil
}

func (s *Storage) TopicById(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) (*domain.Topic, error) {
	var t domain.Topic
	err := s.db.QueryRowContext(ctx, `
		SELECT t.id, t.board_id, t.title, t.sticky, t.locked, t.private,
		       t.created_at, t.last_post_at, t.post_count,
		       u.id, u.email, u.name, u.moderator
		FROM topics t
		JOIN users u ON u.id = t.author_id
		WHERE t.board_id = $1 AND t.id = $2
	`, boardId, topicId).Scan(
		&t.Id, &t.BoardId, &t.Title, &t.Sticky, &t.Locked, &t.Private,
		&t.CreatedAt, &t.LastPostAt, &t.PostCount,
		&t.Author.Id, &t.Author.Email, &t.Author.Name, &t.Author.Moderator)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound(domain.KindTopic, strconv.FormatInt(topicId, 10))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch topic: %w", err)
	}

	if t.Private {
		rows, err := s.db.QueryContext(ctx, `
			SELECT user_id FROM topic_participants WHERE topic_id = $1 ORDER BY user_id
		`, t.Id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch participants: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var userId domain.UserId
			if err := rows.Scan(&userId); err != nil {
				return nil, fmt.Errorf("failed to scan participant: %w", err)
			}
			t.Participants = append(t.Participants, userId)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return &t, nil
}

// TopicsByBoard lists one page of a board's non-private topics,
// stickies first, then most recently posted.
func (s *Storage) TopicsByBoard(ctx context.Context, boardId domain.BoardId, page, perPage int) ([]domain.Topic, error) {
	offset := (page - 1) * perPage
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.board_id, t.title, t.sticky, t.locked, t.private,
		       t.created_at, t.last_post_at, t.post_count,
		       u.id, u.email, u.name, u.moderator
		FROM topics t
		JOIN users u ON u.id = t.author_id
		WHERE t.board_id = $1 AND NOT t.private
		ORDER BY t.sticky DESC, t.last_post_at DESC
		LIMIT $2 OFFSET $3
	`, boardId, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(
			&t.Id, &t.BoardId, &t.Title, &t.Sticky, &t.Locked, &t.Private,
			&t.CreatedAt, &t.LastPostAt, &t.PostCount,
			&t.Author.Id, &t.Author.Email, &t.Author.Name, &t.Author.Moderator); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

// PrivateTopicsFor lists private topics the user participates in.
func (s *Storage) PrivateTopicsFor(ctx context.Context, userId domain.UserId, page, perPage int) ([]domain.Topic, error) {
	offset := (page - 1) * perPage
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.board_id, t.title, t.sticky, t.locked, t.private,
		       t.created_at, t.last_post_at, t.post_count,
		       u.id, u.email, u.name, u.moderator
		FROM topics t
		JOIN users u ON u.id = t.author_id
		JOIN topic_participants p ON p.topic_id = t.id
		WHERE t.private AND p.user_id = $1
		ORDER BY t.last_post_at DESC
		LIMIT $2 OFFSET $3
	`, userId, perPage, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list private topics: %w", err)
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var t domain.Topic
		if err := rows.Scan(
			&t.Id, &t.BoardId, &t.Title, &t.Sticky, &t.Locked, &t.Private,
			&t.CreatedAt, &t.LastPostAt, &t.PostCount,
			&t.Author.Id, &t.Author.Email, &t.Author.Name, &t.Author.Moderator); err != nil {
			return nil, fmt.Errorf("failed to scan private topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Storage) DeleteTopic(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE board_id = $1 AND id = $2`, boardId, topicId)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(domain.KindTopic, strconv.FormatInt(topicId, 10))
	}
	return nil
}

func (s *Storage) SetTopicLocked(ctx context.Context, boardId domain.BoardId, topicId domain.TopicId, locked bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE topics SET locked = $3 WHERE board_id = $1 AND id = $2`, boardId, topicId, locked)
	if err != nil {
		return fmt.Errorf("failed to update topic lock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperr.NotFound(domain.KindTopic, strconv.FormatInt(topicId, 10))
	}
	return nil
}
