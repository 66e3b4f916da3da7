package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type SQLRepo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *SQLRepo {
	return &SQLRepo{db: db}
}

// EnsureSchema creates the conversation tables when absent.
func (r *SQLRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS conversations (
			conversation_id VARCHAR(50) PRIMARY KEY,
			session_id VARCHAR(100),
			brand VARCHAR(100),
			model VARCHAR(100),
			year INTEGER,
			spare_part_name VARCHAR(200),
			reference VARCHAR(100),
			user_phone VARCHAR(20),
			user_email VARCHAR(100),
			found BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("chat: ensure conversations: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS messages (
			id SERIAL PRIMARY KEY,
			conversation_id VARCHAR(50) NOT NULL REFERENCES conversations(conversation_id) ON DELETE CASCADE,
			role VARCHAR(10),
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("chat: ensure messages: %w", err)
	}
	return nil
}

func (r *SQLRepo) UpsertConversation(ctx context.Context, s Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO conversations (
			conversation_id, session_id, brand, model, year,
			spare_part_name, reference, user_phone, user_email, found
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (conversation_id) DO UPDATE SET
			brand = EXCLUDED.brand,
			model = EXCLUDED.model,
			year = EXCLUDED.year,
			spare_part_name = EXCLUDED.spare_part_name,
			reference = EXCLUDED.reference,
			user_phone = EXCLUDED.user_phone,
			user_email = EXCLUDED.user_email,
			found = EXCLUDED.found,
			updated_at = CURRENT_TIMESTAMP
	`,
		s.ConversationID,
		s.ID,
		nullStr(s.Brand),
		nullStr(s.Model),
		nullInt(s.Year),
		nullStr(s.PartName),
		nullStr(s.Reference),
		nullStr(s.Phone),
		nullStr(s.Email),
		s.Found,
	)
	return err
}

func (r *SQLRepo) AppendMessage(ctx context.Context, conversationID, role, content string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (conversation_id, role, content)
		VALUES ($1, $2, $3)
	`, conversationID, role, content)
	return err
}

func (r *SQLRepo) ListConversations(ctx context.Context) ([]ConversationSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.conversation_id, c.session_id, c.brand, c.model, c.year,
			c.spare_part_name, c.reference, c.user_phone, c.user_email, c.found,
			COUNT(m.id) AS message_count, c.created_at, c.updated_at
		FROM conversations c
		LEFT JOIN messages m ON c.conversation_id = m.conversation_id
		GROUP BY c.conversation_id
		ORDER BY c.created_at DESC
		LIMIT 100
	`)
	if err != nil {
		return nil, fmt.Errorf("chat: list conversations: %w", err)
	}
	defer rows.Close()

	var out []ConversationSummary
	for rows.Next() {
		c, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *SQLRepo) GetConversation(ctx context.Context, conversationID string) (*ConversationSummary, []StoredMessage, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT c.conversation_id, c.session_id, c.brand, c.model, c.year,
			c.spare_part_name, c.reference, c.user_phone, c.user_email, c.found,
			COUNT(m.id) AS message_count, c.created_at, c.updated_at
		FROM conversations c
		LEFT JOIN messages m ON c.conversation_id = m.conversation_id
		WHERE c.conversation_id = $1
		GROUP BY c.conversation_id
	`, conversationID)

	c, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("chat: get conversation: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, role, content, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("chat: get messages: %w", err)
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		var role, content sql.NullString
		if err := rows.Scan(&m.ID, &m.ConversationID, &role, &content, &m.CreatedAt); err != nil {
			return nil, nil, err
		}
		m.Role = role.String
		m.Content = content.String
		msgs = append(msgs, m)
	}
	return &c, msgs, rows.Err()
}

func (r *SQLRepo) Stats(ctx context.Context) (*Stats, error) {
	var s Stats

	queries := []struct {
		dst   *int
		query string
	}{
		{&s.TotalConversations, "SELECT COUNT(*) FROM conversations"},
		{&s.TotalMessages, "SELECT COUNT(*) FROM messages"},
		{&s.ConversationsToday, "SELECT COUNT(*) FROM conversations WHERE DATE(created_at) = CURRENT_DATE"},
		{&s.Leads, "SELECT COUNT(*) FROM conversations WHERE user_phone IS NOT NULL"},
	}
	for _, q := range queries {
		if err := r.db.QueryRowContext(ctx, q.query).Scan(q.dst); err != nil {
			return nil, fmt.Errorf("chat: stats: %w", err)
		}
	}

	var err error
	if s.TopBrands, err = r.topValues(ctx, "brand"); err != nil {
		return nil, err
	}
	if s.TopParts, err = r.topValues(ctx, "spare_part_name"); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLRepo) topValues(ctx context.Context, column string) ([]CountRow, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s, COUNT(*) AS count
		FROM conversations
		WHERE %s IS NOT NULL
		GROUP BY %s
		ORDER BY count DESC
		LIMIT 10
	`, column, column, column))
	if err != nil {
		return nil, fmt.Errorf("chat: top %s: %w", column, err)
	}
	defer rows.Close()

	var out []CountRow
	for rows.Next() {
		var c CountRow
		if err := rows.Scan(&c.Value, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (ConversationSummary, error) {
	var c ConversationSummary
	var brand, model, part, ref, phone, email sql.NullString
	var year sql.NullInt64
	var updated sql.NullTime
	err := row.Scan(
		&c.ConversationID, &c.SessionID, &brand, &model, &year,
		&part, &ref, &phone, &email, &c.Found,
		&c.MessageCount, &c.CreatedAt, &updated,
	)
	if err != nil {
		return c, err
	}
	c.Brand = brand.String
	c.Model = model.String
	c.Year = int(year.Int64)
	c.SparePartName = part.String
	c.Reference = ref.String
	c.Phone = phone.String
	c.Email = email.String
	if updated.Valid {
		c.UpdatedAt = &updated.Time
	}
	return c, nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n != 0}
}
