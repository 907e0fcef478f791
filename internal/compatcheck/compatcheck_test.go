package compatcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var corpus = []string{
	"SELECT 1",
	"SELECT id, name, email, created_at FROM users",
	"SELECT * FROM users WHERE status = 'active' AND age > 18",
	"SELECT u.id, o.total FROM users u JOIN orders o ON u.id = o.user_id",
	"SELECT * FROM users WHERE id IN (SELECT user_id FROM orders WHERE total > 100)",
	"SELECT status, COUNT(*), AVG(age) FROM users GROUP BY status HAVING COUNT(*) > 10",
	"INSERT INTO users (id, name, email) VALUES (1, 'John', 'john@example.com')",
	"UPDATE users SET name = 'Jane' WHERE id = 1",
	"DELETE FROM users WHERE status = 'deleted' AND updated_at < '2024-01-01'",
}

func TestCorpusAgreesWithVitess(t *testing.T) {
	for _, q := range corpus {
		t.Run(q, func(t *testing.T) {
			r := Check(q)
			require.True(t, r.Agree(), "sqlriver err=%v vitess err=%v", r.SqlriverErr, r.VitessErr)
		})
	}
}

func TestCorpusIsIdempotent(t *testing.T) {
	flagged := CheckAll(corpus)
	for _, r := range flagged {
		if r.SqlriverErr == nil && !r.Idempotent {
			t.Errorf("non-idempotent formatting for %q:\nonce: %s\ntwin: %s", r.Query, r.FormattedOnce, r.FormattedTwin)
		}
	}
}
