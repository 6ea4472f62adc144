//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func DefaultDivisionID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM divisions WHERE name = 'Default Division'").Scan(&id)
	require.NoError(t, err)
	return id
}

func DefaultBuyerID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM buyers WHERE name = 'Default Buyer' LIMIT 1").Scan(&id)
	require.NoError(t, err)
	return id
}

func ArticleIDByName(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM articles WHERE name = $1 LIMIT 1", name).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()
	return CreateTestUserInDivision(t, db, email, role, DefaultDivisionID(t, db))
}

func CreateTestUserInDivision(t *testing.T, db DBLike, email, role string, divisionID uuid.UUID) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, name, password_hash, role, division_id, is_active) VALUES ($1, $2, $3, $4, $5, $6, true) ON CONFLICT (email) DO NOTHING",
		userID, email, strings.Split(email, "@")[0], testPasswordHash, role, divisionID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestDivision(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	divisionID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO divisions (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", divisionID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM divisions WHERE name = $1", name).Scan(&divisionID)
	}

	return divisionID
}

func CreateTestArticle(t *testing.T, db DBLike, name string, unitPriceCents int64, active bool) uuid.UUID {
	t.Helper()

	articleID := uuid.New()
	_, err := db.Exec(context.Background(),
		"INSERT INTO articles (id, name, unit_price_cents, is_active) VALUES ($1, $2, $3, $4)",
		articleID, name, unitPriceCents, active)
	require.NoError(t, err)
	return articleID
}

func SetPreferredTeamLead(t *testing.T, db DBLike, agentID, leadID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE users SET preferred_team_lead_id = $2 WHERE id = $1", agentID, leadID)
	require.NoError(t, err)
}

func SetDivisionDefaultLead(t *testing.T, db DBLike, divisionID, leadID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(), "UPDATE divisions SET default_team_lead_id = $2 WHERE id = $1", divisionID, leadID)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO divisions (id, name) VALUES
		    (gen_random_uuid(), 'Default Division'),
		    (gen_random_uuid(), 'Other Division')
		ON CONFLICT (name) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO buyers (id, name)
		SELECT gen_random_uuid(), 'Default Buyer'
		WHERE NOT EXISTS (SELECT 1 FROM buyers WHERE name = 'Default Buyer');
	`)
	if err != nil {
		return err
	}

	// Unit prices chosen so default quantities land on both sides of the tier thresholds
	_, err = pool.Exec(ctx, `
		INSERT INTO articles (id, name, unit_price_cents, is_active)
		SELECT gen_random_uuid(), v.name, v.price, true
		FROM (VALUES ('Espresso Beans 1kg', 1200::bigint), ('Filter Paper Box', 89::bigint), ('Grinder Burr Set', 9900::bigint)) AS v(name, price)
		WHERE NOT EXISTS (SELECT 1 FROM articles WHERE articles.name = v.name);
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
