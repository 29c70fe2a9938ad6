package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialectFor(t *testing.T) {
	assert.Equal(t, DialectPostgres, DialectFor("postgres://stride@localhost/stride?sslmode=disable"))
	assert.Equal(t, DialectPostgres, DialectFor("postgresql://localhost/stride"))
	assert.Equal(t, DialectPostgres, DialectFor("host=localhost dbname=stride sslmode=disable"))
	assert.Equal(t, DialectSQLite, DialectFor("/home/me/.stride/stride.db"))
	assert.Equal(t, DialectSQLite, DialectFor(":memory:"))
}

func TestRebind(t *testing.T) {
	q := `SELECT id FROM sessions WHERE activity_id = ? AND complete_date BETWEEN ? AND ?`
	assert.Equal(t, q, Rebind(DialectSQLite, q))
	assert.Equal(t,
		`SELECT id FROM sessions WHERE activity_id = $1 AND complete_date BETWEEN $2 AND $3`,
		Rebind(DialectPostgres, q))
}

func TestRebind_IgnoresQuotedQuestionMarks(t *testing.T) {
	q := `UPDATE activities SET name = 'why?' WHERE id = ?`
	assert.Equal(t, `UPDATE activities SET name = 'why?' WHERE id = $1`, Rebind(DialectPostgres, q))
}

func TestBind_SQLiteIsPassThrough(t *testing.T) {
	conn := openTestDB(t)
	assert.Same(t, conn.DB, Bind(DialectSQLite, conn.DB))

	wrapped := Bind(DialectPostgres, conn.DB)
	assert.IsType(t, &rebound{}, wrapped)
	assert.Same(t, wrapped, Bind(DialectPostgres, wrapped), "binding twice must not double-wrap")
}
