package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/salesboard/internal/transaction"
)

func TestNew_DialectPlaceholders(t *testing.T) {
	type args struct {
		dialect Dialect
	}

	type testCase struct {
		name     string
		args     args
		contains string
		absent   string
	}

	tests := []testCase{
		{name: "Postgres", args: args{dialect: Postgres}, contains: "sale_month = $1", absent: "?"},
		{name: "SQLite", args: args{dialect: SQLite}, contains: "sale_month = ?", absent: "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, tt.args.dialect)

			query, args, err := s.sb.Select("COUNT(*)").
				From("transactions").
				Where(predicate(transaction.Filter{Month: 3, Search: "bag"})).
				ToSql()
			require.NoError(t, err)

			assert.Contains(t, query, tt.contains)
			assert.NotContains(t, query, tt.absent)
			assert.Equal(t, 3, args[0])
		})
	}
}
