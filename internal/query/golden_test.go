package query_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/mjovanc/njord/internal/clause"
	"github.com/mjovanc/njord/internal/condition"
	"github.com/mjovanc/njord/internal/query"
	"github.com/mjovanc/njord/internal/row"
	"github.com/mjovanc/njord/internal/testutil"
)

// TestGolden_Statements pins the exact rendered text, including the
// whitespace left by empty clause slots.
func TestGolden_Statements(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	insert, err := query.BuildInsert(sampleUsers())
	require.NoError(t, err)

	testCases := []struct {
		name string
		sql  string
	}{
		{name: "select_join_group_order", sql: joinGroupOrder().BuildQuery()},
		{name: "select_except_union", sql: exceptUnion().BuildQuery()},
		{name: "insert_batch", sql: insert},
		{
			name: "update_user",
			sql: query.NewUpdate(&testutil.User{Username: "mjovanc", Email: "it's@example.com"}).
				Set("username", "email").
				Where(condition.Eq{Column: "id", Value: "1"}).
				BuildQuery(),
		},
		{
			name: "delete_products",
			sql: query.NewDelete(row.Name("products")).
				Where(condition.Or{
					Left:  condition.Le{Column: "stock_quantity", Value: "0"},
					Right: condition.Not{Inner: condition.Gt{Column: "price", Value: "1.5"}},
				}).
				BuildQuery(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g.Assert(t, tc.name, []byte(tc.sql))
		})
	}
}

func joinGroupOrder() *query.Select[testutil.User, *testutil.User] {
	return query.NewSelect[testutil.User](
		query.Qualified{Table: "users", Column: "id"},
		query.Qualified{Table: "users", Column: "username"},
		query.Expr("COUNT(products.id) AS product_count"),
	).
		From(row.Name("users")).
		Join(clause.Left, row.Name("products"), condition.EqColumns{Left: "users.id", Right: "products.user_id"}).
		Where(condition.And{
			Left: condition.Like{Column: "users.username", Pattern: "m%"},
			Right: condition.Or{
				Left:  condition.Eq{Column: "users.email", Value: "a@b.c"},
				Right: condition.IsNotNull{Column: "users.address"},
			},
		}).
		GroupBy("users.id", "users.username").
		Having(condition.Gt{Column: "COUNT(products.id)", Value: "0"}).
		OrderBy(clause.By(clause.Desc, "product_count")).
		Limit(10).
		Offset(5)
}

func exceptUnion() *query.Select[testutil.User, *testutil.User] {
	banned := users().Where(condition.Eq{Column: "username", Value: "banned"})
	admins := query.NewSelect[testutil.User](query.Name("id"), query.Name("username")).From(row.Name("admins"))

	return users().
		Where(condition.Ge{Column: "id", Value: "1"}).
		Except(banned).
		Union(admins)
}
