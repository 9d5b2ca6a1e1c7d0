//go:build cgo

package sqldb_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/ncobase/relaypage/data"
	"github.com/ncobase/relaypage/data/memory"
	"github.com/ncobase/relaypage/data/sqldb"
	"github.com/ncobase/relaypage/paging"
	"github.com/ncobase/relaypage/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func openProducts(t *testing.T) (*sql.DB, []data.Document) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE products (_id INTEGER PRIMARY KEY, name TEXT, type TEXT, price REAL)`)
	require.NoError(t, err)

	types := []string{"fruit", "dairy", "bakery"}
	var docs []data.Document
	for i := int64(1); i <= 40; i++ {
		var price any
		if i%7 != 0 {
			price = float64(i % 5)
		}
		doc := data.Document{"_id": i, "name": "p", "type": types[i%3], "price": price}
		_, err := db.Exec(`INSERT INTO products (_id, name, type, price) VALUES (?, ?, ?, ?)`,
			doc["_id"], doc["name"], doc["type"], doc["price"])
		require.NoError(t, err)
		docs = append(docs, doc)
	}
	return db, docs
}

func nodeIDs(conn *paging.Connection[data.Document]) []int64 {
	out := make([]int64, len(conn.Edges))
	for i, e := range conn.Edges {
		out[i] = e.Node["_id"].(int64)
	}
	return out
}

// walk pages through the whole result set and returns the ids in order.
func walk(t *testing.T, store paging.Store[data.Document], opts *paging.Options[data.Document, data.Document], backward bool) []int64 {
	t.Helper()
	ctx := context.Background()
	filter := query.In("type", []string{"fruit", "dairy"})

	var (
		ids    []int64
		cursor string
	)
	for range 20 {
		args := paging.Forward(4, cursor)
		if backward {
			args = paging.Backward(4, cursor)
		}
		conn, err := paging.Resolve(ctx, args, store, filter, opts)
		require.NoError(t, err)
		page := nodeIDs(conn)
		if backward {
			ids = append(page, ids...)
			cursor = conn.PageInfo.StartCursor
			if !conn.PageInfo.HasPreviousPage {
				return ids
			}
		} else {
			ids = append(ids, page...)
			cursor = conn.PageInfo.EndCursor
			if !conn.PageInfo.HasNextPage {
				return ids
			}
		}
	}
	t.Fatal("pagination did not terminate")
	return nil
}

func TestSQLiteMatchesMemory(t *testing.T) {
	db, docs := openProducts(t)
	sqlStore := sqldb.NewStore(db, sqldb.SQLite, sqldb.SQLite.Table("", "products"))
	memStore := memory.New(docs)

	for _, dir := range []paging.Direction{paging.Ascending, paging.Descending} {
		opts := &paging.Options[data.Document, data.Document]{CursorField: "price", Direction: dir}

		want := walk(t, memStore, opts, false)
		require.Len(t, want, 27)

		assert.Equal(t, want, walk(t, sqlStore, opts, false), "forward %v", dir)
		assert.Equal(t, want, walk(t, sqlStore, opts, true), "backward %v", dir)
	}
}

func TestSQLiteCount(t *testing.T) {
	db, _ := openProducts(t)
	store := sqldb.NewStore(db, sqldb.SQLite, `"products"`)

	conn, err := paging.Resolve[data.Document](context.Background(), paging.Forward(2, ""), store, query.Eq("type", "bakery"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(13), conn.TotalCount)
	assert.Equal(t, []int64{3, 6}, nodeIDs(conn))
	assert.True(t, conn.PageInfo.HasNextPage)
}

func TestSourceCollection(t *testing.T) {
	db, _ := openProducts(t)
	source := sqldb.NewSource(sqldb.NewSingle(db), sqldb.SQLite, "")
	ctx := context.Background()

	c, err := source.Collection(ctx, "products")
	require.NoError(t, err)
	n, err := c.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(40), n)

	_, err = source.Collection(ctx, "orders")
	assert.True(t, errors.Is(err, data.ErrCollectionNotFound))

	_, err = source.Collection(ctx, "products;--")
	assert.True(t, errors.Is(err, data.ErrInvalidCollection))

	assert.NoError(t, source.Ping(ctx))
}

func TestSQLiteBinaryKey(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE tokens (_id BLOB PRIMARY KEY, label TEXT)`)
	require.NoError(t, err)
	ids := [][]byte{{0x01, 0xff}, {0x61, 0xff, 0x00}, {0x9f, 0xc3, 0x28}}
	for i, id := range ids {
		_, err := db.Exec(`INSERT INTO tokens (_id, label) VALUES (?, ?)`, id, fmt.Sprintf("t%d", i))
		require.NoError(t, err)
	}

	store := sqldb.NewStore(db, sqldb.SQLite, `"tokens"`)
	opts := &paging.Options[data.Document, data.Document]{CursorField: "_id"}
	ctx := context.Background()

	var (
		got    [][]byte
		cursor string
	)
	for range len(ids) + 1 {
		conn, err := paging.Resolve(ctx, paging.Forward(1, cursor), store, nil, opts)
		require.NoError(t, err)
		for _, e := range conn.Edges {
			assert.IsType(t, []byte(nil), e.Node["_id"])
			assert.IsType(t, "", e.Node["label"])
			got = append(got, e.Node["_id"].([]byte))
		}
		cursor = conn.PageInfo.EndCursor
		if !conn.PageInfo.HasNextPage {
			break
		}
	}
	assert.Equal(t, ids, got)
}
