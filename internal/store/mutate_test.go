package store

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/common"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsert_GeneratesIDAndStampsCreatedAt(t *testing.T) {
	s, repo := newTestStore(t, WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))
	ctx := context.Background()

	res, err := s.From(Tasks).Insert(
		Record{"title": "first"},
		Record{"id": "given", "title": "second", "created_at": "1999-01-01T00:00:00.000Z"},
	).Select().Execute(ctx)
	require.NoError(t, err)

	want := []Record{
		{"id": "id-1", "title": "first", "created_at": "2024-05-10T12:00:00.000Z"},
		{"id": "given", "title": "second", "created_at": "2024-05-10T12:00:00.000Z"},
	}
	if diff := cmp.Diff(want, res.Data); diff != "" {
		t.Errorf("inserted rows mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, stored[[]Record](t, repo, common.StorageKeyTasks)); diff != "" {
		t.Errorf("stored rows mismatch (-want +got):\n%s", diff)
	}
}

func TestInsert_AppendsAndSingle(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{{"id": "old"}})

	res, err := s.From(Tasks).Insert(Record{"id": "new"}).Select().Single().Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Single)
	assert.Equal(t, "new", res.Row().String("id"))
	assert.Equal(t, []string{"old", "new"}, ids(stored[[]Record](t, repo, common.StorageKeyTasks)))
}

func TestInsert_DoesNotMutateCallerRow(t *testing.T) {
	s, _ := newTestStore(t)
	row := Record{"title": "x"}

	_, err := s.From(Tasks).Insert(row).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Record{"title": "x"}, row)
}

func TestInsert_WriteFault(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{{"id": "old"}})
	before := snapshot(t, repo)
	repo.setFailWrite(true)

	_, err := s.From(Tasks).Insert(Record{"title": "x"}).Execute(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	require.ErrorIs(t, err, errInjected)
	assert.Equal(t, before, snapshot(t, repo))
}

func TestInsert_ReadFaultDoesNotClobber(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{{"id": "old"}})
	before := snapshot(t, repo)
	repo.setFailGet(common.StorageKeyTasks)

	_, err := s.From(Tasks).Insert(Record{"title": "x"}).Execute(context.Background())
	require.ErrorIs(t, err, common.ErrStorage)
	assert.Equal(t, before, snapshot(t, repo))
}

func TestUpsert_MergesByID(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyProfiles, []Record{{"id": "u1", "username": "alice", "role": "member"}})

	res, err := s.From(Profiles).Upsert(Record{"id": "u1", "status": "active", "role": "admin"}).Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Data)

	got := stored[[]Record](t, repo, common.StorageKeyProfiles)
	require.Len(t, got, 1)
	assert.Equal(t, Record{"id": "u1", "username": "alice", "role": "admin", "status": "active"}, got[0])
}

func TestUpsert_InsertsUnknownAndMissingIDs(t *testing.T) {
	s, repo := newTestStore(t, WithClock(func() time.Time { return fixedNow }), WithIDGenerator(sequentialIDs()))

	_, err := s.From(Tasks).Upsert(Record{"id": "x", "title": "a"}, Record{"title": "b"}).Execute(context.Background())
	require.NoError(t, err)

	got := stored[[]Record](t, repo, common.StorageKeyTasks)
	assert.Equal(t, []string{"x", "id-1"}, ids(got))
	for _, r := range got {
		assert.Equal(t, "2024-05-10T12:00:00.000Z", r["created_at"])
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()
	row := Record{"id": "u1", "username": "alice", "status": "pending"}

	_, err := s.From(Tasks).Upsert(row).Execute(ctx)
	require.NoError(t, err)
	first := snapshot(t, repo)

	_, err = s.From(Tasks).Upsert(row).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, snapshot(t, repo))
}

func TestUpdate_ReturnsDataOnlyWithSelect(t *testing.T) {
	s, repo := newTestStore(t)
	ctx := context.Background()
	seed(t, repo, common.StorageKeyTasks, []Record{
		{"id": "1", "status": "todo"},
		{"id": "2", "status": "todo"},
	})

	res, err := s.From(Tasks).Update(Record{"status": "done"}).Eq("id", "1").Execute(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.Data)

	res, err = s.From(Tasks).Update(Record{"title": "renamed"}).Eq("id", "2").Select().Single().Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{"id": "2", "status": "todo", "title": "renamed"}, res.Row())

	got := stored[[]Record](t, repo, common.StorageKeyTasks)
	assert.Equal(t, "done", got[0]["status"])
	assert.Equal(t, "renamed", got[1]["title"])
}

func TestUpdate_NeqAndMultipleMatches(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{
		{"id": "1", "assignee_id": "u1"},
		{"id": "2", "assignee_id": "u2"},
		{"id": "3", "assignee_id": "u1"},
	})

	res, err := s.From(Tasks).Update(Record{"assignee_id": nil}).Neq("assignee_id", "u2").Select().Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, ids(res.Data))

	got := stored[[]Record](t, repo, common.StorageKeyTasks)
	assert.Nil(t, got[0]["assignee_id"])
	assert.Equal(t, "u2", got[1]["assignee_id"])
}

func TestUpdate_NoMatchDoesNotWrite(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{{"id": "1"}})
	writes := repo.writes.Load()

	res, err := s.From(Tasks).Update(Record{"x": 1}).Eq("id", "nope").Select().Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, writes, repo.writes.Load())
}

func TestDelete_RetentionFilter(t *testing.T) {
	s, repo := newTestStore(t)
	cutoff := fixedNow.Add(-24 * time.Hour)
	seed(t, repo, common.StorageKeyTasks, []Record{
		{"id": "old-done", "status": "done", "completed_at": "2024-05-08T09:00:00.000Z"},
		{"id": "fresh-done", "status": "done", "completed_at": "2024-05-10T11:00:00.000Z"},
		{"id": "old-todo", "status": "todo", "completed_at": "2024-05-01T00:00:00.000Z"},
		{"id": "done-no-date", "status": "done"},
		{"id": "boundary", "status": "done", "completed_at": "2024-05-09T12:00:00.000Z"},
	})

	res, err := s.From(Tasks).Delete().Eq("status", "done").Lt("completed_at", cutoff).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"old-done"}, ids(res.Data))
	assert.Equal(t, []string{"fresh-done", "old-todo", "done-no-date", "boundary"},
		ids(stored[[]Record](t, repo, common.StorageKeyTasks)))
}

func TestDelete_ComparisonOperators(t *testing.T) {
	rows := []Record{
		{"id": "a", "n": 1},
		{"id": "b", "n": 2},
		{"id": "c", "n": 3},
		{"id": "d", "n": "2"},
		{"id": "e"},
	}
	tests := []struct {
		name string
		del  func(*DeleteBuilder) *DeleteBuilder
		want []string
	}{
		{"lt", func(b *DeleteBuilder) *DeleteBuilder { return b.Lt("n", 2) }, []string{"a"}},
		{"lte", func(b *DeleteBuilder) *DeleteBuilder { return b.Lte("n", 2) }, []string{"a", "b"}},
		{"gt", func(b *DeleteBuilder) *DeleteBuilder { return b.Gt("n", 2) }, []string{"c"}},
		{"gte", func(b *DeleteBuilder) *DeleteBuilder { return b.Gte("n", 2) }, []string{"b", "c"}},
		{"gte string", func(b *DeleteBuilder) *DeleteBuilder { return b.Gte("n", "1") }, []string{"d"}},
		{"eq", func(b *DeleteBuilder) *DeleteBuilder { return b.Eq("n", 3) }, []string{"c"}},
		{"neq", func(b *DeleteBuilder) *DeleteBuilder { return b.Neq("n", 3) }, []string{"a", "b", "d", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestStore(t)
			seed(t, repo, common.StorageKeyTasks, rows)

			res, err := tt.del(s.From(Tasks).Delete()).Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Data))
			assert.Len(t, stored[[]Record](t, repo, common.StorageKeyTasks), len(rows)-len(tt.want))
		})
	}
}

func TestDelete_ProtectedAdministratorLeavesStorageUntouched(t *testing.T) {
	tests := []struct {
		name string
		del  func(*DeleteBuilder) *DeleteBuilder
	}{
		{"by username", func(b *DeleteBuilder) *DeleteBuilder { return b.Eq("username", common.MasterUsername) }},
		{"by id", func(b *DeleteBuilder) *DeleteBuilder { return b.Eq("id", "master-id-1") }},
		{"broad filter", func(b *DeleteBuilder) *DeleteBuilder { return b.Neq("id", "nobody") }},
		{"renamed admin", func(b *DeleteBuilder) *DeleteBuilder { return b.Eq("username", "Boss") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, repo := newTestStore(t)
			seed(t, repo, common.StorageKeyProfiles, []Record{
				{"id": "u1", "username": "alice"},
				{"id": "master-id-1", "username": common.MasterUsername},
				{"id": "master-id-2", "username": "Boss"},
			})
			before := snapshot(t, repo)

			_, err := tt.del(s.From(Profiles).Delete()).Execute(context.Background())
			require.ErrorIs(t, err, common.ErrProtectedAccount)
			assert.Equal(t, "Cannot delete Master Account", err.Error())
			assert.Equal(t, before, snapshot(t, repo))
		})
	}
}

func TestDelete_NoMatch(t *testing.T) {
	s, repo := newTestStore(t)
	seed(t, repo, common.StorageKeyTasks, []Record{{"id": "1"}})
	writes := repo.writes.Load()

	res, err := s.From(Tasks).Delete().Eq("id", "2").Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, writes, repo.writes.Load())
}
