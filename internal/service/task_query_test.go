package service

import (
	"errors"
	"net/url"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/pagination"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryBuilder_Defaults(t *testing.T) {
	t.Parallel()
	b := NewQueryBuilder(pagination.DefaultConfig())

	q, err := b.Build(ListParams{})
	require.NoError(t, err)
	assert.Nil(t, q.Status)
	assert.Empty(t, q.Search)
	assert.Equal(t, store.SortByCreatedAt, q.SortBy)
	assert.Equal(t, store.SortDesc, q.SortDir)
	assert.Equal(t, 10, q.PerPage)
	assert.Equal(t, 1, q.Page)
}

func TestQueryBuilder_Paging(t *testing.T) {
	t.Parallel()
	b := NewQueryBuilder(pagination.Config{DefaultPerPage: 10, MaxPerPage: 100, OnEachSide: 3})

	tests := []struct {
		name        string
		perPage     string
		page        string
		wantPerPage int
		wantPage    int
	}{
		{"explicit values", "25", "3", 25, 3},
		{"per_page above max is clamped", "1000", "1", 100, 1},
		{"per_page zero is raised to one", "0", "1", 1, 1},
		{"negative per_page is raised to one", "-4", "1", 1, 1},
		{"non-numeric per_page falls back to default", "lots", "1", 10, 1},
		{"page below one becomes one", "10", "0", 10, 1},
		{"negative page becomes one", "10", "-7", 10, 1},
		{"non-numeric page becomes one", "10", "last", 10, 1},
		{"page past the end is kept", "10", "999", 10, 999},
		{"whitespace is ignored", " 15 ", " 2 ", 15, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := b.Build(ListParams{PerPage: tt.perPage, Page: tt.page})
			require.NoError(t, err)
			assert.Equal(t, tt.wantPerPage, q.PerPage)
			assert.Equal(t, tt.wantPage, q.Page)
		})
	}
}

func TestQueryBuilder_Filters(t *testing.T) {
	t.Parallel()
	b := NewQueryBuilder(pagination.DefaultConfig())

	t.Run("status is normalized", func(t *testing.T) {
		t.Parallel()
		for _, raw := range []string{"inProgress", "in progress", "IN_PROGRESS", "in-progress"} {
			q, err := b.Build(ListParams{Status: raw})
			require.NoError(t, err, raw)
			require.NotNil(t, q.Status, raw)
			assert.Equal(t, domain.StatusInProgress, *q.Status, raw)
		}
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := b.Build(ListParams{Status: "archived"})
		var verr *domain.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Has(ParamStatus))
	})

	t.Run("search is trimmed", func(t *testing.T) {
		t.Parallel()
		q, err := b.Build(ListParams{Search: "  report "})
		require.NoError(t, err)
		assert.Equal(t, "report", q.Search)
	})

	t.Run("sorting", func(t *testing.T) {
		t.Parallel()
		q, err := b.Build(ListParams{SortBy: "title", SortDir: "ASC"})
		require.NoError(t, err)
		assert.Equal(t, store.SortByTitle, q.SortBy)
		assert.Equal(t, store.SortAsc, q.SortDir)
	})

	t.Run("invalid sorting reports every field", func(t *testing.T) {
		t.Parallel()
		_, err := b.Build(ListParams{SortBy: "password", SortDir: "sideways", Status: "nope"})
		require.ErrorIs(t, err, domain.ErrValidation)

		var verr *domain.ValidationErrors
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{MsgSortByInvalid}, verr.Fields()[ParamSortBy])
		assert.Equal(t, []string{MsgSortDirInvalid}, verr.Fields()[ParamSortDir])
		assert.True(t, verr.Has(ParamStatus))
		assert.Equal(t, 3, verr.Len())
	})
}

func TestListParamsFromQuery(t *testing.T) {
	t.Parallel()

	q := url.Values{
		"status":   {"done"},
		"search":   {"docs"},
		"sort_by":  {"id"},
		"sort_dir": {"asc"},
		"per_page": {"5"},
		"page":     {"2"},
		"ignored":  {"x"},
	}
	assert.Equal(t, ListParams{
		Status:  "done",
		Search:  "docs",
		SortBy:  "id",
		SortDir: "asc",
		PerPage: "5",
		Page:    "2",
	}, ListParamsFromQuery(q))
}
