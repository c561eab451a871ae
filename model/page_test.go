package model_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/enverbisevac/restmodel/errors"
	"github.com/enverbisevac/restmodel/httputil"
	"github.com/enverbisevac/restmodel/model"
	"github.com/enverbisevac/restmodel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageParams(t *testing.T) {
	tests := []struct {
		page, perPage int
		want          model.PageParams
	}{
		{page: 2, perPage: 10, want: model.PageParams{Page: 2, PerPage: 10}},
		{page: 0, perPage: 0, want: model.PageParams{Page: 1, PerPage: model.DefaultPageSize}},
		{page: -3, perPage: 5000, want: model.PageParams{Page: 1, PerPage: model.MaxPageSize}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, model.NewPageParams(tt.page, tt.perPage))
	}
}

func TestPage_HasNext(t *testing.T) {
	p := model.Page[int]{Page: 1, PerPage: 2, PageCount: types.New(3), TotalCount: types.New(5), Items: []int{1, 2}}
	assert.True(t, p.HasNext())
	assert.Equal(t, model.PageParams{Page: 2, PerPage: 2}, p.NextParams())

	p.Page = 3
	assert.False(t, p.HasNext())

	unknown := model.Page[int]{Page: 1, PerPage: 2, PageCount: types.New(-1), TotalCount: types.Null[int](), Items: []int{1, 2}}
	assert.True(t, unknown.HasNext())
	unknown.Items = unknown.Items[:1]
	assert.False(t, unknown.HasNext())

	totalOnly := model.Page[int]{Page: 2, PerPage: 2, TotalCount: types.New(5), Items: []int{3, 4}}
	assert.True(t, totalOnly.HasNext())
	totalOnly.Page = 3
	assert.False(t, totalOnly.HasNext())
}

func TestPage_WithoutCounters(t *testing.T) {
	resp := &httputil.Response{
		Status: http.StatusOK,
		Body: map[string]any{
			"page":     json.Number("1"),
			"per_page": json.Number("2"),
			"items":    []any{json.Number("1"), json.Number("2")},
		},
	}
	page, _, err := model.Parse[model.Page[int]](resp, nil)
	require.NoError(t, err)
	assert.False(t, page.PageCount.IsSet())
	assert.True(t, page.HasNext())
	assert.Equal(t, model.PageParams{Page: 2, PerPage: 2}, page.NextParams())

	resp.Body.(map[string]any)["total_count"] = json.Number("5")
	page, _, err = model.Parse[model.Page[int]](resp, nil)
	require.NoError(t, err)
	assert.NoError(t, page.Validate())
	assert.True(t, page.HasNext())

	resp.Body.(map[string]any)["page_count"] = nil
	page, _, err = model.Parse[model.Page[int]](resp, nil)
	require.NoError(t, err)
	assert.True(t, page.PageCount.IsNull())
	assert.True(t, page.HasNext())
}

func TestPage_Validate(t *testing.T) {
	p := model.Page[int]{Page: 1, PerPage: 2, PageCount: types.New(3), TotalCount: types.New(5), Items: []int{1, 2}}
	assert.NoError(t, p.Validate())

	p.Items = []int{1, 2, 3}
	p.PageCount = types.New(1)
	verr, ok := errors.AsValidation(p.Validate())
	require.True(t, ok)
	assert.Len(t, verr.Fields(), 2)

	p = model.Page[int]{Page: 1, PerPage: 2, TotalCount: types.New(5), Items: []int{1, 2}}
	assert.NoError(t, p.Validate())
}

func TestPage_Walk(t *testing.T) {
	srv, seen := newServer(t)
	c := newClient(t, srv.URL+"/api")

	list := model.Bind[model.Page[User]](func(ctx context.Context, params model.PageParams) (*httputil.Response, error) {
		return c.Get(ctx, "/pages", params)
	})

	var names []string
	params := model.NewPageParams(1, 1)
	for {
		page, status, err := list(context.Background(), params)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		for _, u := range page.Items {
			names = append(names, u.FirstName)
		}
		if !page.HasNext() {
			break
		}
		params = page.NextParams()
	}

	assert.Equal(t, []string{"George", "Janet"}, names)
	assert.Equal(t, "/api/pages", seen.last())
}
