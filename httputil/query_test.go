package httputil

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Paging struct {
	Page    int `query:"page,omitempty"`
	PerPage int `query:"per_page,omitempty"`
}

type listUsers struct {
	Paging
	Name    string        `query:"name"`
	Roles   []string      `query:"role,explode"`
	IDs     []int         `query:"ids"`
	Active  *bool         `query:"active"`
	Since   time.Time     `query:"since,omitempty"`
	Wait    time.Duration `query:"wait,omitempty"`
	Ignored string        `query:"-"`
	NoTag   string
	hidden  string `query:"hidden"`
}

func TestEncodeQuery_Struct(t *testing.T) {
	active := true
	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	values, err := EncodeQuery(&listUsers{
		Paging: Paging{Page: 2},
		Name:   "janet",
		Roles:  []string{"admin", "member"},
		IDs:    []int{1, 2, 3},
		Active: &active,
		Since:  since,
		Wait:   time.Second,
		NoTag:  "x",
		hidden: "y",
	})
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"page":   {"2"},
		"name":   {"janet"},
		"role":   {"admin", "member"},
		"ids":    {"1,2,3"},
		"active": {"true"},
		"since":  {"2024-01-02T03:04:05Z"},
		"wait":   {"1s"},
	}, values)
}

func TestEncodeQuery_OmitEmpty(t *testing.T) {
	values, err := EncodeQuery(listUsers{})
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"name": {""},
		"ids":  {""},
	}, values)
}

func TestEncodeQuery_Maps(t *testing.T) {
	values, err := EncodeQuery(map[string]string{"page": "2"})
	require.NoError(t, err)
	assert.Equal(t, "page=2", values.Encode())

	values, err = EncodeQuery(map[string][]string{"id": {"1", "2"}})
	require.NoError(t, err)
	assert.Equal(t, "id=1&id=2", values.Encode())

	values, err = EncodeQuery(map[string]any{"page": 2, "ratio": 0.5, "tags": []string{"a", "b"}, "skip": nil})
	require.NoError(t, err)
	assert.Equal(t, "page=2&ratio=0.5&tags=a%2Cb", values.Encode())
}

func TestEncodeQuery_CopiesValues(t *testing.T) {
	in := url.Values{"page": {"1"}}
	values, err := EncodeQuery(in)
	require.NoError(t, err)

	values.Set("page", "2")
	assert.Equal(t, "1", in.Get("page"))
}

func TestEncodeQuery_Invalid(t *testing.T) {
	values, err := EncodeQuery(nil)
	assert.NoError(t, err)
	assert.Nil(t, values)

	var p *listUsers
	values, err = EncodeQuery(p)
	assert.NoError(t, err)
	assert.Nil(t, values)

	_, err = EncodeQuery("page=1")
	assert.Error(t, err)

	_, err = EncodeQuery(struct {
		Filter map[string]string `query:"filter"`
	}{Filter: map[string]string{"a": "b"}})
	assert.ErrorContains(t, err, "query param filter")
}
