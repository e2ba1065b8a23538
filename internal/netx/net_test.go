package netx

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/happiestbaby/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_Do(t *testing.T) {
	t.Run("sends method, headers, query and body", func(t *testing.T) {
		var gotMethod, gotUA, gotCT, gotAuth, gotQuery string
		var gotBody []byte

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotUA = r.Header.Get("User-Agent")
			gotCT = r.Header.Get("Content-Type")
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.RawQuery
			gotBody, _ = io.ReadAll(r.Body)
			w.Header().Set("X-Test", "1")
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		tr := NewHTTPTransport(ts.Client())
		resp, err := tr.Do(context.Background(), &Request{
			Method: http.MethodPost,
			URL:    ts.URL + "/cs/me/v11/journals?a=1",
			Header: http.Header{"Authorization": []string{"Bearer t"}},
			Query:  map[string][]string{"journalType": {"diaper"}},
			Body:   []byte(`{"type":"diaper"}`),
		})
		require.NoError(t, err)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.Equal(t, "1", resp.Header.Get("X-Test"))
		assert.JSONEq(t, `{"ok":true}`, string(resp.Body))

		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, common.UserAgent, gotUA)
		assert.Equal(t, "application/json", gotCT)
		assert.Equal(t, "Bearer t", gotAuth)
		assert.Equal(t, "a=1&journalType=diaper", gotQuery)
		assert.JSONEq(t, `{"type":"diaper"}`, string(gotBody))
	})

	t.Run("error status is not a transport error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer ts.Close()

		resp, err := NewHTTPTransport(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: ts.URL})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("deadline surfaces as error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		defer ts.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := NewHTTPTransport(ts.Client()).Do(ctx, &Request{Method: http.MethodGet, URL: ts.URL})
		require.Error(t, err)
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewHTTPTransport(nil).Do(context.Background(), &Request{Method: http.MethodGet, URL: "://bad", Query: map[string][]string{"a": {"b"}}})
		require.Error(t, err)
	})
}

func TestRequest_CloneIsolatesHeaders(t *testing.T) {
	orig := &Request{Method: http.MethodGet, URL: "u"}
	c := orig.Clone()
	c.Header.Set("Authorization", "x")

	assert.Nil(t, orig.Header)
	assert.Equal(t, "x", c.Header.Get("Authorization"))
}
