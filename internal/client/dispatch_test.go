package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/lemon-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/lemon-client/internal/http"
	"github.com/fivetwenty-io/lemon-client/pkg/lemon"
)

type sample struct {
	Value string `json:"value"`
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestDispatch_Get(t *testing.T) {
	t.Parallel()

	t.Run("decodes a 200 body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/sample", r.URL.Path)
			assert.Equal(t, "Bearer "+testAPIKey, r.Header.Get("Authorization"))
			writeJSON(w, http.StatusOK, `{"time":"2021-11-21T19:34:45.071+00:00","mode":"paper","status":"ok","results":{"value":"x"}}`)
		}))
		defer server.Close()

		result, err := get[lemon.Envelope[sample]](context.Background(), newTestHTTPClient(t, server), "sample")
		require.NoError(t, err)
		assert.True(t, result.OK())
		assert.Equal(t, lemon.ModePaper, result.Mode)
		require.NotNil(t, result.Results)
		assert.Equal(t, "x", result.Results.Value)
	})

	t.Run("status other than ok is still a success", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"mode":"paper","status":"pending"}`)
		}))
		defer server.Close()

		result, err := get[lemon.Response](context.Background(), newTestHTTPClient(t, server), "sample")
		require.NoError(t, err)
		assert.False(t, result.OK())
		assert.Equal(t, "pending", result.Status)
	})

	t.Run("malformed body is a decode error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"results":`)
		}))
		defer server.Close()

		_, err := get[lemon.Envelope[sample]](context.Background(), newTestHTTPClient(t, server), "sample")
		require.Error(t, err)

		decodeErr := &lemon.DecodeError{}
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, 200, decodeErr.StatusCode)
		assert.False(t, lemon.IsTransportError(err))
	})

	t.Run("empty 200 body is a decode error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		_, err := get[lemon.Response](context.Background(), newTestHTTPClient(t, server), "sample")
		assert.True(t, lemon.IsDecodeError(err))
	})

	t.Run("bodies without an envelope are decode errors", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{`null`, ` null `, `{}`, `{"unexpected":true}`, `[]`, `"ok"`} {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, body)
			}))

			result, err := get[lemon.Envelope[sample]](context.Background(), newTestHTTPClient(t, server), "sample")
			server.Close()

			require.Error(t, err, body)
			assert.Nil(t, result, body)

			decodeErr := &lemon.DecodeError{}
			require.ErrorAs(t, err, &decodeErr, body)
			assert.Equal(t, http.StatusOK, decodeErr.StatusCode, body)
		}
	})

	t.Run("null and missing status have their own causes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/v1/null" {
				writeJSON(w, http.StatusOK, `null`)

				return
			}

			writeJSON(w, http.StatusOK, `{"mode":"paper","results":{"value":"x"}}`)
		}))
		defer server.Close()

		httpClient := newTestHTTPClient(t, server)

		_, err := get[lemon.Envelope[sample]](context.Background(), httpClient, "null")
		require.ErrorIs(t, err, constants.ErrNullBody)

		_, err = get[lemon.Envelope[sample]](context.Background(), httpClient, "no-status")
		require.ErrorIs(t, err, constants.ErrEnvelopeStatusMissing)
	})

	t.Run("structured error is an API error", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusUnauthorized, `{"status":"error","error_code":"token_invalid","error_message":"expired"}`)
		}))
		defer server.Close()

		_, err := get[lemon.Response](context.Background(), newTestHTTPClient(t, server), "sample")
		require.Error(t, err)
		assert.True(t, lemon.IsUnauthorized(err))
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestDispatch_GetWithQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   interface{}
		expected string
	}{
		{
			name:     "nil params",
			params:   nil,
			expected: "",
		},
		{
			name:     "nil pointer params",
			params:   (*lemon.InstrumentListParams)(nil),
			expected: "",
		},
		{
			name:     "all fields absent",
			params:   &lemon.InstrumentListParams{},
			expected: "",
		},
		{
			name:     "single value",
			params:   &lemon.InstrumentListParams{ISIN: lemon.String("US0378331005")},
			expected: "isin=US0378331005",
		},
		{
			name: "absent values are skipped and keys sorted",
			params: &lemon.InstrumentListParams{
				Search:     lemon.String("tesla"),
				Tradable:   lemon.Bool(true),
				PageParams: lemon.PageParams{Limit: lemon.Int(10), Page: lemon.Int(2)},
			},
			expected: "limit=10&page=2&search=tesla&tradable=true",
		},
		{
			name: "dates, sorting and type",
			params: &lemon.BankStatementListParams{
				Type:    ptr(lemon.BankStatementPayIn),
				From:    ptr(lemon.NewDate(2021, 1, 1)),
				Sorting: ptr(lemon.SortingDescending),
			},
			expected: "from=2021-01-01&sorting=desc_&type=pay_in",
		},
		{
			name: "comma separated list",
			params: &lemon.StatementListParams{
				Types: []lemon.StatementType{lemon.StatementOrderBuy, lemon.StatementSplit},
			},
			expected: "types=order_buy%2Csplit",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, testCase.expected, r.URL.RawQuery)

				if testCase.expected == "" {
					assert.NotContains(t, r.RequestURI, "?")
				}

				writeJSON(w, http.StatusOK, emptyPage)
			}))
			defer server.Close()

			page, err := getWithQuery[lemon.PaginationResponse[sample]](
				context.Background(), newTestHTTPClient(t, server), "instruments", testCase.params)
			require.NoError(t, err)
			assert.Equal(t, 1, page.Page)
		})
	}
}

func TestDispatch_GetWithQuery_InvalidParams(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	_, err := getWithQuery[lemon.Response](context.Background(), newTestHTTPClient(t, server), "sample", "isin=x")
	require.ErrorIs(t, err, constants.ErrUnexpectedQueryParams)
	assert.Equal(t, int32(0), hits.Load())
}

func TestDispatch_Post(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body sample

		assert.NoError(t, decodeBody(r, &body))
		assert.Equal(t, "sent", body.Value)

		writeJSON(w, http.StatusOK, `{"status":"ok","mode":"paper"}`)
	}))
	defer server.Close()

	result, err := post[lemon.Response](context.Background(), newTestHTTPClient(t, server), "sample", &sample{Value: "sent"})
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestDispatch_Delete(t *testing.T) {
	t.Parallel()

	t.Run("escapes the path parameter and sends no body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/v1/orders/a%2Fb", r.URL.EscapedPath())
			assert.Equal(t, int64(0), r.ContentLength)
			assert.Empty(t, r.TransferEncoding)

			writeJSON(w, http.StatusOK, `{"status":"ok","mode":"paper"}`)
		}))
		defer server.Close()

		result, err := del[lemon.Response](context.Background(), newTestHTTPClient(t, server), "orders", "a/b")
		require.NoError(t, err)
		assert.True(t, result.OK())
	})

	t.Run("empty path parameter", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		}))
		defer server.Close()

		_, err := del[lemon.Response](context.Background(), newTestHTTPClient(t, server), "orders", "")
		assert.True(t, errors.Is(err, constants.ErrPathParamRequired))
	})

	t.Run("dot segments are refused", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Errorf("no request expected, got %s %s", r.Method, r.URL.Path)
		}))
		defer server.Close()

		for _, param := range []string{".", ".."} {
			_, err := del[lemon.Response](context.Background(), newTestHTTPClient(t, server), "orders", param)
			require.ErrorIs(t, err, constants.ErrInvalidPathParam, param)
		}
	})

	t.Run("dots inside an ID are kept", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/orders/ord..1", r.URL.Path)
			writeJSON(w, http.StatusOK, `{"status":"ok","mode":"paper"}`)
		}))
		defer server.Close()

		_, err := del[lemon.Response](context.Background(), newTestHTTPClient(t, server), "orders", "ord..1")
		require.NoError(t, err)
	})
}

func TestDispatch_PostAction(t *testing.T) {
	t.Parallel()

	var route string

	chain := lemon.NewInterceptorChain()
	chain.AddRequestInterceptor(func(ctx context.Context, req *lemon.HTTPRequest) error {
		route = req.Route

		return nil
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders/a%2Fb/activate", r.URL.EscapedPath())

		var body sample

		assert.NoError(t, decodeBody(r, &body))
		assert.Equal(t, "sent", body.Value)

		writeJSON(w, http.StatusOK, `{"status":"ok","mode":"paper"}`)
	}))
	defer server.Close()

	base, err := url.Parse(server.URL + "/v1/")
	require.NoError(t, err)

	httpClient := internalhttp.NewClient(base, testAPIKey, internalhttp.WithInterceptors(chain))

	result, err := postAction[lemon.Response](context.Background(), httpClient, "orders", "a/b", "activate", &sample{Value: "sent"})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "orders/{id}/activate", route)

	_, err = postAction[lemon.Response](context.Background(), httpClient, "orders", "..", "activate", &sample{})
	require.ErrorIs(t, err, constants.ErrInvalidPathParam)
}
