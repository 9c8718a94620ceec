package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fivetwenty-io/soda/internal/auth"
	sodahttp "github.com/fivetwenty-io/soda/internal/http"
	"github.com/fivetwenty-io/soda/pkg/soda"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

func (l *MockLogger) messages() []string {
	msgs := make([]string, 0, len(l.logs))
	for _, entry := range l.logs {
		msgs = append(msgs, entry["msg"].(string))
	}

	return msgs
}

func oauth(t *testing.T, token string) *auth.Authenticator {
	t.Helper()

	authenticator, err := auth.New(auth.Credentials{AppToken: "app-token", AccessToken: token})
	require.NoError(t, err)

	return authenticator
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()

	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/resource/abcd-1234.json", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "OAuth test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "app-token", request.Header.Get("X-App-Token"))
			assert.Equal(t, "soda-go", request.Header.Get("User-Agent"))

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode([]map[string]string{{"name": "row"}})
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, oauth(t, "test-token"))

		resp, err := client.Do(context.Background(), &sodahttp.Request{
			Method: "GET",
			Path:   "/resource/abcd-1234.json",
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, "application/json", resp.ContentType())

		var result []map[string]string

		require.NoError(t, json.Unmarshal(resp.Body, &result))
		assert.Equal(t, "row", result[0]["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "2", request.URL.Query().Get("$limit"))
			assert.Empty(t, request.Header.Get("Authorization"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, nil)

		resp, err := client.Do(context.Background(), &sodahttp.Request{
			Method: "GET",
			Path:   "/resource/abcd-1234.json",
			Query:  url.Values{"$limit": []string{"2"}},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Empty(t, resp.Body)
	})

	t.Run("request with json body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Crimes", body["name"])

			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, nil)

		resp, err := client.Post(context.Background(), "/api/views.json", map[string]string{"name": "Crimes"})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with raw body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "text/csv", request.Header.Get("Content-Type"))

			var buf bytes.Buffer

			_, _ = buf.ReadFrom(request.Body)
			assert.Equal(t, "a,b\n1,2\n", buf.String())
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, nil)

		_, err := client.Do(context.Background(), &sodahttp.Request{
			Method:  "POST",
			Path:    "/resource/abcd-1234.json",
			Headers: map[string]string{"Content-Type": "text/csv"},
			RawBody: strings.NewReader("a,b\n1,2\n"),
		})
		require.NoError(t, err)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.Header().Set("Content-Type", "application/json")
			writer.WriteHeader(http.StatusNotFound)
			_, _ = writer.Write([]byte(`{"code":"not_found","error":true,"message":"Cannot find view"}`))
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, nil)

		resp, err := client.Get(context.Background(), "/api/views/missing.json", nil)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		assert.Equal(t, "404 Client Error: Not Found.\n\tCannot find view", err.Error())

		httpErr := &soda.HTTPError{}
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, "Cannot find view", httpErr.Message)
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "text/csv", request.Header.Get("Accept"))
			assert.Equal(t, "custom-agent", request.Header.Get("User-Agent"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := sodahttp.NewClient(server.URL, nil, sodahttp.WithUserAgent("custom-agent"))

		resp, err := client.Do(context.Background(), &sodahttp.Request{
			Method:  "GET",
			Path:    "/resource/abcd-1234.csv",
			Headers: map[string]string{"Accept": "text/csv"},
		})
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("unsupported method", func(t *testing.T) {
		t.Parallel()

		client := sodahttp.NewClient("http://127.0.0.1:1", nil)

		_, err := client.Do(context.Background(), &sodahttp.Request{Method: "PATCH", Path: "/resource/x.json"})
		require.ErrorIs(t, err, soda.ErrUnsupportedMethod)
		assert.ErrorIs(t, err, soda.ErrConfiguration)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := sodahttp.NewClient(server.URL, nil, sodahttp.WithLogger(logger), sodahttp.WithDebug(true))

		_, err := client.Get(context.Background(), "/resource/abcd-1234.json", nil)
		require.NoError(t, err)

		msgs := logger.messages()
		assert.Contains(t, msgs, "HTTP Request")
		assert.Contains(t, msgs, "HTTP Response")
	})

	t.Run("without debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := sodahttp.NewClient(server.URL, nil, sodahttp.WithLogger(logger))

		_, err := client.Get(context.Background(), "/resource/abcd-1234.json", nil)
		require.NoError(t, err)
		assert.Empty(t, logger.logs)
	})
}

func TestClient_StatusPolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code    int
		wantErr string
	}{
		{code: 200},
		{code: 201},
		{code: 202},
		{code: 204},
		{code: 300},
		{code: 400, wantErr: "400 Client Error: Bad Request"},
		{code: 429, wantErr: "429 Client Error: Too Many Requests"},
		{code: 500, wantErr: "500 Server Error: Internal Server Error"},
		{code: 503, wantErr: "503 Server Error: Service Unavailable"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			t.Parallel()

			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				attempts++

				writer.WriteHeader(tt.code)
			}))
			defer server.Close()

			client := sodahttp.NewClient(server.URL, nil)

			resp, err := client.Get(context.Background(), "/test", nil)
			require.NotNil(t, resp)
			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Equal(t, 1, attempts, "requests are never retried")

			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*sodahttp.Client, context.Context) (*soda.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *sodahttp.Client, ctx context.Context) (*soda.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *sodahttp.Client, ctx context.Context) (*soda.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *sodahttp.Client, ctx context.Context) (*soda.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *sodahttp.Client, ctx context.Context) (*soda.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := sodahttp.NewClient(server.URL, nil)
			defer func() { _ = client.Close() }()

			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

func TestClient_Interceptors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "abc", request.Header.Get("X-Request-ID"))
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	chain := soda.NewInterceptorChain()
	chain.AddRequestInterceptor(soda.HeaderInterceptor(map[string]string{"X-Request-ID": "abc"}))

	var seenStatus int

	chain.AddResponseInterceptor(func(ctx context.Context, req *soda.Request, resp *soda.Response) error {
		seenStatus = resp.StatusCode

		return nil
	})

	client := sodahttp.NewClient(server.URL, nil, sodahttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/test", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, seenStatus)
}

func TestClient_InterceptorMetadataReachesResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	collector := soda.NewMetricsCollector()

	chain := soda.NewInterceptorChain()
	chain.AddRequestInterceptor(soda.MetricsRequestInterceptor(collector))
	chain.AddResponseInterceptor(soda.MetricsResponseInterceptor(collector))

	client := sodahttp.NewClient(server.URL, nil, sodahttp.WithInterceptors(chain))

	_, err := client.Get(context.Background(), "/missing", nil)
	require.Error(t, err)

	metrics, ok := collector.GetMetrics("GET /missing")
	require.True(t, ok)
	assert.Equal(t, int64(1), metrics.TotalRequests)
	assert.Equal(t, int64(1), metrics.TotalErrors)
	assert.Positive(t, metrics.TotalLatency)
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		time.Sleep(200 * time.Millisecond)
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := sodahttp.NewClient(server.URL, nil, sodahttp.WithTimeout(20*time.Millisecond))

	_, err := client.Get(context.Background(), "/slow", nil)
	require.Error(t, err)
}

func TestClient_Download(t *testing.T) {
	t.Parallel()

	payload := strings.Repeat("x", 4097)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/missing" {
			writer.WriteHeader(http.StatusNotFound)

			return
		}

		assert.Equal(t, "true", request.URL.Query().Get("download"))
		_, _ = writer.Write([]byte(payload))
	}))
	defer server.Close()

	client := sodahttp.NewClient(server.URL, nil)

	var buf bytes.Buffer

	resp, err := client.Download(context.Background(), "/api/assets/blob", url.Values{"download": {"true"}}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, payload, buf.String())

	_, err = client.Download(context.Background(), "/missing", nil, &bytes.Buffer{})
	assert.True(t, soda.IsNotFound(err))
}
