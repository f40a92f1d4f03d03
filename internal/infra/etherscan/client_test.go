package etherscan

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gabapcia/chainscope/internal/explorer"
	transporthttp "github.com/gabapcia/chainscope/internal/pkg/transport/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey  = "secret-key"
	testAddress = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
)

// newTestClient starts a server answering every request with handler and
// returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(transporthttp.NewClient(), srv.URL, testAPIKey, 1)
}

// respond writes v as the JSON body of a 200 response.
func respond(t *testing.T, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func ok(result any) map[string]any {
	return map[string]any{"status": "1", "message": "OK", "result": result}
}

func TestNewClient(t *testing.T) {
	httpClient := transporthttp.NewClient()
	c := NewClient(httpClient, "https://api.etherscan.io/v2/api", testAPIKey, 10)

	assert.Equal(t, httpClient, c.httpClient)
	assert.Equal(t, "https://api.etherscan.io/v2/api", c.baseURL)
	assert.Equal(t, testAPIKey, c.apiKey)
	assert.Equal(t, uint64(10), c.chainID)
}

func TestEnvelope_Err(t *testing.T) {
	t.Run("nil on success", func(t *testing.T) {
		assert.NoError(t, envelope{Status: "1", Message: "OK"}.Err())
	})

	t.Run("carries message and detail", func(t *testing.T) {
		err := envelope{Status: "0", Message: "NOTOK", Result: json.RawMessage(`"Invalid API Key"`)}.Err()
		assert.ErrorIs(t, err, explorer.ErrUpstream)
		assert.EqualError(t, err, "upstream error: NOTOK: Invalid API Key")
	})

	t.Run("omits non-string results", func(t *testing.T) {
		err := envelope{Status: "0", Message: "No transactions found", Result: json.RawMessage(`[]`)}.Err()
		assert.EqualError(t, err, "upstream error: No transactions found")
	})
}

func TestClient_get(t *testing.T) {
	t.Run("sends chain id and api key", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "1", r.URL.Query().Get("chainid"))
			assert.Equal(t, testAPIKey, r.URL.Query().Get("apikey"))
			assert.Equal(t, "stats", r.URL.Query().Get("module"))
			respond(t, w, ok("42"))
		})

		var result string
		require.NoError(t, c.get(t.Context(), url.Values{"module": {"stats"}}, &result))
		assert.Equal(t, "42", result)
	})

	t.Run("maps a non-envelope error response to a transport error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte("<html>bad gateway</html>"))
		})

		var result string
		err := c.get(t.Context(), url.Values{}, &result)
		assert.ErrorIs(t, err, explorer.ErrTransport)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("maps a non-json success body to a malformed record", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		})

		var result string
		err := c.get(t.Context(), url.Values{}, &result)
		assert.ErrorIs(t, err, explorer.ErrMalformedRecord)
	})

	t.Run("maps an envelope failure to an upstream error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, map[string]any{"status": "0", "message": "NOTOK", "result": "Max rate limit reached"})
		})

		var result string
		err := c.get(t.Context(), url.Values{}, &result)
		assert.ErrorIs(t, err, explorer.ErrUpstream)
		assert.Contains(t, err.Error(), "Max rate limit reached")
	})

	t.Run("never leaks the api key on network failures", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		c := NewClient(transporthttp.NewClient(), srv.URL, testAPIKey, 1)

		var result string
		err := c.get(t.Context(), url.Values{}, &result)
		assert.ErrorIs(t, err, explorer.ErrTransport)
		assert.NotContains(t, err.Error(), testAPIKey)
		assert.NotContains(t, err.Error(), srv.URL)
	})
}

func TestClient_Balance(t *testing.T) {
	t.Run("returns the balance in wei", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "account", q.Get("module"))
			assert.Equal(t, "balance", q.Get("action"))
			assert.Equal(t, testAddress, q.Get("address"))
			assert.Equal(t, "latest", q.Get("tag"))
			respond(t, w, ok("1000000000000000000"))
		})

		wei, err := c.Balance(t.Context(), common.HexToAddress(testAddress))
		require.NoError(t, err)
		assert.Equal(t, "1000000000000000000", wei.String())
	})

	t.Run("rejects a non-numeric balance", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			respond(t, w, ok("lots"))
		})

		_, err := c.Balance(t.Context(), common.HexToAddress(testAddress))
		assert.ErrorIs(t, err, explorer.ErrMalformedRecord)
	})
}

func TestClient_GasOracle(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gastracker", r.URL.Query().Get("module"))
		assert.Equal(t, "gasoracle", r.URL.Query().Get("action"))
		respond(t, w, ok(map[string]any{
			"LastBlock":       "21000000",
			"SafeGasPrice":    "1.2",
			"ProposeGasPrice": "1.5",
			"FastGasPrice":    "2.1",
			"suggestBaseFee":  "1.1",
			"gasUsedRatio":    "0.4,0.5",
		}))
	})

	gp, err := c.GasOracle(t.Context())
	require.NoError(t, err)
	assert.Equal(t, explorer.GasPrice{
		SafeGwei:       "1.2",
		ProposeGwei:    "1.5",
		FastGwei:       "2.1",
		SuggestBaseFee: "1.1",
		LastBlock:      21000000,
	}, gp)
}
