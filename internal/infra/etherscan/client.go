// Package etherscan implements the explorer.Explorer, explorer.ABISource and
// explorer.ContractCaller interfaces on top of the Etherscan V2 HTTP API.
//
// Every call sends exactly one GET request. The API key travels in the query
// string, so errors returned by this package never include the request URL.
package etherscan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gabapcia/chainscope/internal/explorer"
	transporthttp "github.com/gabapcia/chainscope/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

// statusOK is the envelope status of a successful call.
const statusOK = "1"

// envelope is the wrapper Etherscan puts around every non-proxy response.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// Err returns an explorer.ErrUpstream error when the envelope reports a failure.
// Etherscan puts the failure detail in result as a plain string.
func (e envelope) Err() error {
	if e.Status == statusOK {
		return nil
	}

	var detail string
	if err := json.Unmarshal(e.Result, &detail); err == nil && detail != "" && detail != e.Message {
		return fmt.Errorf("%w: %s: %s", explorer.ErrUpstream, e.Message, detail)
	}

	return fmt.Errorf("%w: %s", explorer.ErrUpstream, e.Message)
}

// client talks to the Etherscan API for a single chain.
type client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	apiKey     string
	chainID    uint64
}

var (
	_ explorer.Explorer       = (*client)(nil)
	_ explorer.ABISource      = (*client)(nil)
	_ explorer.ContractCaller = (*client)(nil)
)

// NewClient returns an Etherscan client. baseURL is the V2 endpoint, e.g.
// https://api.etherscan.io/v2/api, and chainID selects the network.
func NewClient(httpClient *retryablehttp.Client, baseURL, apiKey string, chainID uint64) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		chainID:    chainID,
	}
}

// do sends one GET request with params plus the chain id and API key, and
// returns the status code and the raw body.
func (c *client) do(ctx context.Context, params url.Values) (int, []byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("chainid", strconv.FormatUint(c.chainID, 10))
	query.Set("apikey", c.apiKey)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", explorer.ErrTransport, transporthttp.StripURL(err))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", explorer.ErrTransport, transporthttp.StripURL(err))
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: reading response: %v", explorer.ErrTransport, err)
	}

	return res.StatusCode, body, nil
}

// get performs a call and decodes the result of its envelope into out.
func (c *client) get(ctx context.Context, params url.Values, out any) error {
	status, body, err := c.do(ctx, params)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Status == "" {
		if !isSuccess(status) {
			return fmt.Errorf("%w: unexpected http status %d", explorer.ErrTransport, status)
		}
		return fmt.Errorf("%w: response is not an envelope", explorer.ErrMalformedRecord)
	}

	if err := env.Err(); err != nil {
		return err
	}

	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("%w: %s.%s result: %v", explorer.ErrMalformedRecord, params.Get("module"), params.Get("action"), err)
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}
