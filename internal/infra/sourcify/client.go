// Package sourcify implements explorer.ABISource on top of the Sourcify
// contract repository, reading the ABI from the metadata of fully matched
// contracts.
package sourcify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gabapcia/chainscope/internal/explorer"
	transporthttp "github.com/gabapcia/chainscope/internal/pkg/transport/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-retryablehttp"
)

// metadataResponse is the subset of the Solidity metadata file used here.
type metadataResponse struct {
	Output struct {
		ABI json.RawMessage `json:"abi"`
	} `json:"output"`
}

// client reads contract metadata from a Sourcify repository for a single chain.
type client struct {
	httpClient *retryablehttp.Client
	baseURL    string
	chainID    uint64
}

var _ explorer.ABISource = (*client)(nil)

// NewClient returns a Sourcify client. baseURL is the repository root, e.g.
// https://repo.sourcify.dev.
func NewClient(httpClient *retryablehttp.Client, baseURL string, chainID uint64) *client {
	return &client{
		httpClient: httpClient,
		baseURL:    baseURL,
		chainID:    chainID,
	}
}

// Name implements explorer.ABISource.
func (c *client) Name() string {
	return "sourcify"
}

// metadataURL returns the location of the metadata file of address.
func (c *client) metadataURL(address common.Address) string {
	return c.baseURL + "/contracts/full_match/" + strconv.FormatUint(c.chainID, 10) + "/" + address.Hex() + "/metadata.json"
}

// FetchABI implements explorer.ABISource. A contract that Sourcify does not
// know is reported as explorer.ErrUpstream.
func (c *client) FetchABI(ctx context.Context, address common.Address) (string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.metadataURL(address), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", explorer.ErrTransport, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", explorer.ErrTransport, transporthttp.StripURL(err))
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%w: contract %s is not verified", explorer.ErrUpstream, address.Hex())
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return "", fmt.Errorf("%w: unexpected http status %d", explorer.ErrTransport, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", explorer.ErrTransport, err)
	}

	var metadata metadataResponse
	if err := json.Unmarshal(body, &metadata); err != nil {
		return "", fmt.Errorf("%w: metadata: %v", explorer.ErrMalformedRecord, err)
	}

	abiJSON := metadata.Output.ABI
	if len(abiJSON) == 0 || string(abiJSON) == "null" {
		return "", fmt.Errorf("%w: metadata has no abi", explorer.ErrMalformedRecord)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, abiJSON); err != nil {
		return "", fmt.Errorf("%w: metadata abi: %v", explorer.ErrMalformedRecord, err)
	}

	return compact.String(), nil
}
