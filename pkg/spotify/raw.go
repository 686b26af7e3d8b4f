package spotify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	libspotify "github.com/zmb3/spotify/v2"

	"Music-Catalog-Go/pkg/catalog"
)

// do sends a request to an endpoint the library does not cover and decodes
// the JSON response into out. Error bodies are decoded into libspotify.Error
// so both paths report failures the same way.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	return json.Unmarshal(b, out)
}

func decodeError(resp *http.Response) error {
	var e struct {
		Error libspotify.Error `json:"error"`
	}
	b, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(b, &e); err != nil || e.Error.Message == "" {
		e.Error.Message = strings.TrimSpace(string(b))
		if e.Error.Message == "" {
			e.Error.Message = resp.Status
		}
	}
	e.Error.Status = resp.StatusCode
	return e.Error
}

func idsQuery(ids []string, market string) url.Values {
	q := url.Values{"ids": {strings.Join(ids, ",")}}
	if market != "" {
		q.Set("market", market)
	}
	return q
}

func (c *Client) pageQuery(opts catalog.Options, market bool) url.Values {
	q := url.Values{}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}
	if opts.After != "" {
		q.Set("after", opts.After)
	}
	if m := c.marketFor(opts); market && m != "" {
		q.Set("market", m)
	}
	return q
}

// marketQuery carries only the market, for single object lookups.
func (c *Client) marketQuery(opts catalog.Options) url.Values {
	return c.pageQuery(catalog.Options{Market: opts.Market}, true)
}

// getPage fetches a paging object, optionally nested under key.
func (c *Client) getPage(ctx context.Context, path, key string, q url.Values) (catalog.Page, error) {
	if key == "" {
		var p rawPage
		if err := c.do(ctx, http.MethodGet, path, q, nil, &p); err != nil {
			return catalog.Page{}, err
		}
		return p.page(), nil
	}
	var wrapped map[string]rawPage
	if err := c.do(ctx, http.MethodGet, path, q, nil, &wrapped); err != nil {
		return catalog.Page{}, err
	}
	return wrapped[key].page(), nil
}

// getList fetches a bulk lookup such as {"shows": [...]}.
func (c *Client) getList(ctx context.Context, path, key string, q url.Values) ([]catalog.Object, error) {
	var wrapped map[string][]catalog.Object
	if err := c.do(ctx, http.MethodGet, path, q, nil, &wrapped); err != nil {
		return nil, err
	}
	return wrapped[key], nil
}

type snapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}
