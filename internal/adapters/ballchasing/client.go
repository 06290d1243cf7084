// internal/adapters/ballchasing/client.go
package ballchasing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Client is a thin typed wrapper over the replay service REST API. Every
// method is a single HTTP call: no retries, no rate limiting, no caching.
// Those are the caller's problem, which is what makes re-running a report
// safe to reason about.
type Client struct {
	Base  string
	Token string
	HTTP  *http.Client
}

// New builds a client bound to one bearer token.
func New(base, token string) *Client {
	if base == "" {
		base = "https://ballchasing.com/api"
	}
	c := &http.Client{Timeout: 60 * time.Second}
	return &Client{Base: base, Token: token, HTTP: c}
}

// APIError is a non-2xx answer from the service, with the parsed error body.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ballchasing: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.Base + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.Token)
	return req, nil
}

// do runs the request and decodes a 2xx body into out (when non-nil).
// Anything else comes back as *APIError.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("ballchasing %s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func parseAPIError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return &APIError{Status: resp.StatusCode, Message: body.Error}
}

// Ping checks the token and returns the steam id it belongs to. The service
// uses that id as the creator of any group made with the token.
func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "", nil, nil)
	if err != nil {
		return "", err
	}
	var out struct {
		SteamID string `json:"steam_id"`
	}
	if err := c.do(req, &out); err != nil {
		return "", err
	}
	return out.SteamID, nil
}

// SearchFilter narrows a replay search. Zero fields are left out of the query.
type SearchFilter struct {
	Playlist string
	Uploader string // platform account id the file was uploaded under
	Group    string
	Count    int
	SortBy   string
	SortDir  string
}

func (f SearchFilter) values() url.Values {
	q := url.Values{}
	if f.Playlist != "" {
		q.Set("playlist", f.Playlist)
	}
	if f.Uploader != "" {
		q.Set("uploader", f.Uploader)
	}
	if f.Group != "" {
		q.Set("group", f.Group)
	}
	if f.Count > 0 {
		q.Set("count", strconv.Itoa(f.Count))
	}
	if f.SortBy != "" {
		q.Set("sort-by", f.SortBy)
	}
	if f.SortDir != "" {
		q.Set("sort-dir", f.SortDir)
	}
	return q
}

// SearchReplays returns one page of replays matching the filter.
func (c *Client) SearchReplays(ctx context.Context, f SearchFilter) (*ReplayPage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/replays", f.values(), nil)
	if err != nil {
		return nil, err
	}
	var page ReplayPage
	if err := c.do(req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ReplaysInGroup lists the replays filed directly under a group.
func (c *Client) ReplaysInGroup(ctx context.Context, groupID string) (*ReplayPage, error) {
	return c.SearchReplays(ctx, SearchFilter{Group: groupID})
}

// DownloadReplay fetches the raw replay file.
func (c *Client) DownloadReplay(ctx context.Context, id string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/replays/"+id+"/file", nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ballchasing download %s: %w", id, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, parseAPIError(resp)
	}
	return io.ReadAll(resp.Body)
}

// PatchReplay updates fields of a replay (title, group, visibility).
// The service answers 204 on success.
func (c *Client) PatchReplay(ctx context.Context, id string, fields map[string]string) error {
	return c.patch(ctx, "/replays/"+id, fields)
}

// ListGroups lists a parent group's direct children. creator may be empty.
func (c *Client) ListGroups(ctx context.Context, parent, creator string) (*GroupPage, error) {
	q := url.Values{}
	q.Set("group", parent)
	if creator != "" {
		q.Set("creator", creator)
	}
	req, err := c.newRequest(ctx, http.MethodGet, "/groups", q, nil)
	if err != nil {
		return nil, err
	}
	var page GroupPage
	if err := c.do(req, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateGroup makes a child group under parent. The identification modes
// tell the service how to merge player/team stats inside the group.
func (c *Client) CreateGroup(ctx context.Context, name, parent, teamIdent, playerIdent string) (*Group, error) {
	payload, err := json.Marshal(map[string]string{
		"name":                  name,
		"parent":                parent,
		"team_identification":   teamIdent,
		"player_identification": playerIdent,
	})
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/groups", nil, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var g Group
	if err := c.do(req, &g); err != nil {
		return nil, err
	}
	g.Name = name
	return &g, nil
}

// PatchGroup updates group settings (shared, identification modes).
func (c *Client) PatchGroup(ctx context.Context, id string, fields map[string]string) error {
	return c.patch(ctx, "/groups/"+id, fields)
}

func (c *Client) patch(ctx context.Context, path string, fields map[string]string) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPatch, path, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// UploadReplay posts a replay file into a group. A 201 is a fresh upload;
// a 409 means the exact file already exists somewhere on the service, and
// the result carries the existing replay's id with Duplicate set so the
// caller can re-file it instead of re-uploading.
func (c *Client) UploadReplay(ctx context.Context, filename string, file io.Reader, groupID, visibility string) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("visibility", visibility)
	q.Set("group", groupID)
	req, err := c.newRequest(ctx, http.MethodPost, "/v2/upload", q, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ballchasing upload %s: %w", filename, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated, http.StatusConflict:
		var res UploadResult
		if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
			return nil, err
		}
		res.Duplicate = resp.StatusCode == http.StatusConflict
		return &res, nil
	default:
		return nil, parseAPIError(resp)
	}
}
