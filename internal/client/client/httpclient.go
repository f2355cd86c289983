package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/devlog/internal/api"
	"github.com/dmitrijs2005/devlog/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL, e.g.
// "http://127.0.0.1:5000".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, sess *Session, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sess != nil {
		if !sess.LoggedIn() {
			return nil, ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+sess.Token)
	}
	return req, nil
}

func (c *HTTPClient) send(req *http.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		var msg api.Message
		_ = json.NewDecoder(resp.Body).Decode(&msg)
		return nil, &StatusError{Status: resp.StatusCode, Message: msg.Message}
	}
	return resp, nil
}

// do sends a JSON request and decodes a JSON response into out (if non-nil).
// A nil sess means the route is public.
func (c *HTTPClient) do(ctx context.Context, method, path string, sess *Session, body, out any) error {
	req, err := c.newRequest(ctx, method, path, sess, body)
	if err != nil {
		return err
	}

	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Ping checks that the server answers on its root route.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

func sessionFrom(u api.User) *Session {
	token := u.Token
	u.Token = ""
	return &Session{Token: token, User: u}
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) (*Session, error) {
	var u api.User
	err := c.do(ctx, http.MethodPost, api.BasePath+"/auth/register", nil,
		api.RegisterRequest{Name: name, Email: email, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return sessionFrom(u), nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*Session, error) {
	var u api.User
	err := c.do(ctx, http.MethodPost, api.BasePath+"/auth/login", nil,
		api.LoginRequest{Email: email, Password: password}, &u)
	if err != nil {
		return nil, err
	}
	return sessionFrom(u), nil
}

func (c *HTTPClient) Me(ctx context.Context, sess *Session) (*api.User, error) {
	var u api.User
	if err := c.do(ctx, http.MethodGet, api.BasePath+"/auth/me", sess, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) RequestAvatarUpload(ctx context.Context, sess *Session) (*api.AvatarUpload, error) {
	var up api.AvatarUpload
	if err := c.do(ctx, http.MethodPost, api.BasePath+"/auth/avatar", sess, nil, &up); err != nil {
		return nil, err
	}
	return &up, nil
}

// UploadAvatar PUTs the image bytes to a presigned URL returned by
// RequestAvatarUpload.
func (c *HTTPClient) UploadAvatar(ctx context.Context, uploadURL string, r io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, r)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Status: resp.StatusCode, Message: "avatar upload failed"}
	}
	return nil
}

func (c *HTTPClient) ListChallenges(ctx context.Context, sess *Session) ([]api.Challenge, error) {
	var out []api.Challenge
	err := c.do(ctx, http.MethodGet, api.BasePath+"/challenges", sess, nil, &out)
	return out, err
}

func (c *HTTPClient) GetChallenge(ctx context.Context, sess *Session, id string) (*api.Challenge, error) {
	var out api.Challenge
	if err := c.do(ctx, http.MethodGet, api.BasePath+"/challenges/"+url.PathEscape(id), sess, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChallengeEntries(ctx context.Context, sess *Session, id string) ([]api.Entry, error) {
	var out []api.Entry
	err := c.do(ctx, http.MethodGet, api.BasePath+"/challenges/"+url.PathEscape(id)+"/entries", sess, nil, &out)
	return out, err
}

func (c *HTTPClient) CreateChallenge(ctx context.Context, sess *Session, in api.ChallengeInput) (*api.Challenge, error) {
	var out api.Challenge
	if err := c.do(ctx, http.MethodPost, api.BasePath+"/challenges", sess, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateChallenge(ctx context.Context, sess *Session, id string, in api.ChallengeInput) (*api.Challenge, error) {
	var out api.Challenge
	if err := c.do(ctx, http.MethodPut, api.BasePath+"/challenges/"+url.PathEscape(id), sess, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteChallenge removes the challenge and its entries. It returns how many
// entries went with it.
func (c *HTTPClient) DeleteChallenge(ctx context.Context, sess *Session, id string) (int64, error) {
	var out api.DeleteChallengeResult
	if err := c.do(ctx, http.MethodDelete, api.BasePath+"/challenges/"+url.PathEscape(id), sess, nil, &out); err != nil {
		return 0, err
	}
	return out.EntriesRemoved, nil
}

func (c *HTTPClient) ListEntries(ctx context.Context, sess *Session) ([]api.Entry, error) {
	var out []api.Entry
	err := c.do(ctx, http.MethodGet, api.BasePath+"/entries", sess, nil, &out)
	return out, err
}

func (c *HTTPClient) GetEntry(ctx context.Context, sess *Session, id string) (*api.Entry, error) {
	var out api.Entry
	if err := c.do(ctx, http.MethodGet, api.BasePath+"/entries/"+url.PathEscape(id), sess, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateEntry(ctx context.Context, sess *Session, in api.EntryInput) (*api.Entry, error) {
	var out api.Entry
	if err := c.do(ctx, http.MethodPost, api.BasePath+"/entries", sess, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateEntry(ctx context.Context, sess *Session, id string, in api.EntryInput) (*api.Entry, error) {
	var out api.Entry
	if err := c.do(ctx, http.MethodPut, api.BasePath+"/entries/"+url.PathEscape(id), sess, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteEntry(ctx context.Context, sess *Session, id string) error {
	return c.do(ctx, http.MethodDelete, api.BasePath+"/entries/"+url.PathEscape(id), sess, nil, nil)
}

func (c *HTTPClient) Stats(ctx context.Context, sess *Session) (*api.Stats, error) {
	var out api.Stats
	if err := c.do(ctx, http.MethodGet, api.BasePath+"/entries/stats", sess, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Export downloads all entries as format ("xlsx" or "csv") and writes them
// to w.
func (c *HTTPClient) Export(ctx context.Context, sess *Session, format string, w io.Writer) error {
	req, err := c.newRequest(ctx, http.MethodGet, api.BasePath+"/entries/export?format="+url.QueryEscape(format), sess, nil)
	if err != nil {
		return err
	}
	resp, err := c.send(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, err = io.Copy(w, resp.Body)
	return err
}

func (c *HTTPClient) Takeaway(ctx context.Context, sess *Session, content string) (string, error) {
	var out api.TakeawayResponse
	err := c.do(ctx, http.MethodPost, api.BasePath+"/ai/takeaway", sess, api.TakeawayRequest{Content: content}, &out)
	return out.Takeaway, err
}

func (c *HTTPClient) Suggestions(ctx context.Context, sess *Session, topic, category string) ([]string, error) {
	var out api.SuggestionsResponse
	err := c.do(ctx, http.MethodPost, api.BasePath+"/ai/suggestions", sess,
		api.SuggestionsRequest{Topic: topic, Category: category}, &out)
	return out.Suggestions, err
}

func (c *HTTPClient) DeepDive(ctx context.Context, sess *Session, topic string) (*api.DeepDiveResponse, error) {
	var out api.DeepDiveResponse
	if err := c.do(ctx, http.MethodPost, api.BasePath+"/ai/deep-dive", sess, api.DeepDiveRequest{Topic: topic}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Portfolio(ctx context.Context, userID string) (*api.Portfolio, error) {
	var out api.Portfolio
	if err := c.do(ctx, http.MethodGet, api.BasePath+"/portfolio/"+url.PathEscape(userID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) PortfolioEntry(ctx context.Context, userID, id string) (*api.Entry, error) {
	var out api.Entry
	path := api.BasePath + "/portfolio/" + url.PathEscape(userID) + "/entries/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
