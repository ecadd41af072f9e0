package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/agrosuite/dashboard/internal/filter"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type tokenContextKey struct{}

// WithToken returns a context carrying the bearer token the backend calls made with it should use
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey{}, token)
}

// TokenFrom extracts the bearer token set using WithToken
func TokenFrom(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

// Client talks to the farm management REST backend
type Client struct {
	baseURL          *url.URL
	timeout          time.Duration
	placeholderToken string
	transport        http.RoundTripper
}

// New creates a new backend client.
// Every request is bounded by timeout; requests whose context carries no token use placeholderToken.
func New(baseURL string, timeout time.Duration, placeholderToken string) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid backend base URL %q: must be absolute", baseURL)
	}
	return &Client{
		baseURL:          parsed,
		timeout:          timeout,
		placeholderToken: placeholderToken,
		transport:        http.DefaultTransport,
	}, nil
}

// Response represents a successful (2xx) backend response
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into target
func (response *Response) Decode(target any) error {
	return json.Unmarshal(response.Body, target)
}

// List issues 'GET {path}?page=N&page_size=M&<filters>'
func (client *Client) List(ctx context.Context, resource string, filters filter.Set, page, pageSize int) (*Response, error) {
	query := url.Values{}
	filters.Encode(query)
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	return client.do(ctx, http.MethodGet, resource, query, nil)
}

// Search issues 'POST {path}/search' with the filters, page and page size as JSON body
func (client *Client) Search(ctx context.Context, resource string, filters filter.Set, page, pageSize int) (*Response, error) {
	body := filters.Body()
	body["page"] = page
	body["page_size"] = pageSize
	return client.do(ctx, http.MethodPost, path.Join(resource, "search"), nil, body)
}

// Get issues 'GET {path}/{id}'
func (client *Client) Get(ctx context.Context, resource, id string) (*Response, error) {
	return client.do(ctx, http.MethodGet, path.Join(resource, id), nil, nil)
}

// Create issues 'POST {path}' with payload as JSON body
func (client *Client) Create(ctx context.Context, resource string, payload any) (*Response, error) {
	return client.do(ctx, http.MethodPost, resource, nil, payload)
}

// Update issues 'PUT {path}/{id}' with payload as JSON body
func (client *Client) Update(ctx context.Context, resource, id string, payload any) (*Response, error) {
	return client.do(ctx, http.MethodPut, path.Join(resource, id), nil, payload)
}

// Delete issues 'DELETE {path}/{id}'
func (client *Client) Delete(ctx context.Context, resource, id string) error {
	_, err := client.do(ctx, http.MethodDelete, path.Join(resource, id), nil, nil)
	return err
}

func (client *Client) resolve(resource string, query url.Values) string {
	target := *client.baseURL
	target.Path = strings.TrimSuffix(target.Path, "/") + "/" + strings.TrimPrefix(resource, "/")
	target.RawPath = ""
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

func (client *Client) httpClient(ctx context.Context) *http.Client {
	token, ok := TokenFrom(ctx)
	if !ok {
		token = client.placeholderToken
	}
	return &http.Client{
		Timeout: client.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   client.transport,
		},
	}
}

func (client *Client) do(ctx context.Context, method, resource string, query url.Values, payload any) (*Response, error) {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("could not marshal the request payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	target := client.resolve(resource, query)
	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("could not create the request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	log.Debug().Str("method", method).Str("url", target).Msg("calling the backend")

	response, err := client.httpClient(ctx).Do(request)
	if err != nil {
		log.Error().Err(err).Str("method", method).Str("url", target).Msg("backend request failed")
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	log.Debug().
		Str("method", method).
		Str("url", target).
		Int("status_code", response.StatusCode).
		Int("body_length", len(raw)).
		Msg("received a backend response")

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, newAPIError(response.StatusCode, raw)
	}
	return &Response{
		StatusCode: response.StatusCode,
		Body:       raw,
	}, nil
}
