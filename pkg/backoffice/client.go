// Package backoffice is the Go client for the admin API. It mirrors the
// layering the dashboard uses: one pre-configured HTTP wrapper, a token
// store standing in for the session cookies, and one thin service per
// resource unwrapping the {success, data, pagination} envelope.
package backoffice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gega19/barber-app-backoffice-sub001/internal/httpresp"
)

type Pagination = httpresp.Pagination

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	// onUnauthorized fires after any 401 clears the session, regardless of
	// which resource the request hit. The web client redirects to /login.
	onUnauthorized func()

	Auth           *AuthService
	Users          *UsersService
	Appointments   *AppointmentsService
	Promotions     *PromotionsService
	PaymentMethods *PaymentMethodsService
	Specialties    *SpecialtiesService
	Notifications  *NotificationsService
	Workplaces     *WorkplacesService
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.tokens = s }
}

func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  NewMemoryTokenStore(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthService{c: c}
	c.Users = &UsersService{c: c}
	c.Appointments = &AppointmentsService{c: c}
	c.Promotions = &PromotionsService{c: c}
	c.PaymentMethods = &PaymentMethodsService{c: c}
	c.Specialties = &SpecialtiesService{c: c}
	c.Notifications = &NotificationsService{c: c}
	c.Workplaces = &WorkplacesService{c: c}

	return c
}

type envelope[T any] struct {
	Success    bool        `json:"success"`
	Data       T           `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Error      *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// doJSON performs a request and unwraps exactly one envelope layer. A 401
// anywhere clears the session before the error propagates.
func doJSON[T any](
	ctx context.Context,
	c *Client,
	method, path string,
	query url.Values,
	body any,
) (T, *Pagination, error) {

	var zero T

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return zero, nil, err
		}
		reqBody = bytes.NewReader(b)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return zero, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return zero, nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized {
		c.tokens.Clear()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	var env envelope[T]
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		if res.StatusCode >= 400 {
			return zero, nil, &APIError{StatusCode: res.StatusCode, Message: res.Status}
		}
		return zero, nil, err
	}

	if res.StatusCode >= 400 || !env.Success {
		apiErr := &APIError{StatusCode: res.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		if apiErr.Message == "" {
			apiErr.Message = fmt.Sprintf("request failed with status %d", res.StatusCode)
		}
		return zero, nil, apiErr
	}

	return env.Data, env.Pagination, nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
