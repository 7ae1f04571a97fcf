// Package client calls the taskseed HTTP API.
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

	"github.com/BuzzLyutic/taskseed-api/internal/model"
)

// APIError is any non-2xx answer.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("taskseed: status %d: %s", e.Status, strings.TrimSpace(e.Body))
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for baseURL. A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
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

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Body: string(data)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func itemPath(resource, id string) string {
	return "/" + resource + "/" + url.PathEscape(id)
}

// PreMemoInput is the writable part of a preMemo. Nil fields are left out of updates.
type PreMemoInput struct {
	Content *string `json:"content,omitempty"`
	Tag     *string `json:"tag,omitempty"`
}

func (c *Client) ListPreMemos(ctx context.Context) ([]model.PreMemo, error) {
	var out []model.PreMemo
	return out, c.do(ctx, http.MethodGet, "/preMemo", nil, &out)
}

func (c *Client) CreatePreMemo(ctx context.Context, in PreMemoInput) (model.PreMemo, error) {
	var out model.PreMemo
	return out, c.do(ctx, http.MethodPost, "/preMemo", in, &out)
}

func (c *Client) UpdatePreMemo(ctx context.Context, id string, in PreMemoInput) (model.PreMemo, error) {
	var out model.PreMemo
	body := struct {
		ID string `json:"id"`
		PreMemoInput
	}{id, in}
	return out, c.do(ctx, http.MethodPut, itemPath("preMemo", id), body, &out)
}

func (c *Client) DeletePreMemo(ctx context.Context, id string) (model.Deleted, error) {
	var out model.Deleted
	return out, c.do(ctx, http.MethodDelete, itemPath("preMemo", id), nil, &out)
}

type TaskInput struct {
	Memo   string  `json:"memo,omitempty"`
	Title  *string `json:"title,omitempty"`
	Detail *string `json:"detail,omitempty"`
}

func (c *Client) ListTasks(ctx context.Context, memoID string) ([]model.Task, error) {
	var out []model.Task
	return out, c.do(ctx, http.MethodGet, "/task?memoId="+url.QueryEscape(memoID), nil, &out)
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (model.Task, error) {
	var out model.Task
	return out, c.do(ctx, http.MethodPost, "/task", in, &out)
}

func (c *Client) UpdateTask(ctx context.Context, id string, in TaskInput) (model.Task, error) {
	var out model.Task
	body := struct {
		ID     string  `json:"id"`
		Title  *string `json:"title,omitempty"`
		Detail *string `json:"detail,omitempty"`
	}{id, in.Title, in.Detail}
	return out, c.do(ctx, http.MethodPut, itemPath("task", id), body, &out)
}

func (c *Client) DeleteTask(ctx context.Context, id string) (model.Deleted, error) {
	var out model.Deleted
	return out, c.do(ctx, http.MethodDelete, itemPath("task", id), nil, &out)
}

type ChildTaskInput struct {
	Parent string  `json:"parent,omitempty"`
	Title  *string `json:"title,omitempty"`
	Detail *string `json:"detail,omitempty"`
}

func (c *Client) ListChildTasks(ctx context.Context, parentID string) ([]model.ChildTask, error) {
	var out []model.ChildTask
	return out, c.do(ctx, http.MethodGet, "/childTask?parentId="+url.QueryEscape(parentID), nil, &out)
}

func (c *Client) CreateChildTask(ctx context.Context, in ChildTaskInput) (model.ChildTask, error) {
	var out model.ChildTask
	return out, c.do(ctx, http.MethodPost, "/childTask", in, &out)
}

func (c *Client) UpdateChildTask(ctx context.Context, id string, in ChildTaskInput) (model.ChildTask, error) {
	var out model.ChildTask
	body := struct {
		ID     string  `json:"id"`
		Title  *string `json:"title,omitempty"`
		Detail *string `json:"detail,omitempty"`
	}{id, in.Title, in.Detail}
	return out, c.do(ctx, http.MethodPut, itemPath("childTask", id), body, &out)
}

func (c *Client) DeleteChildTask(ctx context.Context, id string) (model.Deleted, error) {
	var out model.Deleted
	return out, c.do(ctx, http.MethodDelete, itemPath("childTask", id), nil, &out)
}

type TagInput struct {
	Title *string `json:"title,omitempty"`
	Color *string `json:"color,omitempty"`
}

func (c *Client) ListTags(ctx context.Context) ([]model.Tag, error) {
	var out []model.Tag
	return out, c.do(ctx, http.MethodGet, "/tag", nil, &out)
}

func (c *Client) CreateTag(ctx context.Context, in TagInput) (model.Tag, error) {
	var out model.Tag
	return out, c.do(ctx, http.MethodPost, "/tag", in, &out)
}

func (c *Client) UpdateTag(ctx context.Context, id string, in TagInput) (model.Tag, error) {
	var out model.Tag
	body := struct {
		ID string `json:"id"`
		TagInput
	}{id, in}
	return out, c.do(ctx, http.MethodPut, itemPath("tag", id), body, &out)
}

func (c *Client) DeleteTag(ctx context.Context, id string) (model.Deleted, error) {
	var out model.Deleted
	return out, c.do(ctx, http.MethodDelete, itemPath("tag", id), nil, &out)
}

type ColorInput struct {
	Title *string `json:"title,omitempty"`
	Code  *string `json:"code,omitempty"`
}

func (c *Client) ListColors(ctx context.Context) ([]model.Color, error) {
	var out []model.Color
	return out, c.do(ctx, http.MethodGet, "/color", nil, &out)
}

func (c *Client) CreateColor(ctx context.Context, in ColorInput) (model.Color, error) {
	var out model.Color
	return out, c.do(ctx, http.MethodPost, "/color", in, &out)
}

func (c *Client) UpdateColor(ctx context.Context, id string, in ColorInput) (model.Color, error) {
	var out model.Color
	body := struct {
		ID string `json:"id"`
		ColorInput
	}{id, in}
	return out, c.do(ctx, http.MethodPut, itemPath("color", id), body, &out)
}

func (c *Client) DeleteColor(ctx context.Context, id string) (model.Deleted, error) {
	var out model.Deleted
	return out, c.do(ctx, http.MethodDelete, itemPath("color", id), nil, &out)
}

// GetOrderList returns nil when the parent has no custom order yet.
func (c *Client) GetOrderList(ctx context.Context, listKey string) (*model.OrderList, error) {
	var out []model.OrderList
	if err := c.do(ctx, http.MethodGet, itemPath("orderList", listKey), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return &out[0], nil
}

// String is a helper for the optional input fields.
func String(s string) *string {
	return &s
}
