package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/shareconnect-go/internal/domain"
)

// shares wait for the back-end to answer, so this must exceed dispatch.timeout
const requestTimeout = 90 * time.Second

// apiError is a non-2xx answer from the server
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.StatusCode)
}

// profileView is a profile as the server lists it
type profileView struct {
	domain.ServerProfile
	IsDefault       bool   `json:"is_default"`
	ServiceTypeName string `json:"service_type_name"`
}

type shareRequest struct {
	URL       string `json:"url"`
	ProfileID string `json:"profile_id,omitempty"`
}

type shareResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	HistoryID   uint   `json:"history_id"`
	ProfileID   string `json:"profile_id"`
	ProfileName string `json:"profile_name"`
}

type apiClient struct {
	baseURL string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// do sends a JSON request to the API and decodes the JSON answer into out
func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + "/api/v1" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &payload) == nil && payload.Error != "" {
			msg = payload.Error
		}
		return &apiError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *apiClient) listProfiles(ctx context.Context) ([]profileView, error) {
	var profiles []profileView
	err := c.do(ctx, http.MethodGet, "/profiles", nil, nil, &profiles)
	return profiles, err
}

func (c *apiClient) createProfile(ctx context.Context, profile domain.ServerProfile) (*domain.ServerProfile, error) {
	var created domain.ServerProfile
	if err := c.do(ctx, http.MethodPost, "/profiles", nil, profile, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *apiClient) updateProfile(ctx context.Context, profile domain.ServerProfile) error {
	return c.do(ctx, http.MethodPut, "/profiles/"+url.PathEscape(profile.ID), nil, profile, nil)
}

func (c *apiClient) deleteProfile(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/profiles/"+url.PathEscape(id), nil, nil, nil)
}

func (c *apiClient) setDefault(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/profiles/"+url.PathEscape(id)+"/default", nil, nil, nil)
}

func (c *apiClient) share(ctx context.Context, link, profileID string) (*shareResponse, error) {
	var resp shareResponse
	if err := c.do(ctx, http.MethodPost, "/share", nil, shareRequest{URL: link, ProfileID: profileID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func historyQuery(filter domain.HistoryFilter) url.Values {
	q := url.Values{}
	if filter.ServiceProvider != "" {
		q.Set("service_provider", filter.ServiceProvider)
	}
	if filter.MediaType != "" {
		q.Set("media_type", string(filter.MediaType))
	}
	if filter.ServiceType != "" {
		q.Set("service_type", filter.ServiceType)
	}
	return q
}

func (c *apiClient) listHistory(ctx context.Context, filter domain.HistoryFilter) ([]domain.HistoryItem, error) {
	var items []domain.HistoryItem
	err := c.do(ctx, http.MethodGet, "/history", historyQuery(filter), nil, &items)
	return items, err
}

func (c *apiClient) historyFilters(ctx context.Context) (*domain.HistoryFilters, error) {
	var filters domain.HistoryFilters
	if err := c.do(ctx, http.MethodGet, "/history/filters", nil, nil, &filters); err != nil {
		return nil, err
	}
	return &filters, nil
}

func (c *apiClient) deleteHistoryItem(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, "/history/"+strconv.FormatUint(uint64(id), 10), nil, nil, nil)
}

func (c *apiClient) clearHistory(ctx context.Context, filter domain.HistoryFilter) error {
	return c.do(ctx, http.MethodDelete, "/history", historyQuery(filter), nil, nil)
}
