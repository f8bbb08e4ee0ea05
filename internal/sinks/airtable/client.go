package airtable

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"log/slog"

	"github.com/ChrisCruze/Leo/internal/config"
)

const apiBase = "https://api.airtable.com/v0"

// Fields is one record's field map as Airtable sees it.
type Fields map[string]any

// Record is an Airtable record with its storage ID.
type Record struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

// Client is a minimal Airtable REST client covering list, create and update.
type Client struct {
	cfg        config.AirtableConfig
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates an Airtable API client.
func NewClient(cfg config.AirtableConfig, logger *slog.Logger) *Client {
	return &Client{
		cfg:     cfg,
		baseURL: apiBase,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		logger: logger,
	}
}

// ListRecords fetches every record in a table, following pagination offsets.
func (c *Client) ListRecords(ctx context.Context, tableID string) ([]Record, error) {
	var records []Record
	offset := ""

	for {
		endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.cfg.BaseID, tableID)
		if offset != "" {
			endpoint += "?offset=" + url.QueryEscape(offset)
		}

		var page struct {
			Records []Record `json:"records"`
			Offset  string   `json:"offset"`
		}
		if err := c.do(ctx, http.MethodGet, endpoint, nil, &page); err != nil {
			return nil, fmt.Errorf("list %s: %w", tableID, err)
		}

		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

// CreateRecord inserts one record.
func (c *Client) CreateRecord(ctx context.Context, tableID string, fields Fields) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, c.cfg.BaseID, tableID)
	body := map[string]any{"fields": fields, "typecast": true}

	var created Record
	if err := c.do(ctx, http.MethodPost, endpoint, body, &created); err != nil {
		return "", fmt.Errorf("create in %s: %w", tableID, err)
	}
	return created.ID, nil
}

// UpdateRecord patches the given fields of an existing record.
func (c *Client) UpdateRecord(ctx context.Context, tableID, recordID string, fields Fields) error {
	endpoint := fmt.Sprintf("%s/%s/%s/%s", c.baseURL, c.cfg.BaseID, tableID, recordID)
	body := map[string]any{"fields": fields, "typecast": true}

	if err := c.do(ctx, http.MethodPatch, endpoint, body, nil); err != nil {
		return fmt.Errorf("update %s in %s: %w", recordID, tableID, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("airtable API returned %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
