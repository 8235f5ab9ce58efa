// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package sheets mirrors an account's inventory to a Google Spreadsheet.

The spreadsheet is a human-facing copy for sharing and offline edits, not a
second source of truth: exports overwrite the sheet from the database, and
imports upsert sheet rows back into the caller's inventory.

The mirror is optional. When no service-account credentials are configured
the sync endpoints respond 503 and the rest of the API is unaffected.
*/
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// # Spreadsheet Client

// Client defines the minimal spreadsheet operations the sync service needs.
type Client interface {
	// UpdateRange overwrites the given A1-notation range with values.
	UpdateRange(context context.Context, rangeName string, values [][]any) error

	// ReadRange returns the cell values of the given A1-notation range.
	ReadRange(context context.Context, rangeName string) ([][]any, error)
}

// googleClient implements Client against the Google Sheets v4 API.
type googleClient struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewGoogleClient authenticates with service-account credentials JSON and
// binds the client to one spreadsheet.
func NewGoogleClient(context context.Context, credentialsJSON, spreadsheetID string) (Client, error) {
	service, err := sheetsapi.NewService(context,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: failed to build client: %w", err)
	}

	return &googleClient{service: service, spreadsheetID: spreadsheetID}, nil
}

func (client *googleClient) UpdateRange(context context.Context, rangeName string, values [][]any) error {
	body := &sheetsapi.ValueRange{Values: values}

	_, err := client.service.Spreadsheets.Values.
		Update(client.spreadsheetID, rangeName, body).
		ValueInputOption("RAW").
		Context(context).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s failed: %w", rangeName, err)
	}

	return nil
}

func (client *googleClient) ReadRange(context context.Context, rangeName string) ([][]any, error) {
	result, err := client.service.Spreadsheets.Values.
		Get(client.spreadsheetID, rangeName).
		Context(context).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s failed: %w", rangeName, err)
	}

	return result.Values, nil
}
