// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package sku_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/treadstock/treadstock/pkg/sku"
)

/*
TestNormalize covers accent stripping, casing, and separator removal for
single SKU segments.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Michelin", "MICHELIN"},
		{"spaces_removed", "Pilot Sport 4", "PILOTSPORT4"},
		{"accents_stripped", "Défense Élite", "DEFENSEELITE"},
		{"symbols_removed", "225/45R17", "22545R17"},
		{"already_canonical", "T005", "T005"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sku.Normalize(tt.input))
		})
	}
}

/*
TestCompose verifies the brand/model/size composition rule used on warehouse
labels.
*/
func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		brand    string
		model    string
		size     string
		expected string
	}{
		{"standard", "Michelin", "Pilot Sport 4", "225/45R17", "MICH-PILOTSPORT4-2254517"},
		{"short_brand", "BFG", "Advantage", "215/55R16", "BFG-ADVANTAGE-2155516"},
		{"radial_marker_stripped", "Goodyear", "Eagle F1", "245/40R19", "GOOD-EAGLEF1-2454019"},
		{"missing_model", "Pirelli", "", "205/60R15", "PIRE-2056015"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sku.Compose(tt.brand, tt.model, tt.size))
		})
	}
}

/*
TestCanonical verifies whole-code cleanup where segment hyphens must survive.
*/
func TestCanonical(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase", "mich-pilotsport4-2254517", "MICH-PILOTSPORT4-2254517"},
		{"surrounding_noise", "  MICH-PILOTSPORT4-2254517  ", "MICH-PILOTSPORT4-2254517"},
		{"odd_separators", "mich_pilot sport4/2254517", "MICH-PILOT-SPORT4-2254517"},
		{"collapsed_hyphens", "MICH--T005---123", "MICH-T005-123"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sku.Canonical(tt.input))
		})
	}
}
