// Package schemas holds the embedded JSON Schemas for deckard file formats.
package schemas

import _ "embed"

// DeckSchemaJSON is the JSON Schema for deck files.
//
//go:embed deck.schema.json
var DeckSchemaJSON string
