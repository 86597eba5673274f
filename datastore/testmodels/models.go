/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds edm-tagged entity types shared by memstore tests.
package testmodels

import (
	"strconv"
	"time"

	"github.com/go-openapi/strfmt"
)

type Building struct {

	// Generated from the Buildings counter when left empty.
	ID string `edm:"Id,key"`

	Name string `edm:"Name"`

	// Raw image bytes, never part of the key.
	Image []byte `edm:"Image"`

	// Format: date-time
	UpdatedAt strfmt.DateTime `edm:"UpdatedAt"`

	Rooms []*Room `edm:"Rooms,nav"`
}

type Room struct {
	ID string `edm:"Id,key"`

	Name string `edm:"Name"`

	Seats int32 `edm:"Seats"`

	Building *Building `edm:"Building,nav"`
}

// NewRoom creates a room whose key is the decimal form of id.
func NewRoom(id int, name string) *Room {
	return &Room{ID: strconv.Itoa(id), Name: name}
}

type Photo struct {
	Name string `edm:"Name,key"`

	// Exposed as ImageFormat in key maps.
	Type string `edm:"ImageFormat,key"`

	ImageURI string `edm:"ImageUri"`

	ImageType string `edm:"MimeType"`
}

type SimpleEntity struct {
	ID *int32 `edm:"Id,key"`

	Name string `edm:"Name"`
}

type Tag struct {
	Label string `edm:"Label,key"`

	Weight float64 `edm:"Weight,key"`
}

// Event is keyed by a strfmt date-time.
type Event struct {
	At strfmt.DateTime `edm:"At,key"`

	Name string `edm:"Name"`
}

// Tick is keyed by a plain time.Time.
type Tick struct {
	At time.Time `edm:"At,key"`

	Name string `edm:"Name"`
}

// Counter has an 8-bit key, which is never generated.
type Counter struct {
	ID uint8 `edm:"Id,key"`

	Name string `edm:"Name"`
}
