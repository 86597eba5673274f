/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package accessor_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/memstore/accessor"
	"github.com/suparena/memstore/datastore/testmodels"
	"github.com/suparena/memstore/errors"
	"github.com/suparena/memstore/registry"
)

func setupRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	require.NoError(t, registry.Register[testmodels.Building](r, "Buildings"))
	require.NoError(t, registry.Register[testmodels.Room](r, "Rooms"))
	require.NoError(t, registry.Register[testmodels.Photo](r, "Photos"))
	require.NoError(t, registry.Register[testmodels.SimpleEntity](r, "SimpleEntitySet"))
	return r
}

func accessorFor(t *testing.T, r *registry.Registry, set string) accessor.Accessor {
	t.Helper()
	es, err := r.EntitySet(set)
	require.NoError(t, err)
	acc, err := accessor.For(es)
	require.NoError(t, err)
	return acc
}

func TestStructAccessor_GetSet(t *testing.T) {
	r := setupRegistry(t)
	acc := accessorFor(t, r, "Photos")

	photo := &testmodels.Photo{Name: "BigPicture"}
	require.NoError(t, acc.Set(photo, "ImageFormat", "PNG"))
	assert.Equal(t, "PNG", photo.Type)

	v, err := acc.Get(photo, "ImageFormat")
	require.NoError(t, err)
	assert.Equal(t, "PNG", v)

	_, err = acc.Get(photo, "Type")
	assert.True(t, errors.IsMetadataError(err), "Go field names are not metadata names")

	err = acc.Set(&testmodels.Room{}, "Name", "x")
	assert.True(t, errors.IsMetadataError(err), "instance of another type must be rejected")

	var nilPhoto *testmodels.Photo
	err = acc.Set(nilPhoto, "Name", "x")
	assert.True(t, errors.IsValidationError(err))
}

func TestStructAccessor_Conversions(t *testing.T) {
	r := setupRegistry(t)
	buildings := accessorFor(t, r, "Buildings")
	rooms := accessorFor(t, r, "Rooms")
	simple := accessorFor(t, r, "SimpleEntitySet")

	b := &testmodels.Building{}
	require.NoError(t, buildings.Set(b, "Id", int64(7)))
	assert.Equal(t, "7", b.ID)

	require.NoError(t, buildings.Set(b, "UpdatedAt", "2024-03-01T10:00:00Z"))
	assert.Equal(t, 2024, time.Time(b.UpdatedAt).Year())

	room := &testmodels.Room{}
	require.NoError(t, rooms.Set(room, "Seats", "12"))
	assert.Equal(t, int32(12), room.Seats)

	err := rooms.Set(room, "Seats", int64(1)<<40)
	assert.True(t, errors.IsValidationError(err), "overflow must be reported")

	err = rooms.Set(room, "Seats", "twelve")
	assert.True(t, errors.IsValidationError(err))

	s := &testmodels.SimpleEntity{}
	require.NoError(t, simple.Set(s, "Id", 5))
	require.NotNil(t, s.ID)
	assert.Equal(t, int32(5), *s.ID)

	got, err := simple.Coerce("Id", s.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), got, "pointers are dereferenced for key tuples")

	got, err = buildings.Coerce("Id", 3)
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestStructAccessor_Attach(t *testing.T) {
	r := setupRegistry(t)
	buildings := accessorFor(t, r, "Buildings")
	rooms := accessorFor(t, r, "Rooms")

	b := &testmodels.Building{Name: "Common Building"}
	room := testmodels.NewRoom(1, "Room 1")

	require.NoError(t, buildings.Attach(b, "Rooms", room))
	require.NoError(t, rooms.Attach(room, "Building", b))
	assert.Len(t, b.Rooms, 1)
	assert.Same(t, b, room.Building)

	err := buildings.Attach(b, "Rooms", &testmodels.Photo{})
	assert.True(t, errors.IsMetadataError(err))

	err = buildings.Set(b, "Rooms", nil)
	assert.True(t, errors.IsMetadataError(err), "navigations are not writable through Set")
}

func TestRecordAccessor(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.RegisterRecords("Rooms", "Room",
		[]registry.Property{
			{Name: "Id", Type: registry.EdmInt32, Key: true},
			{Name: "Name", Type: registry.EdmString},
			{Name: "Opened", Type: registry.EdmDateTime},
			{Name: "Code", Type: registry.EdmGuid},
		},
		[]registry.Navigation{{Name: "Neighbours", Target: "Rooms", Many: true}},
	))
	acc := accessorFor(t, r, "Rooms")

	rec := registry.NewRecord("Rooms")
	v, err := acc.Get(rec, "Id")
	require.NoError(t, err)
	assert.Equal(t, int32(0), v, "absent values read as the zero value of the declared type")

	require.NoError(t, acc.Set(rec, "Id", "9"))
	v, _ = acc.Get(rec, "Id")
	assert.Equal(t, int32(9), v)

	require.NoError(t, acc.Set(rec, "Opened", "2024-03-01T10:00:00Z"))
	v, _ = acc.Get(rec, "Opened")
	assert.IsType(t, strfmt.DateTime{}, v)

	err = acc.Set(rec, "Code", "not-a-uuid")
	assert.True(t, errors.IsValidationError(err))
	require.NoError(t, acc.Set(rec, "Code", "a8098c1a-f86e-11da-bd1a-00112444be1e"))

	other := registry.NewRecord("Rooms")
	require.NoError(t, acc.Attach(rec, "Neighbours", other))
	require.NoError(t, acc.Attach(rec, "Neighbours", registry.NewRecord("Rooms")))
	list, err := acc.Get(rec, "Neighbours")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	err = acc.Check(registry.NewRecord("Buildings"))
	assert.True(t, errors.IsMetadataError(err))
	err = acc.Check(&testmodels.Room{})
	assert.True(t, errors.IsMetadataError(err))
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		value any
		typ   reflect.Type
		want  any
	}{
		{"int to string", 42, reflect.TypeOf(""), "42"},
		{"string to int64", "42", reflect.TypeOf(int64(0)), int64(42)},
		{"float to int", 3.0, reflect.TypeOf(0), 3},
		{"string to bool", "true", reflect.TypeOf(false), true},
		{"uint to float", uint8(2), reflect.TypeOf(float64(0)), float64(2)},
		{"nil to zero", nil, reflect.TypeOf(int16(0)), int16(0)},
		{"time to date-time", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), reflect.TypeOf(strfmt.DateTime{}),
			strfmt.DateTime(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accessor.Convert(tt.value, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Interface())
		})
	}

	_, err := accessor.Convert(2.5, reflect.TypeOf(0))
	assert.Error(t, err, "non-integral floats do not convert to integers")
	_, err = accessor.Convert(-1, reflect.TypeOf(uint(0)))
	assert.Error(t, err)
	_, err = accessor.Convert(struct{}{}, reflect.TypeOf(0))
	assert.Error(t, err)
}
