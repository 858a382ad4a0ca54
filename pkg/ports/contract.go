package ports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore implementation
// adheres to the defined interface contract. The store must start empty.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	doc := []byte(`<?xml version="1.0" encoding="utf-8"?>` + "\n<edmx:Edmx/>\n")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, "csdl.xml", doc)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, "csdl.xml")
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, doc, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		updated := []byte("<edmx:Edmx Version=\"4.0\"/>\n")
		require.NoError(t, store.Save(ctx, "csdl.xml", updated))

		loaded, err := store.Load(ctx, "csdl.xml")
		require.NoError(t, err)
		assert.Equal(t, updated, loaded)
	})

	t.Run("Returned bytes are isolated", func(t *testing.T) {
		data := []byte("abc")
		require.NoError(t, store.Save(ctx, "isolated.xml", data))
		data[0] = 'x'

		loaded, err := store.Load(ctx, "isolated.xml")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(loaded))
		loaded[0] = 'y'

		again, err := store.Load(ctx, "isolated.xml")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(again))
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"csdl.xml", "isolated.xml"}, names)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "missing.xml")
		assert.True(t, errors.Is(err, ErrDocumentNotFound), "expected ErrDocumentNotFound, got %v", err)
	})

	t.Run("Invalid Name", func(t *testing.T) {
		err := store.Save(ctx, "", doc)
		assert.True(t, errors.Is(err, ErrInvalidName), "expected ErrInvalidName, got %v", err)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "isolated.xml"))
		require.NoError(t, store.Delete(ctx, "isolated.xml"), "deleting twice should be a no-op")

		_, err := store.Load(ctx, "isolated.xml")
		assert.True(t, errors.Is(err, ErrDocumentNotFound))

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"csdl.xml"}, names)
	})
}
