package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/csdlgen"
	"github.com/aretw0/csdlgen/pkg/adapters/memory"
	"github.com/aretw0/csdlgen/pkg/dsl"
	"github.com/aretw0/csdlgen/pkg/observability"
	"github.com/aretw0/csdlgen/pkg/ports"
	"github.com/aretw0/csdlgen/pkg/query"
	"github.com/aretw0/csdlgen/pkg/typegraph"
)

func zooSource(ctx context.Context) (*typegraph.Program, error) {
	b := dsl.New()
	zoo := b.Namespace("Zoo")
	zoo.Model("Pet").Prop("name", b.Builtin("string"), dsl.Key())
	return b.Build(), nil
}

func newTestHandler(t *testing.T, source ports.ProgramSource) (http.Handler, *prometheus.Registry, *memory.Store) {
	t.Helper()
	reg := prometheus.NewRegistry()
	store := memory.NewStore()
	handler := NewHandler(Options{
		Emitter:  csdlgen.New(csdlgen.WithMetrics(observability.NewMetrics(reg)), csdlgen.WithStore(store)),
		Source:   source,
		Store:    store,
		Gatherer: reg,
	})
	return handler, reg, store
}

func do(handler http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestGetMetadata(t *testing.T) {
	handler, _, _ := newTestHandler(t, zooSource)

	w := do(handler, "GET", "/$metadata", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "4.0", w.Header().Get("OData-Version"))
	assert.NotEmpty(t, w.Header().Get("ETag"))
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))

	doc, err := query.Parse(w.Body.Bytes())
	require.NoError(t, err)
	key, err := doc.First("//EntityType[@Name='Pet']/Key/PropertyRef")
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "name", key.Attr("Name"))
}

func TestGetMetadata_NotModified(t *testing.T) {
	handler, _, _ := newTestHandler(t, zooSource)

	first := do(handler, "GET", "/$metadata", nil)
	etag := first.Header().Get("ETag")

	second := do(handler, "GET", "/$metadata", map[string]string{"If-None-Match": etag})
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	stale := do(handler, "GET", "/$metadata", map[string]string{"If-None-Match": `"0"`})
	assert.Equal(t, http.StatusOK, stale.Code)
}

func TestGetMetadata_SourceErrors(t *testing.T) {
	handler, _, _ := newTestHandler(t, func(ctx context.Context) (*typegraph.Program, error) {
		return nil, errors.New("graph.yaml: boom")
	})

	w := do(handler, "GET", "/$metadata", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "boom")

	unconfigured, _, _ := newTestHandler(t, nil)
	assert.Equal(t, http.StatusServiceUnavailable, do(unconfigured, "GET", "/$metadata", nil).Code)
}

func TestGetSchemas(t *testing.T) {
	handler, _, _ := newTestHandler(t, zooSource)

	w := do(handler, "GET", "/$metadata/schemas", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp SchemasResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Schemas, 1)
	assert.Equal(t, "Zoo", resp.Schemas[0].Namespace)
	assert.Equal(t, 1, resp.Schemas[0].EntityTypes)
	assert.Empty(t, resp.Diagnostics)
	assert.Contains(t, w.Body.String(), `"diagnostics":[]`)
}

func TestGetHealth(t *testing.T) {
	handler, _, _ := newTestHandler(t, nil)

	w := do(handler, "GET", "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, csdlgen.Version, body["version"])
}

func TestMetrics(t *testing.T) {
	handler, _, _ := newTestHandler(t, zooSource)

	do(handler, "GET", "/$metadata", nil)
	w := do(handler, "GET", "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `csdlgen_renders_total{outcome="ok"} 1`)
	assert.Contains(t, w.Body.String(), "csdlgen_schemas 1")
}

func TestDocuments(t *testing.T) {
	handler, _, store := newTestHandler(t, zooSource)
	require.NoError(t, store.Save(context.Background(), "csdl.xml", []byte("<edmx:Edmx/>")))

	list := do(handler, "GET", "/documents", nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, `["csdl.xml"]`, list.Body.String())

	got := do(handler, "GET", "/documents/csdl.xml", nil)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "<edmx:Edmx/>", got.Body.String())

	missing := do(handler, "GET", "/documents/other.xml", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestDocuments_DisabledWithoutStore(t *testing.T) {
	handler := NewHandler(Options{Source: zooSource, Gatherer: prometheus.NewRegistry()})
	assert.Equal(t, http.StatusNotFound, do(handler, "GET", "/documents", nil).Code)
}

func TestCORSPreflight(t *testing.T) {
	handler, _, _ := newTestHandler(t, zooSource)
	w := do(handler, "OPTIONS", "/$metadata", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "GET"))
}

func TestListenAndServe_Shutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", http.NotFoundHandler(), nil)
	}()
	cancel()
	assert.NoError(t, <-done)
}
