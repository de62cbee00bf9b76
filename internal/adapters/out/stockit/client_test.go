package stockit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"donations/internal/core/domain/model/donation"
	"donations/internal/core/domain/model/kernel"
	"donations/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPackage(t *testing.T) *donation.Package {
	t.Helper()
	pkg, err := donation.NewPackage(kernel.NewUUID(), "INV 0042", 3, 3)
	require.NoError(t, err)
	return pkg
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "  "}, nil)
	require.ErrorIs(t, err, ErrBaseURLRequired)
}

func TestClient_DesignateSendsOrderReference(t *testing.T) {
	pkg := newTestPackage(t)
	ref := ports.StockitOrderRef{OrderID: kernel.NewUUID(), Code: "GC-00001"}

	var (
		gotPath string
		gotAuth string
		gotBody designateRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "secret"}, srv.Client())
	require.NoError(t, err)

	require.NoError(t, client.DesignateToStockitOrder(context.Background(), pkg, ref))

	assert.Equal(t, "/api/v1/items/INV%200042/designate", gotPath)
	assert.Equal(t, "Token token=secret", gotAuth)
	assert.Equal(t, ref.OrderID.String(), gotBody.OrderID)
	assert.Equal(t, "GC-00001", gotBody.OrderCode)
	assert.Equal(t, pkg.ID().String(), gotBody.PackageID)
	assert.Equal(t, 3, gotBody.Quantity)
}

func TestClient_DesignateReportsStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "item locked", http.StatusConflict)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	err = client.DesignateToStockitOrder(context.Background(), newTestPackage(t), ports.StockitOrderRef{OrderID: kernel.NewUUID()})

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.Status)
	assert.Equal(t, "item locked", statusErr.Body)
}

func TestClient_UndesignateMissingItemIsNoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/items/INV%200042/undesignate", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	assert.NoError(t, client.UndesignateFromStockitOrder(context.Background(), newTestPackage(t)))
}

func TestClient_UndesignateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL}, srv.Client())
	require.NoError(t, err)

	err = client.UndesignateFromStockitOrder(context.Background(), newTestPackage(t))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.Status)
}
