package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/imodoiepale/kra-invoice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verifierFor(endpoint string) VerifierServiceInterface {
	return NewVerifierService(config.KRAConfig{
		Endpoint:      endpoint,
		BatchTimeout:  2 * time.Second,
		SingleTimeout: 2 * time.Second,
	}, testLogger())
}

func TestVerifySubmitsWholeBatchInOneRequest(t *testing.T) {
	var requests int
	var received batchPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [{"invoice_number": "a", "status": "success", "data": {}}]}`))
	}))
	defer server.Close()

	verifier := verifierFor(server.URL)
	payload, err := verifier.Verify(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, []string{"a", "b", "c"}, received.InvoiceNumbers)
	assert.True(t, json.Valid(payload))

	// Succeeded only after reconciliation is also reported as done.
	assert.Equal(t, RunSubmitting, verifier.RunState())
	verifier.FinishRun(nil)
	assert.Equal(t, RunSucceeded, verifier.RunState())
}

func TestVerifyEmptyBatch(t *testing.T) {
	verifier := verifierFor("http://example.invalid")

	_, err := verifier.Verify(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestVerifyNonSuccessStatusSurfacesBodyVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream KRA portal unavailable"))
	}))
	defer server.Close()

	verifier := verifierFor(server.URL)
	_, err := verifier.Verify(context.Background(), []string{"a"})
	require.Error(t, err)

	var remoteErr *RemoteHTTPError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, http.StatusBadGateway, remoteErr.StatusCode)
	assert.Equal(t, "upstream KRA portal unavailable", remoteErr.Body)
	assert.Equal(t, RunFailed, verifier.RunState())
}

func TestVerifyMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer server.Close()

	verifier := verifierFor(server.URL)
	_, err := verifier.Verify(context.Background(), []string{"a"})
	require.Error(t, err)

	var malformedErr *MalformedResponseError
	assert.ErrorAs(t, err, &malformedErr)
	assert.Equal(t, RunFailed, verifier.RunState())
}

func TestVerifyTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	verifier := NewVerifierService(config.KRAConfig{
		Endpoint:     server.URL,
		BatchTimeout: 50 * time.Millisecond,
	}, testLogger())

	start := time.Now()
	_, err := verifier.Verify(context.Background(), []string{"a"})
	require.Error(t, err)

	var timeoutErr *TimeoutError
	require.ErrorAs(t, err, &timeoutErr)
	assert.Less(t, time.Since(start), 2*time.Second, "timeout must not hang")
	assert.Equal(t, RunFailed, verifier.RunState())
}

func TestVerifyConnectionRefused(t *testing.T) {
	// A server that is already closed guarantees a refused connection.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := server.URL
	server.Close()

	verifier := verifierFor(endpoint)
	_, err := verifier.Verify(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Equal(t, RunFailed, verifier.RunState())
}

func TestVerifySingleUsesItsOwnCeiling(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var received batchPayload
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		require.Equal(t, []string{"solo"}, received.InvoiceNumbers)

		w.Write([]byte(`{"results": [{"invoice_number": "solo", "status": "success", "data": {}}]}`))
	}))
	defer server.Close()

	verifier := verifierFor(server.URL)
	payload, err := verifier.VerifySingle(context.Background(), "solo")
	require.NoError(t, err)
	assert.True(t, json.Valid(payload))

	_, err = verifier.VerifySingle(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}
