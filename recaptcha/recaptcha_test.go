package recaptcha_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	liberrors "github.com/jrsteele09/go-lab-site/internal/errors"
	"github.com/jrsteele09/go-lab-site/recaptcha"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerifyServer(t *testing.T, body string, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-secret", r.PostForm.Get("secret"))
		assert.Equal(t, "client-token", r.PostForm.Get("response"))
		assert.Equal(t, "10.0.0.1", r.PostForm.Get("remoteip"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, url string) *recaptcha.Client {
	t.Helper()
	c, err := recaptcha.NewClient("test-secret", 0.5, recaptcha.WithVerifyURL(url))
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresSecret(t *testing.T) {
	_, err := recaptcha.NewClient("", 0.5)
	require.ErrorIs(t, err, liberrors.ErrConfiguration)
}

func TestClient_Verify(t *testing.T) {
	ctx := context.Background()

	t.Run("accepted v3", func(t *testing.T) {
		srv := newVerifyServer(t, `{"success":true,"score":0.9,"action":"doctor_registration"}`, http.StatusOK)
		res, err := newClient(t, srv.URL).Verify(ctx, "client-token", "10.0.0.1")
		require.NoError(t, err)
		require.True(t, res.Success)
		require.InDelta(t, 0.9, res.Score, 0.0001)
		require.Equal(t, "doctor_registration", res.Action)
	})

	t.Run("accepted v2 without score", func(t *testing.T) {
		srv := newVerifyServer(t, `{"success":true}`, http.StatusOK)
		res, err := newClient(t, srv.URL).Verify(ctx, "client-token", "10.0.0.1")
		require.NoError(t, err)
		require.True(t, res.Success)
		require.Equal(t, 1.0, res.Score)
	})

	t.Run("low score rejected", func(t *testing.T) {
		srv := newVerifyServer(t, `{"success":true,"score":0.1}`, http.StatusOK)
		res, err := newClient(t, srv.URL).Verify(ctx, "client-token", "10.0.0.1")
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Contains(t, res.ErrorCodes, "score-below-threshold")
	})

	t.Run("rejected by google", func(t *testing.T) {
		srv := newVerifyServer(t, `{"success":false,"error-codes":["invalid-input-response"]}`, http.StatusOK)
		res, err := newClient(t, srv.URL).Verify(ctx, "client-token", "10.0.0.1")
		require.NoError(t, err)
		require.False(t, res.Success)
		require.Equal(t, []string{"invalid-input-response"}, res.ErrorCodes)
	})

	t.Run("upstream failure", func(t *testing.T) {
		srv := newVerifyServer(t, `oops`, http.StatusInternalServerError)
		_, err := newClient(t, srv.URL).Verify(ctx, "client-token", "10.0.0.1")
		require.Error(t, err)
	})

	t.Run("empty token short circuits", func(t *testing.T) {
		c := newClient(t, "http://127.0.0.1:0/never-called")
		res, err := c.Verify(ctx, "  ", "")
		require.NoError(t, err)
		require.False(t, res.Success)
	})
}

func TestDisabled(t *testing.T) {
	res, err := recaptcha.Disabled{}.Verify(context.Background(), "", "")
	require.NoError(t, err)
	require.True(t, res.Success)
}
