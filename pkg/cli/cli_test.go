package cli_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/ringsync/pkg/cli"
)

func TestCheckCommand(t *testing.T) {
	t.Run("healthy platform", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gt.Value(t, r.URL.Path).Equal("/scim/health")
			_, _ = w.Write([]byte("OK"))
		}))
		defer srv.Close()

		err := cli.Run(context.Background(), []string{
			"ringsync", "check",
			"--base-url", srv.URL,
			"--access-token", "test-token",
		}, "test")
		gt.NoError(t, err)
	})

	t.Run("unhealthy platform", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		err := cli.Run(context.Background(), []string{
			"ringsync", "check",
			"--base-url", srv.URL,
			"--access-token", "test-token",
		}, "test")
		gt.Error(t, err)
	})

	t.Run("missing base URL", func(t *testing.T) {
		err := cli.Run(context.Background(), []string{
			"ringsync", "check",
			"--access-token", "test-token",
		}, "test")
		gt.Error(t, err)
	})
}
