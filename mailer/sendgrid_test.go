package mailer_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ongod-gadgets/storefront/mailer"
)

func TestSendGridDispatcherSend(t *testing.T) {
	ctx := context.Background()

	t.Run("posts a well-formed mail-send request", func(t *testing.T) {
		var (
			gotAuth        string
			gotContentType string
			gotBody        map[string]any
		)

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		dispatcher := mailer.NewSendGridDispatcher("sg-test-key", "noreply@example.com", "ONGOD PHONE GADGET",
			mailer.WithEndpoint(srv.URL),
			mailer.WithHTTPClient(srv.Client()),
		)

		err := dispatcher.Send(ctx, "alice@example.com", "Verification Code", "<p>123456</p>")
		require.NoError(t, err)

		assert.Equal(t, "Bearer sg-test-key", gotAuth)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, "Verification Code", gotBody["subject"])

		from := gotBody["from"].(map[string]any)
		assert.Equal(t, "noreply@example.com", from["email"])
		assert.Equal(t, "ONGOD PHONE GADGET", from["name"])

		personalizations := gotBody["personalizations"].([]any)
		require.Len(t, personalizations, 1)
		to := personalizations[0].(map[string]any)["to"].([]any)
		require.Len(t, to, 1)
		assert.Equal(t, "alice@example.com", to[0].(map[string]any)["email"])

		content := gotBody["content"].([]any)
		require.Len(t, content, 1)
		assert.Equal(t, "text/html", content[0].(map[string]any)["type"])
		assert.Equal(t, "<p>123456</p>", content[0].(map[string]any)["value"])
	})

	t.Run("non-2xx responses surface the status and body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
		}))
		defer srv.Close()

		dispatcher := mailer.NewSendGridDispatcher("bad-key", "noreply@example.com", "",
			mailer.WithEndpoint(srv.URL),
			mailer.WithHTTPClient(srv.Client()),
		)

		err := dispatcher.Send(ctx, "alice@example.com", "subject", "body")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
		assert.Contains(t, err.Error(), "bad key")
	})

	t.Run("connection failures surface as errors", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listening anymore

		dispatcher := mailer.NewSendGridDispatcher("key", "noreply@example.com", "",
			mailer.WithEndpoint(srv.URL),
		)

		err := dispatcher.Send(ctx, "alice@example.com", "subject", "body")
		assert.Error(t, err)
	})
}
