package notify_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/roselyu365/gamelibrary-managetool/notify"
	"github.com/stretchr/testify/require"
)

func testMessage() notify.Message {
	return notify.Message{
		Embeds: []notify.Embed{{
			Type:  "rich",
			Title: "Booking Confirmed",
			Fields: []notify.EmbedField{
				{Name: "User", Value: "Ana Chen (S12345)"},
				{Name: "Date", Value: "2024-06-10"},
			},
		}},
	}
}

func TestSendMessage(t *testing.T) {

	t.Run("posts the message as JSON", func(t *testing.T) {
		var received notify.Message

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "POST", r.Method)
			require.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.Nil(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := notify.NewClient(server.URL)

		err := client.SendMessage(context.Background(), testMessage())

		require.Nil(t, err)
		require.Equal(t, testMessage(), received)
	})

	t.Run("non-2xx response is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "bad payload", http.StatusBadRequest)
		}))
		defer server.Close()

		client := notify.NewClient(server.URL)

		err := client.SendMessage(context.Background(), testMessage())

		require.Error(t, err)
		require.ErrorContains(t, err, "400")
	})

	t.Run("unconfigured URL", func(t *testing.T) {
		client := notify.NewClient("")

		err := client.SendMessage(context.Background(), testMessage())

		require.Error(t, err)
	})
}
