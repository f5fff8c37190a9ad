package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogmirror/app/database"
)

func testSubscription() *database.Subscription {
	return &database.Subscription{
		TopicURL:    "https://blog.example.com/feeds/posts/default",
		HostName:    "mirror.example.com",
		VerifyToken: "deadbeef",
	}
}

func TestClientRequestSendsHandshakeForm(t *testing.T) {
	var received url.Values
	var contentType, userAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		userAgent = r.Header.Get("User-Agent")
		require.NoError(t, r.ParseForm())
		received = r.PostForm
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "blogmirror/test")
	sub := testSubscription()

	accepted := client.Request(context.Background(), sub, ModeSubscribe)

	assert.True(t, accepted)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, "blogmirror/test", userAgent)
	assert.Equal(t, "https://mirror.example.com/hubbub", received.Get("hub.callback"))
	assert.Equal(t, "subscribe", received.Get("hub.mode"))
	assert.Equal(t, sub.TopicURL, received.Get("hub.topic"))
	assert.Equal(t, "async", received.Get("hub.verify"))
	assert.Equal(t, "deadbeef", received.Get("hub.verify_token"))
}

func TestClientRequestUnsubscribeMode(t *testing.T) {
	var mode string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		mode = r.PostForm.Get("hub.mode")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "blogmirror/test")

	accepted := client.Request(context.Background(), testSubscription(), ModeUnsubscribe)

	assert.True(t, accepted)
	assert.Equal(t, "unsubscribe", mode)
}

func TestClientRequestReportsHubRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "blogmirror/test")

	assert.False(t, client.Request(context.Background(), testSubscription(), ModeSubscribe))
}

func TestClientRequestWithoutHubURL(t *testing.T) {
	client := NewClient(http.DefaultClient, "", "blogmirror/test")

	assert.False(t, client.Request(context.Background(), testSubscription(), ModeSubscribe))
}

func TestClientRequestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(http.DefaultClient, server.URL, "blogmirror/test")

	assert.False(t, client.Request(context.Background(), testSubscription(), ModeSubscribe))
}
