package notify

import (
	"testing"
	"time"
)

func TestHubRegisterPushUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// create fake client
	client := &Client{
		Send:   make(chan []byte, 10),
		UserID: "user_a",
	}

	// register client
	hub.register <- client

	// push a payload to the user
	data := []byte(`{"event":"booking-confirmed"}`)
	hub.Push("user_a", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	// unregister client
	hub.unregister <- client
}

func TestHubPushOnlyToTargetUser(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	a := &Client{Send: make(chan []byte, 10), UserID: "user_a"}
	b := &Client{Send: make(chan []byte, 10), UserID: "user_b"}
	hub.register <- a
	hub.register <- b

	hub.Push("user_a", []byte("for a"))

	select {
	case <-a.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for user_a delivery")
	}

	select {
	case got := <-b.Send:
		t.Fatalf("user_b received unexpected payload %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubPushToUnknownUserDoesNotBlock(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Push("nobody", []byte("dropped"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("push to unknown user blocked")
	}
}
