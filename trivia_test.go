package main

import (
	"testing"
)

func testClient(id string) *Client {
	return &Client{
		send:     make(chan any, 8),
		playerID: id,
	}
}

func drain(c *Client) []any {
	var got []any
	for {
		select {
		case msg := <-c.send:
			got = append(got, msg)
		default:
			return got
		}
	}
}

func TestGatewayAttachMovesClient(t *testing.T) {
	gw := newGateway(testConfig(), testRegistry(t))
	c := testClient("alice-id")

	gw.attach("AAAAAA", c)
	gw.attach("BBBBBB", c)

	gw.broadcast("AAAAAA", ErrorMessage{Type: "error"})
	if got := drain(c); len(got) != 0 {
		t.Errorf("client still receives from its old room: %d messages", len(got))
	}

	gw.broadcast("BBBBBB", ErrorMessage{Type: "error"})
	if got := drain(c); len(got) != 1 {
		t.Errorf("client got %d messages from its room, want 1", len(got))
	}

	// The old fanout set must not linger once its last client moves out.
	gw.mu.Lock()
	_, stale := gw.rooms["AAAAAA"]
	gw.mu.Unlock()
	if stale {
		t.Error("empty fanout set for the old room was kept")
	}
}

func TestGatewayDetach(t *testing.T) {
	gw := newGateway(testConfig(), testRegistry(t))
	c := testClient("alice-id")
	other := testClient("bob-id")

	gw.attach("AAAAAA", c)
	gw.attach("AAAAAA", other)
	gw.detach("AAAAAA", c)

	gw.broadcast("AAAAAA", ErrorMessage{Type: "error"})
	if got := drain(c); len(got) != 0 {
		t.Errorf("detached client got %d messages", len(got))
	}
	if got := drain(other); len(got) != 1 {
		t.Errorf("remaining client got %d messages, want 1", len(got))
	}
}
