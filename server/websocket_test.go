/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package server_test

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type wsMessage struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

var _ = Describe("WebSocket", func() {
	var f *fixture

	BeforeEach(func() {
		f = newFixture()
	})

	AfterEach(func() {
		f.Close()
	})

	dial := func(path string) *websocket.Conn {
		dialer := websocket.Dialer{
			Subprotocols:     []string{"graphql-transport-ws"},
			HandshakeTimeout: 5 * time.Second,
		}
		conn, resp, err := dialer.Dial("ws"+strings.TrimPrefix(f.server.URL, "http")+path, nil)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(resp.Header.Get("Sec-WebSocket-Protocol")).Should(Equal("graphql-transport-ws"))
		return conn
	}

	send := func(conn *websocket.Conn, msg string) {
		ExpectWithOffset(1, conn.WriteMessage(websocket.TextMessage, []byte(msg))).Should(Succeed())
	}

	receive := func(conn *websocket.Conn) wsMessage {
		ExpectWithOffset(1, conn.SetReadDeadline(time.Now().Add(5*time.Second))).Should(Succeed())
		var msg wsMessage
		ExpectWithOffset(1, conn.ReadJSON(&msg)).Should(Succeed())
		return msg
	}

	// closeCode waits for the server to close conn and returns the close code.
	closeCode := func(conn *websocket.Conn) int {
		ExpectWithOffset(1, conn.SetReadDeadline(time.Now().Add(5*time.Second))).Should(Succeed())
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				closeErr, ok := err.(*websocket.CloseError)
				ExpectWithOffset(1, ok).Should(BeTrue(), "unexpected error: %v", err)
				return closeErr.Code
			}
		}
	}

	connect := func(path string) *websocket.Conn {
		conn := dial(path)
		send(conn, `{"type": "connection_init"}`)
		ExpectWithOffset(1, receive(conn).Type).Should(Equal("connection_ack"))
		return conn
	}

	It("answers pings", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"type": "ping"}`)
		Expect(receive(conn).Type).Should(Equal("pong"))
	})

	It("closes the connection on a message above the body size limit", func() {
		conn := connect("/graphql")
		defer conn.Close()

		query := "{ users { id " + strings.Repeat(" ", 8192) + "} }"
		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "`+query+`"}}`)
		Expect(closeCode(conn)).Should(Equal(websocket.CloseMessageTooBig))
	})

	It("executes queries and mutations", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {
			"query": "mutation ($name: String!) { addUser(data: {username: $name, email: \"al@example.com\"}) { id username } }",
			"variables": {"name": "al"}
		}}`)

		msg := receive(conn)
		Expect(msg.ID).Should(Equal("1"))
		Expect(msg.Type).Should(Equal("next"))
		Expect(string(msg.Payload)).Should(MatchJSON(`{"data": {"addUser": {"id": "1", "username": "al"}}}`))

		Expect(receive(conn)).Should(Equal(wsMessage{ID: "1", Type: "complete"}))
		Expect(f.store.Users.Len()).Should(Equal(1))
	})

	It("coerces integral variables to Int", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {
			"query": "mutation ($user: Int) { addEvent(data: {title: \"a\", desc: \"b\", date: \"c\", user_id: $user}) { user_id } }",
			"variables": {"user": 42}
		}}`)

		msg := receive(conn)
		Expect(string(msg.Payload)).Should(MatchJSON(`{"data": {"addEvent": {"user_id": 42}}}`))
	})

	It("streams subscriptions until completed by the client", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"id": "s", "type": "subscribe", "payload": {"query": "subscription { userCreated { username } }"}}`)
		Eventually(func() int {
			return f.bus.Subscribers("userCreated")
		}).Should(Equal(1))

		f.postJSON("/graphql", `{"query": "mutation { addUser(data: {username: \"al\", email: \"al@example.com\"}) { id } }"}`)

		msg := receive(conn)
		Expect(msg.ID).Should(Equal("s"))
		Expect(msg.Type).Should(Equal("next"))
		Expect(string(msg.Payload)).Should(MatchJSON(`{"data": {"userCreated": {"username": "al"}}}`))

		send(conn, `{"id": "s", "type": "complete"}`)
		Eventually(func() int {
			return f.bus.Subscribers("userCreated")
		}).Should(Equal(0))
	})

	It("runs concurrent operations on one connection", func() {
		conn := connect("/demo/graphql")
		defer conn.Close()

		send(conn, `{"id": "a", "type": "subscribe", "payload": {"query": "subscription { countdown(from: 1) }"}}`)
		send(conn, `{"id": "b", "type": "subscribe", "payload": {"query": "subscription { countdown(from: 1) }"}}`)

		received := map[string][]string{}
		for len(received["a"]) < 3 || len(received["b"]) < 3 {
			msg := receive(conn)
			received[msg.ID] = append(received[msg.ID], msg.Type)
		}
		Expect(received).Should(Equal(map[string][]string{
			"a": {"next", "next", "complete"},
			"b": {"next", "next", "complete"},
		}))
	})

	It("delivers demo users to userAdded", func() {
		conn := connect("/demo/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "subscription { userAdded { username } }"}}`)
		Eventually(func() int {
			return f.demoBus.Subscribers("userAdded")
		}).Should(Equal(1))

		f.postJSON("/demo/graphql", `{"query": "mutation { addUser(username: \"al\") { id } }"}`)

		msg := receive(conn)
		Expect(string(msg.Payload)).Should(MatchJSON(`{"data": {"userAdded": {"username": "al"}}}`))
	})

	It("reports invalid operations with an error message", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "{ nickname }"}}`)

		msg := receive(conn)
		Expect(msg.ID).Should(Equal("1"))
		Expect(msg.Type).Should(Equal("error"))

		var errs []map[string]interface{}
		Expect(json.Unmarshal(msg.Payload, &errs)).Should(Succeed())
		Expect(errs).Should(HaveLen(1))
		Expect(errs[0]["message"]).Should(ContainSubstring("nickname"))

		// The id can be reused.
		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "{ users { id } }"}}`)
		Expect(receive(conn).Type).Should(Equal("next"))
	})

	It("closes connections that subscribe before initialisation", func() {
		conn := dial("/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "{ users { id } }"}}`)
		Expect(closeCode(conn)).Should(Equal(4401))
	})

	It("closes connections initialised twice", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"type": "connection_init"}`)
		Expect(closeCode(conn)).Should(Equal(4429))
	})

	It("closes connections that reuse an active id", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "subscription { userCreated { id } }"}}`)
		send(conn, `{"id": "1", "type": "subscribe", "payload": {"query": "subscription { userCreated { id } }"}}`)
		Expect(closeCode(conn)).Should(Equal(4409))

		Eventually(func() int {
			return f.bus.Subscribers("userCreated")
		}).Should(Equal(0))
	})

	It("closes connections on invalid messages", func() {
		conn := connect("/graphql")
		defer conn.Close()

		send(conn, `not json`)
		Expect(closeCode(conn)).Should(Equal(4400))
	})
})
