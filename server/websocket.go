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

package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/botobag/artemis/graphql"
	"github.com/botobag/artemis/graphql/ast"
	"github.com/botobag/artemis/graphql/executor"
	"github.com/botobag/artemis/graphql/handler"
	"github.com/botobag/artemis/iterator"
	"github.com/botobag/rendezvous/subscription"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
)

// transportWSProtocol is the WebSocket sub-protocol of GraphQL over WebSocket.
const transportWSProtocol = "graphql-transport-ws"

// Message types of graphql-transport-ws
const (
	messageConnectionInit = "connection_init"
	messageConnectionAck  = "connection_ack"
	messagePing           = "ping"
	messagePong           = "pong"
	messageSubscribe      = "subscribe"
	messageNext           = "next"
	messageError          = "error"
	messageComplete       = "complete"
)

// Close codes of graphql-transport-ws
const (
	closeBadRequest          = 4400
	closeUnauthorized        = 4401
	closeInitTimeout         = 4408
	closeSubscriberExists    = 4409
	closeTooManyInitRequests = 4429
)

// connectionInitTimeout bounds the wait for connection_init after the upgrade.
var connectionInitTimeout = 3 * time.Second

var frameCodec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// wsMessage is a frame of graphql-transport-ws.
type wsMessage struct {
	ID      string              `json:"id,omitempty"`
	Type    string              `json:"type"`
	Payload jsoniter.RawMessage `json:"payload,omitempty"`
}

// subscribePayload is the payload of a subscribe message.
type subscribePayload struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// wsConnection is one graphql-transport-ws connection. Writes are serialized; each operation runs on
// its own goroutine.
type wsConnection struct {
	handler *graphqlHandler
	conn    *websocket.Conn
	locale  string

	writeMutex sync.Mutex

	mutex        sync.Mutex
	acknowledged bool
	operations   map[string]context.CancelFunc
	wg           sync.WaitGroup
}

func (h *graphqlHandler) serveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has replied with an HTTP error.
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	c := &wsConnection{
		handler:    h,
		conn:       conn,
		locale:     locale(r),
		operations: map[string]context.CancelFunc{},
	}

	if conn.Subprotocol() != transportWSProtocol {
		c.close(websocket.CloseProtocolError, "Unsupported sub-protocol")
		return
	}

	// Messages above the limit close the connection with CloseMessageTooBig.
	conn.SetReadLimit(h.maxMessageSize)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	h.logger.Debug("websocket connected", "request_id", RequestIDFromContext(ctx))
	c.serve(ctx)
	cancel()
	c.wg.Wait()
	conn.Close()
	h.logger.Debug("websocket disconnected", "request_id", RequestIDFromContext(ctx))
}

// serve reads messages until the connection is closed.
func (c *wsConnection) serve(ctx context.Context) {
	initTimer := time.AfterFunc(connectionInitTimeout, func() {
		c.mutex.Lock()
		acknowledged := c.acknowledged
		c.mutex.Unlock()
		if !acknowledged {
			c.close(closeInitTimeout, "Connection initialisation timeout")
		}
	})
	defer initTimer.Stop()

	// Unblock ReadMessage when the context is cancelled (e.g., on server shutdown).
	stop := context.AfterFunc(ctx, func() {
		c.close(websocket.CloseGoingAway, "Server shutting down")
	})
	defer stop()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg wsMessage
		if err := frameCodec.Unmarshal(data, &msg); err != nil || msg.Type == "" {
			c.close(closeBadRequest, "Invalid message received")
			return
		}

		if !c.handle(ctx, &msg) {
			return
		}
	}
}

// handle processes one message. It returns false if the connection has been closed.
func (c *wsConnection) handle(ctx context.Context, msg *wsMessage) bool {
	switch msg.Type {
	case messageConnectionInit:
		c.mutex.Lock()
		acknowledged := c.acknowledged
		c.acknowledged = true
		c.mutex.Unlock()

		if acknowledged {
			c.close(closeTooManyInitRequests, "Too many initialisation requests")
			return false
		}
		return c.write(&wsMessage{Type: messageConnectionAck}) == nil

	case messagePing:
		return c.write(&wsMessage{Type: messagePong}) == nil

	case messagePong:
		return true

	case messageSubscribe:
		return c.subscribe(ctx, msg)

	case messageComplete:
		c.mutex.Lock()
		cancel := c.operations[msg.ID]
		delete(c.operations, msg.ID)
		c.mutex.Unlock()
		if cancel != nil {
			cancel()
		}
		return true
	}

	c.close(closeBadRequest, fmt.Sprintf("Invalid message type %q", msg.Type))
	return false
}

func (c *wsConnection) subscribe(ctx context.Context, msg *wsMessage) bool {
	if msg.ID == "" {
		c.close(closeBadRequest, "Subscribe message requires an id")
		return false
	}

	var payload subscribePayload
	if err := frameCodec.Unmarshal(msg.Payload, &payload); err != nil {
		c.close(closeBadRequest, "Invalid subscribe payload")
		return false
	}

	c.mutex.Lock()
	if !c.acknowledged {
		c.mutex.Unlock()
		c.close(closeUnauthorized, "Unauthorized")
		return false
	}
	if _, exists := c.operations[msg.ID]; exists {
		c.mutex.Unlock()
		c.close(closeSubscriberExists, fmt.Sprintf("Subscriber for %s already exists", msg.ID))
		return false
	}
	opCtx, cancel := context.WithCancel(ctx)
	c.operations[msg.ID] = cancel
	c.wg.Add(1)
	c.mutex.Unlock()

	go func() {
		defer c.wg.Done()
		defer c.finish(msg.ID)
		c.run(opCtx, msg.ID, &payload)
	}()
	return true
}

// finish releases the operation id; it may be reused afterwards.
func (c *wsConnection) finish(id string) {
	c.mutex.Lock()
	cancel := c.operations[id]
	delete(c.operations, id)
	c.mutex.Unlock()
	if cancel != nil {
		cancel()
	}
}

// run executes an operation and sends its results.
func (c *wsConnection) run(ctx context.Context, id string, payload *subscribePayload) {
	h := c.handler
	parsedReq := &handler.HTTPRequest{
		Query:         payload.Query,
		OperationName: payload.OperationName,
		Variables:     normalizeVariables(payload.Variables),
	}

	operation, err := prepareOperation(h, nil, parsedReq)
	if err != nil {
		c.sendError(ctx, id, prepareErrors(err))
		return
	}

	request := &handler.Request{
		Ctx:       ctx,
		Operation: operation,
		ExecuteOpts: []executor.ExecuteOption{
			executor.VariableValues(parsedReq.Variables),
		},
	}

	if operation.Type() != ast.OperationTypeSubscription {
		request.ExecuteOpts = h.executeOptions(request, c.locale)
		result := h.Serve(request)
		h.observe(operation.Type(), result)
		if c.sendNext(ctx, id, result) {
			c.sendComplete(ctx, id)
		}
		return
	}

	stream, result := subscription.Subscribe(ctx, operation, func() []executor.ExecuteOption {
		return h.executeOptions(request, c.locale)
	})
	if result != nil {
		h.observe(ast.OperationTypeSubscription, result)
		c.sendError(ctx, id, result.Errors)
		return
	}
	defer stream.Close()

	for {
		result, err := stream.Next(ctx)
		if err == iterator.Done {
			c.sendComplete(ctx, id)
			return
		} else if err != nil {
			if !errors.Is(err, context.Canceled) {
				h.logger.Warn("subscription failed", "id", id, "error", err)
			}
			return
		}

		h.observe(ast.OperationTypeSubscription, result)
		if !c.sendNext(ctx, id, result) {
			return
		}
	}
}

func (c *wsConnection) sendNext(ctx context.Context, id string, result *executor.ExecutionResult) bool {
	data, err := result.MarshalJSON()
	if err != nil {
		c.handler.logger.Error("marshal result", "id", id, "error", err)
		return false
	}
	return c.send(ctx, &wsMessage{ID: id, Type: messageNext, Payload: data})
}

func (c *wsConnection) sendError(ctx context.Context, id string, errs graphql.Errors) bool {
	data, err := errs.MarshalJSON()
	if err != nil {
		c.handler.logger.Error("marshal errors", "id", id, "error", err)
		return false
	}
	return c.send(ctx, &wsMessage{ID: id, Type: messageError, Payload: data})
}

func (c *wsConnection) sendComplete(ctx context.Context, id string) bool {
	return c.send(ctx, &wsMessage{ID: id, Type: messageComplete})
}

// send writes a message for an operation unless the client has completed it.
func (c *wsConnection) send(ctx context.Context, msg *wsMessage) bool {
	if ctx.Err() != nil {
		return false
	}
	return c.write(msg) == nil
}

func (c *wsConnection) write(msg *wsMessage) error {
	data, err := frameCodec.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// close sends a close frame and closes the underlying connection, which stops serve.
func (c *wsConnection) close(code int, reason string) {
	c.writeMutex.Lock()
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(time.Second))
	c.writeMutex.Unlock()
	c.conn.Close()
}
