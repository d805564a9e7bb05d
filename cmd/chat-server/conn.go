package main

import (
    "chatrelay"
    chatrelay_ws "chatrelay/gorilla-ws-conn"
    gows "github.com/gorilla/websocket"
    "net/http"
    "time"
)

// How long the websocket may go without traffic before being pinged.
// This only keeps the socket alive; the room's idle timeout is what
// disconnects quiet users.
const keepAlive = time.Second * 30

// Upgrade a HTTP connection to a Chat Connection.
func newConn(w http.ResponseWriter, req *http.Request) (chatrelay.Conn, error) {
    return chatrelay_ws.NewConn(upgrader, keepAlive, w, req)
}

var upgrader gows.Upgrader

func ignoreOrigin(r *http.Request) bool {
    return true
}

func setUpgrader(args Args) {
    upgrader = gows.Upgrader {
        ReadBufferSize:  args.ReadSize,
        WriteBufferSize: args.WriteSize,
    }
    if args.IgnoreOrigin {
        upgrader.CheckOrigin = ignoreOrigin
    }
}
