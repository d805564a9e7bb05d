package main

import (
    "chatrelay"
    "encoding/json"
    "fmt"
    "io"
    "log"
    "net/http"
    "net/url"
    "path"
)

type server struct {
    // The server's HTTP server
    httpServer *http.Server
    // The chat room every connection gets attached to
    room chatrelay.Room
}

// ServeHTTP is called by Go's http package whenever a new HTTP request arrives
func (s *server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
    uri := cleanURL(req.URL)
    log.Printf("%s - %s - %s", req.RemoteAddr, req.Method, uri)

    switch uri {
    case "", "chat_page":
        serveChatPage(w)
    case "users":
        data, err := json.Marshal(s.room.Users(nil))
        if err != nil {
            httpTextReply(http.StatusInternalServerError, "Couldn't list the users", w)
            log.Printf("%s - %s - %s [500]", req.RemoteAddr, req.Method, uri)
            return
        }
        w.Header().Set("Content-Type", "application/json")
        w.WriteHeader(http.StatusOK)
        w.Write(data)
    case "chat":
        // Upgrade to websocket
        conn, err := newConn(w, req)
        if err != nil {
            httpTextReply(http.StatusInternalServerError, "Couldn't upgrade the connection", w)
            log.Printf("%s - %s - %s [500] %+v", req.RemoteAddr, req.Method, uri, err)
            return
        }

        // On success, the upgraded request is pumped by this handler's
        // goroutine until the remote endpoint goes away. The user
        // registers a nickname over the connection itself, with a
        // "join" event.
        err = s.room.AttachAndWait(conn)
        if err != nil {
            // Can't do HTTP anymore as the connection was upgraded to a websocket
            conn.Close()
            log.Printf("%s - %s - %s - Couldn't attach to the room: %+v", req.RemoteAddr, req.Method, uri, err)
        }
    default:
        httpTextReply(http.StatusNotFound, "404 - Nothing to see here...", w)
        log.Printf("%s - %s - %s [404]", req.RemoteAddr, req.Method, uri)
    }
}

// cleanURL so everything is properly escaped/encoded and so it may be split into each of its components.
//
// Use `url.Unescape` to retrieve the unescaped path, if so desired.
func cleanURL(uri *url.URL) string {
    // Normalize and strip the URL from its leading prefix (and slash)
    resUrl := path.Clean(uri.EscapedPath())
    if len(resUrl) > 0 && resUrl[0] == '/' {
        resUrl = resUrl[1:]
    } else if len(resUrl) == 1 && resUrl[0] == '.' {
        // Clean converts an empty path into a single "."
        resUrl = ""
    }

    return resUrl
}

// httpTextReply send a simple HTTP response as a plain text.
func httpTextReply(status int, msg string, w http.ResponseWriter) {
    w.Header().Set("Content-Type", "text/plain")
    w.WriteHeader(status)

    for data := []byte(msg); len(data) > 0; {
        n, err := w.Write(data)
        if err != nil {
            log.Printf("Failed to send %d: %+v", err, status)
            return
        }
        data = data[n:]
    }
}

// Close the running web server and clean up resources
func (s *server) Close() error {
    if s.httpServer != nil {
        s.httpServer.Close()
        s.httpServer = nil
    }
    if s.room != nil {
        s.room.Close()
        s.room = nil
    }

    return nil
}

// runWeb server into a goroutine
func runWeb(args Args) io.Closer {
    var srv server

    srv.httpServer = &http.Server {
        Addr: fmt.Sprintf("%s:%d", args.IP, args.Port),
        Handler: &srv,
    }

    conf := chatrelay.GetDefaultRoomConf()
    conf.IdleTimeout = args.IdleTimeout
    conf.Logger = log.Default()
    conf.DebugLog = args.Debug
    srv.room = chatrelay.NewRoomConf(conf)

    setUpgrader(args)

    go func() {
        log.Printf("Waiting...")
        srv.httpServer.ListenAndServe()
    } ()

    return &srv
}
