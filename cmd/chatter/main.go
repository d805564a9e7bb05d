// chatter is a scripted client used to poke at a running chat server:
// it joins with the given nickname and then chats at random intervals.
//
// Since the intervals may be longer than the server's idle timeout,
// this doubles as a crude way to watch timeouts happen from outside.
package main

import (
    "encoding/binary"
    crand "crypto/rand"
    "fmt"
    "github.com/gobwas/ws"
    "github.com/gobwas/ws/wsutil"
    "log"
    mrand "math/rand"
    "net"
    "net/url"
    "os"
    "os/signal"
    "sync"
    "time"

    "chatrelay"
)

func seedIt() {
    var buf [8]byte

    crand.Read(buf[:])
    s, _ := binary.Varint(buf[:])
    mrand.Seed(s)
}

// encodeOrDie an event, as a malformed event here is a programming
// error.
func encodeOrDie(ev chatrelay.Event) []byte {
    data, err := ev.Encode()
    if err != nil {
        log.Fatalf("Couldn't encode %+v: %+v", ev, err)
    }

    return data
}

func main() {
    var buf [1]wsutil.Message

    log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)
    seedIt()

    if len(os.Args) != 2 && len(os.Args) != 3 {
        log.Fatalf("Usage: %s nickname [host:port]", os.Args[0])
    }
    nickname := os.Args[1]
    addr := "localhost:13666"
    if len(os.Args) == 3 {
        addr = os.Args[2]
    }

    uri, err := url.ParseRequestURI(fmt.Sprintf("ws://%s/chat", addr))
    if err != nil {
        log.Fatalf("Couldn't parse the URL: %+v", err)
    }

    conn, err := net.Dial("tcp", addr)
    if err != nil {
        log.Fatalf("Couldn't connect: %+v", err)
    }

    var m sync.Mutex

    onClose := func() {
        if conn != nil {
            m.Lock()
            err := wsutil.WriteClientMessage(conn, ws.OpClose, nil)
            if err != nil {
                log.Printf("Couldn't send close: %+v", err)
            }
            m.Unlock()
            tmp := conn
            conn = nil
            time.Sleep(time.Millisecond)

            tmp.Close()
        }
    }
    defer onClose()

    _, _, err = ws.DefaultDialer.Upgrade(conn, uri)
    if err != nil {
        log.Fatalf("Failed to upgrade: %+v", err)
    }

    intHndlr := make(chan os.Signal, 1)
    signal.Notify(intHndlr, os.Interrupt)

    go func() {
        <-intHndlr
        log.Printf("Exiting...")
        onClose()
    } ()

    m.Lock()
    err = wsutil.WriteClientMessage(conn, ws.OpText,
            encodeOrDie(chatrelay.Event {
                Name: chatrelay.EventJoin,
                Nickname: nickname,
            }))
    m.Unlock()
    if err != nil {
        log.Fatalf("Couldn't join: %+v", err)
    }

    go func() {
        for {
            // Generate a number between 1 and 128 and
            // then convert it to 125ms to 16s
            n := (mrand.Uint32() & 0x7f) + 1
            t := time.Millisecond * time.Duration(n * 125)
            time.Sleep(t)

            s := fmt.Sprintf("%s waited %d to say something", nickname, t)
            data := encodeOrDie(chatrelay.Event {
                Name: chatrelay.EventSendMessage,
                Content: s,
            })

            m.Lock()
            err = wsutil.WriteClientMessage(conn, ws.OpText, data)
            m.Unlock()
            if err != nil {
                log.Fatalf("Couldn't send message: %+v", err)
                return
            }
        }
    } ()

    log.Printf("Waiting...")
    for conn != nil {
        buf, err := wsutil.ReadServerMessage(conn, buf[:])
        if err != nil {
            log.Printf("Couldn't read: %+v", err)
            return
        }

        for i := range buf {
            data := &(buf[i])
            switch data.OpCode {
            case ws.OpClose:
                log.Fatal("Server closed the connection")
                return
            case ws.OpPing:
                m.Lock()
                err = wsutil.WriteClientMessage(conn, ws.OpPong, data.Payload)
                m.Unlock()
                if err != nil {
                    log.Fatalf("Couldn't pong: %+v", err)
                    return
                }
            case ws.OpText:
                ev, err := chatrelay.DecodeEvent(data.Payload)
                if err != nil {
                    log.Printf("Couldn't decode: %+v", err)
                    continue
                }
                log.Printf("event: %s, nickname: %s, content: %s",
                        ev.Name, ev.Nickname, ev.Content)
            }
        }
    }
}
