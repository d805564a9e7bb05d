// A line-oriented terminal client for the chat relay.
//
// The client connects to the server, registers the requested nickname
// and then reads chat lines from stdin, rendering everything the
// server broadcasts. It's intentionally thin: every rule about
// nicknames, messages and timeouts lives on the server, and the client
// just shows the outcome.
package main

import (
    "bufio"
    "fmt"
    "log"
    "os"

    "chatrelay"
    gows "github.com/gorilla/websocket"
    flag "github.com/spf13/pflag"
    "golang.org/x/term"
)

const prompt = "Talk to me > "

// render a server event as a terminal line.
func render(ev chatrelay.Event) {
    switch ev.Name {
    case chatrelay.EventUserJoined:
        fmt.Printf("* %s joined\n", ev.Nickname)
    case chatrelay.EventUserSentMessage:
        fmt.Printf("%s: %s\n", ev.Nickname, ev.Content)
    case chatrelay.EventUserTimedOut:
        fmt.Printf("* %s timed out\n", ev.Nickname)
    case chatrelay.EventUserDisconnected:
        fmt.Printf("* %s disconnected\n", ev.Nickname)
    }
}

// recvLoop read server events until the connection goes away.
//
// Join rejections and the idle-timeout notice end the client, as
// there's nothing else it could do about either.
func recvLoop(conn *gows.Conn) {
    for {
        typ, data, err := conn.ReadMessage()
        if err != nil {
            fmt.Println("Connection closed by the server")
            os.Exit(1)
        } else if typ != gows.TextMessage {
            continue
        }

        ev, err := chatrelay.DecodeEvent(data)
        if err != nil {
            continue
        }

        switch ev.Name {
        case chatrelay.EventNicknameTaken:
            fmt.Println("That nickname is already registered, pick another one")
            os.Exit(1)
        case chatrelay.EventInvalidNickname:
            fmt.Println("That nickname is not valid, pick another one")
            os.Exit(1)
        case chatrelay.EventTimedOut:
            fmt.Println("You were disconnected for being idle")
            os.Exit(1)
        default:
            render(ev)
        }
    }
}

func main() {
    var host string
    var port int
    var nickname string

    log.SetFlags(0)

    flag.StringVar(&host, "host", "localhost", "Address of the chat server")
    flag.IntVar(&port, "port", 13666, "Port of the chat server")
    flag.StringVar(&nickname, "nickname", "", "Nickname to register on the room")
    flag.Parse()

    if port < 1 || port > 65535 {
        log.Fatalf("Invalid --port: %d (must be in 1-65535)", port)
    }
    if !chatrelay.IsNicknameValid(nickname) {
        log.Fatalf("A non-empty --nickname is required")
    }

    uri := fmt.Sprintf("ws://%s:%d/chat", host, port)
    conn, _, err := gows.DefaultDialer.Dial(uri, nil)
    if err != nil {
        log.Fatalf("Couldn't connect to %s: %+v", uri, err)
    }
    defer conn.Close()

    join, err := chatrelay.Event { Name: chatrelay.EventJoin, Nickname: nickname }.Encode()
    if err != nil {
        log.Fatalf("Couldn't encode the join event: %+v", err)
    }
    err = conn.WriteMessage(gows.TextMessage, join)
    if err != nil {
        log.Fatalf("Couldn't join: %+v", err)
    }

    go recvLoop(conn)

    // Only bother with a prompt on an actual terminal, so piped input
    // doesn't get prompts interleaved into the output.
    interactive := term.IsTerminal(int(os.Stdin.Fd()))

    scanner := bufio.NewScanner(os.Stdin)
    for {
        if interactive {
            fmt.Print(prompt)
        }
        if !scanner.Scan() {
            break
        }

        line := scanner.Text()
        if !chatrelay.IsMessageValid(line) {
            // The server would drop it anyway.
            continue
        }

        msg, err := chatrelay.Event {
            Name: chatrelay.EventSendMessage,
            Content: line,
        }.Encode()
        if err != nil {
            log.Fatalf("Couldn't encode the message: %+v", err)
        }

        err = conn.WriteMessage(gows.TextMessage, msg)
        if err != nil {
            log.Fatalf("Couldn't send the message: %+v", err)
        }
    }

    fmt.Println("Exiting")
}
