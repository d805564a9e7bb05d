package main

import (
    "log"
    "os"
    "os/signal"
    "syscall"
)

// startServer and block until the process is asked to stop.
func startServer() {
    args := parseArgs()

    stop := make(chan os.Signal, 1)
    signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

    closer := runWeb(args)

    <-stop
    log.Printf("Shutting down...")
    closer.Close()
}

func main() {
    log.SetFlags(log.Lshortfile | log.Ldate | log.Ltime)

    defer func() {
        if r := recover(); r != nil {
            log.Fatalf("Application panicked! %+v", r)
        }
    } ()

    startServer()
}
