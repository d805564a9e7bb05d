package main

import (
    "encoding/json"
    "log"
    "os"
    "time"

    flag "github.com/spf13/pflag"
)

type Args struct {
    // IP on which the server will accept connections. Defaults to 0.0.0.0
    IP string
    // Port on which the server will accept connections. Defaults to 13666
    Port int
    // IdleTimeout after which a quiet connection is disconnected. Defaults to 1m
    IdleTimeout time.Duration
    // ReadSize allocated for gorilla-ws's buffer when a new connection is accepted. Defaults to 1024
    ReadSize int
    // WriteSize allocated for gorilla-ws's buffer when a new connection is accepted. Defaults to 1024
    WriteSize int
    // IgnoreOrigin and accept connections from any source (mostly for development)
    IgnoreOrigin bool
    // Debug enables the room's debug logging
    Debug bool
}

// parseArgs either from the command line or from the supplied JSON file.
//
// If a JSON file is supplied, it's used as the default parameters, which may be overriden by CLI-supplied arguments.
func parseArgs() Args {
    var args Args
    var confFile string
    const defaultIP = "0.0.0.0"
    const defaultPort = 13666
    const defaultIdleTimeout = time.Minute
    const defaultReadSize = 1024
    const defaultWriteSize = 1024
    const defaultIgnoreOrigin = true

    flag.StringVar(&args.IP, "IP", defaultIP, "IP on which the server will accept connections")
    flag.IntVar(&args.Port, "Port", defaultPort, "Port on which the server will accept connections")
    flag.DurationVar(&args.IdleTimeout, "IdleTimeout", defaultIdleTimeout, "How long a connection may stay idle before being disconnected")
    flag.IntVar(&args.ReadSize, "ReadSize", defaultReadSize, "ReadSize allocated for gorilla-ws's buffer when a new connection is accepted")
    flag.IntVar(&args.WriteSize, "WriteSize", defaultWriteSize, "WriteSize allocated for gorilla-ws's buffer when a new connection is accepted")
    flag.BoolVar(&args.IgnoreOrigin, "IgnoreOrigin", defaultIgnoreOrigin, "IgnoreOrigin and accept connections from any source (mostly for development)")
    flag.BoolVar(&args.Debug, "Debug", false, "Log the room's debug messages")
    flag.StringVar(&confFile, "confFile", "", "JSON file with the configuration options. May be overriden by other CLI arguments")
    flag.Parse()

    if len(confFile) != 0 {
        var jsonArgs Args

        f, err := os.Open(confFile)
        if err != nil {
            log.Fatalf("Couldn't open the configuration file '%+v': %+v", confFile, err)
        }
        defer f.Close()

        dec := json.NewDecoder(f)
        err = dec.Decode(&jsonArgs)
        if err != nil {
            log.Fatalf("Couldn't decode the configuration file '%+v': %+v", confFile, err)
        }

        // Any flag explicitly set on the command line wins over the JSON file
        if flag.CommandLine.Changed("IP") {
            log.Printf("Overriding JSON's IP (%+v) with CLI's value (%+v)", jsonArgs.IP, args.IP)
            jsonArgs.IP = args.IP
        }
        if flag.CommandLine.Changed("Port") {
            log.Printf("Overriding JSON's Port (%+v) with CLI's value (%+v)", jsonArgs.Port, args.Port)
            jsonArgs.Port = args.Port
        }
        if flag.CommandLine.Changed("IdleTimeout") {
            log.Printf("Overriding JSON's IdleTimeout (%+v) with CLI's value (%+v)", jsonArgs.IdleTimeout, args.IdleTimeout)
            jsonArgs.IdleTimeout = args.IdleTimeout
        }
        if flag.CommandLine.Changed("ReadSize") {
            log.Printf("Overriding JSON's ReadSize (%+v) with CLI's value (%+v)", jsonArgs.ReadSize, args.ReadSize)
            jsonArgs.ReadSize = args.ReadSize
        }
        if flag.CommandLine.Changed("WriteSize") {
            log.Printf("Overriding JSON's WriteSize (%+v) with CLI's value (%+v)", jsonArgs.WriteSize, args.WriteSize)
            jsonArgs.WriteSize = args.WriteSize
        }
        if flag.CommandLine.Changed("IgnoreOrigin") {
            log.Printf("Overriding JSON's IgnoreOrigin (%+v) with CLI's value (%+v)", jsonArgs.IgnoreOrigin, args.IgnoreOrigin)
            jsonArgs.IgnoreOrigin = args.IgnoreOrigin
        }
        if flag.CommandLine.Changed("Debug") {
            log.Printf("Overriding JSON's Debug (%+v) with CLI's value (%+v)", jsonArgs.Debug, args.Debug)
            jsonArgs.Debug = args.Debug
        }

        args = jsonArgs
    }

    if args.Port < 1 || args.Port > 65535 {
        log.Fatalf("Invalid Port: %d (must be in 1-65535)", args.Port)
    }
    if args.IdleTimeout <= 0 {
        log.Fatalf("Invalid IdleTimeout: %v (must be positive)", args.IdleTimeout)
    }

    log.Printf("Starting server with options:")
    log.Printf("  - IP: %+v", args.IP)
    log.Printf("  - Port: %+v", args.Port)
    log.Printf("  - IdleTimeout: %+v", args.IdleTimeout)
    log.Printf("  - ReadSize: %+v", args.ReadSize)
    log.Printf("  - WriteSize: %+v", args.WriteSize)
    log.Printf("  - IgnoreOrigin: %+v", args.IgnoreOrigin)
    log.Printf("  - Debug: %+v", args.Debug)

    return args
}
