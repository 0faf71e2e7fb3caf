package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/flga/mcpng"
)

func run(ctx context.Context, log *slog.Logger, numThreads, netPort int, queueArgs []string) error {
	networked := netPort != 0
	sched := mcpng.NewScheduler(numThreads, networked)

	if networked {
		if err := startNetServer(ctx, sched, log, netPort); err != nil {
			return err
		}
	}

	for _, arg := range queueArgs {
		if err := processQueueArg(arg, sched, log); err != nil {
			log.Error("failed to process queue", slog.String("arg", arg), slog.Any("err", err))
		}
	}

	if !networked {
		sched.Stop()
		sched.Wait()
		return nil
	}

	<-ctx.Done()
	sched.Stop()
	sched.Wait()
	return nil
}

func processQueueArg(arg string, sched *mcpng.Scheduler, log *slog.Logger) error {
	if arg == "-" || arg == "--" {
		return processQueueStream(os.Stdin, sched, log)
	}
	f, err := os.Open(arg)
	if err != nil {
		return err
	}
	defer f.Close()
	return processQueueStream(f, sched, log)
}

func startNetServer(ctx context.Context, sched *mcpng.Scheduler, log *slog.Logger, port int) error {
	ln, err := net.Listen("tcp", ":"+strconv.Itoa(port))
	if err != nil {
		return fmt.Errorf("cannot listen on port %d: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	srv := newJSONServer(sched, log)
	go func() {
		if err := srv.serve(ln); err != nil {
			log.Info("json server stopped", slog.Any("err", err))
		}
	}()

	log.Info("port is open for incoming connections", slog.Int("port", port))
	return nil
}

// parsedArgs is the result of scanning the process's argument vector for
// -threads/-net/-log-level and queue-file positionals: left to right, a
// single pass, flags and positional queue paths freely interleaved.
type parsedArgs struct {
	threads  int
	netPort  int
	logLevel string
	queue    []string
}

// parseArgs scans args (os.Args[1:]) in one pass: any index may hold
// "-threads N", "-net PORT", "-log-level LEVEL", "-", "--", or a bare
// queue-file path, in any order. An unparseable flag value or an
// unrecognized "-xxx" token is reported to stderr and parsing continues
// with the remaining arguments rather than aborting.
func parseArgs(args []string, stderr io.Writer) parsedArgs {
	p := parsedArgs{threads: 4, netPort: 0, logLevel: "info"}

	for i := 0; i < len(args); i++ {
		a := args[i]
		if !strings.HasPrefix(a, "-") {
			p.queue = append(p.queue, a)
			continue
		}

		switch {
		case strings.EqualFold(a, "-threads") && i < len(args)-1:
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				fmt.Fprintf(stderr, "Cannot parse parameter for thread count: %s\n", args[i+1])
			} else {
				p.threads = v
			}
			i++
		case strings.EqualFold(a, "-net") && i < len(args)-1:
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				fmt.Fprintf(stderr, "Cannot parse port number from parameter %s\n", args[i+1])
			} else {
				p.netPort = v
			}
			i++
		case strings.EqualFold(a, "-log-level") && i < len(args)-1:
			p.logLevel = args[i+1]
			i++
		case a == "-" || a == "--":
			p.queue = append(p.queue, a)
		default:
			fmt.Fprintf(stderr, "Cannot process parameter: %s\n", a)
		}
	}

	return p
}

func main() {
	parsed := parseArgs(os.Args[1:], os.Stderr)

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(parsed.logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q, defaulting to info\n", parsed.logLevel)
		lvl = slog.LevelInfo
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigchan := make(chan os.Signal, 1)
	signal.Notify(sigchan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigchan
		cancel()
	}()

	if err := run(ctx, log, parsed.threads, parsed.netPort, parsed.queue); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
