// Command crackserver accepts line-protocol crack/crypt requests over
// TCP, serving each connection from a shared dictionary of candidate
// plain text words.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/arbur/crackserver/internal/adminapi"
	"github.com/arbur/crackserver/internal/diagnostic"
	"github.com/arbur/crackserver/internal/dictionary"
	"github.com/arbur/crackserver/internal/listener"
	"github.com/arbur/crackserver/internal/logging"
	"github.com/arbur/crackserver/internal/reporter"
	"github.com/arbur/crackserver/internal/serverconfig"
	"github.com/arbur/crackserver/internal/stats"

	"github.com/klauspost/cpuid/v2"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, status, err := serverconfig.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return int(status)
	}

	logger, rotatorWriter, closeLog, err := logging.Init(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "crackserver: unable to open log file %q: %v\n", cfg.LogFile, err)
		return int(serverconfig.UnableOpenError)
	}
	defer closeLog()
	if !logging.SetLevel(cfg.DebugLevel) {
		logger.Warnf("unrecognized --debuglevel %q, leaving at info", cfg.DebugLevel)
	}
	logger.Infof("cpu: %s (%d logical cores, AES-NI=%v)",
		cpuid.CPU.BrandName, cpuid.CPU.LogicalCores, cpuid.CPU.Supports(cpuid.AESNI))

	dict, err := dictionary.Load(cfg.Dictionary)
	if err != nil {
		if err == dictionary.ErrEmpty {
			fmt.Fprintln(os.Stderr, serverconfig.NoWordsErrorMessage)
			return int(serverconfig.NoWordsError)
		}
		fmt.Fprintln(os.Stderr, serverconfig.DictionaryErrorMessage(cfg.Dictionary))
		return int(serverconfig.DictFileError)
	}

	out := diagnostic.NewStderr()
	if rotatorWriter != nil {
		out.AddWriter(rotatorWriter)
	}
	reg := stats.New(prometheus.DefaultRegisterer)
	rep := reporter.New(reg, out)

	ln, err := listener.Bind(cfg.Port, cfg.MaxConn, dict, reg, out)
	if err != nil {
		fmt.Fprintln(os.Stderr, serverconfig.UnableListenErrorMessage)
		return int(serverconfig.UnableOpenError)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.AdminAddr != "" {
		admin, err := adminapi.Start(cfg.AdminAddr, reg, rep)
		if err != nil {
			logger.Errorf("admin HTTP server failed to bind %s: %v", cfg.AdminAddr, err)
		} else {
			logger.Infof("admin HTTP server listening on %s", admin.Addr())
			defer admin.Shutdown(context.Background())
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	go rep.Run(ctx)

	if err := ln.Serve(ctx); err != nil {
		logger.Errorf("listener stopped: %v", err)
	}
	return int(serverconfig.OK)
}
