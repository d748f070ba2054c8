package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/nats-io/nats.go"

	"github.com/fystack/lotofacil-generator/pkg/common/constant"
	"github.com/fystack/lotofacil-generator/pkg/common/logger"
	"github.com/fystack/lotofacil-generator/pkg/events"
)

type CLI struct {
	NATSURL string `help:"NATS server URL." default:"nats://127.0.0.1:4222" name:"nats-url" env:"NATS_URL"`
	Subject string `help:"Subject to subscribe to." default:"${subject}" name:"subject"`
	LogFile string `help:"Also append events to this file." default:"" name:"log"`
	Debug   bool   `help:"Enable debug logs." name:"debug"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("natsprinter"),
		kong.Description("Print lotofácil generator events published on NATS."),
		kong.UsageOnError(),
		kong.Vars{"subject": constant.DefaultSubject},
	)
	ctx.FatalIfErrorf(cli.Run())
}

func (c *CLI) Run() error {
	level := logger.ParseLevel("info")
	if c.Debug {
		level = logger.ParseLevel("debug")
	}
	logger.Init(&logger.Options{Level: level, TimeFormat: time.RFC3339})

	out := io.Writer(os.Stdout)
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		out = io.MultiWriter(os.Stdout, f)
	}

	nc, err := nats.Connect(c.NATSURL)
	if err != nil {
		return fmt.Errorf("nats connect: %w", err)
	}
	defer nc.Close()

	sub, err := nc.Subscribe(c.Subject, func(msg *nats.Msg) {
		line, err := formatEvent(msg.Data)
		if err != nil {
			logger.Error("Decode event failed", "subject", msg.Subject, "err", err)
			return
		}
		fmt.Fprintf(out, "[%s] %s\n", msg.Subject, line)
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}
	defer func() { _ = sub.Unsubscribe() }()
	logger.Info("Subscribed", "subject", c.Subject, "url", c.NATSURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}

// formatEvent renders one generator event as a single line.
func formatEvent(data []byte) (string, error) {
	var raw struct {
		Type      string          `json:"type"`
		Data      json.RawMessage `json:"data"`
		Timestamp int64           `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", err
	}
	ts := time.Unix(raw.Timestamp, 0).UTC().Format(time.RFC3339)

	if raw.Type != events.EventTypeBatch {
		return fmt.Sprintf("%s %s %s", ts, raw.Type, raw.Data), nil
	}
	var batch events.BatchEvent
	if err := json.Unmarshal(raw.Data, &batch); err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s batch=%s produced=%d/%d attempts=%d window=%d",
		ts, batch.BatchID, batch.Produced, batch.Requested, batch.Attempts, batch.Window)
	if batch.UserID != "" {
		line += " user=" + batch.UserID
	}
	for _, g := range batch.Games {
		line += "\n  " + g.String()
	}
	return line, nil
}
