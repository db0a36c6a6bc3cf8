package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hyun7520/RAG-Complaint-2nd/internal/e2etest"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/errors"
	"github.com/hyun7520/RAG-Complaint-2nd/internal/logging"
)

// TestPages loads the public pages and checks they render.
func TestPages(client *e2etest.Client) error {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()

	if err := client.WaitForReady(ctx, "/api/healthy"); err != nil {
		return errors.Wrap(err, "health check")
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return errors.Wrap(err, "load front page")
	}
	if doc.Find("a[href='/applicant/login']").Length() != 1 {
		return errors.New("applicant entry link missing from front page")
	}

	if doc, err = client.GetDoc(ctx, "/agent/login"); err != nil {
		return errors.Wrap(err, "load agent login page")
	}
	if doc.Find("form[action='/agent/login']").Length() != 1 {
		return errors.New("agent login form missing")
	}

	if doc, err = client.GetDoc(ctx, "/applicant/login"); err != nil {
		return errors.Wrap(err, "load applicant login page")
	}
	if doc.Find("a[href^='/applicant/login/']").Length() == 0 {
		return errors.New("social login links missing")
	}

	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		url      = "https://" + hostname
		client   *e2etest.Client
		err      error
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if client, err = e2etest.NewClient(url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error creating client", errors.SlogError(err))
		os.Exit(1)
	}
	if err = TestPages(client); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error testing pages", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
