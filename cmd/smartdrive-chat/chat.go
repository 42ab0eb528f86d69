package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"smartdrive/internal/ai"
	"smartdrive/internal/config"
	"smartdrive/internal/modules/catalog"
	"smartdrive/internal/modules/chat"
	"smartdrive/internal/modules/session"
	"smartdrive/internal/modules/slotfill"
	"smartdrive/internal/observability"
)

type chatOptions struct {
	Provider  string
	CarsFile  string
	SessionID string
	Limit     int
}

func runChat(ctx context.Context, opts chatOptions, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.Provider == "" {
		opts.Provider = cfg.Model.Provider
	}
	if opts.CarsFile == "" {
		opts.CarsFile = cfg.Catalog.CarsFile
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	observability.SetLevel(cfg.Log.Level)

	gen, closeGen, err := ai.New(ctx, ai.Settings{
		Provider:    opts.Provider,
		GeminiKey:   cfg.Model.GeminiKey,
		GeminiModel: cfg.Model.GeminiModel,
		OllamaURL:   cfg.Model.OllamaURL,
		OllamaModel: cfg.Model.OllamaModel,
	})
	if err != nil {
		return err
	}
	defer closeGen()

	listings, err := catalog.LoadFile(opts.CarsFile, observability.Logger())
	if err != nil {
		return err
	}

	svc := chat.NewService(
		session.NewStore(),
		slotfill.NewService(gen, slotfill.Options{Timeout: cfg.Model.Timeout}),
		listings,
		chat.Options{ResultLimit: opts.Limit},
	)
	return repl(ctx, svc, opts.SessionID, in, out)
}

// repl reads one message per line until EOF or "exit".
func repl(ctx context.Context, svc *chat.Service, sessionID string, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "SmartDrive (session %s). Tape \"exit\" pour quitter.\n", sessionID)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		reply, err := svc.Turn(ctx, sessionID, line)
		switch {
		case errors.Is(err, slotfill.ErrTransport), errors.Is(err, slotfill.ErrMalformedReply):
			fmt.Fprintf(out, "! modèle indisponible: %v\n", err)
			continue
		case err != nil:
			return err
		}
		printReply(out, reply)
	}
}

func printReply(out io.Writer, r *chat.Reply) {
	fmt.Fprintln(out, r.Assistant)
	for i, c := range r.Cars {
		fmt.Fprintf(out, "%2d. [%s %d/100] %s %s - %s DH (%s, %s, %s km)\n",
			i+1, strings.ToUpper(string(c.Label)), c.Score, c.Brand, c.Model,
			orUnknown(c.Price), c.City, orUnknown(c.Year), orUnknown(c.Km))
		if c.Why != "" {
			fmt.Fprintf(out, "    %s\n", c.Why)
		}
	}
}

func orUnknown(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}
