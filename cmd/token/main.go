package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"authorize-gateway/internal/auth"
	"authorize-gateway/internal/config"
)

func main() {
	subject := flag.String("subject", "", "merchant system the token is issued to")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.LoadConfig()

	if err := run(os.Stdout, cfg.JWTSecret, *subject, *ttl); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, secret, subject string, ttl time.Duration) error {
	if subject == "" {
		return fmt.Errorf("subject is required")
	}
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	token, err := auth.GenerateToken(secret, subject, ttl)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	_, err = fmt.Fprintln(w, token)
	return err
}
