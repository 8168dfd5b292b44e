//go:build ignore

// upload_media copies a local file into the configured media store.
//
//	go run scripts/upload_media.go -file avatar.png -key avatars/default.png
package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/media"
)

func main() {
	fileFlag := flag.String("file", "", "file to upload")
	keyFlag := flag.String("key", "", "object key (defaults to the default avatar key)")
	flag.Parse()

	if *fileFlag == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	key := *keyFlag
	if key == "" {
		key = cfg.Media.DefaultAvatarKey
	}

	f, err := os.Open(*fileFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(*fileFlag))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	ctx := context.Background()
	store := media.New(ctx, cfg.Media, logger)

	url, err := store.Put(ctx, key, contentType, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upload failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("uploaded %s -> %s\n", *fileFlag, url)
}
