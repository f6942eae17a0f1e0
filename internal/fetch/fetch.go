// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/runtimejs/runtimectl/internal/artifact"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Config configures a [Fetcher].
type Config struct {
	// Client used for the downloads. Defaults to [http.DefaultClient].
	Client *http.Client

	Logger *slog.Logger

	// Progress receives progress bars if it is a terminal.
	Progress io.Writer
}

// Fetcher downloads artifacts from a remote artifact server.
type Fetcher struct {
	client   *http.Client
	logger   *slog.Logger
	progress io.Writer
}

// New creates a new [Fetcher].
func New(cfg Config) *Fetcher {
	client := cfg.Client
	if client == nil {
		client = http.DefaultClient
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		client:   client,
		logger:   logger,
		progress: cfg.Progress,
	}
}

// Fetch downloads kernel and initrd from the artifact server at host and port
// into the given destination files.
//
// Host and port are validated before any network access. Existing destination
// files are removed first, so a failed fetch never leaves a stale copy that
// looks valid. The downloads run concurrently. The fetch fails if any of them
// fails. In that case the destination files are in an undefined state.
func (f *Fetcher) Fetch(
	ctx context.Context,
	host string,
	port uint16,
	kernelDest string,
	initrdDest string,
) (Result, error) {
	base, err := BaseURL(host, port)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Kernel: DownloadResult{
			Name: "kernel",
			URL:  base.JoinPath(artifact.KernelEndpoint).String(),
			Path: kernelDest,
		},
		Initrd: DownloadResult{
			Name: "initrd",
			URL:  base.JoinPath(artifact.InitrdEndpoint).String(),
			Path: initrdDest,
		},
	}

	for _, path := range []string{kernelDest, initrdDest} {
		err := artifact.Remove(path)
		if err != nil {
			return result, fmt.Errorf("remove stale download: %w", err)
		}
	}

	// No shared context cancellation, each download runs to its own end so
	// both results are complete.
	var group errgroup.Group

	for _, res := range []*DownloadResult{&result.Kernel, &result.Initrd} {
		group.Go(func() error {
			res.Bytes, res.Err = f.download(ctx, res.Name, res.URL, res.Path)
			return res.Err
		})
	}

	err = group.Wait()
	if err != nil {
		// Wait only has the first failure, the result has all of them.
		return result, result.Err()
	}

	return result, nil
}

func (f *Fetcher) download(
	ctx context.Context,
	name string,
	url string,
	dest string,
) (int64, error) {
	f.logger.Debug("Downloading",
		slog.String("artifact", name),
		slog.String("url", url),
		slog.String("dest", dest))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("new request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	file, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("create: %w", err)
	}

	var writer io.Writer = file

	if bar := f.progressBar(name, resp.ContentLength); bar != nil {
		defer bar.Close()

		writer = io.MultiWriter(file, bar)
	}

	written, err := io.Copy(writer, resp.Body)
	if err != nil {
		_ = file.Close()
		return written, fmt.Errorf("write %s: %w", dest, err)
	}

	err = file.Close()
	if err != nil {
		return written, fmt.Errorf("close %s: %w", dest, err)
	}

	f.logger.Info("Downloaded",
		slog.String("artifact", name),
		slog.Int64("bytes", written),
		slog.String("dest", dest))

	return written, nil
}

func (f *Fetcher) progressBar(name string, size int64) *progressbar.ProgressBar {
	if !isTerminal(f.progress) {
		return nil
	}

	if size <= 0 {
		size = -1
	}

	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(f.progress),
		progressbar.OptionSetDescription("download "+name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(file.Fd()))
}
