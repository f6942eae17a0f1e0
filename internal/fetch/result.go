// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package fetch

import (
	"errors"
	"fmt"
)

// DownloadResult is the outcome of a single artifact download.
type DownloadResult struct {
	Name  string
	URL   string
	Path  string
	Bytes int64
	Err   error
}

// OK returns true if the download succeeded.
func (r DownloadResult) OK() bool {
	return r.Err == nil
}

// Result is the outcome of a fetch of both artifacts.
type Result struct {
	Kernel DownloadResult
	Initrd DownloadResult
}

// Err returns the joined errors of both downloads, nil only if both
// succeeded.
func (r Result) Err() error {
	var errs []error

	for _, res := range []DownloadResult{r.Kernel, r.Initrd} {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", res.Name, res.Err))
		}
	}

	return errors.Join(errs...)
}
