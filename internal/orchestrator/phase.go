// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package orchestrator

import "strconv"

// Phase is a step of a run.
type Phase int

// Phases in the order they may occur.
const (
	Idle Phase = iota
	Building
	BuildingInitrd
	Fetching
	Starting
	Serving
	Succeeded
	Failed
)

var phaseNames = [...]string{
	Idle:           "idle",
	Building:       "building",
	BuildingInitrd: "building initrd",
	Fetching:       "fetching",
	Starting:       "starting",
	Serving:        "serving",
	Succeeded:      "succeeded",
	Failed:         "failed",
}

// String implements [fmt.Stringer].
func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "phase(" + strconv.Itoa(int(p)) + ")"
	}

	return phaseNames[p]
}
