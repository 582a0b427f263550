// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBufferModes(t *testing.T) {
	if diff := cmp.Diff([]bool{true, false}, bufferModes(true)); diff != "" {
		t.Errorf("double-buffer request must fall back to single (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false}, bufferModes(false)); diff != "" {
		t.Errorf("single-buffer request attempts once (-want +got):\n%s", diff)
	}
}
