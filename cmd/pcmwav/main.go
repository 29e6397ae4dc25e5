// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"

	"github.com/ik5/pcmwav/cmd/pcmwav/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
