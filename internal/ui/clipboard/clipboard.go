// Package clipboard copies yanked terminal text to the system clipboard.
package clipboard

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
)

// Write copies text to the system clipboard. The native clipboard
// (wl-copy, xclip, pbcopy, etc.) is tried first; OSC52 is the fallback
// for SSH and tmux sessions where no display is reachable.
func Write(text string) error {
	if err := clipboard.WriteAll(text); err == nil {
		return nil
	}
	return writeOSC52(text)
}

// writeOSC52 emits the OSC 52 escape sequence on stderr, which the
// hosting terminal interprets as a clipboard write.
func writeOSC52(text string) error {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	_, err := os.Stderr.Write([]byte(seq))
	return err
}
