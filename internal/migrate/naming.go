// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package migrate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/enex-migrate/internal/runlog"
	"github.com/pdiddy/enex-migrate/pkg/types"
)

// SanitizeTitle makes a note title safe for filesystem use: every path
// separator becomes "-" and any resulting doubled "-" collapses to one.
func SanitizeTitle(title string) string {
	s := strings.ReplaceAll(title, "/", "-")
	if sep := string(os.PathSeparator); sep != "/" {
		s = strings.ReplaceAll(s, sep, "-")
	}
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return s
}

// UniquePath returns target when unused, otherwise the first free
// "{stem}_{n}{ext}" variant. Every substitution is recorded as a collision
// warning in the log. This guard runs once per produced artifact path.
func UniquePath(target string, log *runlog.Log, w io.Writer) string {
	if _, err := os.Stat(target); os.IsNotExist(err) {
		return target
	}

	ext := filepath.Ext(target)
	stem := strings.TrimSuffix(target, ext)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, n, ext)
		if _, err := os.Stat(candidate); !os.IsNotExist(err) {
			continue
		}
		msg := fmt.Sprintf("file collision: %q already exists, using %q",
			filepath.Base(target), filepath.Base(candidate))
		fmt.Fprintf(w, "warning: %s\n", msg)
		log.Warn(types.Warning{
			Type:     "filename-collision",
			Original: filepath.Base(target),
			Deduped:  filepath.Base(candidate),
			Message:  msg,
		})
		return candidate
	}
}

// Artifact filename patterns per terminal routing state. The identifier and
// its separator are omitted entirely in filename-preservation mode. Note the
// text-only pattern has no space around the separator, unlike the other two.

func multiItemName(id, title string) string {
	if id != "" {
		return fmt.Sprintf("%s - %s-MultiItem.pdf", id, title)
	}
	return title + "-MultiItem.pdf"
}

func singleResourceName(id, title, ext string) string {
	if id != "" {
		return fmt.Sprintf("%s - %s%s", id, title, ext)
	}
	return title + ext
}

func textOnlyName(id, title string) string {
	if id != "" {
		return fmt.Sprintf("%s-%s.pdf", id, title)
	}
	return title + ".pdf"
}

func sideFileName(id, title, base string) string {
	if id != "" {
		return fmt.Sprintf("%s - %s-%s", id, title, base)
	}
	return fmt.Sprintf("%s-%s", title, base)
}
