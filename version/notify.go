package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/leanback-cli/leanback/constant"
	"github.com/leanback-cli/leanback/key"
	"github.com/leanback-cli/leanback/log"
	"github.com/leanback-cli/leanback/style"
	"github.com/spf13/viper"
)

// Notify writes a notice to w if a newer stable version is available.
// Lookup failures are logged and otherwise ignored.
func Notify(ctx context.Context, w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	latest, err := Latest(ctx)
	if err != nil {
		log.Debugf("version check: %v", err)
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(style.SuccessColor)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(constant.ReleasesURL+latest),
	)
}
