package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cgtop/cgtop/internal/cgroup"
	"github.com/cgtop/cgtop/internal/config"
	"github.com/cgtop/cgtop/internal/errors"
	"github.com/cgtop/cgtop/internal/ui"
)

// checkCommand prints what the host offers and whether the dashboard
// can run against it. Returns an error when no usable hierarchy exists
// so the exit code is meaningful in scripts.
func checkCommand(w io.Writer) error {
	v, detail, err := cgroup.DetectVersion()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrCollect,
			"Failed to inspect mounts",
			"cgtop check needs a readable /proc/self/mountinfo.")
	}

	fmt.Fprintln(w, ui.Field("hierarchy", v.String()))
	fmt.Fprintln(w, ui.Field("mounts", detail))

	cfg, err := config.LoadOrDefault(configFlag)
	if err != nil {
		return err
	}
	root := cfg.Root
	if pathFlag != "" {
		root = pathFlag
	}
	fmt.Fprintln(w, ui.Field("root", root))

	if data, err := os.ReadFile(filepath.Join(root, "cgroup.controllers")); err == nil {
		controllers := strings.TrimSpace(string(data))
		if controllers == "" {
			controllers = "(none delegated)"
		}
		fmt.Fprintln(w, ui.Field("controllers", controllers))
	} else {
		fmt.Fprintln(w, ui.Warn("controllers unreadable: "+err.Error()))
	}

	switch v {
	case cgroup.V2, cgroup.Hybrid:
		fmt.Fprintln(w, ui.Success("unified hierarchy available"))
		return nil
	default:
		fmt.Fprintln(w, ui.Fail("no unified hierarchy"))
		return errors.New(errors.ErrCollect,
			"No usable cgroup v2 hierarchy",
			"cgtop needs the unified hierarchy. Boot with systemd.unified_cgroup_hierarchy=1, or run 'cgtop --mock'.")
	}
}
