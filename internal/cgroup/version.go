package cgroup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Version identifies which cgroup hierarchy flavor a host runs.
type Version int

const (
	Unsupported Version = iota // no cgroup mounts found
	V1                         // legacy multi-hierarchy cgroup v1
	V2                         // unified cgroup v2
	Hybrid                     // both v1 and v2 mounted
)

func (v Version) String() string {
	switch v {
	case V1:
		return "cgroup v1"
	case V2:
		return "cgroup v2"
	case Hybrid:
		return "cgroup hybrid"
	default:
		return "unsupported"
	}
}

// DetectVersion reports the host's cgroup setup and a human-readable
// detail string by parsing /proc/self/mountinfo.
func DetectVersion() (Version, string, error) {
	f, err := os.Open("/proc/self/mountinfo")
	if err != nil {
		return Unsupported, "", fmt.Errorf("open mountinfo: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return parseMountinfo(f)
}

// parseMountinfo scans mountinfo lines for cgroup filesystems. Each line
// has the form "<fields> - <fstype> <source> <superopts>"; the mount point
// is field 5 of the pre-separator part.
func parseMountinfo(r io.Reader) (Version, string, error) {
	var (
		v1Pts []string
		v2Pts []string
		sc    = bufio.NewScanner(r)
	)
	for sc.Scan() {
		line := sc.Text()
		sep := " - "
		i := strings.LastIndex(line, sep)
		if i < 0 {
			continue
		}
		tail := strings.Fields(line[i+len(sep):])
		if len(tail) < 1 {
			continue
		}
		pre := strings.Fields(line[:i])
		if len(pre) < 5 {
			continue
		}
		mountPoint := pre[4]

		switch tail[0] {
		case "cgroup2":
			v2Pts = append(v2Pts, mountPoint)
		case "cgroup":
			v1Pts = append(v1Pts, mountPoint)
		}
	}
	if err := sc.Err(); err != nil {
		return Unsupported, "", fmt.Errorf("scan mountinfo: %w", err)
	}

	switch {
	case len(v1Pts) > 0 && len(v2Pts) > 0:
		return Hybrid, fmt.Sprintf("cgroup2 on %s; cgroup v1 on %s",
			strings.Join(v2Pts, ","), strings.Join(v1Pts, ",")), nil
	case len(v2Pts) > 0:
		return V2, fmt.Sprintf("cgroup2 on %s", strings.Join(v2Pts, ",")), nil
	case len(v1Pts) > 0:
		return V1, fmt.Sprintf("cgroup v1 on %s", strings.Join(v1Pts, ",")), nil
	default:
		return Unsupported, "no cgroup mounts found", nil
	}
}
