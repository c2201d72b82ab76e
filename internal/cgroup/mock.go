package cgroup

import "time"

// syntheticPaths is a plausible systemd-style hierarchy used when the real
// hierarchy is unavailable, such as containers and sandboxes without
// cgroup v2 access.
var syntheticPaths = []string{
	DefaultRoot,
	DefaultRoot + "/system.slice",
	DefaultRoot + "/system.slice/systemd-logind.service",
	DefaultRoot + "/system.slice/ssh.service",
	DefaultRoot + "/system.slice/nginx.service",
	DefaultRoot + "/user.slice",
	DefaultRoot + "/user.slice/user-1000.slice",
	DefaultRoot + "/user.slice/user-1000.slice/session-2.scope",
	DefaultRoot + "/user.slice/user-1000.slice/user@1000.service",
	DefaultRoot + "/user.slice/user-1000.slice/user@1000.service/app.slice",
	DefaultRoot + "/user.slice/user-1000.slice/user@1000.service/app.slice/firefox.service",
	DefaultRoot + "/init.scope",
	DefaultRoot + "/machine.slice",
	DefaultRoot + "/machine.slice/docker-123456.scope",
}

// Synthetic builds a deterministic snapshot of a fake hierarchy. The
// counters scale with the path's position so every row renders a distinct
// value.
func Synthetic() *Snapshot {
	snap := &Snapshot{
		Usage: make(map[string]Stats, len(syntheticPaths)),
		At:    time.Now(),
	}

	for i, path := range syntheticPaths {
		n := uint64(i)
		pids := n + 1
		if i == 0 {
			pids = 100
		}
		mem := 1024 * 1024 * (10 + n*5)
		snap.Usage[path] = Stats{
			Memory: MemoryStats{
				Current: mem,
				Max:     1024 * 1024 * 100,
				Breakdown: MemoryBreakdown{
					Anon: mem / 2,
					File: mem / 4,
					Slab: mem / 8,
					Sock: mem / 16,
				},
			},
			CPU: CPUStats{
				UsageUsec:  1_000_000 * (n + 1),
				UserUsec:   500_000 * (n + 1),
				SystemUsec: 200_000 * (n + 1),
			},
			IO: IOStats{
				ReadBytes:  1024 * (100 + n*50),
				WriteBytes: 1024 * (50 + n*25),
				ReadOps:    10 + n*2,
				WriteOps:   5 + n,
			},
			PIDs: PIDStats{
				Current: pids,
				Max:     512,
			},
		}
	}

	snap.Procs = []Process{
		{PID: 1, Command: "systemd", Path: DefaultRoot + "/init.scope"},
		{PID: 100, Command: "systemd-logind", Path: DefaultRoot + "/system.slice/systemd-logind.service"},
		{PID: 200, Command: "sshd", Path: DefaultRoot + "/system.slice/ssh.service"},
		{PID: 1000, Command: "bash", Path: DefaultRoot + "/user.slice/user-1000.slice/session-2.scope"},
		{PID: 2000, Command: "firefox", Path: DefaultRoot + "/user.slice/user-1000.slice/user@1000.service/app.slice/firefox.service"},
	}

	return snap
}
