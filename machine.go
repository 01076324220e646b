package studio

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// MachineInfo gathers a snapshot of the local machine for the machine field
// of a start event. Values that cannot be collected are left out; returns
// nil when nothing could be collected.
func MachineInfo() map[string]any {
	info := map[string]any{}
	if count, err := cpu.Counts(true); err == nil {
		info["cpu"] = count
	}
	if memory, err := mem.VirtualMemory(); err == nil {
		info["memory"] = memory.Total
	}
	if len(info) == 0 {
		return nil
	}
	return info
}
