package cmd

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// logHostInfo reports the CPU model and memory of the rendering machine
func logHostInfo() {
	cpuInfo, err := cpu.Info()
	if err != nil {
		logger.Debugf("cpu info unavailable: %v", err)
		return
	}
	threads, err := cpu.Counts(true)
	if err != nil {
		logger.Debugf("cpu count unavailable: %v", err)
		return
	}
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		logger.Debugf("memory info unavailable: %v", err)
		return
	}

	logger.Infof("host: %s", formatHost(cpuInfo, threads, memInfo))
}

func formatHost(cpuInfo []cpu.InfoStat, threads int, memInfo *mem.VirtualMemoryStat) string {
	model := "unknown cpu"
	ghz := 0.0
	if len(cpuInfo) > 0 {
		model = cpuInfo[0].ModelName
		ghz = cpuInfo[0].Mhz / 1000
	}

	var totalGB, availGB float64
	if memInfo != nil {
		totalGB = float64(memInfo.Total) / (1 << 30)
		availGB = float64(memInfo.Available) / (1 << 30)
	}

	return fmt.Sprintf("%s @ %.2f GHz, %d threads, %.1f/%.1f GB free", model, ghz, threads, availGB, totalGB)
}
