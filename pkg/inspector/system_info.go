package inspector

import (
	"os"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/eflow-hydraulics/hdf-inspector/internal/models"
)

// GetSystemStats returns process and host statistics using gopsutil
func (ins *Inspector) GetSystemStats() models.SystemStats {
	pid := int32(os.Getpid())
	proc, err := process.NewProcess(pid)
	if err != nil {
		ins.logger.Warnf("Failed to get process info: %v", err)
		return models.SystemStats{}
	}

	cpuPercent, err := proc.CPUPercent()
	if err != nil {
		ins.logger.Warnf("Failed to get CPU percent: %v", err)
		cpuPercent = 0.0
	}

	memInfo, err := proc.MemoryInfo()
	if err != nil {
		ins.logger.Warnf("Failed to get memory info: %v", err)
		memInfo = &process.MemoryInfoStat{}
	}

	memPercent, err := proc.MemoryPercent()
	if err != nil {
		ins.logger.Warnf("Failed to get memory percent: %v", err)
		memPercent = 0.0
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "/"
	}
	diskUsage, err := disk.Usage(wd)
	if err != nil {
		ins.logger.Warnf("Failed to get disk usage: %v", err)
		diskUsage = &disk.UsageStat{}
	}

	ioCounters, err := proc.IOCounters()
	if err != nil {
		ins.logger.Warnf("Failed to get IO counters: %v", err)
		ioCounters = &process.IOCountersStat{}
	}

	return models.SystemStats{
		CPUPercent: cpuPercent,
		Memory: models.MemoryStats{
			RSS:     memInfo.RSS,
			VMS:     memInfo.VMS,
			Percent: memPercent,
		},
		Disk: models.DiskStats{
			Total:   diskUsage.Total,
			Used:    diskUsage.Used,
			Free:    diskUsage.Free,
			Percent: diskUsage.UsedPercent,
		},
		IO: models.IOStats{
			ReadBytes:  ioCounters.ReadBytes,
			WriteBytes: ioCounters.WriteBytes,
		},
	}
}
