package utils

import (
	"fmt"
	"runtime"
)

// MemUsage reports the heap in use and the memory held from the OS
func MemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	toMB := func(b uint64) uint64 { return b >> 20 }
	return fmt.Sprintf("Alloc = %v MiB, Sys = %v MiB, NumGC = %v", toMB(m.HeapAlloc), toMB(m.Sys), m.NumGC)
}
