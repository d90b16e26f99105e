package utils

import (
	"runtime"
	"sync"
)

// PartitionMap splits [0, MaxIndex) into ParallelDegree contiguous buckets
// whose sizes differ by at most one
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of each bucket
}

func NewPartitionMap(parallelDegree, maxIndex int) (pm *PartitionMap) {
	if parallelDegree < 1 {
		parallelDegree = 1
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: parallelDegree,
		Partitions:     make([][2]int, parallelDegree),
	}
	for np := range pm.Partitions {
		pm.Partitions[np] = pm.Split1D(np)
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// Split1D gives the first MaxIndex % ParallelDegree buckets one extra item
func (pm *PartitionMap) Split1D(bucketNum int) (bucket [2]int) {
	var (
		size      = pm.MaxIndex / pm.ParallelDegree
		remainder = pm.MaxIndex % pm.ParallelDegree
		extra     = min(bucketNum, remainder)
	)
	bucket[0] = bucketNum*size + extra
	bucket[1] = bucket[0] + size
	if bucketNum < remainder {
		bucket[1]++
	}
	return
}

// ParallelDegree returns the number of go routines to use for maxIndex items,
// a procLimit of zero means one per CPU
func ParallelDegree(procLimit, maxIndex int) (np int) {
	if procLimit > 0 {
		np = procLimit
	} else {
		np = runtime.NumCPU()
	}
	if np > maxIndex {
		np = maxIndex
	}
	if np < 1 {
		np = 1
	}
	return
}

// ParallelFor calls fn over contiguous index ranges covering [0, n). Below
// threshold, or with a single worker, fn is called once on the calling go
// routine. fn must only write to slots inside its own range.
func ParallelFor(n, threshold, procLimit int, fn func(bucket, kMin, kMax int)) {
	if n <= 0 {
		return
	}
	NP := ParallelDegree(procLimit, n)
	if n < threshold || NP == 1 {
		fn(0, 0, n)
		return
	}
	var (
		pm = NewPartitionMap(NP, n)
		wg = sync.WaitGroup{}
	)
	for np := 0; np < NP; np++ {
		wg.Add(1)
		go func(np int) {
			kMin, kMax := pm.GetBucketRange(np)
			fn(np, kMin, kMax)
			wg.Done()
		}(np)
	}
	wg.Wait()
}
