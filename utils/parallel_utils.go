package utils

import (
	"runtime"
	"sync"
)

// PartitionMap splits the half open index range [Min, Max) into
// ParallelDegree contiguous buckets, with a maximum imbalance of one index.
type PartitionMap struct {
	Min, Max       int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions
}

func NewPartitionMap(ParallelDegree, minIndex, maxIndex int) (pm *PartitionMap) {
	var (
		count = maxIndex - minIndex
	)
	if ParallelDegree < 1 {
		ParallelDegree = runtime.NumCPU()
	}
	if count < ParallelDegree {
		ParallelDegree = max(count, 1)
	}
	pm = &PartitionMap{
		Min:            minIndex,
		Max:            maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for np := 0; np < ParallelDegree; np++ {
		pm.Partitions[np] = pm.split(np)
	}
	return
}

func (pm *PartitionMap) split(bucketNum int) (bucket [2]int) {
	var (
		count     = pm.Max - pm.Min
		size      = count / pm.ParallelDegree
		remainder = count % pm.ParallelDegree
		extra     = min(bucketNum, remainder) // the first remainder buckets get one more
	)
	bucket[0] = pm.Min + bucketNum*size + extra
	bucket[1] = bucket[0] + size
	if bucketNum < remainder {
		bucket[1]++
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	return pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
}

func (pm *PartitionMap) GetBucketDimension(bucketNum int) int {
	kMin, kMax := pm.GetBucketRange(bucketNum)
	return kMax - kMin
}

// GetBucket returns the bucket holding index k, or -1 when k is out of range.
func (pm *PartitionMap) GetBucket(k int) (bucketNum int) {
	if k < pm.Min || k >= pm.Max {
		return -1
	}
	for np, b := range pm.Partitions {
		if k >= b[0] && k < b[1] {
			return np
		}
	}
	return -1
}

// Run calls fn once per bucket, concurrently, and waits for all of them.
func (pm *PartitionMap) Run(fn func(bucketNum, kMin, kMax int)) {
	var (
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			kMin, kMax := pm.GetBucketRange(np)
			fn(np, kMin, kMax)
		}(np)
	}
	wg.Wait()
}
