package crdt

import (
	"fmt"
	"strconv"

	"github.com/shinyes/yep_replica/pkg/causal"
)

// GCounter 实现只增计数器。
// payload 就是一个版本向量：每个副本一个本地增量总和，
// 合并是逐项取最大值，因此可观察总量只会增长。
type GCounter struct {
	name    string
	payload causal.VersionVector
}

// NewGCounter 创建一个新的 GCounter。
// name 为空时自动生成唯一的副本标识。
func NewGCounter(name string) *GCounter {
	return &GCounter{
		name:    replicaName(name),
		payload: causal.NewVersionVector(),
	}
}

func (c *GCounter) Type() Type   { return TypeGCounter }
func (c *GCounter) Name() string { return c.name }

// Increment 将本副本的计数增加 delta。
// 只修改本副本自己的条目，从不触及其他副本。
func (c *GCounter) Increment(delta uint64) {
	c.payload.Increment(c.name, delta)
}

// Value 返回所有副本增量之和。
func (c *GCounter) Value() uint64 {
	return c.payload.Magnitude()
}

// LocalValue 返回指定副本贡献的增量，缺失时为 0。
func (c *GCounter) LocalValue(replica string) uint64 {
	return c.payload.Counter(replica)
}

// Payload 返回可合并状态的独立副本。
func (c *GCounter) Payload() causal.VersionVector {
	return c.payload.Copy()
}

// Merge 合并另一个副本的 payload。总是成功。
func (c *GCounter) Merge(other causal.VersionVector) {
	c.payload.Merge(other)
}

func (c *GCounter) Digest() string {
	return strconv.FormatUint(c.Value(), 10)
}

func (c *GCounter) Dump() string {
	return fmt.Sprintf("GCounter('%s', %d)", c.name, c.Value())
}
