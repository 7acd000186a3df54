package crdt

import (
	"fmt"
	"strconv"

	"github.com/shinyes/yep_replica/pkg/causal"
)

// PNCounterPayload 是一对只增向量：
// Positive 积累增量，Negative 积累减量的绝对值。
type PNCounterPayload struct {
	Positive causal.VersionVector `msgpack:"positive"`
	Negative causal.VersionVector `msgpack:"negative"`
}

// Copy 返回一个独立的副本。
func (p PNCounterPayload) Copy() PNCounterPayload {
	return PNCounterPayload{
		Positive: p.Positive.Copy(),
		Negative: p.Negative.Copy(),
	}
}

// PNCounter 实现正负计数器。
// 同时支持增加和减少操作：负的 delta 记录到 Negative 向量中。
type PNCounter struct {
	name    string
	payload PNCounterPayload
}

// NewPNCounter 创建一个新的 PNCounter。
func NewPNCounter(name string) *PNCounter {
	return &PNCounter{
		name: replicaName(name),
		payload: PNCounterPayload{
			Positive: causal.NewVersionVector(),
			Negative: causal.NewVersionVector(),
		},
	}
}

func (c *PNCounter) Type() Type   { return TypePNCounter }
func (c *PNCounter) Name() string { return c.name }

// Increment 按 delta 的符号路由：
// 非负 delta 记入 Positive，负 delta 以绝对值记入 Negative。
func (c *PNCounter) Increment(delta int64) {
	if delta >= 0 {
		c.payload.Positive.Increment(c.name, uint64(delta))
	} else {
		c.payload.Negative.Increment(c.name, uint64(-delta))
	}
}

// Value 返回所有增量之和减去所有减量之和。
func (c *PNCounter) Value() int64 {
	return int64(c.payload.Positive.Magnitude()) - int64(c.payload.Negative.Magnitude())
}

// Payload 返回可合并状态的独立副本。
func (c *PNCounter) Payload() PNCounterPayload {
	return c.payload.Copy()
}

// Merge 独立合并两个方向的向量。总是成功。
func (c *PNCounter) Merge(other PNCounterPayload) {
	c.payload.Positive.Merge(other.Positive)
	c.payload.Negative.Merge(other.Negative)
}

func (c *PNCounter) Digest() string {
	return strconv.FormatInt(c.Value(), 10)
}

func (c *PNCounter) Dump() string {
	return fmt.Sprintf("PNCounter('%s', %d)", c.name, c.Value())
}
