package causal

import (
	"fmt"
	"sort"
	"strings"
)

// VersionVector 表示一个版本向量。
// 映射 ReplicaID -> 单调递增的计数器。
// 缺失的键等价于计数器值 0：比较、哈希和相等性
// 都不区分 "未存储" 和 "存储了 0"。
type VersionVector map[string]uint64

func NewVersionVector() VersionVector {
	return make(VersionVector)
}

// Counter 返回指定副本的计数器值，缺失时为 0。
func (vv VersionVector) Counter(replica string) uint64 {
	return vv[replica]
}

// Increment 将指定副本的计数器增加 delta。
// 只有拥有该条目的副本才应该调用它。
func (vv VersionVector) Increment(replica string, delta uint64) {
	if delta == 0 {
		return
	}
	vv[replica] += delta
}

// Merge 逐项取最大值。幂等且可交换。
func (vv VersionVector) Merge(other VersionVector) {
	for id, counter := range other {
		if counter > vv[id] {
			vv[id] = counter
		}
	}
}

// Descends 判断 vv 是否涵盖 other（即 other <= vv）。
func (vv VersionVector) Descends(other VersionVector) bool {
	for id, otherCtr := range other {
		if vv[id] < otherCtr {
			return false
		}
	}
	return true
}

// Dominates 判断 vv 是否严格支配 other（即 other < vv）。
// 严格支配要求 vv 涵盖 other 且至少一个条目严格更大。
func (vv VersionVector) Dominates(other VersionVector) bool {
	return vv.Descends(other) && !other.Descends(vv)
}

// Concurrent 判断两个版本向量是否并发（彼此不涵盖对方）。
func (vv VersionVector) Concurrent(other VersionVector) bool {
	return !vv.Descends(other) && !other.Descends(vv)
}

// Ordering 表示两个版本向量之间的因果关系。
type Ordering int

const (
	OrderingEqual Ordering = iota
	OrderingBefore
	OrderingAfter
	OrderingConcurrent
)

func (o Ordering) String() string {
	switch o {
	case OrderingEqual:
		return "equal"
	case OrderingBefore:
		return "before"
	case OrderingAfter:
		return "after"
	default:
		return "concurrent"
	}
}

// Compare 返回 vv 相对于 other 的因果关系。
func (vv VersionVector) Compare(other VersionVector) Ordering {
	leq := other.Descends(vv)
	geq := vv.Descends(other)
	switch {
	case leq && geq:
		return OrderingEqual
	case leq:
		return OrderingBefore
	case geq:
		return OrderingAfter
	default:
		return OrderingConcurrent
	}
}

// Equal 判断两个版本向量是否相等。
// 值为 0 的条目视同缺失。
func (vv VersionVector) Equal(other VersionVector) bool {
	return vv.Descends(other) && other.Descends(vv)
}

// Magnitude 返回所有计数器之和。
// 它只是 "观察到了多少更新" 的标量近似，不是因果测试。
func (vv VersionVector) Magnitude() uint64 {
	var sum uint64
	for _, counter := range vv {
		sum += counter
	}
	return sum
}

// Copy 返回一个独立的副本。
func (vv VersionVector) Copy() VersionVector {
	out := make(VersionVector, len(vv))
	for id, counter := range vv {
		if counter != 0 {
			out[id] = counter
		}
	}
	return out
}

// String 以确定性顺序渲染非零条目。
func (vv VersionVector) String() string {
	ids := make([]string, 0, len(vv))
	for id, counter := range vv {
		if counter != 0 {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%d", id, vv[id])
	}
	b.WriteByte('}')
	return b.String()
}
