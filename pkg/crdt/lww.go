package crdt

import (
	"fmt"

	"github.com/shinyes/yep_replica/pkg/causal"
)

// LWWTimestamp 是 LWW 寄存器的逻辑时间戳。
// Clock 是每个副本自己的逻辑时钟（不是墙钟，副本间不同步），
// ReplicaHash 是副本标识的稳定哈希，仅作为确定性的决胜值。
// 哈希决胜提供的是确定性而非因果正确性：两个从未观察过
// 彼此的副本各写一次时，"胜者" 只是哈希更大的那个。
type LWWTimestamp struct {
	Clock       uint64 `msgpack:"clock"`
	ReplicaHash uint64 `msgpack:"replica_hash"`
}

// Less 按 (Clock, ReplicaHash) 字典序比较。
func (t LWWTimestamp) Less(other LWWTimestamp) bool {
	if t.Clock != other.Clock {
		return t.Clock < other.Clock
	}
	return t.ReplicaHash < other.ReplicaHash
}

// LWWPayload 是 LWW 寄存器的可合并状态。
type LWWPayload[T any] struct {
	Value     T            `msgpack:"value"`
	Timestamp LWWTimestamp `msgpack:"timestamp"`
	Empty     bool         `msgpack:"empty"`
}

// LWWRegister 实现最后写入胜出的单值寄存器。
type LWWRegister[T any] struct {
	name  string
	hash  uint64
	clock uint64

	payload LWWPayload[T]
}

// NewLWWRegister 创建一个新的空 LWWRegister。
func NewLWWRegister[T any](name string) *LWWRegister[T] {
	name = replicaName(name)
	return &LWWRegister[T]{
		name:    name,
		hash:    causal.ReplicaHash(name),
		payload: LWWPayload[T]{Empty: true},
	}
}

func (r *LWWRegister[T]) Type() Type   { return TypeLWWRegister }
func (r *LWWRegister[T]) Name() string { return r.name }

// tick 推进本地逻辑时钟并返回新的时间戳。
// 每次本地 Assign/Clear 都会推进时钟。
func (r *LWWRegister[T]) tick() LWWTimestamp {
	r.clock++
	return LWWTimestamp{Clock: r.clock, ReplicaHash: r.hash}
}

// Assign 写入新值。
func (r *LWWRegister[T]) Assign(value T) {
	r.payload = LWWPayload[T]{Value: value, Timestamp: r.tick()}
}

// Clear 写入空值。
func (r *LWWRegister[T]) Clear() {
	r.payload = LWWPayload[T]{Timestamp: r.tick(), Empty: true}
}

// Value 返回当前值。第二个返回值为 false 表示寄存器为空。
func (r *LWWRegister[T]) Value() (T, bool) {
	return r.payload.Value, !r.payload.Empty
}

// Payload 返回可合并状态的副本。
func (r *LWWRegister[T]) Payload() LWWPayload[T] {
	return r.payload
}

// Merge 保留时间戳字典序更大的一方；相等时保持当前值（幂等）。
func (r *LWWRegister[T]) Merge(other LWWPayload[T]) {
	if r.payload.Timestamp.Less(other.Timestamp) {
		r.payload = other
	}
}

func (r *LWWRegister[T]) Digest() string {
	if r.payload.Empty {
		return "empty"
	}
	return fmt.Sprintf("value(%v)", r.payload.Value)
}

func (r *LWWRegister[T]) Dump() string {
	if r.payload.Empty {
		return fmt.Sprintf("LWWRegister('%s', <empty>)", r.name)
	}
	return fmt.Sprintf("LWWRegister('%s', %v)", r.name, r.payload.Value)
}
