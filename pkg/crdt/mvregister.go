package crdt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shinyes/yep_replica/pkg/causal"
)

// MVNode 是多值寄存器 payload 中的一个节点：
// 一次赋值产生的值集合，以及标记这次赋值的版本向量。
type MVNode[T cmp.Ordered] struct {
	Values []T                  `msgpack:"values"`
	VV     causal.VersionVector `msgpack:"vv"`
}

// key 返回节点的去重键。版本向量的哈希与值无关于条目顺序，
// 值集合已排序，因此相同节点的 key 必然相同。
func (n MVNode[T]) key() string {
	return fmt.Sprintf("%016x|%v", n.VV.Hash(), n.Values)
}

// MVPayload 是多值寄存器的可合并状态：一组并发的赋值节点。
type MVPayload[T cmp.Ordered] []MVNode[T]

// Copy 返回一个独立的副本。
func (p MVPayload[T]) Copy() MVPayload[T] {
	out := make(MVPayload[T], 0, len(p))
	for _, n := range p {
		out = append(out, MVNode[T]{Values: slices.Clone(n.Values), VV: n.VV.Copy()})
	}
	return out
}

// MVRegister 实现多值寄存器：并发的赋值会并排保留，
// 直到某个副本在观察到它们之后重新赋值。
//
// 注意：合并保留两侧节点的去重并集。较旧的节点不会因为
// 对侧存在版本向量更大的节点而被丢弃，所以已经被部分副本
// "清除" 的值可以在合并后重新出现（Dynamo 论文 §4.4 记载的
// 购物车异常）。MVRegister 的 payload 虽然是集合，但它并不
// 提供集合语义；需要集合语义时应使用 TwoPSet。
type MVRegister[T cmp.Ordered] struct {
	name    string
	payload MVPayload[T]
}

// NewMVRegister 创建一个新的空 MVRegister。
func NewMVRegister[T cmp.Ordered](name string) *MVRegister[T] {
	return &MVRegister[T]{name: replicaName(name)}
}

func (r *MVRegister[T]) Type() Type   { return TypeMVRegister }
func (r *MVRegister[T]) Name() string { return r.name }

// Assign 用单个节点替换整个本地节点集。
// 新节点的版本向量是本地所有已知向量的合并，
// 再把本副本自己的条目加一，因此它涵盖本副本观察过的一切。
func (r *MVRegister[T]) Assign(values ...T) {
	vv := causal.NewVersionVector()
	for _, n := range r.payload {
		vv.Merge(n.VV)
	}
	vv.Increment(r.name, 1)

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	r.payload = MVPayload[T]{{Values: sorted, VV: vv}}
}

// Clear 赋一个空的值集合。
func (r *MVRegister[T]) Clear() {
	r.Assign()
}

// Value 返回当前所有节点值集合的并集，排序后去重。
func (r *MVRegister[T]) Value() []T {
	var union []T
	for _, n := range r.payload {
		union = append(union, n.Values...)
	}
	slices.Sort(union)
	return slices.Compact(union)
}

// Payload 返回可合并状态的独立副本。
func (r *MVRegister[T]) Payload() MVPayload[T] {
	return r.payload.Copy()
}

// Merge 保留两侧节点的去重并集。总是成功。
func (r *MVRegister[T]) Merge(other MVPayload[T]) {
	seen := make(map[string]struct{}, len(r.payload))
	for _, n := range r.payload {
		seen[n.key()] = struct{}{}
	}
	for _, n := range other {
		k := n.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		r.payload = append(r.payload, MVNode[T]{Values: slices.Clone(n.Values), VV: n.VV.Copy()})
	}
}

func (r *MVRegister[T]) Digest() string {
	values := r.Value()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return fmt.Sprintf("%d:%s", len(parts), strings.Join(parts, "\x1f"))
}

func (r *MVRegister[T]) Dump() string {
	values := r.Value()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return fmt.Sprintf("MVRegister('%s', {%s})", r.name, strings.Join(parts, ", "))
}
