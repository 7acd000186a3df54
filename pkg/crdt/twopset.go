package crdt

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// TwoPSetPayload 是 2P-Set 的可合并状态：
// 两个只增集合，Added 记录添加过的元素，Removed 是永久墓碑。
type TwoPSetPayload[T cmp.Ordered] struct {
	Added   map[T]struct{} `msgpack:"added"`
	Removed map[T]struct{} `msgpack:"removed"`
}

// Copy 返回一个独立的副本。
func (p TwoPSetPayload[T]) Copy() TwoPSetPayload[T] {
	out := TwoPSetPayload[T]{
		Added:   make(map[T]struct{}, len(p.Added)),
		Removed: make(map[T]struct{}, len(p.Removed)),
	}
	for e := range p.Added {
		out.Added[e] = struct{}{}
	}
	for e := range p.Removed {
		out.Removed[e] = struct{}{}
	}
	return out
}

// TwoPSet 实现两阶段集合（2P-Set）。
// 元素一旦进入墓碑集合就永远不可见：后续任何副本的 Add
// 都无法让它在合并后重新出现。
type TwoPSet[T cmp.Ordered] struct {
	name    string
	payload TwoPSetPayload[T]
}

// NewTwoPSet 创建一个新的空 TwoPSet。
func NewTwoPSet[T cmp.Ordered](name string) *TwoPSet[T] {
	return &TwoPSet[T]{
		name: replicaName(name),
		payload: TwoPSetPayload[T]{
			Added:   make(map[T]struct{}),
			Removed: make(map[T]struct{}),
		},
	}
}

func (s *TwoPSet[T]) Type() Type   { return TypeTwoPSet }
func (s *TwoPSet[T]) Name() string { return s.name }

// Add 添加一个元素。已被墓碑标记的元素不会被重新添加。
func (s *TwoPSet[T]) Add(element T) {
	if _, removed := s.payload.Removed[element]; removed {
		return
	}
	s.payload.Added[element] = struct{}{}
}

// AddMany 依次添加多个元素。
func (s *TwoPSet[T]) AddMany(elements ...T) {
	for _, e := range elements {
		s.Add(e)
	}
}

// Remove 为元素打上墓碑。
// 元素从未被添加过时移除失败并返回 false；
// 这是调用者需要检查的前置条件，不是致命错误。
func (s *TwoPSet[T]) Remove(element T) bool {
	if _, added := s.payload.Added[element]; !added {
		return false
	}
	s.payload.Removed[element] = struct{}{}
	return true
}

// RemoveMany 依次移除多个元素。
// 每个元素独立生效，返回值是所有移除是否都成功。
func (s *TwoPSet[T]) RemoveMany(elements ...T) bool {
	ok := true
	for _, e := range elements {
		if !s.Remove(e) {
			ok = false
		}
	}
	return ok
}

// Contains 判断元素当前是否可见。
func (s *TwoPSet[T]) Contains(element T) bool {
	if _, removed := s.payload.Removed[element]; removed {
		return false
	}
	_, added := s.payload.Added[element]
	return added
}

// Value 返回当前可见的元素集合（Added 减去 Removed），已排序。
func (s *TwoPSet[T]) Value() []T {
	out := make([]T, 0, len(s.payload.Added))
	for e := range s.payload.Added {
		if _, removed := s.payload.Removed[e]; !removed {
			out = append(out, e)
		}
	}
	slices.Sort(out)
	return out
}

// Payload 返回可合并状态的独立副本。
func (s *TwoPSet[T]) Payload() TwoPSetPayload[T] {
	return s.payload.Copy()
}

// Merge 对 Added 和 Removed 分别取并集。总是成功。
func (s *TwoPSet[T]) Merge(other TwoPSetPayload[T]) {
	for e := range other.Added {
		s.payload.Added[e] = struct{}{}
	}
	for e := range other.Removed {
		s.payload.Removed[e] = struct{}{}
	}
}

func (s *TwoPSet[T]) Digest() string {
	values := s.Value()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprint(v))
	}
	return fmt.Sprintf("%d:%s", len(parts), strings.Join(parts, "\x1f"))
}

func (s *TwoPSet[T]) Dump() string {
	values := s.Value()
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, fmt.Sprintf("%v", v))
	}
	return fmt.Sprintf("TwoPSet('%s', {%s})", s.name, strings.Join(parts, ", "))
}
