package causal_test

import (
	"testing"

	"github.com/shinyes/yep_replica/pkg/causal"
)

func TestVersionVector(t *testing.T) {
	v1 := causal.NewVersionVector()
	v1.Increment("A", 1)
	v1.Increment("B", 1) // {A:1, B:1}

	v2 := causal.NewVersionVector()
	v2.Increment("A", 1) // {A:1}

	if !v1.Descends(v2) {
		t.Errorf("v1 应该涵盖 v2")
	}
	if v2.Descends(v1) {
		t.Errorf("v2 不应该涵盖 v1")
	}
	if !v1.Dominates(v2) {
		t.Errorf("v1 应该严格支配 v2")
	}

	v2.Increment("C", 1) // {A:1, C:1}

	// 并发
	if !v1.Concurrent(v2) {
		t.Errorf("应该是并发关系")
	}
	if got := v1.Compare(v2); got != causal.OrderingConcurrent {
		t.Errorf("Compare 应该返回 concurrent，实际为 %v", got)
	}

	v1.Merge(v2) // {A:1, B:1, C:1}
	if !v1.Descends(v2) {
		t.Errorf("合并后的 v1 应该涵盖 v2")
	}
	if got := v2.Compare(v1); got != causal.OrderingBefore {
		t.Errorf("v2 应该在 v1 之前，实际为 %v", got)
	}
}

func TestVersionVectorAntisymmetry(t *testing.T) {
	v := causal.NewVersionVector()
	v.Increment("A", 2)
	v.Increment("B", 1)

	w := causal.NewVersionVector()
	w.Increment("B", 1)
	w.Increment("A", 2)

	// v <= w 且 w <= v 蕴含 v == w
	if !v.Descends(w) || !w.Descends(v) {
		t.Fatalf("v 和 w 应该互相涵盖")
	}
	if !v.Equal(w) {
		t.Errorf("互相涵盖的向量应该相等")
	}
	if v.Dominates(w) || w.Dominates(v) {
		t.Errorf("相等的向量不应该互相支配")
	}

	w.Increment("C", 1)
	// v < w 蕴含 v <= w 且 v != w
	if !w.Dominates(v) {
		t.Fatalf("w 应该严格支配 v")
	}
	if !w.Descends(v) {
		t.Errorf("严格支配必须蕴含涵盖")
	}
	if v.Equal(w) {
		t.Errorf("严格支配的两侧不应该相等")
	}
}

func TestVersionVectorZeroEntries(t *testing.T) {
	v := causal.VersionVector{"A": 1, "B": 0}
	w := causal.VersionVector{"A": 1}

	// 存储的 0 条目与缺失条目必须比较相等
	if !v.Equal(w) {
		t.Errorf("值为 0 的条目应该视同缺失")
	}
	if v.Dominates(w) || w.Dominates(v) {
		t.Errorf("只差 0 条目的向量不应该互相支配")
	}
	if v.Hash() != w.Hash() {
		t.Errorf("值为 0 的条目不应该影响哈希")
	}
}

func TestVersionVectorMagnitude(t *testing.T) {
	v := causal.NewVersionVector()
	if v.Magnitude() != 0 {
		t.Fatalf("空向量的 magnitude 应该为 0")
	}
	v.Increment("A", 3)
	v.Increment("B", 2)
	v.Increment("A", 1)
	if got := v.Magnitude(); got != 6 {
		t.Errorf("期望 magnitude 为 6，实际为 %d", got)
	}
}

func TestVersionVectorMergeIdempotent(t *testing.T) {
	v := causal.VersionVector{"A": 2, "B": 5}
	before := v.Copy()
	v.Merge(v)
	if !v.Equal(before) {
		t.Errorf("与自身合并不应该改变向量")
	}

	w := causal.VersionVector{"A": 7, "C": 1}
	v.Merge(w)
	want := causal.VersionVector{"A": 7, "B": 5, "C": 1}
	if !v.Equal(want) {
		t.Errorf("期望逐项最大值 %v，实际为 %v", want, v)
	}
}

func TestVersionVectorHashOrderIndependent(t *testing.T) {
	v := causal.NewVersionVector()
	v.Increment("A", 1)
	v.Increment("B", 2)
	v.Increment("C", 3)

	w := causal.NewVersionVector()
	w.Increment("C", 3)
	w.Increment("A", 1)
	w.Increment("B", 2)

	if v.Hash() != w.Hash() {
		t.Errorf("相等向量的哈希应该相同")
	}

	w.Increment("C", 1)
	if v.Hash() == w.Hash() {
		t.Errorf("不同向量的哈希不应该相同")
	}
}

func TestVersionVectorCopyIsIndependent(t *testing.T) {
	v := causal.VersionVector{"A": 1, "Z": 0}
	c := v.Copy()
	if _, ok := c["Z"]; ok {
		t.Errorf("Copy 不应该保留值为 0 的条目")
	}
	c.Increment("A", 5)
	if v["A"] != 1 {
		t.Errorf("修改副本不应该影响原向量")
	}
}
