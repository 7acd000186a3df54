package crdt_test

import (
	"testing"

	"github.com/shinyes/yep_replica/pkg/crdt"
)

func TestPNCounter(t *testing.T) {
	a := crdt.NewPNCounter("A")
	b := crdt.NewPNCounter("B")

	a.Increment(10)
	a.Increment(-3)
	b.Increment(-5)

	if got := a.Value(); got != 7 {
		t.Errorf("期望 A 的值为 7，实际为 %d", got)
	}
	if got := b.Value(); got != -5 {
		t.Errorf("期望 B 的值为 -5，实际为 %d", got)
	}

	a.Merge(b.Payload())
	b.Merge(a.Payload())
	if a.Value() != 2 || b.Value() != 2 {
		t.Errorf("期望双方收敛到 2，实际为 A=%d B=%d", a.Value(), b.Value())
	}
}

func TestPNCounterZeroDelta(t *testing.T) {
	a := crdt.NewPNCounter("A")
	a.Increment(0)
	if got := a.Value(); got != 0 {
		t.Errorf("增量 0 不应该改变值，实际为 %d", got)
	}
	if len(a.Payload().Positive) != 0 {
		t.Errorf("增量 0 不应该物化任何条目")
	}
}

func TestPNCounterMergeIsDirectionIndependent(t *testing.T) {
	a := crdt.NewPNCounter("A")
	b := crdt.NewPNCounter("B")
	a.Increment(-1)
	b.Increment(4)

	a2 := crdt.NewPNCounter("A2")
	a2.Merge(a.Payload())
	a2.Merge(b.Payload())

	b2 := crdt.NewPNCounter("B2")
	b2.Merge(b.Payload())
	b2.Merge(a.Payload())

	if a2.Value() != b2.Value() {
		t.Errorf("合并方向不应该影响结果：%d != %d", a2.Value(), b2.Value())
	}
	if a2.Value() != 3 {
		t.Errorf("期望 3，实际为 %d", a2.Value())
	}
}

func TestPNCounterRepeatedMerge(t *testing.T) {
	a := crdt.NewPNCounter("A")
	b := crdt.NewPNCounter("B")
	a.Increment(2)
	b.Increment(-7)

	p := b.Payload()
	a.Merge(p)
	a.Merge(p)
	a.Merge(p)
	if got := a.Value(); got != -5 {
		t.Errorf("重复合并同一 payload 应该幂等，期望 -5，实际为 %d", got)
	}
}
