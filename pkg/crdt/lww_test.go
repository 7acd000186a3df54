package crdt

import (
	"testing"

	"github.com/shinyes/yep_replica/pkg/causal"
)

func TestLWWRegisterAssignAndClear(t *testing.T) {
	r := NewLWWRegister[string]("A")

	if _, ok := r.Value(); ok {
		t.Fatalf("new register must be empty")
	}

	r.Assign("felipec")
	if v, ok := r.Value(); !ok || v != "felipec" {
		t.Fatalf("expected felipec, got %q (ok=%v)", v, ok)
	}

	r.Clear()
	if _, ok := r.Value(); ok {
		t.Fatalf("expected empty after Clear")
	}

	// 每次本地写入都推进逻辑时钟
	p := r.Payload()
	if p.Timestamp.Clock != 2 {
		t.Fatalf("expected clock 2 after two local writes, got %d", p.Timestamp.Clock)
	}
}

func TestLWWRegisterMergeKeepsGreaterTimestamp(t *testing.T) {
	a := NewLWWRegister[string]("A")
	b := NewLWWRegister[string]("B")

	a.Assign("first")
	b.Assign("second")
	b.Assign("third") // clock 2 beats clock 1 regardless of hashes

	a.Merge(b.Payload())
	if v, _ := a.Value(); v != "third" {
		t.Fatalf("expected third to win with higher clock, got %q", v)
	}

	// merging an older payload is a no-op
	stale := NewLWWRegister[string]("C")
	stale.Assign("old")
	a.Merge(stale.Payload())
	if v, _ := a.Value(); v != "third" {
		t.Fatalf("expected third to survive older payload, got %q", v)
	}
}

func TestLWWRegisterHashTieBreakIsDeterministic(t *testing.T) {
	// 两个副本各写一次，时钟都是 1，彼此从未观察过对方。
	// 哈希决胜提供确定性而非因果正确性：胜者只是哈希更大的一方。
	a := NewLWWRegister[string]("A")
	b := NewLWWRegister[string]("B")
	a.Assign("from-a")
	b.Assign("from-b")

	pa := a.Payload()
	pb := b.Payload()
	if pa.Timestamp == pb.Timestamp {
		t.Fatalf("distinct replicas must produce distinct timestamps")
	}

	a.Merge(pb)
	b.Merge(pa)
	av, _ := a.Value()
	bv, _ := b.Value()
	if av != bv {
		t.Fatalf("expected convergence, got a=%q b=%q", av, bv)
	}

	wantFromA := causal.ReplicaHash("A") > causal.ReplicaHash("B")
	if wantFromA && av != "from-a" || !wantFromA && av != "from-b" {
		t.Fatalf("winner must be the replica with the greater hash, got %q", av)
	}
}

func TestLWWRegisterMergeEqualTimestampIsIdempotent(t *testing.T) {
	a := NewLWWRegister[int]("A")
	a.Assign(42)

	p := a.Payload()
	a.Merge(p)
	a.Merge(p)
	if v, _ := a.Value(); v != 42 {
		t.Fatalf("merging own payload must keep current value, got %d", v)
	}
}

func TestLWWRegisterClockAdvancesPastMergedState(t *testing.T) {
	a := NewLWWRegister[string]("A")
	b := NewLWWRegister[string]("B")

	a.Assign("one")
	b.Merge(a.Payload())

	// B 的本地时钟独立推进；第二次写入胜过 clock 1 的任何时间戳
	b.Assign("two")
	b.Assign("three")
	a.Merge(b.Payload())
	if v, _ := a.Value(); v != "three" {
		t.Fatalf("expected three, got %q", v)
	}
}
