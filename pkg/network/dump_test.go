package network_test

import (
	"strings"
	"testing"

	"github.com/shinyes/yep_replica/pkg/causal"
	"github.com/shinyes/yep_replica/pkg/crdt"
	"github.com/shinyes/yep_replica/pkg/network"
)

func TestDumpShowsOfflineSectionAndConvergence(t *testing.T) {
	net := network.NewP2PNetwork[causal.VersionVector]()

	aCounter := crdt.NewGCounter("A")
	bCounter := crdt.NewGCounter("B")
	net.Add(aCounter)
	b := net.Add(bCounter)

	var sb strings.Builder
	net.Dump(&sb)
	out := sb.String()
	if !strings.Contains(out, "P2P network state:") {
		t.Fatalf("缺少状态标题：%q", out)
	}
	if !strings.Contains(out, "ALL CONVERGED!") {
		t.Errorf("双方都是 0，应该标记收敛：%q", out)
	}
	if strings.Contains(out, "- offline") {
		t.Errorf("没有离线副本时不应该有 offline 段：%q", out)
	}

	aCounter.Increment(1)
	net.Disconnect(b)

	sb.Reset()
	net.Dump(&sb)
	out = sb.String()
	if !strings.Contains(out, "- online:") || !strings.Contains(out, "- offline") {
		t.Errorf("期望同时渲染在线和离线段：%q", out)
	}
	if !strings.Contains(out, "GCounter('B', 0)") {
		t.Errorf("离线副本也应该被渲染：%q", out)
	}
	if strings.Contains(out, "ALL CONVERGED!") {
		t.Errorf("存在分歧时不应该标记收敛：%q", out)
	}
}
