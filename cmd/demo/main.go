// 示例场景驱动。
// 它只是核心查询/合并操作的薄封装：按剧本顺序执行本地
// 变更与网络同步，并渲染每一步之后的网络状态。
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/shinyes/yep_replica/pkg/causal"
	"github.com/shinyes/yep_replica/pkg/crdt"
	"github.com/shinyes/yep_replica/pkg/network"
)

func main() {
	scenario := flag.String("scenario", "all",
		"要运行的场景: all, gcounter-p2p, gcounter-star, pncounter-p2p, lww-p2p, mv-p2p, 2pset-p2p")
	debug := flag.Bool("debug", false, "显示网络动作日志")
	flag.Parse()

	if !*debug {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(0)
	}

	scenarios := map[string]func(){
		"gcounter-p2p":  simulateGCountersInP2PNetwork,
		"gcounter-star": simulateGCountersInStarNetwork,
		"pncounter-p2p": simulatePNCountersInP2PNetwork,
		"lww-p2p":       simulateLWWRegistersInP2PNetwork,
		"mv-p2p":        simulateMVRegistersInP2PNetwork,
		"2pset-p2p":     simulateTwoPSetsInP2PNetwork,
	}

	if *scenario == "all" {
		for _, name := range []string{
			"gcounter-p2p", "gcounter-star", "pncounter-p2p",
			"lww-p2p", "mv-p2p", "2pset-p2p",
		} {
			fmt.Printf("=== %s ===\n\n", name)
			scenarios[name]()
		}
		return
	}

	run, ok := scenarios[*scenario]
	if !ok {
		fmt.Fprintf(os.Stderr, "未知场景: %s\n", *scenario)
		os.Exit(1)
	}
	run()
}

// expect 校验剧本步骤的预期结果。
// 失败意味着核心算法被改坏了,直接中止。
func expect(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf(format, args...))
	}
}

func simulateGCountersInP2PNetwork() {
	net := network.NewP2PNetwork[causal.VersionVector]()

	aCounter := crdt.NewGCounter("A")
	bCounter := crdt.NewGCounter("B")
	cCounter := crdt.NewGCounter("C")

	a := net.Add(aCounter)
	b := net.Add(bCounter)
	net.Add(cCounter)
	net.Dump(os.Stdout)

	aCounter.Increment(1)
	bCounter.Increment(2)
	cCounter.Increment(3)
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 3, "期望 3 个分歧")

	net.Broadcast(a) // a=1, b=3, c=4
	net.Dump(os.Stdout)

	net.BroadcastAll() // 全部收敛到 6
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	net.Disconnect(b)
	aCounter.Increment(10) // a=16
	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(aCounter.Value() == 16 && bCounter.Value() == 6, "期望 A=16 B=6")

	net.Reconnect(b)
	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")
}

func simulateGCountersInStarNetwork() {
	net := network.NewStarNetwork[causal.VersionVector]()

	serverCounter := crdt.NewGCounter("SERVER")
	aCounter := crdt.NewGCounter("A")
	bCounter := crdt.NewGCounter("B")
	cCounter := crdt.NewGCounter("C")

	server := net.SetServerReplica(serverCounter)
	a := net.Add(aCounter)
	net.Add(bCounter)
	net.Add(cCounter)
	net.Disconnect(server)

	aCounter.Increment(1)
	bCounter.Increment(2)
	cCounter.Increment(3)
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 4, "期望 4 个分歧")

	net.SyncWithServer(a) // 服务器不可达,什么也不发生
	expect(net.CountPartitions() == 4, "期望 4 个分歧")

	net.Reconnect(server) // 服务器恢复
	net.SyncAllReplicasToServer()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 3, "只有 SERVER 和 C 观察到了全部更新")

	net.SyncAllReplicasToServer()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")
}

func simulatePNCountersInP2PNetwork() {
	net := network.NewP2PNetwork[crdt.PNCounterPayload]()

	aCounter := crdt.NewPNCounter("A")
	bCounter := crdt.NewPNCounter("B")
	cCounter := crdt.NewPNCounter("C")

	a := net.Add(aCounter)
	b := net.Add(bCounter)
	net.Add(cCounter)

	aCounter.Increment(-1)
	bCounter.Increment(2)
	cCounter.Increment(3)
	net.Dump(os.Stdout)

	net.Broadcast(a)
	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	net.Disconnect(b)
	aCounter.Increment(10)
	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(aCounter.Value() == 14 && bCounter.Value() == 4, "期望 A=14 B=4")

	bCounter.Increment(-3)
	net.Reconnect(b)
	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(aCounter.Value() == 11, "期望收敛到 11")

	bCounter.Increment(-12)
	net.Broadcast(b)
	net.Dump(os.Stdout)
	expect(aCounter.Value() == -1, "期望收敛到 -1")
}

func simulateLWWRegistersInP2PNetwork() {
	net := network.NewP2PNetwork[crdt.LWWPayload[string]]()

	aRegister := crdt.NewLWWRegister[string]("A")
	bRegister := crdt.NewLWWRegister[string]("B")
	cRegister := crdt.NewLWWRegister[string]("C")

	net.Add(aRegister)
	net.Add(bRegister)
	c := net.Add(cRegister)

	aRegister.Assign("_Felipe")
	bRegister.Assign("felipec")
	cRegister.Assign("felipe_oc")
	net.Dump(os.Stdout)

	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	cRegister.Assign("@_Felipe")
	net.Broadcast(c)
	net.Dump(os.Stdout)
	value, _ := aRegister.Value()
	expect(value == "@_Felipe", "期望 @_Felipe 在全网胜出")
}

func simulateMVRegistersInP2PNetwork() {
	net := network.NewP2PNetwork[crdt.MVPayload[string]]()

	aRegister := crdt.NewMVRegister[string]("A")
	bRegister := crdt.NewMVRegister[string]("B")
	cRegister := crdt.NewMVRegister[string]("C")

	a := net.Add(aRegister)
	b := net.Add(bRegister)
	net.Add(cRegister)

	aRegister.Assign("Toilet Paper", "Pasta")
	bRegister.Assign("Pasta")
	cRegister.Assign("Pop Corn", "Pasta")
	net.Dump(os.Stdout)

	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	aRegister.Assign("Pasta")
	bRegister.Assign()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 3, "期望 3 个分歧")

	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")
	// 所有条目重新出现：C 仍然持有全部三个购物车条目。
	// Dynamo 论文 [Giuseppe DeCandia et al. 2007] §4.4 记载了
	// 这个异常："add to cart" 操作永远不会丢失，但被删除的
	// 条目可能复活。MVRegister 的 payload 虽然是集合，
	// 它却不提供集合语义；需要集合语义时应使用集合 CRDT。
	expect(len(cRegister.Value()) == 3, "期望被删除的条目复活")

	aRegister.Clear()
	bRegister.Clear()
	cRegister.Clear()

	aRegister.Assign("Pasta")
	net.Broadcast(a)
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	bRegister.Assign("Toilet Paper")
	net.Broadcast(b)
	net.Broadcast(a) // A 不再广播的话,B 会一直相信自己的本地值
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")
	expect(len(aRegister.Value()) == 2, "期望 2 个值")
}

func simulateTwoPSetsInP2PNetwork() {
	net := network.NewP2PNetwork[crdt.TwoPSetPayload[string]]()

	aSet := crdt.NewTwoPSet[string]("A")
	bSet := crdt.NewTwoPSet[string]("B")
	cSet := crdt.NewTwoPSet[string]("C")

	a := net.Add(aSet)
	net.Add(bSet)
	net.Add(cSet)

	aSet.AddMany("Toilet Paper", "Pasta")
	bSet.AddMany("Pasta")
	cSet.AddMany("Pop Corn", "Pasta")
	net.Dump(os.Stdout)

	net.BroadcastAll()
	net.Dump(os.Stdout)
	expect(net.CountPartitions() == 1, "期望全部收敛")

	expect(aSet.RemoveMany("Toilet Paper", "Pop Corn", "Pasta"), "批量移除应该成功")
	net.BroadcastAll()
	net.Dump(os.Stdout)
	// 与 MVRegister 不同,墓碑广播后被移除的条目不会重新出现
	expect(len(cSet.Value()) == 0, "期望空集合")

	aSet.Add("Pasta")
	net.Broadcast(a)
	net.Dump(os.Stdout)
	expect(len(cSet.Value()) == 0, "被墓碑标记的元素不应该重新出现")
}
