package network

import (
	"fmt"
	"io"
	"log"
)

// StarNetwork 模拟星型拓扑：槽位 0 是唯一的服务器，
// 其余槽位是客户端，只能通过与服务器的往返同步交换状态。
type StarNetwork[P any] struct {
	roster[P]
}

func NewStarNetwork[P any]() *StarNetwork[P] {
	return &StarNetwork[P]{}
}

// SetServerReplica 登记服务器副本，占据槽位 0。
func (n *StarNetwork[P]) SetServerReplica(handle Replica[P]) int {
	if len(n.slots) == 0 {
		n.slots = append(n.slots, slot[P]{handle: handle, online: true})
	} else {
		n.slots[0] = slot[P]{handle: handle, online: true}
	}
	return 0
}

// Add 登记一个客户端副本并返回其槽位索引。
// 服务器还未登记时，槽位 0 先留作占位。
func (n *StarNetwork[P]) Add(handle Replica[P]) int {
	if len(n.slots) == 0 {
		// 槽位 0 保留给服务器副本
		n.slots = append(n.slots, slot[P]{})
	}
	return n.add(handle)
}

// Disconnect 将槽位断连。已离线的槽位是 no-op。
func (n *StarNetwork[P]) Disconnect(i int) {
	handle := n.disconnect(i)
	if handle == nil {
		return
	}
	if i == 0 {
		log.Printf("Server is down.")
	} else {
		log.Printf("Disconnect '%s' from the network.", handle.Name())
	}
}

// Reconnect 将槽位恢复在线。没有对应离线记录时是 no-op。
func (n *StarNetwork[P]) Reconnect(i int) {
	handle := n.reconnect(i)
	if handle == nil {
		return
	}
	if i == 0 {
		log.Printf("Server is back up.")
	} else {
		log.Printf("Reconnecting '%s' to the network.", handle.Name())
	}
}

// SyncWithServer 模拟客户端 i 与服务器的一次请求/响应往返：
// 双方先各自捕获当前 payload，然后互相合并对方捕获的 payload。
// 由于合并可交换且幂等，两侧最终到达相同状态，
// 与双方后续本地修改的时机无关。
// 服务器离线时是 no-op，只记录不可达。客户端离线时静默忽略。
func (n *StarNetwork[P]) SyncWithServer(i int) {
	if i == 0 {
		// 0 就是服务器
		return
	}
	if !n.online(i) {
		return
	}
	client := n.slots[i].handle
	if !n.online(0) {
		log.Printf("Server is not reachable from replica '%s'.", client.Name())
		return
	}
	server := n.slots[0].handle
	log.Printf("Replica '%s' is syncing with %s.", client.Name(), server.Name())

	// 模拟低延迟的请求/响应事务：服务器立刻回复自己现有的
	// 状态，并在回复之后才执行合并。合并的交换性保证客户端
	// 和服务器收敛到同一 CRDT 状态。
	clientPayload := client.Payload()
	serverPayload := server.Payload()
	client.Merge(serverPayload)
	server.Merge(clientPayload)

	if client.Digest() != server.Digest() {
		panic(fmt.Sprintf("network: '%s' 与服务器双向合并后未收敛", client.Name()))
	}
}

// SyncAllReplicasToServer 按槽位升序同步每个客户端。
// 同一次调用内，客户端 1 先同步会让客户端 2 通过服务器
// 间接看到客户端 1 的更新（对顺序敏感）。
func (n *StarNetwork[P]) SyncAllReplicasToServer() {
	for i := 1; i < len(n.slots); i++ {
		n.SyncWithServer(i)
	}
}

// CountPartitions 返回所有副本（含离线）上不同查询结果的数量。
func (n *StarNetwork[P]) CountPartitions() int {
	return n.countPartitions()
}

// Dump 渲染网络状态。
func (n *StarNetwork[P]) Dump(w io.Writer) {
	n.dump(w, "Star-network state:")
}
