package network

import (
	"io"
	"log"
)

// P2PNetwork 模拟点对点拓扑：
// 任何在线副本都可以向所有其他在线副本广播自己的状态。
type P2PNetwork[P any] struct {
	roster[P]
}

func NewP2PNetwork[P any]() *P2PNetwork[P] {
	return &P2PNetwork[P]{}
}

// Add 登记一个副本句柄并返回其槽位索引。
func (n *P2PNetwork[P]) Add(handle Replica[P]) int {
	return n.add(handle)
}

// Disconnect 将槽位断连。已离线的槽位是 no-op。
func (n *P2PNetwork[P]) Disconnect(i int) {
	if handle := n.disconnect(i); handle != nil {
		log.Printf("Disconnect '%s' from the network.", handle.Name())
	}
}

// Reconnect 将槽位恢复在线。没有对应离线记录时是 no-op。
func (n *P2PNetwork[P]) Reconnect(i int) {
	if handle := n.reconnect(i); handle != nil {
		log.Printf("Reconnecting '%s' to the network.", handle.Name())
	}
}

// Broadcast 将槽位 i 的当前 payload 合并进每个其他在线副本。
// 单向、一对多、同步。槽位离线时是 no-op。
func (n *P2PNetwork[P]) Broadcast(i int) {
	if !n.online(i) {
		return
	}
	src := n.slots[i].handle
	log.Printf("Broadcasting from '%s' to all connected replicas...", src.Name())
	payload := src.Payload()
	for j := range n.slots {
		if j == i || !n.online(j) {
			continue
		}
		n.slots[j].handle.Merge(payload)
	}
}

// BroadcastAll 按槽位升序依次广播每个副本。
// 注意这意味着同一次调用内靠后的广播会把靠前广播
// 刚传播过来的更新继续传递出去（对顺序敏感）。
func (n *P2PNetwork[P]) BroadcastAll() {
	for i := range n.slots {
		n.Broadcast(i)
	}
}

// CountPartitions 返回所有副本（含离线）上不同查询结果的数量。
func (n *P2PNetwork[P]) CountPartitions() int {
	return n.countPartitions()
}

// Dump 渲染网络状态。
func (n *P2PNetwork[P]) Dump(w io.Writer) {
	n.dump(w, "P2P network state:")
}
