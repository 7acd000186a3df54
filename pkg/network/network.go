// Package network 提供确定性的进程内网络模拟，
// 用来在不同拓扑和可达性下检验 CRDT 的收敛性。
// 它只模拟拓扑与可达性，从不跨进程边界传递数据。
package network

import (
	"fmt"
	"io"
)

// Replica 是网络持有的非拥有副本句柄。
// 副本实例由调用方（驱动代码）拥有；网络只通过槽位索引
// 引用它们，从不构造或销毁副本状态。
type Replica[P any] interface {
	// Name 返回副本标识。
	Name() string

	// Payload 返回当前可合并状态的副本。
	Payload() P

	// Merge 将另一个副本的 payload 合并进来。总是成功。
	Merge(other P)

	// Digest 返回当前可观察值的确定性渲染，
	// 用于跨副本比较查询结果。
	Digest() string

	// Dump 返回人类可读的单行状态描述。
	Dump() string
}

// slot 是副本槽位。断连只是翻转在线标志，
// 句柄留在原槽位上以便恢复。
type slot[P any] struct {
	handle Replica[P]
	online bool
}

// roster 维护两种网络共用的槽位簿记。
type roster[P any] struct {
	slots []slot[P]
}

// add 登记一个副本句柄并返回其槽位索引。
func (r *roster[P]) add(handle Replica[P]) int {
	r.slots = append(r.slots, slot[P]{handle: handle, online: true})
	return len(r.slots) - 1
}

// online 判断槽位是否在线。
// 越界访问是调用者错误，直接触发 panic。
func (r *roster[P]) online(i int) bool {
	s := r.slots[i]
	if s.online && s.handle == nil {
		panic(fmt.Sprintf("network: 槽位 %d 在线但没有句柄", i))
	}
	return s.online && s.handle != nil
}

// disconnect 将槽位标记为离线。
// 槽位已经离线或没有句柄时是静默的 no-op。
// 返回被断连的句柄，没有变化时返回 nil。
func (r *roster[P]) disconnect(i int) Replica[P] {
	if !r.online(i) {
		return nil
	}
	r.slots[i].online = false
	return r.slots[i].handle
}

// reconnect 将槽位恢复在线。
// 槽位已经在线或没有对应的离线记录时是静默的 no-op。
// 返回被恢复的句柄，没有变化时返回 nil。
func (r *roster[P]) reconnect(i int) Replica[P] {
	s := r.slots[i]
	if s.online || s.handle == nil {
		return nil
	}
	r.slots[i].online = true
	return s.handle
}

// countPartitions 返回所有槽位（在线和离线）上
// 不同查询结果的数量。它是收敛性的观测指标，
// 不感知拓扑，只统计可观察的分歧。
func (r *roster[P]) countPartitions() int {
	distinct := make(map[string]struct{})
	for _, s := range r.slots {
		if s.handle != nil {
			distinct[s.handle.Digest()] = struct{}{}
		}
	}
	return len(distinct)
}

// hasOffline 判断是否存在离线的副本。
func (r *roster[P]) hasOffline() bool {
	for _, s := range r.slots {
		if s.handle != nil && !s.online {
			return true
		}
	}
	return false
}

// dump 渲染网络状态：在线副本、离线副本，
// 以及全部收敛时的标记行。
func (r *roster[P]) dump(w io.Writer, header string) {
	fmt.Fprintf(w, "%s\n", header)
	hasOffline := r.hasOffline()
	if hasOffline {
		fmt.Fprintln(w, "- online:")
	}
	for _, s := range r.slots {
		if s.handle != nil && s.online {
			fmt.Fprintln(w, s.handle.Dump())
		}
	}
	if hasOffline {
		fmt.Fprintln(w, "- offline")
		for _, s := range r.slots {
			if s.handle != nil && !s.online {
				fmt.Fprintln(w, s.handle.Dump())
			}
		}
	}
	if r.countPartitions() == 1 {
		fmt.Fprintln(w, "ALL CONVERGED!")
	}
	fmt.Fprintln(w)
}
