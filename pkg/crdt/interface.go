package crdt

import "github.com/google/uuid"

// Type 标识 CRDT 的类型。
type Type byte

const (
	TypeGCounter    Type = 0x01
	TypePNCounter   Type = 0x02
	TypeLWWRegister Type = 0x03
	TypeMVRegister  Type = 0x04
	TypeTwoPSet     Type = 0x05
)

// Replicated 是所有状态型 CRDT 实例的通用接口。
// 合并操作定义在具体类型上（各类型的 payload 类型不同），
// 这里只暴露与 payload 无关的能力。
type Replicated interface {
	// Type 返回 CRDT 的类型。
	Type() Type

	// Name 返回拥有此实例的副本标识。
	Name() string

	// Digest 返回当前可观察值的确定性渲染。
	// 两个实例的 Digest 相等当且仅当它们的查询结果相等。
	Digest() string

	// Dump 返回人类可读的单行状态描述。
	Dump() string
}

// replicaName 返回调用者提供的副本标识，为空时生成一个全局唯一的标识。
// 副本标识在一次运行的生命周期内不得重用。
func replicaName(name string) string {
	if name == "" {
		return uuid.NewString()
	}
	return name
}

var (
	_ Replicated = (*GCounter)(nil)
	_ Replicated = (*PNCounter)(nil)
	_ Replicated = (*LWWRegister[string])(nil)
	_ Replicated = (*MVRegister[string])(nil)
	_ Replicated = (*TwoPSet[string])(nil)
)
