package crdt

import (
	"cmp"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shinyes/yep_replica/pkg/causal"
)

// 快照编解码。
// 这些是进程内的状态快照（保存/恢复、测试夹具），不是网络
// 传输格式：模拟网络从不跨进程边界传递数据。

func (c *GCounter) Bytes() ([]byte, error) {
	state := &struct {
		Name    string               `msgpack:"name"`
		Payload causal.VersionVector `msgpack:"payload"`
	}{
		Name:    c.name,
		Payload: c.payload,
	}
	return msgpack.Marshal(state)
}

func FromBytesGCounter(data []byte) (*GCounter, error) {
	state := &struct {
		Name    string               `msgpack:"name"`
		Payload causal.VersionVector `msgpack:"payload"`
	}{}
	if err := msgpack.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Payload == nil {
		state.Payload = causal.NewVersionVector()
	}
	return &GCounter{name: state.Name, payload: state.Payload}, nil
}

func (c *PNCounter) Bytes() ([]byte, error) {
	state := &struct {
		Name    string           `msgpack:"name"`
		Payload PNCounterPayload `msgpack:"payload"`
	}{
		Name:    c.name,
		Payload: c.payload,
	}
	return msgpack.Marshal(state)
}

func FromBytesPNCounter(data []byte) (*PNCounter, error) {
	state := &struct {
		Name    string           `msgpack:"name"`
		Payload PNCounterPayload `msgpack:"payload"`
	}{}
	if err := msgpack.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Payload.Positive == nil {
		state.Payload.Positive = causal.NewVersionVector()
	}
	if state.Payload.Negative == nil {
		state.Payload.Negative = causal.NewVersionVector()
	}
	return &PNCounter{name: state.Name, payload: state.Payload}, nil
}

func (r *LWWRegister[T]) Bytes() ([]byte, error) {
	state := &struct {
		Name    string        `msgpack:"name"`
		Clock   uint64        `msgpack:"clock"`
		Payload LWWPayload[T] `msgpack:"payload"`
	}{
		Name:    r.name,
		Clock:   r.clock,
		Payload: r.payload,
	}
	return msgpack.Marshal(state)
}

func FromBytesLWWRegister[T any](data []byte) (*LWWRegister[T], error) {
	state := &struct {
		Name    string        `msgpack:"name"`
		Clock   uint64        `msgpack:"clock"`
		Payload LWWPayload[T] `msgpack:"payload"`
	}{}
	if err := msgpack.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return &LWWRegister[T]{
		name:    state.Name,
		hash:    causal.ReplicaHash(state.Name),
		clock:   state.Clock,
		payload: state.Payload,
	}, nil
}

func (r *MVRegister[T]) Bytes() ([]byte, error) {
	state := &struct {
		Name    string       `msgpack:"name"`
		Payload MVPayload[T] `msgpack:"payload"`
	}{
		Name:    r.name,
		Payload: r.payload,
	}
	return msgpack.Marshal(state)
}

func FromBytesMVRegister[T cmp.Ordered](data []byte) (*MVRegister[T], error) {
	state := &struct {
		Name    string       `msgpack:"name"`
		Payload MVPayload[T] `msgpack:"payload"`
	}{}
	if err := msgpack.Unmarshal(data, state); err != nil {
		return nil, err
	}
	return &MVRegister[T]{name: state.Name, payload: state.Payload}, nil
}

func (s *TwoPSet[T]) Bytes() ([]byte, error) {
	state := &struct {
		Name    string           `msgpack:"name"`
		Payload TwoPSetPayload[T] `msgpack:"payload"`
	}{
		Name:    s.name,
		Payload: s.payload,
	}
	return msgpack.Marshal(state)
}

func FromBytesTwoPSet[T cmp.Ordered](data []byte) (*TwoPSet[T], error) {
	state := &struct {
		Name    string           `msgpack:"name"`
		Payload TwoPSetPayload[T] `msgpack:"payload"`
	}{}
	if err := msgpack.Unmarshal(data, state); err != nil {
		return nil, err
	}
	if state.Payload.Added == nil {
		state.Payload.Added = make(map[T]struct{})
	}
	if state.Payload.Removed == nil {
		state.Payload.Removed = make(map[T]struct{})
	}
	return &TwoPSet[T]{name: state.Name, payload: state.Payload}, nil
}
