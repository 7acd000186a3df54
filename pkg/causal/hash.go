package causal

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// ReplicaHash 返回副本标识的稳定 64 位哈希。
// 它跨进程稳定（Go 内置的 map 哈希是每进程随机化的），
// 用作 LWW 时间戳的确定性决胜值。
func ReplicaHash(replica string) uint64 {
	sum := blake3.Sum256([]byte(replica))
	return binary.BigEndian.Uint64(sum[:8])
}

// Hash 返回版本向量的顺序无关哈希。
// 每个非零条目独立哈希后用 XOR 交换性地组合，
// 因此值为 0 的条目与缺失条目的哈希结果相同。
func (vv VersionVector) Hash() uint64 {
	var h uint64
	var buf [8]byte
	for id, counter := range vv {
		if counter == 0 {
			continue
		}
		hasher := blake3.New()
		hasher.Write([]byte(id))
		binary.BigEndian.PutUint64(buf[:], counter)
		hasher.Write(buf[:])
		sum := hasher.Sum(nil)
		h ^= binary.BigEndian.Uint64(sum[:8])
	}
	return h
}
