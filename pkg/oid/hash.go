package oid

// FNV-1a parameters, http://isthe.com/chongo/tech/comp/fnv/
const (
	fnvOffsetBasis uint32 = 2166136261
	fnvPrime       uint32 = 16777619
)

// fnv1a24 hashes data with 32-bit FNV-1a and XOR-folds the result to
// 24 bits. It is used only to derive the machine-identifier bytes from the
// host name, so the footprint stays at 3 bytes without depending on
// OS-level machine IDs.
func fnv1a24(data []byte) uint32 {
	h := fnvOffsetBasis
	for _, b := range data {
		h ^= uint32(b)
		h *= fnvPrime
	}
	return (h >> 24) ^ (h & 0xFFFFFF)
}
