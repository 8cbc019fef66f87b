package oid

import (
	"crypto/rand"
	"encoding/binary"
	"os"
	"sync"
	"time"
)

const counterMod = 1 << 24

// fallbackHostname stands in when the OS cannot report a host name.
const fallbackHostname = "localhost"

// Source owns the process identity an ObjectID embeds: the cached machine
// bytes, the 16-bit pid, and the 24-bit rolling counter. The counter is the
// only mutable state and is guarded by a mutex held just for the
// read-increment step, so Source is safe for concurrent use.
type Source struct {
	machine [3]byte
	pid     uint16
	now     func() time.Time

	mu      sync.Mutex
	counter uint32
}

// Option customises a Source. The defaults read the real host name, pid,
// and wall clock; tests substitute deterministic values instead.
type Option func(*sourceOptions)

type sourceOptions struct {
	hostname string
	pid      int
	now      func() time.Time
	seed     *uint32
}

// WithHostname overrides the host name the machine bytes are derived from.
// Useful when containers need a stable machine identity.
func WithHostname(name string) Option {
	return func(o *sourceOptions) { o.hostname = name }
}

// WithPID overrides the process id. The value is truncated to 16 bits.
func WithPID(pid int) Option {
	return func(o *sourceOptions) { o.pid = pid }
}

// WithClock overrides the wall-clock function.
func WithClock(now func() time.Time) Option {
	return func(o *sourceOptions) { o.now = now }
}

// WithCounterSeed overrides the random counter seed. The value is reduced
// modulo 2^24.
func WithCounterSeed(seed uint32) Option {
	return func(o *sourceOptions) {
		s := seed % counterMod
		o.seed = &s
	}
}

// NewSource builds a Source. The machine bytes are the low 3 bytes of the
// little-endian packing of the 24-bit FNV-1a hash of the host name, computed
// once and read-only thereafter.
func NewSource(opts ...Option) *Source {
	o := sourceOptions{
		hostname: osHostname(),
		pid:      os.Getpid(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	h := fnv1a24([]byte(o.hostname))
	s := &Source{
		machine: [3]byte{byte(h), byte(h >> 8), byte(h >> 16)},
		pid:     uint16(o.pid),
		now:     o.now,
	}
	if o.seed != nil {
		s.counter = *o.seed
	} else {
		s.counter = randomSeed()
	}
	return s
}

// New produces the next ObjectID: current Unix seconds, machine bytes, pid,
// and the next counter value. The counter wraps silently modulo 2^24; within
// one second that boundary relies on timestamp granularity, as the scheme
// intends.
func (s *Source) New() ObjectID {
	var id ObjectID
	binary.BigEndian.PutUint32(id[0:4], uint32(int32(s.now().Unix())))
	copy(id[4:7], s.machine[:])
	binary.BigEndian.PutUint16(id[7:9], s.pid)

	c := s.next()
	id[9] = byte(c >> 16)
	id[10] = byte(c >> 8)
	id[11] = byte(c)
	return id
}

// next returns the current counter value and advances it modulo 2^24.
func (s *Source) next() uint32 {
	s.mu.Lock()
	c := s.counter
	s.counter = (s.counter + 1) % counterMod
	s.mu.Unlock()
	return c
}

func osHostname() string {
	name, err := os.Hostname()
	if err != nil || name == "" {
		return fallbackHostname
	}
	return name
}

// randomSeed draws the initial counter value uniformly from [0, 2^24).
func randomSeed() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uint32(time.Now().UnixNano()) % counterMod
	}
	return binary.BigEndian.Uint32(b[:]) % counterMod
}

var defaultSource = NewSource()

// DefaultSource returns the process-wide source New draws from.
func DefaultSource() *Source {
	return defaultSource
}
