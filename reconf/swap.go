package reconf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/ddreconf/reconf/internal/dderr"
	"github.com/ddreconf/reconf/zdd"
)

// encodedNode is the on-disk shape of one ZDD node, used to serialize a
// frontier's reachable subgraph out to zdddir the way the original tool
// spills its BDD node table to disk during long-running searches.
type encodedNode struct {
	ID    uint32 `cbor:"id"`
	Level int32  `cbor:"level"`
	Lo    uint32 `cbor:"lo"`
	Hi    uint32 `cbor:"hi"`
}

// swapStore persists evicted frontiers to individual CBOR files under dir,
// keyed by BFS step, and reloads them back into the live kernel on demand.
type swapStore struct {
	dir string
}

func newSwapStore(dir string) *swapStore {
	return &swapStore{dir: dir}
}

func (s *swapStore) path(step int) string {
	return filepath.Join(s.dir, fmt.Sprintf("frontier-%06d.cbor", step))
}

// Save walks every node reachable from h and writes it plus the root
// handle to disk. It does not Deref h; the caller releases its own hold.
func (s *swapStore) Save(k *zdd.Kernel, step int, h zdd.Handle) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return errors.Wrapf(dderr.ErrIO, "swap: mkdir %s: %v", s.dir, err)
	}

	visited := map[zdd.Handle]bool{}
	var nodes []encodedNode
	var walk func(zdd.Handle)
	walk = func(f zdd.Handle) {
		if f.IsTerminal() || visited[f] {
			return
		}
		visited[f] = true
		walk(k.Lo(f))
		walk(k.Hi(f))
		nodes = append(nodes, encodedNode{
			ID:    uint32(f),
			Level: int32(k.Level(f)),
			Lo:    uint32(k.Lo(f)),
			Hi:    uint32(k.Hi(f)),
		})
	}
	walk(h)

	payload := struct {
		Root  uint32        `cbor:"root"`
		Nodes []encodedNode `cbor:"nodes"`
	}{Root: uint32(h), Nodes: nodes}

	data, err := cbor.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "swap: encode")
	}
	if err := os.WriteFile(s.path(step), data, 0o644); err != nil {
		return errors.Wrapf(dderr.ErrIO, "swap: write %s: %v", s.path(step), err)
	}
	return nil
}

// Load reads back the frontier written for step, rebuilding each node
// through Getz so it hash-conses into whatever the live kernel currently
// holds rather than assuming the old handle numbering still applies.
func (s *swapStore) Load(k *zdd.Kernel, step int) (zdd.Handle, error) {
	data, err := os.ReadFile(s.path(step))
	if err != nil {
		return zdd.Bot, errors.Wrapf(dderr.ErrIO, "swap: read %s: %v", s.path(step), err)
	}
	var payload struct {
		Root  uint32        `cbor:"root"`
		Nodes []encodedNode `cbor:"nodes"`
	}
	if err := cbor.Unmarshal(data, &payload); err != nil {
		return zdd.Bot, errors.Wrap(err, "swap: decode")
	}

	remap := map[uint32]zdd.Handle{
		uint32(zdd.Bot): zdd.Bot,
		uint32(zdd.Top): zdd.Top,
	}
	for _, n := range payload.Nodes {
		lo, ok := remap[n.Lo]
		if !ok {
			return zdd.Bot, errors.Errorf("swap: node %d references unresolved lo %d", n.ID, n.Lo)
		}
		hi, ok := remap[n.Hi]
		if !ok {
			return zdd.Bot, errors.Errorf("swap: node %d references unresolved hi %d", n.ID, n.Hi)
		}
		h, err := k.Getz(int(n.Level), lo, hi)
		if err != nil {
			return zdd.Bot, err
		}
		remap[n.ID] = h
	}
	root, ok := remap[payload.Root]
	if !ok {
		return zdd.Bot, errors.Errorf("swap: root %d not found among decoded nodes", payload.Root)
	}
	return root, nil
}

// Remove deletes the on-disk file for step. The search code in this
// package does not call it, so swap files stay in the directory after a
// run.
func (s *swapStore) Remove(step int) {
	_ = os.Remove(s.path(step))
}
