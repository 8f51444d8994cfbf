/*
 * nvshader: GPU shader cache manager
 * Copyright © 2026 Mario Finelli
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program. If not, see <https://www.gnu.org/licenses/>.
 */

package p2p

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/mfinelli/nvshader"
)

// LocalCache is one cache this node can offer to peers.
type LocalCache struct {
	GameID   string
	GameName string
	Kind     string
	Size     uint64
}

// PeerOffer is an offer received from a peer, as surfaced to the caller.
type PeerOffer struct {
	Addr     net.Addr
	GameID   string
	GameName string
	Size     uint64
	Port     int
}

// Node owns the one UDP socket used for multicast announce/query/offer
// traffic. It is not safe for concurrent use: the scheduling model is
// single-threaded cooperative, one node polled at a time.
type Node struct {
	conn         *net.UDPConn
	hostname     string
	arch         string
	driver       string
	caches       []LocalCache
	lastAnnounce time.Time
}

// NewNode creates a node bound to the multicast group with address reuse
// and joins the group on the default interface.
func NewNode(arch, driver string, caches []LocalCache) (*Node, error) {
	addr := &net.UDPAddr{IP: net.ParseIP(MulticastGroup), Port: MulticastPort}
	if addr.IP == nil {
		return nil, fmt.Errorf("%w: %s", nvshader.ErrInvalidAddress, MulticastGroup)
	}

	conn, err := net.ListenMulticastUDP("udp4", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nvshader.ErrBindFailed, err)
	}

	hostname, _ := os.Hostname()

	return &Node{
		conn:     conn,
		hostname: hostname,
		arch:     arch,
		driver:   driver,
		caches:   caches,
	}, nil
}

// Close tears down the node's socket.
func (n *Node) Close() error {
	return n.conn.Close()
}

// Announce sends a self-advertisement to the multicast group.
func (n *Node) Announce() error {
	summaries := make([]CacheSummary, 0, len(n.caches))
	for _, c := range n.caches {
		summaries = append(summaries, CacheSummary{GameID: c.GameID, GameName: c.GameName, Kind: c.Kind, Size: c.Size})
	}

	msg, err := EncodeAnnounce(Announce{
		Hostname: n.hostname,
		Port:     TransferPort,
		Arch:     n.arch,
		Driver:   n.driver,
		Caches:   summaries,
	})
	if err != nil {
		return err
	}

	return n.send(msg)
}

// MaybeReannounce sends an Announce if at least 60s have passed since
// the last one (or none has been sent yet).
func (n *Node) MaybeReannounce(now time.Time) error {
	if !n.lastAnnounce.IsZero() && now.Sub(n.lastAnnounce) < 60*time.Second {
		return nil
	}
	if err := n.Announce(); err != nil {
		return err
	}
	n.lastAnnounce = now
	return nil
}

// Query sends a request for a game's cache to the multicast group.
func (n *Node) Query(gameID string) error {
	msg, err := EncodeQuery(Query{GameID: gameID, Arch: n.arch})
	if err != nil {
		return err
	}
	return n.send(msg)
}

func (n *Node) send(msg []byte) error {
	addr := &net.UDPAddr{IP: net.ParseIP(MulticastGroup), Port: MulticastPort}
	if _, err := n.conn.WriteTo(msg, addr); err != nil {
		return fmt.Errorf("%w: %v", nvshader.ErrSendFailed, err)
	}
	return nil
}

// Poll performs one non-blocking receive attempt: it reads at most one
// datagram, waiting up to the given budget before giving up. A malformed
// datagram is silently discarded (nil, nil). On a query matching a local
// cache whose game_id matches and whose arch equals this node's, an
// offer is sent back to the group; Poll itself returns (nil, nil) for a
// query. Only an offer received from a peer is returned to the caller.
func (n *Node) Poll(budget time.Duration) (*PeerOffer, error) {
	if err := n.conn.SetReadDeadline(time.Now().Add(budget)); err != nil {
		return nil, err
	}

	buf := make([]byte, 65536)
	read, addr, err := n.conn.ReadFrom(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			return nil, nil
		}
		return nil, err
	}

	msgType, payload, derr := Decode(buf[:read])
	if derr != nil {
		return nil, nil // malformed datagram: discard silently
	}

	switch msgType {
	case MsgQuery:
		return n.handleQuery(payload)
	case MsgOffer:
		return n.handleOffer(addr, payload)
	default:
		return nil, nil
	}
}

func (n *Node) handleQuery(payload []byte) (*PeerOffer, error) {
	var q Query
	if err := unmarshalPayload(payload, &q); err != nil {
		return nil, nil
	}

	offer, ok := matchQuery(n.caches, n.arch, q)
	if !ok {
		return nil, nil
	}

	msg, err := EncodeOffer(offer)
	if err != nil {
		return nil, err
	}
	if err := n.send(msg); err != nil {
		return nil, err
	}
	return nil, nil
}

// matchQuery implements invariant 8: a query is answered only when the
// requesting arch matches this node's arch and a local cache carries the
// requested game_id. The first matching cache wins.
func matchQuery(caches []LocalCache, arch string, q Query) (Offer, bool) {
	if q.Arch != arch {
		return Offer{}, false
	}

	for _, c := range caches {
		if c.GameID != q.GameID {
			continue
		}
		return Offer{GameID: c.GameID, GameName: c.GameName, Size: c.Size, Port: TransferPort}, true
	}

	return Offer{}, false
}

func (n *Node) handleOffer(addr net.Addr, payload []byte) (*PeerOffer, error) {
	var o Offer
	if err := unmarshalPayload(payload, &o); err != nil {
		return nil, nil
	}
	return &PeerOffer{Addr: addr, GameID: o.GameID, GameName: o.GameName, Size: o.Size, Port: o.Port}, nil
}
