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

// Package p2p discovers and transfers shader caches between compatible
// hosts on a local network: UDP multicast for announce/query/offer, TCP
// for the actual transfer.
package p2p

import (
	"encoding/json"
	"fmt"
)

// MulticastGroup and MulticastPort identify the UDP multicast group and
// port every node binds and sends announce/query/offer datagrams to.
const (
	MulticastGroup = "239.255.42.99"
	MulticastPort  = 34789
	TransferPort   = 34790
)

const wirePrefix = "NVCACHE"
const prefixLen = 8 // 7 ASCII bytes + 1 type octet

// MsgType is the one-octet message type following the wire prefix.
type MsgType byte

const (
	MsgAnnounce MsgType = 0x01
	MsgQuery    MsgType = 0x02
	MsgOffer    MsgType = 0x03
	MsgRequest  MsgType = 0x04 // reserved, never emitted
	MsgAck      MsgType = 0x05 // reserved, never emitted
)

// CacheSummary is one entry in an Announce's caches list.
type CacheSummary struct {
	GameID   string `json:"game_id"`
	GameName string `json:"game_name"`
	Kind     string `json:"kind"`
	Size     uint64 `json:"size"`
}

// Announce is the self-advertisement payload (type 0x01).
type Announce struct {
	Type     MsgType        `json:"type"`
	Hostname string         `json:"hostname"`
	Port     int            `json:"port"`
	Arch     string         `json:"arch"`
	Driver   string         `json:"driver"`
	Caches   []CacheSummary `json:"caches"`
}

// Query is a request for a game's cache (type 0x02).
type Query struct {
	Type   MsgType `json:"type"`
	GameID string  `json:"game_id"`
	Arch   string  `json:"arch"`
}

// Offer advertises a matching cache in response to a Query (type 0x03).
type Offer struct {
	Type     MsgType `json:"type"`
	GameID   string  `json:"game_id"`
	GameName string  `json:"game_name"`
	Size     uint64  `json:"size"`
	Port     int     `json:"port"`
}

// encode serializes a payload with the 8-byte wire prefix: 7 ASCII bytes
// "NVCACHE" plus the one-octet message type, followed by JSON.
func encode(t MsgType, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("p2p: encode %v: %w", t, err)
	}

	out := make([]byte, 0, prefixLen+len(body))
	out = append(out, wirePrefix...)
	out = append(out, byte(t))
	out = append(out, body...)
	return out, nil
}

// EncodeAnnounce serializes an Announce datagram.
func EncodeAnnounce(a Announce) ([]byte, error) {
	a.Type = MsgAnnounce
	return encode(MsgAnnounce, a)
}

// EncodeQuery serializes a Query datagram.
func EncodeQuery(q Query) ([]byte, error) {
	q.Type = MsgQuery
	return encode(MsgQuery, q)
}

// EncodeOffer serializes an Offer datagram.
func EncodeOffer(o Offer) ([]byte, error) {
	o.Type = MsgOffer
	return encode(MsgOffer, o)
}

// decodedEnvelope carries just enough to dispatch on type before
// unmarshaling the full payload.
type decodedEnvelope struct {
	Type MsgType `json:"type"`
}

// Decode parses a raw datagram, returning its message type and the
// remaining JSON payload bytes for the caller to unmarshal into the
// matching struct. Any malformed datagram (too short, bad prefix, bad
// JSON) returns an error; callers discard it silently, per the P2P
// propagation policy.
func Decode(data []byte) (MsgType, []byte, error) {
	if len(data) < prefixLen {
		return 0, nil, fmt.Errorf("p2p: datagram shorter than prefix")
	}
	if string(data[:7]) != wirePrefix {
		return 0, nil, fmt.Errorf("p2p: bad wire prefix")
	}

	payload := data[prefixLen:]
	var env decodedEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return 0, nil, fmt.Errorf("p2p: decode envelope: %w", err)
	}

	return MsgType(data[7]), payload, nil
}

// unmarshalPayload decodes a datagram's JSON payload into v.
func unmarshalPayload(payload []byte, v any) error {
	return json.Unmarshal(payload, v)
}
