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
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"

	"github.com/mfinelli/nvshader"
)

const transferChunkSize = 64 * 1024

// transferHeaderLines is the fixed number of newline-terminated header
// lines a transfer starts with, before the raw payload.
const transferHeaderLines = 4

// ListenTransfer opens the address-reused TCP listener used to serve
// transfer requests.
func ListenTransfer() (net.Listener, error) {
	l, err := net.Listen("tcp", fmt.Sprintf(":%d", TransferPort))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", nvshader.ErrListenFailed, err)
	}
	return l, nil
}

// SendFile connects to addr and streams src as a transfer: an ASCII
// header naming the game and size, then the file contents in 64 KiB
// chunks until EOF.
func SendFile(addr string, gameID, gameName string, sizeBytes uint64, src io.Reader) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w: %v", nvshader.ErrConnectFailed, err)
	}
	defer conn.Close()

	header := fmt.Sprintf("NVCACHE_TRANSFER\n%s\n%s\n%d\n", gameID, gameName, sizeBytes)
	if _, err := io.WriteString(conn, header); err != nil {
		return fmt.Errorf("%w: %v", nvshader.ErrSendFailed, err)
	}

	buf := make([]byte, transferChunkSize)
	if _, err := io.CopyBuffer(conn, src, buf); err != nil {
		return fmt.Errorf("%w: %v", nvshader.ErrSendFailed, err)
	}

	return nil
}

// TransferHeader is the parsed ASCII header a receiver sees before the
// payload.
type TransferHeader struct {
	GameID    string
	GameName  string
	SizeBytes uint64
}

// ReceiveFile reads a transfer from conn: four header lines, then
// exactly SizeBytes of payload, written to dst.
func ReceiveFile(conn net.Conn, dst io.Writer) (TransferHeader, error) {
	reader := bufio.NewReader(conn)

	lines := make([]string, 0, transferHeaderLines)
	for len(lines) < transferHeaderLines {
		line, err := reader.ReadString('\n')
		if err != nil {
			return TransferHeader{}, fmt.Errorf("p2p: read transfer header: %w", err)
		}
		lines = append(lines, line[:len(line)-1])
	}

	if lines[0] != "NVCACHE_TRANSFER" {
		return TransferHeader{}, fmt.Errorf("p2p: bad transfer header magic %q", lines[0])
	}

	size, err := strconv.ParseUint(lines[3], 10, 64)
	if err != nil {
		return TransferHeader{}, fmt.Errorf("p2p: bad transfer size %q: %w", lines[3], err)
	}

	hdr := TransferHeader{GameID: lines[1], GameName: lines[2], SizeBytes: size}

	if _, err := io.CopyN(dst, reader, int64(size)); err != nil {
		return hdr, fmt.Errorf("p2p: read transfer payload: %w", err)
	}

	return hdr, nil
}
