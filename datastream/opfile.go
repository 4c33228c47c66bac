package datastream

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "EZLOAD01"
// uint16   Version: 1
// uint16   Reserved: 0
// uint32   KeySpace
// uint64   OpCount
// 重複 OpCount 次：
//   uint8   OperationType (0=Search,1=Insert,2=Delete)
//   int64   Key

var (
	opMagic   = [8]byte{'E', 'Z', 'L', 'O', 'A', 'D', '0', '1'}
	opVersion = uint16(1)
)

// OpFile 為 stress 可重播的操作序列
type OpFile struct {
	KeySpace int
	Ops      []Operation
}

func WriteOps(w io.Writer, f *OpFile) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(opMagic[:]); err != nil {
		return err
	}
	header := []any{opVersion, uint16(0), uint32(f.KeySpace), uint64(len(f.Ops))}
	for _, field := range header {
		if err := binary.Write(bw, binary.LittleEndian, field); err != nil {
			return err
		}
	}

	var rec [9]byte
	for _, op := range f.Ops {
		rec[0] = uint8(op.Type)
		binary.LittleEndian.PutUint64(rec[1:], uint64(int64(op.Key)))
		if _, err := bw.Write(rec[:]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteOpFile 將操作序列寫入 filename（覆寫）
func WriteOpFile(filename string, f *OpFile) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteOps(file, f); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return file.Close()
}

func ReadOps(r io.Reader) (*OpFile, error) {
	br := bufio.NewReader(r)

	var magic [8]byte
	if _, err := io.ReadFull(br, magic[:]); err != nil {
		return nil, err
	}
	if magic != opMagic {
		return nil, fmt.Errorf("invalid magic: %q", magic)
	}
	var hdr struct {
		Version  uint16
		Reserved uint16
		KeySpace uint32
		OpCount  uint64
	}
	if err := binary.Read(br, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Version != opVersion {
		return nil, fmt.Errorf("unsupported version: %d", hdr.Version)
	}

	ops := make([]Operation, 0, min(hdr.OpCount, 1<<20))
	var rec [9]byte
	for i := uint64(0); i < hdr.OpCount; i++ {
		if _, err := io.ReadFull(br, rec[:]); err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		t := OperationType(rec[0])
		if t > OpDelete {
			return nil, fmt.Errorf("op %d: unknown operation type %d", i, rec[0])
		}
		ops = append(ops, Operation{Type: t, Key: int(int64(binary.LittleEndian.Uint64(rec[1:])))})
	}
	return &OpFile{KeySpace: int(hdr.KeySpace), Ops: ops}, nil
}

// ReadOpFile 讀取 filename 中的操作序列
func ReadOpFile(filename string) (*OpFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadOps(file)
}
