package vector

import (
	"bytes"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/doctable-go/internal/serialize"
	"github.com/hugr-lab/doctable-go/types"
)

// Serialize encodes c as an Arrow IPC stream and zstd-compresses it,
// per spec.md §4.C "serialize / deserialize". Grounded directly on
// the teacher's own IPC-stream-then-compress pipeline
// (flight/tableref.go's ipc.NewWriter usage +
// internal/serialize/compress.go's Compressor).
func (c *DataChunk) Serialize(mem memory.Allocator) ([]byte, error) {
	rec, err := c.ToRecord(mem)
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	schema := rec.Schema()
	var buf bytes.Buffer
	w := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err := w.Write(rec); err != nil {
		w.Close()
		return nil, fmt.Errorf("vector: write IPC record: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("vector: close IPC writer: %w", err)
	}

	compressor, err := serialize.NewCompressor()
	if err != nil {
		return nil, err
	}
	defer compressor.Close()
	return compressor.Compress(buf.Bytes())
}

// Deserialize decompresses and decodes data produced by Serialize into
// a DataChunk, projecting columns onto colTypes positionally.
func Deserialize(mem memory.Allocator, data []byte, colTypes []types.ComplexLogicalType) (*DataChunk, error) {
	decompressor, err := serialize.NewDecompressor()
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	raw, err := decompressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	reader, err := ipc.NewReader(bytes.NewReader(raw), ipc.WithAllocator(mem))
	if err != nil {
		return nil, fmt.Errorf("vector: open IPC reader: %w", err)
	}
	defer reader.Release()

	if !reader.Next() {
		return nil, fmt.Errorf("vector: IPC stream has no record batch")
	}
	return FromRecord(reader.RecordBatch(), colTypes)
}
