package proto

import (
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/mem"
)

// CodecName is the gRPC content-subtype the messages travel under.
const CodecName = "amail"

// Codec marshals Message values for gRPC.
type Codec struct{}

func init() {
	encoding.RegisterCodecV2(Codec{})
}

func (Codec) Name() string { return CodecName }

func (Codec) Marshal(v any) (mem.BufferSlice, error) {
	m, ok := v.(Message)
	if !ok {
		return nil, fmt.Errorf("amail codec: cannot marshal %T", v)
	}
	return mem.BufferSlice{mem.SliceBuffer(m.Marshal())}, nil
}

func (Codec) Unmarshal(data mem.BufferSlice, v any) error {
	m, ok := v.(Message)
	if !ok {
		return fmt.Errorf("amail codec: cannot unmarshal into %T", v)
	}
	return m.Unmarshal(data.Materialize())
}

// CallOption selects the codec on a client call.
func CallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}
